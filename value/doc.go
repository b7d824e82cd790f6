// Package value defines the canonical value model shared by the structural
// encoder and the wire layer.
//
// A Value is a tagged union over the MessagePack data model:
//
//	nil, bool, int (signed 64-bit), uint (unsigned 64-bit),
//	float32, float64, string, binary, array, map
//
// The structural encoder produces a Value tree; the wire package renders it
// to MessagePack bytes. Values are immutable once produced and compare by
// structure (Equal). Map entries keep insertion order so that repeated
// encodes of the same input produce identical bytes, but equality treats a
// map as an unordered key/value set.
package value
