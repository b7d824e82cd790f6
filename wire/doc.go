// Package wire converts canonical values to and from MessagePack bytes.
//
// The structural encoder never touches wire bytes; it produces a value.Value
// tree and hands it to Pack. Unpack is the inverse and additionally returns
// the unconsumed remainder of the input, so callers can read concatenated
// values from one buffer.
//
// Both directions are built on github.com/vmihailenco/msgpack/v5, using its
// low-level Encoder/Decoder methods rather than reflection. Pack always emits
// the smallest integer representation, so output is deterministic.
//
// Integer canonical form: signed values use the int tag; unsigned values
// above math.MaxInt64 use the uint tag. Unpack applies the same narrowing,
// so Pack and Unpack round-trip every value the model can hold.
//
// Extension types (including the MessagePack timestamp extension) are not
// part of the value model and Unpack rejects them as invalid data.
package wire
