// Package encoder is the structural encoding engine: it turns arbitrary
// application values into canonical value trees, driven by a container
// protocol rather than type-specific serializers.
//
// # Encoding Flow
//
//	Application value ──▶ [Encoder / containers] ──▶ value.Value ──▶ wire.Pack
//
// A type describes its own shape once by implementing Encodable: it requests
// exactly one container kind from the encoder and writes into it.
//
//	func (p Point) EncodeMsgpack(enc *encoder.Encoder) error {
//		m := enc.Mapping()
//		m.SetInt(encoder.StringKey("x"), p.X)
//		m.SetInt(encoder.StringKey("y"), p.Y)
//		return nil
//	}
//
// # Containers
//
//	SingleValueContainer  - exactly one scalar or nested value
//	SequenceContainer     - ordered elements, direct or out-of-line
//	MappingContainer      - key/value entries, direct or out-of-line
//
// Containers are front-ends over shared storage cells: a nested container
// returned by OpenNestedSequence/OpenNestedMapping writes into a fresh cell
// whose position in the parent is reserved at open time. When the parent
// finalizes, reserved cells are spliced in ascending reservation order, so
// content lands where it was requested regardless of the order recursive
// encoding completed in.
//
// # Super Links
//
// OpenSuperLink returns a referencing encoder for a value's parent-type
// payload. It occupies one reserved slot (sequence) or the distinguished
// "super" key (mapping, or an explicit key via OpenSuperLinkForKey) and
// commits its single produced value when the spawning container finalizes.
// At most one super link per container.
//
// # Special Cases
//
// The generic encode path special-cases a closed list of types before the
// Encodable protocol: time.Time (per the configured TimeStrategy), url.URL
// and *url.URL (absolute string form), and []byte (binary). Go primitive
// scalars and value.Value encode natively. Unsigned integers above
// math.MaxInt64 keep the unsigned wire tag; smaller ones narrow to int.
//
// # Error Handling
//
// Data-dependent failures return *errors.Error carrying the path at which
// they occurred; a failed branch leaves its path segment in place, and no
// partial output is ever produced. Programmer misuse - a second container
// request, a second scalar write, a second super link, committing an empty
// referencing encoder, or continuing after an unhandled failure - panics
// with *errors.Error of KindUsageFault.
//
// # Thread Safety
//
// A Codec is safe for concurrent use. Encoder and container values live for
// one encode call and are NOT thread-safe.
package encoder
