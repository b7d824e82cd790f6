// Package msgpackcodec encodes arbitrary structured application values to
// the MessagePack binary format, driven by a container protocol rather than
// type-specific serializers.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	msgpackcodec/        Root package with the Marshal / Decode convenience API
//	├── encoder/         Structural encoding engine: containers, super links,
//	│                    deferred slot reservation, time strategies
//	├── value/           Canonical value model (tagged union, structural equality)
//	├── wire/            Canonical value to MessagePack bytes and back
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// A type describes its own shape by implementing encoder.Encodable:
//
//	type Point struct{ X, Y int64 }
//
//	func (p Point) EncodeMsgpack(enc *encoder.Encoder) error {
//		m := enc.Mapping()
//		m.SetInt(encoder.StringKey("x"), p.X)
//		m.SetInt(encoder.StringKey("y"), p.Y)
//		return nil
//	}
//
//	b, err := msgpackcodec.Marshal(Point{X: 1, Y: 2})
//
// Go primitives, []byte, time.Time and url.URL values encode without the
// protocol. Decode returns the canonical value tree of the first MessagePack
// value in a buffer, plus the unconsumed remainder.
//
// # Configuration
//
// Encoding is configured with functional options from the encoder package,
// for example encoder.WithTimeStrategy(encoder.TimeISO8601) or
// encoder.WithUserContext for an application side-channel visible to every
// nested encoder.
package msgpackcodec
