package msgpackcodec

import (
	"github.com/wippyai/msgpack-codec/encoder"
	"github.com/wippyai/msgpack-codec/value"
	"github.com/wippyai/msgpack-codec/wire"
)

// Marshal encodes v to MessagePack bytes. Options configure time handling
// and the user context; see the encoder package.
func Marshal(v any, opts ...encoder.Option) ([]byte, error) {
	return encoder.New(opts...).Encode(v)
}

// Decode reads the first MessagePack value from b and returns its canonical
// value tree together with the unconsumed remainder of b.
func Decode(b []byte) (value.Value, []byte, error) {
	return wire.Unpack(b)
}
