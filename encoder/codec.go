package encoder

import (
	"go.uber.org/zap"

	"github.com/wippyai/msgpack-codec/value"
	"github.com/wippyai/msgpack-codec/wire"
)

// Codec encodes application values to MessagePack bytes. The zero-argument
// New gives the default configuration (deferred timestamps, no user
// context). A Codec is immutable after construction and safe for concurrent
// use; each Encode runs in its own encoder tree.
type Codec struct {
	cfg config
}

func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

// EncodeValue converts v to its canonical value tree without packing it.
func (c *Codec) EncodeValue(v any) (value.Value, error) {
	e := newEncoder(&c.cfg)
	return e.encodeRoot(v)
}

// Encode converts v to MessagePack bytes. Either a complete byte sequence is
// returned or an error; a half-built value tree is discarded, never
// partially emitted.
func (c *Codec) Encode(v any) ([]byte, error) {
	val, err := c.EncodeValue(v)
	if err != nil {
		return nil, err
	}
	b, err := wire.Pack(val)
	if err != nil {
		return nil, err
	}
	Logger().Debug("encoded value",
		zap.Stringer("kind", val.Kind()),
		zap.Int("bytes", len(b)))
	return b, nil
}

// Marshal encodes v with the default configuration.
func Marshal(v any) ([]byte, error) {
	return New().Encode(v)
}
