package encoder

import "github.com/wippyai/msgpack-codec/value"

// SingleValueContainer writes exactly one value into its encoder. A second
// write of any kind is a usage fault.
type SingleValueContainer struct {
	enc *Encoder
}

func (c *SingleValueContainer) EncodeNil() {
	c.enc.setSingle(value.Nil())
}

func (c *SingleValueContainer) EncodeBool(b bool) {
	c.enc.setSingle(value.Bool(b))
}

func (c *SingleValueContainer) EncodeInt(n int64) {
	c.enc.setSingle(value.Int(n))
}

func (c *SingleValueContainer) EncodeUint(u uint64) {
	c.enc.setSingle(uintValue(u))
}

func (c *SingleValueContainer) EncodeFloat32(f float32) {
	c.enc.setSingle(value.Float32(f))
}

func (c *SingleValueContainer) EncodeFloat64(f float64) {
	c.enc.setSingle(value.Float64(f))
}

func (c *SingleValueContainer) EncodeString(s string) {
	c.enc.setSingle(value.String(s))
}

func (c *SingleValueContainer) EncodeBytes(b []byte) {
	c.enc.setSingle(value.Binary(b))
}

// Encode runs v through the generic path (special cases, native scalars,
// nested Encodable values) and binds the result as the single value.
func (c *SingleValueContainer) Encode(v any) error {
	c.enc.assertCanProceed()
	val, err := c.enc.encodeGeneric(v)
	if err != nil {
		return err
	}
	c.enc.setSingle(val)
	return nil
}
