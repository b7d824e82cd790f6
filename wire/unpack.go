package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

// elemAllocLimit caps the capacity preallocated from a wire length header.
// Array and map headers are attacker-controlled; a claimed count only turns
// into memory as elements actually decode.
const elemAllocLimit = 4096

// Unpack decodes one MessagePack value from b and returns it together with
// the unconsumed remainder of b. Unsigned integers that fit a signed 64-bit
// value decode as int; only values above MaxInt64 decode as uint.
func Unpack(b []byte) (value.Value, []byte, error) {
	r := bytes.NewReader(b)
	dec := msgpack.NewDecoder(r)

	v, err := unpackValue(dec)
	if err != nil {
		return value.Value{}, nil, err
	}

	return v, b[len(b)-r.Len():], nil
}

func unpackValue(dec *msgpack.Decoder) (value.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return value.Value{}, wrapUnpackErr(err)
	}

	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Nil(), nil

	case c == msgpcode.True, c == msgpcode.False:
		b, err := dec.DecodeBool()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Bool(b), nil

	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		n, err := dec.DecodeInt64()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Int(n), nil

	case c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		n, err := dec.DecodeUint64()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		if n > math.MaxInt64 {
			return value.Uint(n), nil
		}
		return value.Int(int64(n)), nil

	case c == msgpcode.Float:
		f, err := dec.DecodeFloat32()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Float32(f), nil

	case c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Float64(f), nil

	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.String(s), nil

	case msgpcode.IsBin(c):
		b, err := dec.DecodeBytes()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		return value.Binary(b), nil

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		items := make([]value.Value, 0, min(n, elemAllocLimit))
		for i := 0; i < n; i++ {
			el, err := unpackValue(dec)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, el)
		}
		return value.Array(items), nil

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return value.Value{}, wrapUnpackErr(err)
		}
		pairs := make([]value.Pair, 0, min(n, elemAllocLimit))
		for i := 0; i < n; i++ {
			k, err := unpackValue(dec)
			if err != nil {
				return value.Value{}, err
			}
			v, err := unpackValue(dec)
			if err != nil {
				return value.Value{}, err
			}
			pairs = append(pairs, value.Pair{Key: k, Val: v})
		}
		return value.Map(pairs), nil

	default:
		return value.Value{}, errors.New(errors.PhaseUnpack, errors.KindInvalidData).
			Detail("unsupported MessagePack code 0x%02x", c).
			Build()
	}
}

func wrapUnpackErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Truncated("unexpected end of input")
	}
	return errors.Wrap(errors.PhaseUnpack, errors.KindInvalidData, err, "malformed input")
}
