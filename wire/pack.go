package wire

import (
	"bytes"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

const poolMaxCap = 1 << 16 // reject oversized buffers on return

// packState bundles a buffer with a msgpack encoder writing into it so both
// are reused together.
type packState struct {
	buf bytes.Buffer
	enc *msgpack.Encoder
}

var packPool = sync.Pool{
	New: func() any {
		st := &packState{}
		st.enc = msgpack.NewEncoder(&st.buf)
		return st
	},
}

func getPackState() *packState {
	st := packPool.Get().(*packState)
	st.buf.Reset()
	st.enc.Reset(&st.buf)
	return st
}

func putPackState(st *packState) {
	if st.buf.Cap() > poolMaxCap {
		return
	}
	packPool.Put(st)
}

// Pack renders a canonical value to MessagePack bytes. It is deterministic:
// the same value always produces the same bytes.
func Pack(v value.Value) ([]byte, error) {
	st := getPackState()
	defer putPackState(st)

	if err := packValue(st.enc, v); err != nil {
		return nil, err
	}

	out := make([]byte, st.buf.Len())
	copy(out, st.buf.Bytes())
	return out, nil
}

func packValue(enc *msgpack.Encoder, v value.Value) error {
	switch v.Kind() {
	case value.KindNil:
		return enc.EncodeNil()
	case value.KindBool:
		return enc.EncodeBool(v.Bool())
	case value.KindInt:
		return enc.EncodeInt(v.Int())
	case value.KindUint:
		return enc.EncodeUint(v.Uint())
	case value.KindFloat32:
		return enc.EncodeFloat32(v.Float32())
	case value.KindFloat64:
		return enc.EncodeFloat64(v.Float64())
	case value.KindString:
		return enc.EncodeString(v.Str())
	case value.KindBinary:
		return enc.EncodeBytes(v.Bin())
	case value.KindArray:
		if err := enc.EncodeArrayLen(v.Len()); err != nil {
			return err
		}
		for _, el := range v.Items() {
			if err := packValue(enc, el); err != nil {
				return err
			}
		}
		return nil
	case value.KindMap:
		if err := enc.EncodeMapLen(v.Len()); err != nil {
			return err
		}
		for _, p := range v.Pairs() {
			if err := packValue(enc, p.Key); err != nil {
				return err
			}
			if err := packValue(enc, p.Val); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.InvalidData(errors.PhasePack, nil, "unknown value kind")
	}
}
