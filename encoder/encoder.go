package encoder

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

// Encodable is the value description protocol: a type describes its own
// shape by requesting exactly one container from the encoder and writing
// into it.
type Encodable interface {
	EncodeMsgpack(enc *Encoder) error
}

// Encoder is one node of the recursive encode. It owns exactly one container
// state, tracks its position in the value tree, and shares configuration
// with every sub-encoder it spawns. Encoders are short-lived: one per encode
// call and one per detached sub-encode.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	cfg  *config
	path *pathTracker
	base int // expected path depth while no failure is pending

	state containerState

	requestedSingle bool
	seqFront        *SequenceContainer
	mapFront        *MappingContainer
}

func newEncoder(cfg *config) *Encoder {
	return &Encoder{cfg: cfg, path: &pathTracker{}}
}

// UserContext returns the opaque side-channel configured with
// WithUserContext. It is shared, unchanged, with every nested encoder.
// Callers must treat it as read-only.
func (e *Encoder) UserContext() map[string]any {
	return e.cfg.userCtx
}

// assertCanProceed panics if a failed operation left a segment on the path.
// An encoder whose path carries an unflushed failure must not be used again.
func (e *Encoder) assertCanProceed() {
	if e.path.depth() != e.base {
		panic(errors.UsageFault(e.path.strings(), "cannot continue after an unhandled encoding failure"))
	}
}

// Sequence requests the ordered sequence container. At most one container
// may be requested per encoder; a second request is a usage fault.
func (e *Encoder) Sequence() *SequenceContainer {
	e.assertCanProceed()
	if e.requestedSingle {
		panic(errors.UsageFault(e.path.strings(), "single-value container already requested"))
	}
	if e.state.kind != stateUnset {
		panic(errors.UsageFault(e.path.strings(), "container already requested: encoder holds a %s", e.state.kind))
	}
	cell := &sequenceCell{}
	e.state = containerState{kind: stateSequence, seq: cell}
	e.seqFront = &SequenceContainer{enc: e, cell: cell}
	return e.seqFront
}

// Mapping requests the key/value mapping container. At most one container
// may be requested per encoder; a second request is a usage fault.
func (e *Encoder) Mapping() *MappingContainer {
	e.assertCanProceed()
	if e.requestedSingle {
		panic(errors.UsageFault(e.path.strings(), "single-value container already requested"))
	}
	if e.state.kind != stateUnset {
		panic(errors.UsageFault(e.path.strings(), "container already requested: encoder holds a %s", e.state.kind))
	}
	cell := &mappingCell{}
	e.state = containerState{kind: stateMapping, mp: cell}
	e.mapFront = &MappingContainer{enc: e, cell: cell}
	return e.mapFront
}

// SingleValue requests the single-value container. The container accepts
// exactly one write; requesting it twice is a usage fault.
func (e *Encoder) SingleValue() *SingleValueContainer {
	e.assertCanProceed()
	if e.requestedSingle {
		panic(errors.UsageFault(e.path.strings(), "single-value container already requested"))
	}
	if e.state.kind == stateSequence || e.state.kind == stateMapping {
		panic(errors.UsageFault(e.path.strings(), "container already requested: encoder holds a %s", e.state.kind))
	}
	e.requestedSingle = true
	return &SingleValueContainer{enc: e}
}

// setSingle binds v as the encoder's single value. The one-shot container
// state transition makes a second write a usage fault.
func (e *Encoder) setSingle(v value.Value) {
	e.assertCanProceed()
	if e.state.kind != stateUnset {
		panic(errors.UsageFault(e.path.strings(), "encoder already holds a %s", e.state.kind))
	}
	e.state = containerState{kind: stateSingle, single: v}
}

// scoped runs fn with seg pushed on the path. On failure the segment stays
// behind, marking the branch aborted, and the error is prefixed with it.
func (e *Encoder) scoped(seg segment, fn func() error) error {
	err := e.path.withPushed(seg, fn)
	if err != nil {
		if cerr, ok := err.(*errors.Error); ok {
			return cerr.WithPathPrefix([]string{seg.String()})
		}
	}
	return err
}

// describe asks v to describe itself into this encoder. Foreign errors from
// the value's own code are wrapped so the caller always sees a typed error.
func (e *Encoder) describe(v Encodable) error {
	if err := v.EncodeMsgpack(e); err != nil {
		if _, ok := err.(*errors.Error); ok {
			return err
		}
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "value description failed")
	}
	return nil
}

// finish finalizes the container this encoder handed out, after the value's
// self-description has returned. Children finalize before parents.
func (e *Encoder) finish() {
	e.assertCanProceed()
	if e.seqFront != nil {
		e.seqFront.finalize()
	}
	if e.mapFront != nil {
		e.mapFront.finalize()
	}
}

// encodeDetached encodes v into a fresh encoder sharing configuration but
// with its own empty state and path, and returns the resulting state. Used
// whenever a nested element needs an independent sub-tree before being
// folded into the caller's storage.
func (e *Encoder) encodeDetached(v Encodable) (containerState, error) {
	child := newEncoder(e.cfg)
	if err := child.describe(v); err != nil {
		return containerState{}, err
	}
	child.finish()
	return child.state, nil
}

// encodeGeneric converts an arbitrary value to its canonical form. The
// special-case list (timestamps, URLs, raw bytes) is closed and checked
// before native scalars and the Encodable protocol; it is a compatibility
// shim, not an extension point.
func (e *Encoder) encodeGeneric(v any) (value.Value, error) {
	switch t := v.(type) {
	case nil:
		return value.Nil(), nil
	case time.Time:
		return e.encodeTime(t)
	case *url.URL:
		return value.String(t.String()), nil
	case url.URL:
		return value.String(t.String()), nil
	case []byte:
		return value.Binary(t), nil
	}

	if val, ok := nativeScalar(v); ok {
		return val, nil
	}

	enc, ok := v.(Encodable)
	if !ok {
		return value.Value{}, errors.Unencodable(nil, fmt.Sprintf("%T", v))
	}
	st, err := e.encodeDetached(enc)
	if err != nil {
		return value.Value{}, err
	}
	val, resolved := st.resolve()
	if !resolved {
		return value.Value{}, errors.NoRepresentation(nil, fmt.Sprintf("%T", v))
	}
	return val, nil
}

// encodeRoot encodes a top-level value. Unlike nested elements, an Encodable
// at the root describes itself directly into this encoder rather than into a
// detached child.
func (e *Encoder) encodeRoot(v any) (value.Value, error) {
	switch v.(type) {
	case nil, time.Time, *url.URL, url.URL, []byte:
		return e.encodeGeneric(v)
	}
	if _, ok := nativeScalar(v); ok {
		return e.encodeGeneric(v)
	}

	enc, ok := v.(Encodable)
	if !ok {
		return value.Value{}, errors.Unencodable(nil, fmt.Sprintf("%T", v))
	}
	if err := e.describe(enc); err != nil {
		return value.Value{}, err
	}
	e.finish()
	val, resolved := e.state.resolve()
	if !resolved {
		return value.Value{}, errors.NoRepresentation(nil, fmt.Sprintf("%T", v))
	}
	return val, nil
}

func (e *Encoder) encodeTime(t time.Time) (value.Value, error) {
	switch e.cfg.timeStrategy {
	case TimeISO8601:
		return value.String(t.Format(time.RFC3339Nano)), nil
	case TimeUnixSeconds:
		return value.Int(t.Unix()), nil
	case TimeUnixMilli:
		return value.Int(t.UnixMilli()), nil
	case TimeLayout:
		if e.cfg.timeLayout == "" {
			return value.Value{}, errors.Capability("time layout strategy selected without a layout")
		}
		return value.String(t.Format(e.cfg.timeLayout)), nil
	case TimeCustom:
		if e.cfg.timeFunc == nil {
			return value.Value{}, errors.Capability("custom time strategy selected without a transform")
		}
		repl, err := e.cfg.timeFunc(t)
		if err != nil {
			return value.Value{}, errors.TimeEncoding(nil, err)
		}
		return e.encodeGeneric(repl)
	default: // TimeDeferred
		return value.Float64(float64(t.UnixNano()) / float64(time.Second)), nil
	}
}

// nativeScalar wraps Go primitives the codec encodes without the protocol.
func nativeScalar(v any) (value.Value, bool) {
	switch t := v.(type) {
	case value.Value:
		return t, true
	case bool:
		return value.Bool(t), true
	case string:
		return value.String(t), true
	case int:
		return value.Int(int64(t)), true
	case int8:
		return value.Int(int64(t)), true
	case int16:
		return value.Int(int64(t)), true
	case int32:
		return value.Int(int64(t)), true
	case int64:
		return value.Int(t), true
	case uint:
		return uintValue(uint64(t)), true
	case uint8:
		return value.Int(int64(t)), true
	case uint16:
		return value.Int(int64(t)), true
	case uint32:
		return value.Int(int64(t)), true
	case uint64:
		return uintValue(t), true
	case float32:
		return value.Float32(t), true
	case float64:
		return value.Float64(t), true
	default:
		return value.Value{}, false
	}
}

// uintValue applies the canonical narrowing rule: unsigned values that fit a
// signed 64-bit integer use the int form, larger ones keep the uint tag.
func uintValue(u uint64) value.Value {
	if u > math.MaxInt64 {
		return value.Uint(u)
	}
	return value.Int(int64(u))
}
