package encoder

import "github.com/wippyai/msgpack-codec/value"

type stateKind uint8

const (
	stateUnset stateKind = iota
	stateSingle
	stateSequence
	stateMapping
)

func (k stateKind) String() string {
	switch k {
	case stateSingle:
		return "single value"
	case stateSequence:
		return "sequence"
	case stateMapping:
		return "mapping"
	default:
		return "unset"
	}
}

// containerState is what one encoding node currently holds. It transitions
// from unset to exactly one populated variant and never changes again; the
// owning encoder enforces the one-shot transition.
type containerState struct {
	kind   stateKind
	single value.Value
	seq    *sequenceCell
	mp     *mappingCell
}

// resolve converts the state to its canonical value. The second result is
// false when no container was ever populated.
func (s *containerState) resolve() (value.Value, bool) {
	switch s.kind {
	case stateSingle:
		return s.single, true
	case stateSequence:
		return value.Array(s.seq.items), true
	case stateMapping:
		return value.Map(s.mp.pairs), true
	default:
		return value.Value{}, false
	}
}
