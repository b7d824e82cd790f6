package encoder

import (
	"sort"

	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

// pendingSlot is a reserved position in a container whose value arrives when
// the nested container or super link it belongs to finalizes. Sequence
// containers reserve by index, mapping containers by key.
type pendingSlot struct {
	index    int
	key      Key
	childSeq *SequenceContainer
	childMap *MappingContainer
	super    *superRef
}

// resolve finalizes the slot's child (children before parents) and returns
// the value to splice in.
func (p *pendingSlot) resolve() value.Value {
	switch {
	case p.childSeq != nil:
		p.childSeq.finalize()
		return value.Array(p.childSeq.cell.items)
	case p.childMap != nil:
		p.childMap.finalize()
		return value.Map(p.childMap.cell.pairs)
	default:
		return p.super.commit()
	}
}

type indexedValue struct {
	index int
	val   value.Value
}

// SequenceContainer is the ordered container front-end. Scalar appends write
// straight into the shared cell; nested containers and super links reserve a
// slot and are spliced in when the container finalizes, so elements land at
// the position they were requested at regardless of completion order.
type SequenceContainer struct {
	enc         *Encoder
	cell        *sequenceCell
	pending     []pendingSlot
	superOpened bool
	finalized   bool
}

// Len returns the number of elements written directly so far. Reserved
// nested containers are not counted until the container finalizes.
func (s *SequenceContainer) Len() int {
	return s.cell.len()
}

func (s *SequenceContainer) appendScalar(v value.Value) {
	s.enc.assertCanProceed()
	s.cell.append(v)
}

func (s *SequenceContainer) AppendNil() { s.appendScalar(value.Nil()) }
func (s *SequenceContainer) AppendBool(b bool) { s.appendScalar(value.Bool(b)) }
func (s *SequenceContainer) AppendInt(n int64) { s.appendScalar(value.Int(n)) }
func (s *SequenceContainer) AppendUint(u uint64) { s.appendScalar(uintValue(u)) }
func (s *SequenceContainer) AppendFloat32(f float32) { s.appendScalar(value.Float32(f)) }
func (s *SequenceContainer) AppendFloat64(f float64) { s.appendScalar(value.Float64(f)) }
func (s *SequenceContainer) AppendString(str string) { s.appendScalar(value.String(str)) }
func (s *SequenceContainer) AppendBinary(b []byte) { s.appendScalar(value.Binary(b)) }

// Append encodes v through the generic path and appends the result. Nested
// Encodable values are encoded into a detached sub-tree first; a nested
// value that produces no representation fails the whole encode.
func (s *SequenceContainer) Append(v any) error {
	s.enc.assertCanProceed()
	return s.enc.scoped(indexSeg(s.cell.len()), func() error {
		val, err := s.enc.encodeGeneric(v)
		if err != nil {
			return err
		}
		s.cell.append(val)
		return nil
	})
}

// nextReservedIndex is the prospective final position of the next reserved
// slot: open-but-unflushed children each hold one position past the current
// length.
func (s *SequenceContainer) nextReservedIndex() int {
	return s.cell.len() + len(s.pending)
}

// OpenNestedSequence reserves the next position for a sequence written out
// of line. The returned container shares this container's encoder but writes
// into a fresh cell; its content is spliced in at finalization.
func (s *SequenceContainer) OpenNestedSequence() *SequenceContainer {
	s.enc.assertCanProceed()
	child := &SequenceContainer{enc: s.enc, cell: &sequenceCell{}}
	s.pending = append(s.pending, pendingSlot{index: s.nextReservedIndex(), childSeq: child})
	return child
}

// OpenNestedMapping reserves the next position for a mapping written out of
// line.
func (s *SequenceContainer) OpenNestedMapping() *MappingContainer {
	s.enc.assertCanProceed()
	child := &MappingContainer{enc: s.enc, cell: &mappingCell{}}
	s.pending = append(s.pending, pendingSlot{index: s.nextReservedIndex(), childMap: child})
	return child
}

// OpenSuperLink reserves the next position for the value's super payload and
// returns the referencing encoder that will produce it. At most one super
// link may be requested per container.
func (s *SequenceContainer) OpenSuperLink() *Encoder {
	s.enc.assertCanProceed()
	if s.superOpened {
		panic(errors.UsageFault(s.enc.path.strings(), "super link already requested on this container"))
	}
	s.superOpened = true
	idx := s.nextReservedIndex()
	ref := newSuperRef(s.enc.cfg, indexSeg(idx))
	s.pending = append(s.pending, pendingSlot{index: idx, super: ref})
	return ref.enc
}

// finalize splices every reserved slot's value into the backing cell,
// ascending by reserved index, children before parent. It runs exactly once;
// with nothing reserved it is a no-op.
func (s *SequenceContainer) finalize() {
	if s.finalized {
		return
	}
	s.finalized = true
	if len(s.pending) == 0 {
		return
	}

	resolved := make([]indexedValue, 0, len(s.pending))
	for i := range s.pending {
		p := &s.pending[i]
		resolved = append(resolved, indexedValue{p.index, p.resolve()})
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].index < resolved[j].index
	})
	for _, r := range resolved {
		s.cell.insert(r.index, r.val)
	}
}
