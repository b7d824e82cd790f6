package encoder

import (
	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

// MappingContainer is the key/value container front-end. Scalar sets write
// straight into the shared cell under the key's wire form; nested containers
// and super links reserve their key and merge in at finalization.
type MappingContainer struct {
	enc         *Encoder
	cell        *mappingCell
	pending     []pendingSlot
	superOpened bool
	finalized   bool
}

// Len returns the number of entries written directly so far. Reserved nested
// containers are not counted until the container finalizes.
func (m *MappingContainer) Len() int {
	return m.cell.len()
}

func (m *MappingContainer) setScalar(k Key, v value.Value) {
	m.enc.assertCanProceed()
	m.cell.set(k.wireValue(), v)
}

func (m *MappingContainer) SetNil(k Key) { m.setScalar(k, value.Nil()) }
func (m *MappingContainer) SetBool(k Key, b bool) { m.setScalar(k, value.Bool(b)) }
func (m *MappingContainer) SetInt(k Key, n int64) { m.setScalar(k, value.Int(n)) }
func (m *MappingContainer) SetUint(k Key, u uint64) { m.setScalar(k, uintValue(u)) }
func (m *MappingContainer) SetFloat32(k Key, f float32) { m.setScalar(k, value.Float32(f)) }
func (m *MappingContainer) SetFloat64(k Key, f float64) { m.setScalar(k, value.Float64(f)) }
func (m *MappingContainer) SetString(k Key, s string) { m.setScalar(k, value.String(s)) }
func (m *MappingContainer) SetBinary(k Key, b []byte) { m.setScalar(k, value.Binary(b)) }

// Set encodes v through the generic path and stores the result under k.
// Nested Encodable values are encoded into a detached sub-tree first; a
// nested value that produces no representation fails the whole encode.
func (m *MappingContainer) Set(k Key, v any) error {
	m.enc.assertCanProceed()
	return m.enc.scoped(keySeg(k.String()), func() error {
		val, err := m.enc.encodeGeneric(v)
		if err != nil {
			return err
		}
		m.cell.set(k.wireValue(), val)
		return nil
	})
}

// OpenNestedSequence reserves key k for a sequence written out of line. The
// returned container shares this container's encoder but writes into a fresh
// cell; its content merges in at finalization.
func (m *MappingContainer) OpenNestedSequence(k Key) *SequenceContainer {
	m.enc.assertCanProceed()
	child := &SequenceContainer{enc: m.enc, cell: &sequenceCell{}}
	m.pending = append(m.pending, pendingSlot{key: k, childSeq: child})
	return child
}

// OpenNestedMapping reserves key k for a mapping written out of line.
func (m *MappingContainer) OpenNestedMapping(k Key) *MappingContainer {
	m.enc.assertCanProceed()
	child := &MappingContainer{enc: m.enc, cell: &mappingCell{}}
	m.pending = append(m.pending, pendingSlot{key: k, childMap: child})
	return child
}

// OpenSuperLink reserves the distinguished "super" key for the value's super
// payload and returns the referencing encoder that will produce it.
func (m *MappingContainer) OpenSuperLink() *Encoder {
	return m.openSuper(superKey, superSeg())
}

// OpenSuperLinkForKey is OpenSuperLink with an explicit key.
func (m *MappingContainer) OpenSuperLinkForKey(k Key) *Encoder {
	return m.openSuper(k, keySeg(k.String()))
}

func (m *MappingContainer) openSuper(k Key, target segment) *Encoder {
	m.enc.assertCanProceed()
	if m.superOpened {
		panic(errors.UsageFault(m.enc.path.strings(), "super link already requested on this container"))
	}
	m.superOpened = true
	ref := newSuperRef(m.enc.cfg, target)
	m.pending = append(m.pending, pendingSlot{key: k, super: ref})
	return ref.enc
}

// finalize merges every reserved slot's value into the backing cell by key,
// children before parent. It runs exactly once; with nothing reserved it is
// a no-op.
func (m *MappingContainer) finalize() {
	if m.finalized {
		return
	}
	m.finalized = true
	for i := range m.pending {
		p := &m.pending[i]
		m.cell.set(p.key.wireValue(), p.resolve())
	}
}
