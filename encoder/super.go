package encoder

import (
	"github.com/wippyai/msgpack-codec/errors"
	"github.com/wippyai/msgpack-codec/value"
)

// superRef binds a referencing encoder to its commit target in the container
// that spawned it. The encoder's path is pre-seeded with the target segment,
// so any push/pop imbalance inside it is visible at commit time.
type superRef struct {
	enc       *Encoder
	committed bool
}

func newSuperRef(cfg *config, target segment) *superRef {
	e := newEncoder(cfg)
	e.path.push(target)
	e.base = 1
	return &superRef{enc: e}
}

// commit finalizes the referencing encoder and yields its single produced
// value for the owner to splice in. Committing twice, committing after an
// unhandled failure, or committing with nothing produced is a usage fault.
func (r *superRef) commit() value.Value {
	if r.committed {
		panic(errors.UsageFault(r.enc.path.strings(), "super encoder committed twice"))
	}
	r.committed = true
	r.enc.finish()
	v, ok := r.enc.state.resolve()
	if !ok {
		panic(errors.UsageFault(r.enc.path.strings(), "super encoder produced no value"))
	}
	return v
}
