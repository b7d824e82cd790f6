package encoder

import "github.com/wippyai/msgpack-codec/value"

// sequenceCell is the shared backing store of a sequence container. Every
// front-end wrapping it holds the same pointer, so a parent observes its
// children's writes in place.
type sequenceCell struct {
	items []value.Value
}

func (c *sequenceCell) append(v value.Value) {
	c.items = append(c.items, v)
}

func (c *sequenceCell) len() int {
	return len(c.items)
}

// insert splices v into the list at index i, shifting later elements. An
// index at or past the end appends.
func (c *sequenceCell) insert(i int, v value.Value) {
	if i >= len(c.items) {
		c.items = append(c.items, v)
		return
	}
	c.items = append(c.items, value.Value{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = v
}

// mappingCell is the shared backing store of a mapping container, keyed by
// the wire form of a coding key. Insertion order is kept so repeated encodes
// produce identical bytes.
type mappingCell struct {
	pairs []value.Pair
}

// set stores v under k, replacing an existing structurally equal key in
// place.
func (c *mappingCell) set(k, v value.Value) {
	for i, p := range c.pairs {
		if value.Equal(p.Key, k) {
			c.pairs[i].Val = v
			return
		}
	}
	c.pairs = append(c.pairs, value.Pair{Key: k, Val: v})
}

func (c *mappingCell) len() int {
	return len(c.pairs)
}
