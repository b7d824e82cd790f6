package encoder

import (
	"testing"

	"github.com/wippyai/msgpack-codec/value"
)

func TestSequenceCell_Insert(t *testing.T) {
	tests := []struct {
		name   string
		seed   []int64
		index  int
		insert int64
		want   []int64
	}{
		{"front", []int64{1, 2}, 0, 9, []int64{9, 1, 2}},
		{"middle", []int64{1, 2}, 1, 9, []int64{1, 9, 2}},
		{"end", []int64{1, 2}, 2, 9, []int64{1, 2, 9}},
		{"past end appends", []int64{1}, 5, 9, []int64{1, 9}},
		{"empty", nil, 0, 9, []int64{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &sequenceCell{}
			for _, n := range tt.seed {
				c.append(value.Int(n))
			}
			c.insert(tt.index, value.Int(tt.insert))

			if c.len() != len(tt.want) {
				t.Fatalf("len = %d, want %d", c.len(), len(tt.want))
			}
			for i, n := range tt.want {
				if !value.Equal(c.items[i], value.Int(n)) {
					t.Errorf("items[%d] = %s, want %d", i, c.items[i], n)
				}
			}
		})
	}
}

func TestMappingCell_SetAndReplace(t *testing.T) {
	c := &mappingCell{}
	c.set(value.String("a"), value.Int(1))
	c.set(value.String("b"), value.Int(2))
	c.set(value.String("a"), value.Int(3))

	if c.len() != 2 {
		t.Fatalf("len = %d, want 2", c.len())
	}
	// Replacement keeps the original position.
	if !value.Equal(c.pairs[0].Key, value.String("a")) || !value.Equal(c.pairs[0].Val, value.Int(3)) {
		t.Errorf("pairs[0] = %s: %s, want a: 3", c.pairs[0].Key, c.pairs[0].Val)
	}
	if !value.Equal(c.pairs[1].Key, value.String("b")) {
		t.Errorf("pairs[1].Key = %s, want b", c.pairs[1].Key)
	}
}

func TestMappingCell_IntAndStringKeysDistinct(t *testing.T) {
	c := &mappingCell{}
	c.set(value.Int(1), value.String("int key"))
	c.set(value.String("1"), value.String("string key"))

	if c.len() != 2 {
		t.Errorf("len = %d, want 2: int 1 and string \"1\" are distinct keys", c.len())
	}
}

func TestContainerState_Resolve(t *testing.T) {
	var unset containerState
	if _, ok := unset.resolve(); ok {
		t.Error("unset state should not resolve")
	}

	single := containerState{kind: stateSingle, single: value.Int(7)}
	if v, ok := single.resolve(); !ok || !value.Equal(v, value.Int(7)) {
		t.Errorf("single resolve = %s, %v", v, ok)
	}

	seq := &sequenceCell{}
	seq.append(value.Int(1))
	seqState := containerState{kind: stateSequence, seq: seq}
	if v, ok := seqState.resolve(); !ok || !value.Equal(v, value.Array([]value.Value{value.Int(1)})) {
		t.Errorf("sequence resolve = %s, %v", v, ok)
	}

	mp := &mappingCell{}
	mp.set(value.String("k"), value.Bool(true))
	mapState := containerState{kind: stateMapping, mp: mp}
	want := value.Map([]value.Pair{{Key: value.String("k"), Val: value.Bool(true)}})
	if v, ok := mapState.resolve(); !ok || !value.Equal(v, want) {
		t.Errorf("mapping resolve = %s, %v", v, ok)
	}
}
