package encoder

import "strconv"

type segmentKind uint8

const (
	segKey segmentKind = iota
	segIndex
	segSuper
)

// segment is one step of the position in the value tree: a mapping key, a
// sequence index, or the distinguished super link marker.
type segment struct {
	key  string
	idx  int
	kind segmentKind
}

func keySeg(k string) segment { return segment{kind: segKey, key: k} }
func indexSeg(i int) segment { return segment{kind: segIndex, idx: i} }
func superSeg() segment { return segment{kind: segSuper} }

func (s segment) String() string {
	switch s.kind {
	case segIndex:
		return "[" + strconv.Itoa(s.idx) + "]"
	case segSuper:
		return "super"
	default:
		return s.key
	}
}

// pathTracker records where in the value tree the current operation is
// nested. Its length equals the recursion depth while no failure has
// occurred; a segment left behind after a failed operation marks the branch
// as aborted.
type pathTracker struct {
	segs []segment
}

func (t *pathTracker) push(s segment) {
	t.segs = append(t.segs, s)
}

func (t *pathTracker) pop() {
	t.segs = t.segs[:len(t.segs)-1]
}

func (t *pathTracker) depth() int {
	return len(t.segs)
}

// withPushed pushes seg, runs fn, and pops seg only if fn succeeds. On
// failure the segment stays behind so the owning encoder can detect the
// aborted branch.
func (t *pathTracker) withPushed(seg segment, fn func() error) error {
	t.push(seg)
	if err := fn(); err != nil {
		return err
	}
	t.pop()
	return nil
}

// strings renders the tracked path for diagnostics.
func (t *pathTracker) strings() []string {
	if len(t.segs) == 0 {
		return nil
	}
	out := make([]string, len(t.segs))
	for i, s := range t.segs {
		out[i] = s.String()
	}
	return out
}
