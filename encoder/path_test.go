package encoder

import (
	stderrors "errors"
	"testing"
)

func TestSegment_String(t *testing.T) {
	tests := []struct {
		name string
		seg  segment
		want string
	}{
		{"key", keySeg("name"), "name"},
		{"index", indexSeg(5), "[5]"},
		{"super", superSeg(), "super"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathTracker_WithPushed(t *testing.T) {
	tr := &pathTracker{}

	err := tr.withPushed(keySeg("a"), func() error {
		if tr.depth() != 1 {
			t.Errorf("depth inside work = %d, want 1", tr.depth())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withPushed: %v", err)
	}
	if tr.depth() != 0 {
		t.Errorf("depth after success = %d, want 0", tr.depth())
	}
}

func TestPathTracker_SegmentStaysOnFailure(t *testing.T) {
	tr := &pathTracker{}
	boom := stderrors.New("boom")

	err := tr.withPushed(indexSeg(2), func() error { return boom })
	if !stderrors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if tr.depth() != 1 {
		t.Errorf("depth after failure = %d, want 1 (segment left behind)", tr.depth())
	}
	if got := tr.strings(); len(got) != 1 || got[0] != "[2]" {
		t.Errorf("strings() = %v, want [[2]]", got)
	}
}

func TestPathTracker_NestedStrings(t *testing.T) {
	tr := &pathTracker{}
	tr.push(keySeg("user"))
	tr.push(indexSeg(0))
	tr.push(superSeg())

	got := tr.strings()
	want := []string{"user", "[0]", "super"}
	if len(got) != len(want) {
		t.Fatalf("strings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("strings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPathTracker_EmptyStrings(t *testing.T) {
	tr := &pathTracker{}
	if got := tr.strings(); got != nil {
		t.Errorf("strings() on empty tracker = %v, want nil", got)
	}
}
