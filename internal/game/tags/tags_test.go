package tags

import "testing"

func TestTagsSetAndCopy(t *testing.T) {
	ts := Tags{}
	ts.Set(TurnsInPlay, 2)
	if ts.Add(TurnsInPlay, 1) != 3 {
		t.Fatalf("expected 3, got %d", ts.Get(TurnsInPlay))
	}

	cp := ts.Copy()
	cp.Add(TurnsInPlay, 5)
	if ts.Get(TurnsInPlay) != 3 {
		t.Fatalf("copy mutated original: %d", ts.Get(TurnsInPlay))
	}

	ts.Set(TurnsInPlay, 0)
	if ts.Has(TurnsInPlay) || len(ts) != 0 {
		t.Fatalf("expected zero value to remove tag")
	}
}

func TestTagsKeysSorted(t *testing.T) {
	ts := Tags{"zeta": 1, "alpha": 2, Generated: 1}
	keys := ts.Keys()
	if len(keys) != 3 || keys[0] != "alpha" || keys[1] != Generated || keys[2] != "zeta" {
		t.Fatalf("unexpected key order %v", keys)
	}
}
