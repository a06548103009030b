package units

import "testing"

func TestTransitionCount(t *testing.T) {
	if len(allTransitions) != 12 {
		t.Fatalf("expected 12 concrete transitions, got %d", len(allTransitions))
	}
	seen := map[int]bool{}
	for _, tr := range allTransitions {
		if tr.SdfTripleIndex() < 0 || tr.SdfTripleIndex() > 11 {
			t.Fatalf("transition %s has out-of-range triple index %d", tr.Name(), tr.SdfTripleIndex())
		}
		seen[tr.SdfTripleIndex()] = true
	}
	if len(seen) != 12 {
		t.Fatalf("triple indices are not unique: %v", seen)
	}
}

func TestTransitionAsRiseFall(t *testing.T) {
	cases := []struct {
		name string
		want *RiseFall
	}{
		{"01", Rise()},
		{"10", Fall()},
		{"0Z", Rise()},
		{"Z1", Rise()},
		{"1Z", Fall()},
		{"Z0", Fall()},
		{"XZ", nil},
		{"ZX", nil},
		{"rise_fall", nil},
	}
	for _, tc := range cases {
		tr := FindTransition(tc.name)
		if tr == nil {
			t.Fatalf("transition %q not found", tc.name)
		}
		if tr.AsRiseFall() != tc.want {
			t.Errorf("%s.AsRiseFall() = %v, want %v", tc.name, tr.AsRiseFall(), tc.want)
		}
	}
}

func TestTransitionMatchesWildcard(t *testing.T) {
	rf := TransitionRiseFall()
	if !rf.Matches(TransitionRise()) || !rf.Matches(TransitionFall()) {
		t.Fatal("rise_fall should match both rise and fall transitions")
	}
	if TransitionRise().Matches(TransitionFall()) {
		t.Fatal("rise should not match fall")
	}
}

func TestFromRiseFall(t *testing.T) {
	if FromRiseFall(Rise()) != TransitionRise() {
		t.Fatal("FromRiseFall(Rise) mismatch")
	}
	if FromRiseFall(Fall()) != TransitionFall() {
		t.Fatal("FromRiseFall(Fall) mismatch")
	}
}
