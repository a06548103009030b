package liberty

import "testing"

func TestWireloadLengthExtrapolatesBeyondTable(t *testing.T) {
	w := NewWireload("avg", 0.5, 0.1, 2.0)
	w.SetFanoutLength(1, 0.5)
	w.SetFanoutLength(2, 1.2)

	if got := w.Length(2); got != 1.2 {
		t.Errorf("Length(2) = %v, want 1.2", got)
	}
	if got := w.Length(5); got != 10.0 {
		t.Errorf("Length(5) = %v, want fanout*slope = 10.0", got)
	}
}

func TestWireloadSelectionFindBelowMinUsesFirstBucket(t *testing.T) {
	sel := NewWireloadSelection("wlm")
	small := NewWireload("small", 0.1, 0.01, 1.0)
	medium := NewWireload("medium", 0.2, 0.02, 1.0)
	sel.AddRange(0, 100, small)
	sel.AddRange(100, 1000, medium)

	if got := sel.Find(-5); got != small {
		t.Fatal("expected the first bucket for an area below the lowest minimum")
	}
}

func TestWireloadSelectionFindInRange(t *testing.T) {
	sel := NewWireloadSelection("wlm")
	small := NewWireload("small", 0.1, 0.01, 1.0)
	medium := NewWireload("medium", 0.2, 0.02, 1.0)
	sel.AddRange(0, 100, small)
	sel.AddRange(100, 1000, medium)

	if got := sel.Find(50); got != small {
		t.Errorf("Find(50) = %v, want small", got.Name())
	}
	if got := sel.Find(500); got != medium {
		t.Errorf("Find(500) = %v, want medium", got.Name())
	}
}

func TestWireloadSelectionFindAboveMaxUsesLastBucket(t *testing.T) {
	sel := NewWireloadSelection("wlm")
	small := NewWireload("small", 0.1, 0.01, 1.0)
	big := NewWireload("big", 0.3, 0.03, 1.0)
	sel.AddRange(0, 100, small)
	sel.AddRange(100, 1000, big)

	if got := sel.Find(5000); got != big {
		t.Fatal("expected the last bucket for an area above the highest maximum")
	}
}

func TestWireloadSelectionFindEmptySelection(t *testing.T) {
	sel := NewWireloadSelection("empty")
	if got := sel.Find(10); got != nil {
		t.Fatalf("Find() on an empty selection = %v, want nil", got)
	}
}
