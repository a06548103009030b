package units

import "testing"

func TestMinMaxCompare(t *testing.T) {
	if !Min().Compare(1.0, 2.0) {
		t.Fatal("min: 1.0 should be more extreme than 2.0")
	}
	if Min().Compare(2.0, 1.0) {
		t.Fatal("min: 2.0 should not be more extreme than 1.0")
	}
	if !Max().Compare(2.0, 1.0) {
		t.Fatal("max: 2.0 should be more extreme than 1.0")
	}
}

func TestMinMaxOpposite(t *testing.T) {
	if Min().Opposite() != Max() || Max().Opposite() != Min() {
		t.Fatal("opposite mismatch")
	}
}

func TestMinMaxAllMatches(t *testing.T) {
	if !MinMaxAllAll().Matches(Min()) || !MinMaxAllAll().Matches(Max()) {
		t.Fatal("all should match both")
	}
	if !MinMaxAllMin().Matches(Min()) || MinMaxAllMin().Matches(Max()) {
		t.Fatal("min should match only min")
	}
}

func TestWireloadTreeAndModeLookup(t *testing.T) {
	if FindWireloadTree("worst_case") != WireloadTreeWorstCase {
		t.Fatal("wireload tree lookup mismatch")
	}
	if FindWireloadTree("bogus") != WireloadTreeUnknown {
		t.Fatal("expected unknown for unrecognized wireload tree")
	}
	if FindWireloadMode("segmented") != WireloadModeSegmented {
		t.Fatal("wireload mode lookup mismatch")
	}
}
