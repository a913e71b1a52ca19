package stats

import (
	"math"
	"testing"
)

func TestBetaABNormalization(t *testing.T) {
	for _, tc := range []struct{ k, n int }{{0, 0}, {0, 5}, {5, 5}, {2, 10}, {50, 100}} {
		total := BetaAB(0, 1, tc.k, tc.n)
		if !almostEqual(total, 1.0, 1e-12) {
			t.Fatalf("k=%d n=%d: full mass=%v", tc.k, tc.n, total)
		}
	}
}

func TestSearchUpperClosedForm(t *testing.T) {
	c := 0.6827
	high, ok := searchUpper(BetaAB, 0.0, 0, 5, c)
	if !ok {
		t.Fatalf("expected a solution")
	}
	want := 1.0 - math.Pow(1.0-c, 1.0/6.0)
	if !almostEqual(high, want, 1e-9) {
		t.Fatalf("high=%v want %v", high, want)
	}
}

func TestSearchLowerClosedForm(t *testing.T) {
	c := 0.6827
	low, ok := searchLower(BetaAB, 1.0, 5, 5, c)
	if !ok {
		t.Fatalf("expected a solution")
	}
	want := math.Pow(1.0-c, 1.0/6.0)
	if !almostEqual(low, want, 1e-9) {
		t.Fatalf("low=%v want %v", low, want)
	}
}

func TestSearchInfeasible(t *testing.T) {
	// The [0.9, 1] tail of Beta(1,6) holds (1-0.9)^6, nowhere near 0.9.
	if _, ok := searchUpper(BetaAB, 0.9, 0, 5, 0.9); ok {
		t.Fatalf("expected infeasible upper search")
	}
	if _, ok := searchLower(BetaAB, 0.1, 5, 5, 0.9); ok {
		t.Fatalf("expected infeasible lower search")
	}
}

func TestSearchDegenerateFastPath(t *testing.T) {
	// When the anchor-to-edge mass equals c exactly, the search must
	// return the maximal edge without bisecting.
	c := BetaAB(0.2, 1.0, 2, 10)
	high, ok := searchUpper(BetaAB, 0.2, 2, 10, c)
	if !ok || high != 1.0 {
		t.Fatalf("want exact edge 1.0, got %v ok=%v", high, ok)
	}
	c = BetaAB(0.0, 0.7, 2, 10)
	low, ok := searchLower(BetaAB, 0.7, 2, 10, c)
	if !ok || low != 0.0 {
		t.Fatalf("want exact edge 0.0, got %v ok=%v", low, ok)
	}
}

func TestSearchRoundTrip(t *testing.T) {
	// An upper edge found from a lower anchor must bracket mass c.
	for _, tc := range []struct {
		low  float64
		k, n int
		c    float64
	}{
		{0.05, 2, 10, 0.6827}, {0.3, 7, 9, 0.5}, {0.0, 1, 3, 0.9},
	} {
		high, ok := searchUpper(BetaAB, tc.low, tc.k, tc.n, tc.c)
		if !ok {
			t.Fatalf("low=%v k=%d n=%d: expected a solution", tc.low, tc.k, tc.n)
		}
		mass := BetaAB(tc.low, high, tc.k, tc.n)
		if !almostEqual(mass, tc.c, 1e-9) {
			t.Fatalf("low=%v k=%d n=%d: mass=%v want %v", tc.low, tc.k, tc.n, mass, tc.c)
		}
	}
}
