package stats

import "math"

const (
	searchMaxIter = 50
	searchTol     = 1e-15
)

// searchUpper finds high in [low, 1] such that the posterior mass on
// [low, high] equals c. The second return is false when no such edge
// exists, i.e. the mass of the whole [low, 1] tail is below c.
//
// The exact == fast path is deliberate: the degenerate full-interval
// solution is common (k=0 and k=N route through it) and an epsilon
// compare would silently change output.
func searchUpper(integ BetaIntegrator, low float64, k, n int, c float64) (float64, bool) {
	integral := integ(low, 1.0, k, n)
	if integral == c {
		return 1.0, true
	}
	if integral < c {
		return 0, false
	}
	tooLow := low
	tooHigh := 1.0
	test := tooHigh
	for i := 0; i < searchMaxIter; i++ {
		test = 0.5 * (tooLow + tooHigh)
		integral = integ(low, test, k, n)
		if integral > c {
			tooHigh = test
		} else {
			tooLow = test
		}
		if math.Abs(integral-c) <= searchTol {
			break
		}
	}
	return test, true
}

// searchLower is the mirror image: it finds low in [0, high] such that
// the posterior mass on [low, high] equals c.
func searchLower(integ BetaIntegrator, high float64, k, n int, c float64) (float64, bool) {
	integral := integ(0.0, high, k, n)
	if integral == c {
		return 0.0, true
	}
	if integral < c {
		return 0, false
	}
	tooLow := 0.0
	tooHigh := high
	test := tooLow
	for i := 0; i < searchMaxIter; i++ {
		test = 0.5 * (tooLow + tooHigh)
		integral = integ(test, high, k, n)
		if integral > c {
			tooLow = test
		} else {
			tooHigh = test
		}
		if math.Abs(integral-c) <= searchTol {
			break
		}
	}
	return test, true
}
