package stats

import "gonum.org/v1/gonum/mathext"

// BetaIntegrator computes the probability mass of the Beta(k+1, n-k+1)
// posterior between x and y, i.e. the integral over [x,y] of the density
// proportional to t^k (1-t)^(n-k). It must be normalized so that the
// integral over [0,1] is 1.
type BetaIntegrator func(x, y float64, k, n int) float64

// BetaAB is the default integrator, built on the regularized incomplete
// beta function I_x(a,b) with a = k+1, b = n-k+1.
func BetaAB(x, y float64, k, n int) float64 {
	a := float64(k + 1)
	b := float64(n - k + 1)
	return regIncBeta(a, b, y) - regIncBeta(a, b, x)
}

func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0.0
	}
	if x >= 1 {
		return 1.0
	}
	return mathext.RegIncBeta(a, b, x)
}
