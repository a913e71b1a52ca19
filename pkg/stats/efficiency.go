// Package stats computes Bayesian shortest central confidence intervals
// for binomial efficiency estimates: given k successes out of n trials it
// returns the posterior mode and the shortest [low, high] containing the
// requested probability mass under the Beta(k+1, n-k+1) posterior. This is
// the convention used to attach asymmetric error bars to efficiency
// measurements computed from counts.
package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by errors returned for out-of-contract
// inputs (k < 0, n < 0, k > n, conflevel outside (0,1)).
var ErrInvalidArgument = errors.New("invalid_argument")

const (
	brentTol = 1.0e-9

	// infeasibleLength is returned by the interval-length objective when
	// no interval of the requested mass starts at the candidate lower
	// edge. It exceeds any real length in [0,1], so the minimizer routes
	// away from infeasible edges.
	infeasibleLength = 2.0
)

// Result is one computed interval. Mode is the posterior mode k/n (0.5 by
// convention when n == 0). Converged is false when the minimizer hit its
// iteration cap; Low and High are then still the best found.
type Result struct {
	Mode      float64 `json:"mode"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Converged bool    `json:"converged"`
}

// Length returns High - Low.
func (r Result) Length() float64 { return r.High - r.Low }

// Logger is the subset of the project logger the calculator needs for its
// non-convergence diagnostic.
type Logger interface {
	Warn(msg string, fields ...any)
}

// Calculator computes intervals with an injectable beta-integral backend.
// The zero value is not usable; use NewCalculator. Calculators are safe
// for concurrent use: all per-computation state lives in the call.
type Calculator struct {
	integ BetaIntegrator
	log   Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithIntegrator replaces the default beta-integral primitive.
func WithIntegrator(integ BetaIntegrator) Option {
	return func(c *Calculator) { c.integ = integ }
}

// WithLogger routes the minimizer non-convergence diagnostic.
func WithLogger(log Logger) Option {
	return func(c *Calculator) { c.log = log }
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{integ: BetaAB}
	for _, o := range opts {
		o(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// EfficiencyCI computes the interval with the default calculator.
func EfficiencyCI(k, n int, conflevel float64) (Result, error) {
	return defaultCalculator.EfficiencyCI(k, n, conflevel)
}

// EfficiencyCI returns the posterior mode and the shortest interval
// containing conflevel of the Beta(k+1, n-k+1) posterior. The three
// boundary cases (n==0, k==0, k==n) bypass the minimizer; the general
// case minimizes interval length over the lower edge with Brent's method.
func (c *Calculator) EfficiencyCI(k, n int, conflevel float64) (Result, error) {
	if err := validate(k, n, conflevel); err != nil {
		return Result{}, err
	}

	// No entries: we know nothing, return the prior.
	if n == 0 {
		return Result{Mode: 0.5, Low: 0.0, High: 1.0, Converged: true}, nil
	}

	mode := float64(k) / float64(n)

	switch {
	case k == 0:
		high, _ := searchUpper(c.integ, 0.0, k, n, conflevel)
		return Result{Mode: mode, Low: 0.0, High: high, Converged: true}, nil
	case k == n:
		low, _ := searchLower(c.integ, 1.0, k, n, conflevel)
		return Result{Mode: mode, Low: low, High: 1.0, Converged: true}, nil
	}

	// General case. The objective closes over (k, n, conflevel) so
	// concurrent calls never observe each other's context.
	objective := func(low float64) float64 {
		high, ok := searchUpper(c.integ, low, k, n, conflevel)
		if !ok {
			return infeasibleLength
		}
		return high - low
	}
	low, length, converged := brent(0.0, 0.5, 1.0, brentTol, objective)
	if !converged && c.log != nil {
		c.log.Warn("brent_nonconverged", "k", k, "n", n, "conflevel", conflevel)
	}
	return Result{Mode: mode, Low: low, High: low + length, Converged: converged}, nil
}

func validate(k, n int, conflevel float64) error {
	if n < 0 {
		return fmt.Errorf("%w: n=%d must be non-negative", ErrInvalidArgument, n)
	}
	if k < 0 || k > n {
		return fmt.Errorf("%w: k=%d must be in [0, %d]", ErrInvalidArgument, k, n)
	}
	if conflevel <= 0 || conflevel >= 1 {
		return fmt.Errorf("%w: conflevel=%g must be in (0,1)", ErrInvalidArgument, conflevel)
	}
	return nil
}
