// Package report turns computed intervals into the asymmetric error-bar
// form used when plotting an efficiency measurement: a central value with
// separate downward and upward errors per point.
package report

import (
	"fmt"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
)

type EfficiencyPoint struct {
	K         int     `json:"k"`
	N         int     `json:"n"`
	Eff       float64 `json:"eff"`
	ErrLow    float64 `json:"err_low"`
	ErrHigh   float64 `json:"err_high"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Converged bool    `json:"converged"`
}

// Point computes one efficiency point with its asymmetric errors.
func Point(calc *stats.Calculator, k, n int, conflevel float64) (EfficiencyPoint, error) {
	r, err := calc.EfficiencyCI(k, n, conflevel)
	if err != nil {
		return EfficiencyPoint{}, err
	}
	return EfficiencyPoint{
		K: k, N: n,
		Eff:       r.Mode,
		ErrLow:    r.Mode - r.Low,
		ErrHigh:   r.High - r.Mode,
		Low:       r.Low,
		High:      r.High,
		Converged: r.Converged,
	}, nil
}

// Divide computes a point per (pass[i], total[i]) pair. Each pair is one
// independent interval computation; a failure on any pair aborts the batch.
func Divide(calc *stats.Calculator, pass, total []int, conflevel float64) ([]EfficiencyPoint, error) {
	if len(pass) != len(total) {
		return nil, fmt.Errorf("%w: pass and total lengths differ (%d vs %d)",
			stats.ErrInvalidArgument, len(pass), len(total))
	}
	out := make([]EfficiencyPoint, 0, len(pass))
	for i := range pass {
		p, err := Point(calc, pass[i], total[i], conflevel)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
