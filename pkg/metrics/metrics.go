package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	IntervalsComputed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "effci_intervals_total", Help: "Intervals computed, by dispatch case",
	}, []string{"case"})
	NonConverged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "effci_nonconverged_total", Help: "Minimizer iteration-cap exhaustions",
	})
	InvalidRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "effci_invalid_requests_total", Help: "Requests rejected for invalid arguments",
	})
	ComputeSeconds = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "effci_compute_seconds", Help: "Interval computation wall time",
	})
	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "effci_cache_lookups_total", Help: "Interval cache lookups",
	}, []string{"result"})
)

func MustRegister() {
	prometheus.MustRegister(IntervalsComputed, NonConverged, InvalidRequests, ComputeSeconds, CacheLookups)
}

// Case labels for IntervalsComputed.
const (
	CasePrior   = "prior"
	CaseKZero   = "k_zero"
	CaseKFull   = "k_full"
	CaseGeneral = "general"
)

// CaseFor maps trial counts onto the dispatch-case label.
func CaseFor(k, n int) string {
	switch {
	case n == 0:
		return CasePrior
	case k == 0:
		return CaseKZero
	case k == n:
		return CaseKFull
	default:
		return CaseGeneral
	}
}
