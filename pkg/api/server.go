package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/report"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
)

// Service is what the HTTP surface needs from the interval engine.
type Service interface {
	Interval(k, n int, conflevel float64) (stats.Result, error)
	Report(pass, total []int, conflevel float64) ([]report.EfficiencyPoint, error)
	DefaultConflevel() float64
}

type Server struct {
	Svc         Service
	MetricsPath string
	HealthzPath string
	reqInFlight atomic.Int64
}

func New(svc Service, metricsPath, healthzPath string) *Server {
	return &Server{Svc: svc, MetricsPath: metricsPath, HealthzPath: healthzPath}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.HealthzPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(s.MetricsPath, promhttp.Handler())

	mux.HandleFunc("/api/v1/interval", s.wrap(s.handleInterval))
	mux.HandleFunc("/api/v1/report", s.wrap(s.handleReport))
	return mux
}

func (s *Server) handleInterval(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	k, err := strconv.Atoi(q.Get("k"))
	if err != nil {
		sendJSON(w, 400, errMsg("bad k"))
		return
	}
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		sendJSON(w, 400, errMsg("bad n"))
		return
	}
	conflevel := s.Svc.DefaultConflevel()
	if raw := q.Get("conflevel"); raw != "" {
		conflevel, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			sendJSON(w, 400, errMsg("bad conflevel"))
			return
		}
	}
	res, err := s.Svc.Interval(k, n, conflevel)
	if err != nil {
		sendJSON(w, statusFor(err), errMsg(err.Error()))
		return
	}
	sendJSON(w, 200, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendJSON(w, 405, errMsg("method_not_allowed"))
		return
	}
	var req struct {
		Pass      []int    `json:"pass"`
		Total     []int    `json:"total"`
		Conflevel *float64 `json:"conflevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, 400, errMsg("bad_json"))
		return
	}
	conflevel := s.Svc.DefaultConflevel()
	if req.Conflevel != nil {
		conflevel = *req.Conflevel
	}
	pts, err := s.Svc.Report(req.Pass, req.Total, conflevel)
	if err != nil {
		sendJSON(w, statusFor(err), errMsg(err.Error()))
		return
	}
	sendJSON(w, 200, map[string]any{"conflevel": conflevel, "points": pts})
}

func statusFor(err error) int {
	if errors.Is(err, stats.ErrInvalidArgument) {
		return 400
	}
	return 500
}

func (s *Server) wrap(h func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reqInFlight.Add(1)
		defer s.reqInFlight.Add(-1)
		h(w, r)
	}
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Routes())
}

func sendJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errMsg(m string) map[string]any { return map[string]any{"ok": false, "error": m} }
