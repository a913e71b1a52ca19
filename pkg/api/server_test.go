package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/report"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
)

type stubService struct {
	calc *stats.Calculator
}

func (s stubService) Interval(k, n int, conflevel float64) (stats.Result, error) {
	return s.calc.EfficiencyCI(k, n, conflevel)
}

func (s stubService) Report(pass, total []int, conflevel float64) ([]report.EfficiencyPoint, error) {
	return report.Divide(s.calc, pass, total, conflevel)
}

func (s stubService) DefaultConflevel() float64 { return 0.6827 }

func newTestServer() *Server {
	return New(stubService{calc: stats.NewCalculator()}, "/metrics", "/healthz")
}

func TestIntervalEndpoint(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/interval?k=2&n=10&conflevel=0.6827", nil)
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res stats.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !(0 <= res.Low && res.Low < res.High && res.High <= 1) {
		t.Fatalf("bad interval: %+v", res)
	}
	if res.Mode != 0.2 {
		t.Fatalf("mode=%v want 0.2", res.Mode)
	}
}

func TestIntervalDefaultsConflevel(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/interval?k=0&n=0", nil)
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res stats.Result
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Mode != 0.5 || res.Low != 0.0 || res.High != 1.0 {
		t.Fatalf("n=0 should return the prior: %+v", res)
	}
}

func TestIntervalRejectsInvalid(t *testing.T) {
	srv := newTestServer()
	for _, target := range []string{
		"/api/v1/interval?k=a&n=10",
		"/api/v1/interval?k=2&n=10&conflevel=zzz",
		"/api/v1/interval?k=11&n=10",
		"/api/v1/interval?k=2&n=10&conflevel=1.5",
	} {
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != 400 {
			t.Fatalf("%s: status %d want 400", target, rec.Code)
		}
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := newTestServer()
	body := `{"pass":[0,3,5],"total":[4,9,5],"conflevel":0.6827}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/report", strings.NewReader(body))
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Conflevel float64                  `json:"conflevel"`
		Points    []report.EfficiencyPoint `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(res.Points) != 3 {
		t.Fatalf("want 3 points, got %d", len(res.Points))
	}
}

func TestReportRejectsGet(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/report", nil))
	if rec.Code != 405 {
		t.Fatalf("status %d want 405", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}
}
