package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/api"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/config"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/logger"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/metrics"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/report"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/storage"
)

type Engine struct {
	cfg  *config.Config
	log  *logger.Logger
	calc *stats.Calculator
	db   *storage.DB // nil when caching is disabled
}

func NewEngine(cfg *config.Config, log *logger.Logger, db *storage.DB) *Engine {
	return &Engine{
		cfg:  cfg,
		log:  log,
		calc: stats.NewCalculator(stats.WithLogger(log)),
		db:   db,
	}
}

func (e *Engine) DefaultConflevel() float64 { return e.cfg.Interval.DefaultConflevel }

func (e *Engine) Interval(k, n int, conflevel float64) (stats.Result, error) {
	if e.db != nil {
		if rec, err := e.db.GetInterval(k, n, conflevel); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return stats.Result{Mode: rec.Mode, Low: rec.Low, High: rec.High, Converged: rec.Converged}, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	start := time.Now()
	res, err := e.calc.EfficiencyCI(k, n, conflevel)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidArgument) {
			metrics.InvalidRequests.Inc()
		}
		return stats.Result{}, err
	}
	metrics.ComputeSeconds.Observe(time.Since(start).Seconds())
	metrics.IntervalsComputed.WithLabelValues(metrics.CaseFor(k, n)).Inc()
	if !res.Converged {
		metrics.NonConverged.Inc()
	}
	if e.db != nil {
		if err := e.db.PutInterval(k, n, conflevel, res); err != nil {
			e.log.Warn("cache_put_failed", "err", err.Error())
		}
	}
	return res, nil
}

func (e *Engine) Report(pass, total []int, conflevel float64) ([]report.EfficiencyPoint, error) {
	pts, err := report.Divide(e.calc, pass, total, conflevel)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidArgument) {
			metrics.InvalidRequests.Inc()
		}
		return nil, err
	}
	for _, p := range pts {
		metrics.IntervalsComputed.WithLabelValues(metrics.CaseFor(p.K, p.N)).Inc()
		if !p.Converged {
			metrics.NonConverged.Inc()
		}
	}
	return pts, nil
}

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("config_load_error:", err.Error())
		os.Exit(2)
	}
	log := logger.New(cfg.Service.LogLevel)
	metrics.MustRegister()

	var db *storage.DB
	if cfg.Interval.CacheEnabled {
		db, err = storage.Open(filepath.Join(cfg.Service.DataDir, "effci.bolt"))
		if err != nil {
			log.Error("db_open", "err", err.Error())
			os.Exit(2)
		}
		defer db.Close()
	}

	eng := NewEngine(cfg, log, db)
	srv := api.New(eng, cfg.Service.MetricsPath, cfg.Service.HealthzPath)
	go func() {
		if err := srv.Start(cfg.Service.HTTPListen); err != nil {
			log.Error("api_start", "err", err.Error())
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log.Info("effcid_start", "listen", cfg.Service.HTTPListen,
		"default_conflevel", cfg.Interval.DefaultConflevel, "cache", cfg.Interval.CacheEnabled)
	<-ctx.Done()
	log.Info("effcid_stop")
}
