package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServiceCfg struct {
	HTTPListen  string `yaml:"http_listen"`
	MetricsPath string `yaml:"metrics_path"`
	HealthzPath string `yaml:"healthz_path"`
	LogLevel    string `yaml:"log_level"`
	DataDir     string `yaml:"data_dir"`
}

type IntervalCfg struct {
	DefaultConflevel float64 `yaml:"default_conflevel"`
	CacheEnabled     bool    `yaml:"cache_enabled"`
}

type Config struct {
	Service  ServiceCfg  `yaml:"service"`
	Interval IntervalCfg `yaml:"interval"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Service.HTTPListen == "" {
		c.Service.HTTPListen = ":8080"
	}
	if c.Service.MetricsPath == "" {
		c.Service.MetricsPath = "/metrics"
	}
	if c.Service.HealthzPath == "" {
		c.Service.HealthzPath = "/healthz"
	}
	if c.Service.LogLevel == "" {
		c.Service.LogLevel = "info"
	}
	if c.Service.DataDir == "" {
		c.Service.DataDir = "data"
	}
	if c.Interval.DefaultConflevel == 0 {
		// One-sigma content, the usual default for efficiency error bars.
		c.Interval.DefaultConflevel = 0.6827
	}
}

func (c *Config) validate() error {
	if c.Interval.DefaultConflevel <= 0 || c.Interval.DefaultConflevel >= 1 {
		return fmt.Errorf("default_conflevel %g out of (0,1)", c.Interval.DefaultConflevel)
	}
	return nil
}
