// Package config provides configuration for the repool bench and inspection
// tooling. Files are loaded through viper, so YAML, JSON and environment
// overrides (prefix REPOOL_) all work; the effective configuration can be
// dumped back as YAML.
package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/repool/repool/pkg/errors"
)

// Config is the root configuration for the bench tool.
type Config struct {
	// Name identifies the run in logs and reports
	Name string `yaml:"name" json:"name" mapstructure:"name"`

	Pool          PoolConfig          `yaml:"pool" json:"pool" mapstructure:"pool"`
	Workload      WorkloadConfig      `yaml:"workload" json:"workload" mapstructure:"workload"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability" mapstructure:"observability"`
}

// PoolConfig controls how the exercised pool is constructed.
type PoolConfig struct {
	// Checks enables ownership checking (the poolcheck build-tag default
	// still applies when unset in the file but set at build time)
	Checks bool `yaml:"checks" json:"checks" mapstructure:"checks"`
}

// WorkloadConfig shapes the synthetic borrow/return traffic.
type WorkloadConfig struct {
	// Workers is the number of concurrent goroutines
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
	// Duration bounds the run
	Duration time.Duration `yaml:"duration" json:"duration" mapstructure:"duration"`
	// SliceLength is the exact length used for slice traffic
	SliceLength int `yaml:"slice_length" json:"slice_length" mapstructure:"slice_length"`
	// BufferSize is the request size for buffer-pool traffic
	BufferSize int `yaml:"buffer_size" json:"buffer_size" mapstructure:"buffer_size"`
}

// ObservabilityConfig controls logging and the optional metrics endpoint.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	LogEncoding string `yaml:"log_encoding" json:"log_encoding" mapstructure:"log_encoding"`
	// MetricsAddr serves Prometheus metrics when non-empty, e.g. ":9091"
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr" mapstructure:"metrics_addr"`
}

// NewDefault returns a runnable default configuration.
func NewDefault() *Config {
	return &Config{
		Name: "repool-bench",
		Workload: WorkloadConfig{
			Workers:     runtime.NumCPU(),
			Duration:    10 * time.Second,
			SliceLength: 64,
			BufferSize:  4096,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogEncoding: "json",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Workload.Workers <= 0 {
		return errors.New(errors.ErrorTypeValidation, "workload.workers must be positive").
			WithDetail("workers", c.Workload.Workers)
	}
	if c.Workload.Duration <= 0 {
		return errors.New(errors.ErrorTypeValidation, "workload.duration must be positive").
			WithDetail("duration", c.Workload.Duration.String())
	}
	if c.Workload.SliceLength <= 0 {
		return errors.New(errors.ErrorTypeValidation, "workload.slice_length must be positive").
			WithDetail("slice_length", c.Workload.SliceLength)
	}
	if c.Workload.BufferSize <= 0 {
		return errors.New(errors.ErrorTypeValidation, "workload.buffer_size must be positive").
			WithDetail("buffer_size", c.Workload.BufferSize)
	}
	switch c.Observability.LogEncoding {
	case "json", "console":
	default:
		return errors.New(errors.ErrorTypeValidation, "observability.log_encoding must be json or console").
			WithDetail("log_encoding", c.Observability.LogEncoding)
	}
	return nil
}

// Load reads path on top of the defaults and applies REPOOL_* environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file")
		}
	}

	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to render config")
	}
	return out, nil
}
