// Package config holds the run configuration for graphsum. Values come
// from defaults, then an optional YAML file, then the environment; the
// command line applies flags last.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultWorkers  = 4
	DefaultLogLevel = "info"
)

// Environment variables read by ApplyEnv
const (
	EnvWorkers       = "GRAPHSUM_WORKERS"
	EnvQueueCapacity = "GRAPHSUM_QUEUE_CAPACITY"
	EnvRoot          = "GRAPHSUM_ROOT"
	EnvMetricsOut    = "GRAPHSUM_METRICS_OUT"
	EnvLogLevel      = "LOG_LEVEL"
)

// ErrInvalidConfig is wrapped by every error Load, ApplyEnv and Validate return
var ErrInvalidConfig = errors.New("invalid configuration")

// Config controls one graphsum run
type Config struct {
	// Workers is the number of pool goroutines
	Workers int `yaml:"workers" validate:"min=1,max=65536"`

	// QueueCapacity bounds the task queue; 0 means unbounded
	QueueCapacity int `yaml:"queue_capacity" validate:"min=0"`

	// Root is the node the traversal starts from
	Root int `yaml:"root" validate:"min=0"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn warning error"`

	// MetricsOut is a file the Prometheus text exposition is written to
	// after the run. Empty disables it.
	MetricsOut string `yaml:"metrics_out" validate:"omitempty,filepath"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Workers:  DefaultWorkers,
		LogLevel: DefaultLogLevel,
	}
}

// Load returns the defaults overlaid with the YAML file at path. Keys
// missing from the file keep their default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any set environment variables
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWorkers, &c.Workers},
		{EnvQueueCapacity, &c.QueueCapacity},
		{EnvRoot, &c.Root},
	}
	for _, v := range ints {
		raw, ok := lookup(v.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.name, raw)
		}
		*v.dst = n
	}

	if raw, ok := lookup(EnvLogLevel); ok && raw != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(raw))
	}
	if raw, ok := lookup(EnvMetricsOut); ok && raw != "" {
		c.MetricsOut = raw
	}
	return nil
}
