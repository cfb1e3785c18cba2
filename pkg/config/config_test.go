package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphsum.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.QueueCapacity != 0 || cfg.Root != 0 || cfg.MetricsOut != "" {
		t.Errorf("Default() = %+v, want zero optional fields", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "full file",
			content: "workers: 8\nqueue_capacity: 128\nroot: 3\nlog_level: debug\nmetrics_out: /tmp/graphsum.prom\n",
			want:    Config{Workers: 8, QueueCapacity: 128, Root: 3, LogLevel: "debug", MetricsOut: "/tmp/graphsum.prom"},
		},
		{
			name:    "partial file keeps defaults",
			content: "root: 2\n",
			want:    Config{Workers: DefaultWorkers, Root: 2, LogLevel: DefaultLogLevel},
		},
		{
			name:    "empty file",
			content: "",
			want:    Default(),
		},
		{
			name:    "unknown key",
			content: "threads: 4\n",
			wantErr: true,
		},
		{
			name:    "wrong type",
			content: "workers: many\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.content))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg != tt.want {
				t.Errorf("Load() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvWorkers:       "16",
		EnvQueueCapacity: " 32 ",
		EnvLogLevel:      "WARN",
		EnvMetricsOut:    "out.prom",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	want := Config{Workers: 16, QueueCapacity: 32, LogLevel: "warn", MetricsOut: "out.prom"}
	if cfg != want {
		t.Errorf("applyEnv() = %+v, want %+v", cfg, want)
	}
}

func TestApplyEnvRejectsNonInteger(t *testing.T) {
	t.Setenv(EnvWorkers, "four")

	cfg := Default()
	err := cfg.ApplyEnv()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalidConfig", err)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d after failed ApplyEnv, want unchanged", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"too many workers", func(c *Config) { c.Workers = 1 << 20 }, true},
		{"negative capacity", func(c *Config) { c.QueueCapacity = -1 }, true},
		{"bounded queue", func(c *Config) { c.QueueCapacity = 1 }, false},
		{"negative root", func(c *Config) { c.Root = -3 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"warning alias", func(c *Config) { c.LogLevel = "warning" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
