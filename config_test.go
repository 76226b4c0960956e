package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspect.yaml")
	data := `solver:
  max_nodes: 5000
  time_limit_ms: 250
  shortfall: strict
batch:
  workers: 3
heuristic:
  name: least-busy
  policy: per-job
paths:
  input: in.csv
  output: out.csv
verbose: true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Solver:    SolverConfig{MaxNodes: 5000, TimeLimitMs: 250, Shortfall: "strict"},
		Batch:     BatchConfig{Workers: 3},
		Heuristic: HeuristicConfig{Name: "least-busy", Policy: "per-job"},
		Paths:     PathsConfig{Input: "in.csv", Output: "out.csv"},
		Verbose:   true,
	}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
	if cfg.Solver.TimeLimit() != 250*time.Millisecond {
		t.Errorf("TimeLimit = %v", cfg.Solver.TimeLimit())
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("INSPECT_SOLVER_MAX_NODES", "42")
	t.Setenv("INSPECT_BATCH_WORKERS", "7")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Solver.MaxNodes != 42 || cfg.Batch.Workers != 7 {
		t.Errorf("config = %+v, want max_nodes 42 and workers 7", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file: want error")
	}

	t.Setenv("INSPECT_SOLVER_SHORTFALL", "sometimes")
	if _, err := LoadConfig(""); err == nil {
		t.Error("invalid shortfall: want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"policy", func(c *Config) { c.Heuristic.Policy = "greedy" }},
		{"heuristic", func(c *Config) { c.Heuristic.Name = "random" }},
		{"max nodes", func(c *Config) { c.Solver.MaxNodes = -1 }},
		{"time limit", func(c *Config) { c.Solver.TimeLimitMs = -1 }},
		{"workers", func(c *Config) { c.Batch.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("want error")
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
}
