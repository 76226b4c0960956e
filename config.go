package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the optimizer. It is loaded from defaults, an
// optional config file and INSPECT_* environment variables, in that order.
type Config struct {
	Solver    SolverConfig    `mapstructure:"solver"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Heuristic HeuristicConfig `mapstructure:"heuristic"`
	Paths     PathsConfig     `mapstructure:"paths"`
	// Verbose prints detailed search progress to stderr.
	Verbose bool `mapstructure:"verbose"`
}

// SolverConfig bounds the exact search.
type SolverConfig struct {
	// MaxNodes stops the search after this many visited nodes (0 = unlimited).
	MaxNodes int64 `mapstructure:"max_nodes"`
	// TimeLimitMs stops the search after this much wall-clock time (0 = unlimited).
	TimeLimitMs int `mapstructure:"time_limit_ms"`
	// Shortfall is what to do when fewer than C candidate times exist.
	// Options: "relax", "strict"
	Shortfall string `mapstructure:"shortfall"`
}

// TimeLimit returns the wall-clock budget as a time.Duration (0 means none).
func (c SolverConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// BatchConfig controls how a file of instances is processed.
type BatchConfig struct {
	// Workers is the number of instances solved concurrently (0 = GOMAXPROCS).
	Workers int `mapstructure:"workers"`
}

// HeuristicConfig selects the comparator used by the approx command.
type HeuristicConfig struct {
	// Name options: "even", "least-busy"
	Name string `mapstructure:"name"`
	// Policy options: "block", "per-job"
	Policy string `mapstructure:"policy"`
}

// PathsConfig holds the default files used when no positional arguments are given.
type PathsConfig struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Shortfall: ShortfallRelax.String(),
		},
		Heuristic: HeuristicConfig{
			Name:   "even",
			Policy: PolicyBlock.String(),
		},
		Paths: PathsConfig{
			Input:  "validationInstances.csv",
			Output: "validationOutput.csv",
		},
	}
}

// workerCount resolves Workers to a concrete goroutine count.
func (c BatchConfig) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("solver.max_nodes", d.Solver.MaxNodes)
	v.SetDefault("solver.time_limit_ms", d.Solver.TimeLimitMs)
	v.SetDefault("solver.shortfall", d.Solver.Shortfall)
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("heuristic.name", d.Heuristic.Name)
	v.SetDefault("heuristic.policy", d.Heuristic.Policy)
	v.SetDefault("paths.input", d.Paths.Input)
	v.SetDefault("paths.output", d.Paths.Output)
	v.SetDefault("verbose", d.Verbose)
}

// LoadConfig reads configuration from path (which may be empty) and the
// environment. Environment keys use the INSPECT_ prefix with dots replaced by
// underscores, e.g. INSPECT_SOLVER_MAX_NODES.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("INSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated options and ranges.
func (c Config) Validate() error {
	if _, err := parseShortfall(c.Solver.Shortfall); err != nil {
		return fmt.Errorf("solver.shortfall: %w", err)
	}
	if _, err := parsePolicy(c.Heuristic.Policy); err != nil {
		return fmt.Errorf("heuristic.policy: %w", err)
	}
	if _, err := parseHeuristic(c.Heuristic.Name); err != nil {
		return fmt.Errorf("heuristic.name: %w", err)
	}
	if c.Solver.MaxNodes < 0 {
		return fmt.Errorf("solver.max_nodes must be >= 0, got %d", c.Solver.MaxNodes)
	}
	if c.Solver.TimeLimitMs < 0 {
		return fmt.Errorf("solver.time_limit_ms must be >= 0, got %d", c.Solver.TimeLimitMs)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}
	return nil
}
