//go:build !lambda

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

// cliFlags collects every command-line flag of one command tree.
type cliFlags struct {
	config    string
	verbose   bool
	jsonOut   bool
	workers   int
	maxNodes  int64
	timeLimit time.Duration
	shortfall string

	heuristic string
	policy    string

	width int

	gen GenerateOptions
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}
	rootCmd := &cobra.Command{
		Use:   "inspection-optimizer [input.csv output.csv]",
		Short: "Place shared lab inspections to maximize completed job time",
		Long: `inspection-optimizer reads batches of lab scheduling instances, places the
checkpoint budget of each instance with an exact branch-and-bound search and
writes one summary row per instance.

With no arguments the configured default input and output paths are used.`,
		Args: inputOutputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadCommandConfig(cmd, f)
			if err != nil {
				return err
			}
			in, out := resolvePaths(cfg, args)
			return runBatchFile(cmd.Context(), in, out, f.jsonOut, cmd.OutOrStdout(),
				func(ctx context.Context, ins []*Instance) (BatchResult, error) {
					return SolveAll(ctx, ins, cfg), nil
				})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "Config file (yaml, toml or json)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed search progress to stderr")
	pf.BoolVar(&f.jsonOut, "json", false, "Also print results as JSON to stdout")
	pf.IntVar(&f.workers, "workers", 0, "Instances solved concurrently (0 = all CPUs)")
	pf.Int64Var(&f.maxNodes, "max-nodes", 0, "Stop each search after this many nodes (0 = unlimited)")
	pf.DurationVar(&f.timeLimit, "time-limit", 0, "Stop each search after this long (0 = unlimited)")
	pf.StringVar(&f.shortfall, "shortfall", "", "When fewer candidate times than checkpoints exist: relax or strict")

	rootCmd.AddCommand(approxCmd(f))
	rootCmd.AddCommand(timelineCmd(f))
	rootCmd.AddCommand(generateCmd(f))
	return rootCmd
}

// inputOutputArgs accepts either no paths or an input and an output path.
func inputOutputArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("%w: want no arguments or <input> <output>, got %d", ErrUsage, len(args))
	}
	return nil
}

func resolvePaths(cfg Config, args []string) (string, string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	return cfg.Paths.Input, cfg.Paths.Output
}

// loadCommandConfig loads the config file and environment, then applies any
// flag the user set explicitly.
func loadCommandConfig(cmd *cobra.Command, f *cliFlags) (Config, error) {
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if flags.Changed("max-nodes") {
		cfg.Solver.MaxNodes = f.maxNodes
	}
	if flags.Changed("time-limit") {
		cfg.Solver.TimeLimitMs = int(f.timeLimit.Milliseconds())
	}
	if flags.Changed("shortfall") {
		cfg.Solver.Shortfall = f.shortfall
	}
	if flags.Changed("heuristic") {
		cfg.Heuristic.Name = f.heuristic
	}
	if flags.Changed("policy") {
		cfg.Heuristic.Policy = f.policy
	}
	if f.verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	Verbose = cfg.Verbose
	return cfg, nil
}

// runBatchFile checks both files before doing any work, parses every instance,
// runs solve and writes the summary CSV. A parse failure removes the output
// file so no partial result is left behind.
func runBatchFile(ctx context.Context, inPath, outPath string, jsonOut bool, stdout io.Writer,
	solve func(context.Context, []*Instance) (BatchResult, error)) error {
	inFile, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer inFile.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	discard := func() {
		outFile.Close()
		os.Remove(outPath)
	}

	instances, err := readInstances(inFile, isJSONPath(inPath))
	if err != nil {
		discard()
		return fmt.Errorf("%s: %w", inPath, err)
	}
	logf("load", "%d instances from %s", len(instances), inPath)

	batch, err := solve(ctx, instances)
	if err != nil {
		discard()
		return err
	}

	if err := WriteResultsCSV(outFile, batch.Results); err != nil {
		outFile.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}

	if jsonOut {
		if err := WriteResultsJSON(stdout, batch); err != nil {
			return err
		}
	} else if Verbose {
		printTable(stdout, batch.Results, batch.Elapsed)
	}
	logf("done", "wrote %s", outPath)
	return nil
}

func approxCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approx [input.csv output.csv]",
		Short: "Score a greedy checkpoint placement instead of searching",
		Args:  inputOutputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadCommandConfig(cmd, f)
			if err != nil {
				return err
			}
			in, out := resolvePaths(cfg, args)
			return runBatchFile(cmd.Context(), in, out, f.jsonOut, cmd.OutOrStdout(),
				func(ctx context.Context, ins []*Instance) (BatchResult, error) {
					return ApproxAll(ctx, ins, cfg)
				})
		},
	}
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "", "Placement: even or least-busy")
	cmd.Flags().StringVar(&f.policy, "policy", "", "Scheduling model: block or per-job")
	return cmd
}

func timelineCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <input> [instance_id...]",
		Short: "Solve instances and draw each lab's schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadCommandConfig(cmd, f)
			if err != nil {
				return err
			}
			instances, err := LoadInstances(args[0])
			if err != nil {
				return err
			}
			instances, err = selectInstances(instances, args[1:])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, in := range instances {
				if i > 0 {
					fmt.Fprintln(w)
				}
				red := Reduce(in)
				res := NewSolver(red, cfg.Solver).Solve(cmd.Context())
				RenderTimeline(w, red, res, f.width)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&f.width, "width", 96, "Maximum timeline cells per lab (0 = one cell per time unit)")
	return cmd
}

// selectInstances keeps the instances named in ids, in the order given. No ids
// keeps everything.
func selectInstances(instances []*Instance, ids []string) ([]*Instance, error) {
	if len(ids) == 0 {
		return instances, nil
	}
	byID := make(map[string]*Instance, len(instances))
	for _, in := range instances {
		byID[in.ID] = in
	}
	out := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		in, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("instance %q not found", id)
		}
		out = append(out, in)
	}
	return out, nil
}

func generateCmd(f *cliFlags) *cobra.Command {
	f.gen = DefaultGenerateOptions()
	cmd := &cobra.Command{
		Use:   "generate <output.csv>",
		Short: "Write random instances for benchmarking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			instances, err := Generate(f.gen)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if args[0] != "-" {
				file, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create %s: %w", args[0], err)
				}
				defer file.Close()
				w = file
			}
			if err := WriteInstancesCSV(w, instances); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			logf("generate", "wrote %d instances to %s", len(instances), args[0])
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.gen.Count, "count", f.gen.Count, "Number of instances")
	fl.IntVar(&f.gen.Labs, "labs", f.gen.Labs, "Labs per instance (L)")
	fl.IntVar(&f.gen.Checkpoints, "checkpoints", f.gen.Checkpoints, "Checkpoints per instance (C)")
	fl.IntVar(&f.gen.Horizon, "horizon", f.gen.Horizon, "Horizon (T)")
	fl.IntVar(&f.gen.MinJob, "min", f.gen.MinJob, "Shortest job duration")
	fl.IntVar(&f.gen.MaxJob, "max", f.gen.MaxJob, "Longest job duration")
	fl.IntVar(&f.gen.MaxJobs, "jobs", f.gen.MaxJobs, "Maximum jobs per lab")
	fl.Uint64Var(&f.gen.Seed, "seed", f.gen.Seed, "Random seed")
	return cmd
}
