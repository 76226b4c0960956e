package main

import (
	"context"
	"sync"
	"time"
)

// BatchResult is every instance's result in input order plus the wall time.
type BatchResult struct {
	Results []Result
	Workers int
	Elapsed time.Duration
}

// solveFunc turns one raw instance into a result.
type solveFunc func(ctx context.Context, in *Instance) Result

// SolveAll solves every instance exactly, spreading them over worker goroutines.
// Each solve only reads its own instance, so instances never share state.
func SolveAll(ctx context.Context, instances []*Instance, cfg Config) BatchResult {
	return runBatch(ctx, instances, cfg.Batch.workerCount(), "solve", func(ctx context.Context, in *Instance) Result {
		return Solve(ctx, in, cfg.Solver)
	})
}

// ApproxAll scores the configured heuristic on every instance.
func ApproxAll(ctx context.Context, instances []*Instance, cfg Config) (BatchResult, error) {
	h, err := parseHeuristic(cfg.Heuristic.Name)
	if err != nil {
		return BatchResult{}, err
	}
	policy, err := parsePolicy(cfg.Heuristic.Policy)
	if err != nil {
		return BatchResult{}, err
	}
	return runBatch(ctx, instances, cfg.Batch.workerCount(), "approx", func(_ context.Context, in *Instance) Result {
		return Approximate(in, h, policy)
	}), nil
}

func runBatch(ctx context.Context, instances []*Instance, numWorkers int, phase string, fn solveFunc) BatchResult {
	start := time.Now()
	if numWorkers > len(instances) {
		numWorkers = len(instances)
	}
	results := make([]Result, len(instances))

	idxCh := make(chan int, len(instances))
	for i := range instances {
		idxCh <- i
	}
	close(idxCh)

	type done struct {
		idx int
		res Result
	}
	doneCh := make(chan done, len(instances))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				doneCh <- done{idx, fn(ctx, instances[idx])}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	finished := 0
	for d := range doneCh {
		finished++
		results[d.idx] = d.res
		r := d.res
		if Verbose {
			logf(phase, "[%d/%d] %s: usage=%d idle=%d in %.3fs", finished, len(instances),
				r.ID, r.BestUsage, r.IdleTime, r.Elapsed.Seconds())
		}
		if !r.Exhaustive && phase == "solve" {
			logf(phase, "%s: search budget reached after %d nodes, result may not be optimal", r.ID, r.Nodes)
		}
	}

	elapsed := time.Since(start)
	logf("done", "%s %d instances with %d workers in %v", phase, len(instances), numWorkers, elapsed)
	return BatchResult{Results: results, Workers: numWorkers, Elapsed: elapsed}
}
