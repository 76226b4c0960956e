package main

import (
	"context"
	"time"
)

// budgetCheckEvery is how many nodes pass between deadline/context checks.
var budgetCheckEvery int64 = 4096

// ── Solver ──────────────────────────────────────────────────────────

// Solver runs the exact branch-and-bound search for one reduced instance.
// A Solver is not safe for concurrent use; batch code builds one per instance.
type Solver struct {
	in        *Instance // reduced, read-only
	cands     []int
	depth     int // checkpoints to place
	shortfall Shortfall

	// stack[d] holds every lab's state after d checkpoints; stack[depth+1]
	// is scratch space for the final block to T.
	stack  [][]labState
	chosen []int

	best      int64
	bestCuts  []int
	feasible  bool
	nodes     int64
	pruned    int64
	maxNodes  int64
	timeLimit time.Duration
	deadline  time.Time
	ctx       context.Context
	stopped   bool
}

// NewSolver prepares a search over in, which must already be reduced.
func NewSolver(in *Instance, cfg SolverConfig) *Solver {
	shortfall, err := parseShortfall(cfg.Shortfall)
	if err != nil {
		shortfall = ShortfallRelax
	}
	s := &Solver{
		in:        in,
		cands:     CandidateTimes(in.Labs, in.Horizon),
		depth:     in.Checkpoints,
		shortfall: shortfall,
		maxNodes:  cfg.MaxNodes,
		timeLimit: cfg.TimeLimit(),
	}
	if len(s.cands) < s.depth && s.shortfall == ShortfallRelax {
		s.depth = len(s.cands)
	}
	s.stack = make([][]labState, s.depth+2)
	for d := range s.stack {
		s.stack[d] = make([]labState, len(in.Labs))
	}
	s.chosen = make([]int, 0, s.depth)
	return s
}

// Candidates returns the candidate checkpoint times the search draws from.
func (s *Solver) Candidates() []int { return s.cands }

// Solve runs the search to completion or until a budget or ctx stops it.
func (s *Solver) Solve(ctx context.Context) Result {
	start := time.Now()
	s.ctx = ctx
	if s.timeLimit > 0 {
		s.deadline = start.Add(s.timeLimit)
	}

	if len(s.in.Labs) == 0 {
		// Nothing to schedule; every placement is equally empty.
		s.feasible = true
		s.bestCuts = []int{}
	} else if s.depth <= len(s.cands) {
		s.dfs(0, 0, 0, 0)
	}

	elapsed := time.Since(start)
	if Verbose {
		logf("verbose/search", "%s: candidates=%d depth=%d nodes=%d pruned=%d best=%d stopped=%v",
			s.in.ID, len(s.cands), s.depth, s.nodes, s.pruned, s.best, s.stopped)
	}
	return Result{
		ID:          s.in.ID,
		BestUsage:   s.best,
		IdleTime:    idleTime(s.in, s.best),
		Labs:        len(s.in.Labs),
		CountedJobs: CountedJobs(s.in),
		Checkpoints: s.bestCuts,
		Feasible:    s.feasible,
		Exhaustive:  !s.stopped,
		Nodes:       s.nodes,
		Pruned:      s.pruned,
		Elapsed:     elapsed,
		TimeMs:      elapsed.Milliseconds(),
	}
}

// halted reports whether a node, time or context budget has run out.
func (s *Solver) halted() bool {
	if s.stopped {
		return true
	}
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.stopped = true
		return true
	}
	if s.nodes%budgetCheckEvery == 0 {
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			s.stopped = true
		} else if s.ctx != nil && s.ctx.Err() != nil {
			s.stopped = true
		}
	}
	return s.stopped
}

// dfs explores placements that extend s.chosen (d checkpoints so far, the
// last at lastCut). used is the job time gained up to lastCut and next is the
// first candidate index still available.
func (s *Solver) dfs(d, next int, used int64, lastCut int) {
	if s.halted() {
		return
	}

	// Every lab busy for the rest of the horizon is the most this node can give.
	optimistic := used + int64(s.in.Horizon-lastCut)*int64(len(s.in.Labs))
	if optimistic <= s.best {
		s.pruned++
		return
	}

	if d == s.depth {
		s.leaf(d, used)
		return
	}

	if len(s.cands)-next < s.depth-d {
		return
	}

	parent, child := s.stack[d], s.stack[d+1]
	for i := next; i < len(s.cands); i++ {
		cut := s.cands[i]
		copy(child, parent)
		gained := 0
		for li := range child {
			gained += runBlock(s.in.Labs[li].Jobs, &child[li], cut)
		}
		s.chosen = append(s.chosen[:d], cut)
		s.dfs(d+1, i+1, used+int64(gained), cut)
		if s.stopped {
			return
		}
	}
	s.chosen = s.chosen[:d]
}

// leaf runs the final block to T and records the placement if it is the
// best seen so far.
func (s *Solver) leaf(d int, used int64) {
	final := s.stack[s.depth+1]
	copy(final, s.stack[d])
	total := used
	for li := range final {
		total += int64(runBlock(s.in.Labs[li].Jobs, &final[li], s.in.Horizon))
	}
	if total > s.best || !s.feasible {
		s.best = total
		s.bestCuts = append([]int{}, s.chosen[:d]...)
	}
	s.feasible = true
}

// Solve reduces in and searches it with cfg.
func Solve(ctx context.Context, in *Instance, cfg SolverConfig) Result {
	return NewSolver(Reduce(in), cfg).Solve(ctx)
}
