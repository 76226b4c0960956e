package main

import (
	"fmt"
	"slices"
	"time"
)

// Heuristic names a greedy checkpoint placement used as a comparator for the
// exact search.
type Heuristic int

const (
	// HeuristicEven spaces C checkpoints evenly across the horizon.
	HeuristicEven Heuristic = iota
	// HeuristicLeastBusy picks the C candidate times at which the fewest labs
	// have a job running when no checkpoints are placed.
	HeuristicLeastBusy
)

func (h Heuristic) String() string {
	switch h {
	case HeuristicEven:
		return "even"
	case HeuristicLeastBusy:
		return "least-busy"
	}
	return fmt.Sprintf("Heuristic(%d)", int(h))
}

func parseHeuristic(s string) (Heuristic, error) {
	switch s {
	case "even", "":
		return HeuristicEven, nil
	case "least-busy", "leastbusy":
		return HeuristicLeastBusy, nil
	}
	return HeuristicEven, fmt.Errorf("unknown heuristic %q (want even or least-busy)", s)
}

// EvenlySpaced returns up to c distinct checkpoints at k*T/(c+1), k = 1..c.
func EvenlySpaced(horizon, c int) []int {
	var cuts []int
	for k := 1; k <= c; k++ {
		t := k * horizon / (c + 1)
		if t <= 0 || t >= horizon {
			continue
		}
		if len(cuts) > 0 && cuts[len(cuts)-1] == t {
			continue
		}
		cuts = append(cuts, t)
	}
	return cuts
}

// LeastBusy ranks every candidate time by how many labs are mid-job at that
// moment under plain forward packing and keeps the c quietest, earliest first
// on ties. The result is sorted ascending.
func LeastBusy(in *Instance) []int {
	cands := CandidateTimes(in.Labs, in.Horizon)
	if len(cands) <= in.Checkpoints {
		return cands
	}

	type ranked struct {
		t    int
		busy int
	}
	ranks := make([]ranked, len(cands))
	for i, t := range cands {
		ranks[i] = ranked{t: t}
		for _, lab := range in.Labs {
			start := 0
			for _, d := range lab.Jobs {
				if start+d > in.Horizon {
					break
				}
				if start < t && t < start+d {
					ranks[i].busy++
					break
				}
				start += d
			}
		}
	}
	slices.SortStableFunc(ranks, func(a, b ranked) int { return a.busy - b.busy })

	cuts := make([]int, in.Checkpoints)
	for i := range cuts {
		cuts[i] = ranks[i].t
	}
	slices.Sort(cuts)
	return cuts
}

// Approximate reduces in and scores the heuristic's placement under policy.
func Approximate(in *Instance, h Heuristic, policy Policy) Result {
	start := time.Now()
	red := Reduce(in)

	var cuts []int
	switch h {
	case HeuristicLeastBusy:
		cuts = LeastBusy(red)
	default:
		cuts = EvenlySpaced(red.Horizon, red.Checkpoints)
	}

	usage, _ := Evaluate(red, cuts, policy)
	elapsed := time.Since(start)
	return Result{
		ID:          red.ID,
		BestUsage:   usage,
		IdleTime:    idleTime(red, usage),
		Labs:        len(red.Labs),
		CountedJobs: CountedJobs(red),
		Checkpoints: cuts,
		Feasible:    true,
		Elapsed:     elapsed,
		TimeMs:      elapsed.Milliseconds(),
	}
}
