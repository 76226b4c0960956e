package main

import (
	"fmt"
	"time"
)

// Lab is one ordered queue of jobs. Jobs run strictly in this order and are
// never reordered or split.
type Lab struct {
	Jobs []int // durations, each >= 1
}

// Total returns the summed duration of the lab's jobs.
func (l Lab) Total() int {
	sum := 0
	for _, d := range l.Jobs {
		sum += d
	}
	return sum
}

// Instance is one checkpoint-placement problem: len(Labs) labs sharing a
// horizon of Horizon time units and a budget of Checkpoints shared checkpoints.
type Instance struct {
	ID          string
	Checkpoints int // C
	Horizon     int // T
	Labs        []Lab
}

// NumLabs returns L.
func (in *Instance) NumLabs() int { return len(in.Labs) }

// Capacity is the facility time T*L.
func (in *Instance) Capacity() int64 {
	return int64(in.Horizon) * int64(len(in.Labs))
}

// Policy selects the scheduling model used when scoring a placement.
type Policy int

const (
	// PolicyBlock packs as many consecutive jobs as fit into each clean block.
	PolicyBlock Policy = iota
	// PolicyPerJob requires a checkpoint before every job after the first.
	PolicyPerJob
)

func (p Policy) String() string {
	switch p {
	case PolicyBlock:
		return "block"
	case PolicyPerJob:
		return "per-job"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func parsePolicy(s string) (Policy, error) {
	switch s {
	case "block", "":
		return PolicyBlock, nil
	case "per-job", "perjob":
		return PolicyPerJob, nil
	}
	return PolicyBlock, fmt.Errorf("unknown policy %q (want block or per-job)", s)
}

// Shortfall decides what the solver does when the candidate set holds fewer
// than C times.
type Shortfall int

const (
	// ShortfallRelax places a checkpoint at every available candidate.
	ShortfallRelax Shortfall = iota
	// ShortfallStrict treats the instance as having no valid placement.
	ShortfallStrict
)

func (s Shortfall) String() string {
	switch s {
	case ShortfallRelax:
		return "relax"
	case ShortfallStrict:
		return "strict"
	}
	return fmt.Sprintf("Shortfall(%d)", int(s))
}

func parseShortfall(s string) (Shortfall, error) {
	switch s {
	case "relax", "":
		return ShortfallRelax, nil
	case "strict":
		return ShortfallStrict, nil
	}
	return ShortfallRelax, fmt.Errorf("unknown shortfall policy %q (want relax or strict)", s)
}

// Result is the outcome of solving (or approximating) one instance.
type Result struct {
	ID          string        `json:"id"`
	BestUsage   int64         `json:"bestUsage"`
	IdleTime    int64         `json:"idleTime"`
	Labs        int           `json:"labs"`
	CountedJobs int           `json:"countedStudents"`
	Checkpoints []int         `json:"checkpoints"`
	Feasible    bool          `json:"feasible"`   // a full placement was scored
	Exhaustive  bool          `json:"exhaustive"` // search ran to completion
	Nodes       int64         `json:"nodes,omitempty"`
	Pruned      int64         `json:"pruned,omitempty"`
	Elapsed     time.Duration `json:"-"`
	TimeMs      int64         `json:"timeMs"`
}

// idleTime returns T*L - usage, never negative.
func idleTime(in *Instance, usage int64) int64 {
	idle := in.Capacity() - usage
	if idle < 0 {
		idle = 0
	}
	return idle
}
