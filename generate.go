package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
)

// GenerateOptions shapes a batch of random instances.
type GenerateOptions struct {
	Count       int // instances
	Labs        int // L per instance
	Checkpoints int // C per instance
	Horizon     int // T per instance
	MinJob      int // shortest duration
	MaxJob      int // longest duration
	MaxJobs     int // jobs per lab are drawn from 1..MaxJobs
	Seed        uint64
}

// DefaultGenerateOptions mirrors the small lab instances of the validation set.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Count:       10,
		Labs:        3,
		Checkpoints: 3,
		Horizon:     24,
		MinJob:      1,
		MaxJob:      8,
		MaxJobs:     6,
		Seed:        1,
	}
}

func (o GenerateOptions) validate() error {
	switch {
	case o.Count < 0:
		return fmt.Errorf("count must be >= 0, got %d", o.Count)
	case o.Labs < 0:
		return fmt.Errorf("labs must be >= 0, got %d", o.Labs)
	case o.Checkpoints < 0:
		return fmt.Errorf("checkpoints must be >= 0, got %d", o.Checkpoints)
	case o.Horizon < 1:
		return fmt.Errorf("horizon must be >= 1, got %d", o.Horizon)
	case o.MinJob < 1 || o.MaxJob < o.MinJob:
		return fmt.Errorf("job durations need 1 <= min <= max, got %d..%d", o.MinJob, o.MaxJob)
	case o.MaxJobs < 1:
		return fmt.Errorf("jobs per lab must be >= 1, got %d", o.MaxJobs)
	}
	return nil
}

// Generate draws random instances. The same options always give the same batch.
func Generate(o GenerateOptions) ([]*Instance, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))

	out := make([]*Instance, o.Count)
	for i := range out {
		in := &Instance{
			ID:          fmt.Sprintf("inst%02d", i+1),
			Checkpoints: o.Checkpoints,
			Horizon:     o.Horizon,
			Labs:        make([]Lab, o.Labs),
		}
		for li := range in.Labs {
			jobs := make([]int, 1+rng.IntN(o.MaxJobs))
			for k := range jobs {
				jobs[k] = o.MinJob + rng.IntN(o.MaxJob-o.MinJob+1)
			}
			in.Labs[li] = Lab{Jobs: jobs}
		}
		out[i] = in
	}
	return out, nil
}

// WriteInstancesCSV writes instances in the layout ParseInstances reads.
func WriteInstancesCSV(w io.Writer, instances []*Instance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"instance_id", "L", "C", "T"}); err != nil {
		return err
	}
	for _, in := range instances {
		head := []string{in.ID, strconv.Itoa(len(in.Labs)), strconv.Itoa(in.Checkpoints), strconv.Itoa(in.Horizon)}
		if err := cw.Write(head); err != nil {
			return err
		}
		for _, lab := range in.Labs {
			row := make([]string, 0, len(lab.Jobs)+2)
			row = append(row, "lab", strconv.Itoa(len(lab.Jobs)))
			for _, d := range lab.Jobs {
				row = append(row, strconv.Itoa(d))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
