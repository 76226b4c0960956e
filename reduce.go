package main

// Reduce returns a copy of in that respects the structural limits the search
// relies on. Each lab keeps at most C+1 jobs, since a lab passes through the
// clean state at most C+1 times. If the kept jobs still overrun the horizon the
// last one is shortened by the excess, but never below 1.
//
// Dropped jobs and shortened durations are intentional and are not reported.
func Reduce(in *Instance) *Instance {
	out := &Instance{
		ID:          in.ID,
		Checkpoints: in.Checkpoints,
		Horizon:     in.Horizon,
		Labs:        make([]Lab, len(in.Labs)),
	}
	limit := in.Checkpoints + 1
	for i, lab := range in.Labs {
		n := min(len(lab.Jobs), limit)
		jobs := make([]int, n)
		copy(jobs, lab.Jobs[:n])

		sum := 0
		for _, d := range jobs {
			sum += d
		}
		if sum > in.Horizon && n > 0 {
			jobs[n-1] = max(jobs[n-1]-(sum-in.Horizon), 1)
		}
		out.Labs[i] = Lab{Jobs: jobs}
	}
	return out
}

// CountedJobs is the number of jobs left across all labs.
func CountedJobs(in *Instance) int {
	n := 0
	for _, lab := range in.Labs {
		n += len(lab.Jobs)
	}
	return n
}
