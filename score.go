package main

// labState is one lab's position between checkpoints.
type labState struct {
	next      int // index of the next job that has not run
	busyUntil int // finish time of the last job started
	cleanAt   int // time the lab last became clean
}

// runBlock runs the lab's next jobs, in order, for as long as each one still
// finishes by cut. It returns the job time gained. The lab becomes clean at cut
// only when nothing is left running across it.
func runBlock(jobs []int, st *labState, cut int) int {
	gained := 0
	t := max(st.cleanAt, st.busyUntil)
	for st.next < len(jobs) && t+jobs[st.next] <= cut {
		t += jobs[st.next]
		gained += jobs[st.next]
		st.busyUntil = t
		st.next++
	}
	if st.busyUntil <= cut {
		st.cleanAt = cut
	}
	return gained
}

// Evaluate scores a checkpoint placement under the given policy. cuts must be
// strictly increasing and inside (0, T). It returns the total job time and the
// number of jobs that ran.
func Evaluate(in *Instance, cuts []int, policy Policy) (usage int64, jobsRun int) {
	for _, lab := range in.Labs {
		var u, n int
		switch policy {
		case PolicyPerJob:
			u, n = runPerJob(lab.Jobs, cuts, in.Horizon)
		default:
			u, n = runBlocks(lab.Jobs, cuts, in.Horizon)
		}
		usage += int64(u)
		jobsRun += n
	}
	return usage, jobsRun
}

func runBlocks(jobs []int, cuts []int, horizon int) (usage, jobsRun int) {
	var st labState
	for _, cut := range cuts {
		usage += runBlock(jobs, &st, cut)
	}
	usage += runBlock(jobs, &st, horizon)
	return usage, st.next
}

// runPerJob is the inspection-per-job model: the first job starts at 0 and
// every later job waits for the first checkpoint at or after the previous
// finish. The lab stops once no checkpoint is left, and a job only counts if
// it ends within the horizon.
func runPerJob(jobs []int, cuts []int, horizon int) (usage, jobsRun int) {
	finish := 0
	c := 0
	for i, d := range jobs {
		start := 0
		if i > 0 {
			for c < len(cuts) && cuts[c] < finish {
				c++
			}
			if c == len(cuts) {
				break
			}
			start = cuts[c]
			c++
		}
		if start+d > horizon {
			break
		}
		finish = start + d
		usage += d
		jobsRun++
	}
	return usage, jobsRun
}

// ScheduleEntry is one job placed on a lab's timeline.
type ScheduleEntry struct {
	Job    int // index into the lab's jobs
	Start  int
	Finish int
}

// Trace replays a block-policy placement and returns every lab's schedule.
func Trace(in *Instance, cuts []int) [][]ScheduleEntry {
	out := make([][]ScheduleEntry, len(in.Labs))
	bounds := append(append([]int(nil), cuts...), in.Horizon)
	for li, lab := range in.Labs {
		var st labState
		var entries []ScheduleEntry
		for _, cut := range bounds {
			first := st.next
			t := max(st.cleanAt, st.busyUntil)
			runBlock(lab.Jobs, &st, cut)
			for j := first; j < st.next; j++ {
				entries = append(entries, ScheduleEntry{Job: j, Start: t, Finish: t + lab.Jobs[j]})
				t += lab.Jobs[j]
			}
		}
		out[li] = entries
	}
	return out
}
