package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

// csvHeader is the summary row layout every batch output starts with.
var csvHeader = []string{"instance_id", "best_usage", "idle_time", "labs", "counted_students"}

// WriteResultsCSV writes the header and one summary row per result.
func WriteResultsCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.ID,
			strconv.FormatInt(r.BestUsage, 10),
			strconv.FormatInt(r.IdleTime, 10),
			strconv.Itoa(r.Labs),
			strconv.Itoa(r.CountedJobs),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BatchOutput is the JSON-serializable result of a full batch run.
type BatchOutput struct {
	Date    string   `json:"date"`
	Workers int      `json:"workers"`
	Results []Result `json:"results"`
	TotalMs int64    `json:"totalMs"`
}

// WriteResultsJSON writes b as an indented BatchOutput document.
func WriteResultsJSON(w io.Writer, b BatchResult) error {
	out := BatchOutput{
		Date:    time.Now().UTC().Format(time.RFC3339),
		Workers: b.Workers,
		Results: b.Results,
		TotalMs: b.Elapsed.Milliseconds(),
	}
	if out.Workers == 0 {
		out.Workers = runtime.NumCPU()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTable(w io.Writer, results []Result, total time.Duration) {
	fmt.Fprintf(w, "%-16s %10s %10s %5s %8s %8s\n", "Instance", "Usage", "Idle", "Labs", "Jobs", "Time")
	fmt.Fprintf(w, "%-16s %10s %10s %5s %8s %8s\n", "----------------", "----------", "----------", "-----", "--------", "--------")
	var usage, idle int64
	for _, r := range results {
		usage += r.BestUsage
		idle += r.IdleTime
		fmt.Fprintf(w, "%-16s %10d %10d %5d %8d %7.3fs\n", r.ID, r.BestUsage, r.IdleTime, r.Labs, r.CountedJobs, r.Elapsed.Seconds())
	}
	fmt.Fprintf(w, "%-16s %10s %10s %5s %8s %8s\n", "----------------", "----------", "----------", "-----", "--------", "--------")
	fmt.Fprintf(w, "%-16s %10d %10d %5s %8s %7.3fs\n", "TOTAL", usage, idle, "", "", total.Seconds())
}

// ── Timeline ────────────────────────────────────────────────────────

var (
	tlBusy    = color.New(color.FgGreen).SprintFunc()
	tlPartial = color.New(color.FgYellow).SprintFunc()
	tlIdle    = color.New(color.Faint).SprintFunc()
	tlCut     = color.New(color.Bold, color.FgMagenta).SprintFunc()
	tlTitle   = color.New(color.Bold, color.FgCyan).SprintFunc()
)

// RenderTimeline draws one row per lab for the placement in res: '|' marks a
// checkpoint, 'X' a busy cell, 'x' a partly busy cell and '.' an idle one.
// When the horizon is wider than width each cell covers several time units.
func RenderTimeline(w io.Writer, in *Instance, res Result, width int) {
	scale := 1
	if width > 0 && in.Horizon > width {
		scale = (in.Horizon + width - 1) / width
	}
	cells := (in.Horizon + scale - 1) / scale

	fmt.Fprintf(w, "%s  L=%d C=%d T=%d  usage=%d idle=%d  checkpoints=%v\n",
		tlTitle(in.ID), len(in.Labs), in.Checkpoints, in.Horizon, res.BestUsage, res.IdleTime, res.Checkpoints)
	if scale > 1 {
		fmt.Fprintf(w, "  (1 cell = %d time units)\n", scale)
	}

	cutCell := make(map[int]bool, len(res.Checkpoints))
	for _, c := range res.Checkpoints {
		cutCell[c/scale] = true
	}

	sched := Trace(in, res.Checkpoints)
	labelWidth := len(strconv.Itoa(len(in.Labs)))
	for li, entries := range sched {
		busy := make([]int, cells)
		for _, e := range entries {
			for t := e.Start; t < e.Finish && t < in.Horizon; t++ {
				busy[t/scale]++
			}
		}

		var b strings.Builder
		for c := 0; c < cells; c++ {
			if cutCell[c] {
				b.WriteString(tlCut("|"))
			}
			span := min(scale, in.Horizon-c*scale)
			switch {
			case busy[c] == 0:
				b.WriteString(tlIdle("."))
			case busy[c] >= span:
				b.WriteString(tlBusy("X"))
			default:
				b.WriteString(tlPartial("x"))
			}
		}
		used := 0
		for _, e := range entries {
			used += e.Finish - e.Start
		}
		fmt.Fprintf(w, "  lab %*d %s  %d/%d\n", labelWidth, li+1, b.String(), used, in.Horizon)
	}
}
