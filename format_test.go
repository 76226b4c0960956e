package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWriteResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	results := []Result{
		{ID: "ex1", BestUsage: 6, IdleTime: 4, Labs: 1, CountedJobs: 2},
		{ID: "a,b", BestUsage: 0, IdleTime: 5, Labs: 0, CountedJobs: 0},
	}
	if err := WriteResultsCSV(&buf, results); err != nil {
		t.Fatal(err)
	}
	want := "instance_id,best_usage,idle_time,labs,counted_students\nex1,6,4,1,2\n\"a,b\",0,5,0,0\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	b := BatchResult{
		Results: []Result{{ID: "ex1", BestUsage: 6, IdleTime: 4, Labs: 1, CountedJobs: 2, Checkpoints: []int{3}, Feasible: true}},
		Workers: 2,
		Elapsed: 1500 * time.Millisecond,
	}
	if err := WriteResultsJSON(&buf, b); err != nil {
		t.Fatal(err)
	}
	var out BatchOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Workers != 2 || out.TotalMs != 1500 || len(out.Results) != 1 {
		t.Fatalf("output = %+v", out)
	}
	if r := out.Results[0]; r.ID != "ex1" || r.BestUsage != 6 || len(r.Checkpoints) != 1 || r.Checkpoints[0] != 3 {
		t.Errorf("result = %+v", r)
	}
	if _, err := time.Parse(time.RFC3339, out.Date); err != nil {
		t.Errorf("date %q: %v", out.Date, err)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []Result{
		{ID: "a", BestUsage: 6, IdleTime: 4},
		{ID: "b", BestUsage: 10, IdleTime: 6},
	}, time.Second)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	last := strings.Fields(lines[len(lines)-1])
	if len(last) < 3 || last[0] != "TOTAL" || last[1] != "16" || last[2] != "10" {
		t.Errorf("total row = %q", lines[len(lines)-1])
	}
}

func TestRenderTimeline(t *testing.T) {
	in := &Instance{ID: "ex1", Checkpoints: 1, Horizon: 10, Labs: []Lab{lab(3, 3)}}
	res := Result{BestUsage: 6, IdleTime: 4, Checkpoints: []int{3}}

	var buf bytes.Buffer
	RenderTimeline(&buf, in, res, 96)
	got := buf.String()
	for _, want := range []string{
		"ex1  L=1 C=1 T=10  usage=6 idle=4  checkpoints=[3]\n",
		"  lab 1 XXX|XXX....  6/10\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("timeline missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "cell =") {
		t.Errorf("unscaled timeline has a scale note:\n%s", got)
	}
}

func TestRenderTimelineScaled(t *testing.T) {
	in := &Instance{ID: "wide", Checkpoints: 0, Horizon: 200, Labs: []Lab{lab(100)}}
	res := Result{BestUsage: 100, IdleTime: 100}

	var buf bytes.Buffer
	RenderTimeline(&buf, in, res, 96)
	got := buf.String()
	if !strings.Contains(got, "(1 cell = 3 time units)") {
		t.Fatalf("missing scale note:\n%s", got)
	}
	// 200 units at 3 per cell is 67 cells; the job covers 33 full cells and
	// one partly busy cell.
	row := strings.Fields(strings.Split(got, "\n")[2])
	if len(row) != 4 {
		t.Fatalf("row = %q", row)
	}
	cells := row[2]
	if len(cells) != 67 {
		t.Errorf("cells = %d, want 67", len(cells))
	}
	want := strings.Repeat("X", 33) + "x" + strings.Repeat(".", 33)
	if cells != want {
		t.Errorf("cells =\n%s\nwant\n%s", cells, want)
	}
	if row[3] != "100/200" {
		t.Errorf("usage column = %q, want 100/200", row[3])
	}
}
