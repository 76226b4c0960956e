package main

import (
	"bytes"
	"reflect"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultGenerateOptions()
	a, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Generate(opts)
	if !reflect.DeepEqual(a, b) {
		t.Error("same options gave different batches")
	}

	opts.Seed = 2
	c, _ := Generate(opts)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds gave the same batch")
	}

	for _, in := range a {
		if len(in.Labs) != opts.Labs || in.Checkpoints != opts.Checkpoints || in.Horizon != opts.Horizon {
			t.Fatalf("%s has shape L=%d C=%d T=%d", in.ID, len(in.Labs), in.Checkpoints, in.Horizon)
		}
		for _, l := range in.Labs {
			if len(l.Jobs) < 1 || len(l.Jobs) > opts.MaxJobs {
				t.Errorf("%s: %d jobs, want 1..%d", in.ID, len(l.Jobs), opts.MaxJobs)
			}
			for _, d := range l.Jobs {
				if d < opts.MinJob || d > opts.MaxJob {
					t.Errorf("%s: duration %d outside %d..%d", in.ID, d, opts.MinJob, opts.MaxJob)
				}
			}
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*GenerateOptions)
	}{
		{"count", func(o *GenerateOptions) { o.Count = -1 }},
		{"horizon", func(o *GenerateOptions) { o.Horizon = 0 }},
		{"min job", func(o *GenerateOptions) { o.MinJob = 0 }},
		{"max below min", func(o *GenerateOptions) { o.MinJob, o.MaxJob = 5, 4 }},
		{"jobs", func(o *GenerateOptions) { o.MaxJobs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultGenerateOptions()
			tt.mod(&o)
			if _, err := Generate(o); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestWriteInstancesCSVRoundTrip(t *testing.T) {
	ins, err := Generate(DefaultGenerateOptions())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteInstancesCSV(&buf, ins); err != nil {
		t.Fatal(err)
	}
	got, err := ParseInstances(&buf)
	if err != nil {
		t.Fatalf("ParseInstances: %v", err)
	}
	if !reflect.DeepEqual(got, ins) {
		t.Error("parsed instances differ from the generated ones")
	}
}
