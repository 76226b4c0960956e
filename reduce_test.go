package main

import (
	"reflect"
	"testing"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name string
		c, h int
		jobs []int
		want []int
	}{
		{"truncate then trim", 2, 10, []int{4, 4, 4, 4, 4}, []int{4, 4, 2}},
		{"fits untouched", 3, 10, []int{3, 3}, []int{3, 3}},
		{"clamped to one", 1, 5, []int{5, 5}, []int{5, 1}},
		{"zero checkpoints keeps one job", 0, 10, []int{12, 1}, []int{10}},
		{"empty lab", 2, 10, []int{}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Instance{ID: "x", Checkpoints: tt.c, Horizon: tt.h, Labs: []Lab{{Jobs: tt.jobs}}}
			got := Reduce(in).Labs[0].Jobs
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reduce(%v, C=%d, T=%d) = %v, want %v", tt.jobs, tt.c, tt.h, got, tt.want)
			}
		})
	}
}

func TestReduceLeavesInputAlone(t *testing.T) {
	in := &Instance{ID: "x", Checkpoints: 2, Horizon: 10, Labs: []Lab{lab(4, 4, 4, 4, 4)}}
	Reduce(in)
	if want := []int{4, 4, 4, 4, 4}; !reflect.DeepEqual(in.Labs[0].Jobs, want) {
		t.Errorf("input mutated: %v, want %v", in.Labs[0].Jobs, want)
	}
}

func TestReduceIdempotentAndBounded(t *testing.T) {
	for c := 0; c <= 4; c++ {
		for _, in := range generated(t, 7, c) {
			once := Reduce(in)
			twice := Reduce(once)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("%s C=%d: reduce not idempotent: %v then %v", in.ID, c, once.Labs, twice.Labs)
			}
			if n, limit := CountedJobs(once), len(in.Labs)*(c+1); n > limit {
				t.Errorf("%s C=%d: %d jobs after reduction, want <= %d", in.ID, c, n, limit)
			}
			for li, l := range once.Labs {
				if l.Total() > in.Horizon && len(l.Jobs) > 0 && l.Jobs[len(l.Jobs)-1] != 1 {
					t.Errorf("%s lab %d: total %d exceeds horizon %d", in.ID, li, l.Total(), in.Horizon)
				}
			}
		}
	}
}
