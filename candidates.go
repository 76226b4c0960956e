package main

import "slices"

// CandidateTimes returns the sorted, distinct checkpoint times worth trying:
// every in-order prefix finish time of every lab that lies strictly before the
// horizon. A checkpoint between boundaries can be moved to the next boundary
// without losing usage, so no other time is ever considered.
func CandidateTimes(labs []Lab, horizon int) []int {
	var times []int
	for _, lab := range labs {
		t := 0
		for _, d := range lab.Jobs {
			t += d
			if t >= horizon {
				break
			}
			times = append(times, t)
		}
	}
	slices.Sort(times)
	return slices.Compact(times)
}
