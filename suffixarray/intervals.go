// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package suffixarray

// interval is one node of the implicit LCP-interval tree built over the
// suffix array. Per the Design Notes (§9 "Arena-style reuse"), this is a
// typed view rather than the reference's packed (lcp|pos|visited) integer;
// the single-phase-at-a-time contract is expressed by construction instead
// (Build produces these once per block; FindAll/Skip only mutate pos and
// visited, never lcp or parent).
type interval struct {
	lcp     int32
	parent  int32 // index into the intervals slice, -1 for the root
	pos     int32 // once visited: most recent text position attached, encoded as position+1; before that it holds the rank+1 set by buildIntervals and is not read
	visited bool
}

// buildIntervals constructs the LCP-interval tree from an LCP array already
// in suffix-array order (lcp[0] is unused/zero by convention), following
// §4.3's single left-to-right pass with an open-intervals stack:
//
//   - if next_lcp == top_lcp: link prev_pos into top (handled implicitly:
//     the new rank becomes the interval's most recent attachment point).
//   - if next_lcp > top_lcp: open a new interval at the new lcp.
//   - if next_lcp < top_lcp: close intervals on the stack until the top
//     either equals or is shallower than next_lcp; if shallower, open a new
//     superinterval at next_lcp.
//
// Returns the interval slice and, for each suffix-array rank, the index of
// the deepest interval containing that rank's suffix (pos_data in §3).
func buildIntervals(lcp []int32) (intervals []interval, rankToInterval []int32) {
	n := len(lcp)
	if n == 0 {
		return nil, nil
	}

	intervals = make([]interval, 1, n)
	intervals[0] = interval{lcp: 0, parent: -1, pos: 1}
	rankToInterval = make([]int32, n)

	stack := make([]int32, 1, 32)
	stack[0] = 0

	for r := 1; r < n; r++ {
		nextLCP := lcp[r]
		top := stack[len(stack)-1]

		for intervals[top].lcp > nextLCP {
			stack = stack[:len(stack)-1]
			top = stack[len(stack)-1]
		}

		switch {
		case intervals[top].lcp == nextLCP:
			intervals[top].pos = int32(r) + 1
			rankToInterval[r] = top
		default: // intervals[top].lcp < nextLCP
			newIdx := int32(len(intervals))
			intervals = append(intervals, interval{lcp: nextLCP, parent: top, pos: int32(r) + 1})
			stack = append(stack, newIdx)
			rankToInterval[r] = newIdx
		}
	}

	return intervals, rankToInterval
}
