// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package suffixarray implements the MatchFinder component of spec.md §4.3:
// a suffix-array-based index over the history+block window that, for every
// input position, yields a small ordered set of candidate (length, offset)
// DEFLATE matches.
package suffixarray

import "sort"

// Build constructs a suffix array over data using prefix doubling: start by
// ranking every suffix by its first byte, then repeatedly double the
// compared prefix length, re-ranking by the pair (rank[i], rank[i+k]) until
// ranks are unique or k exceeds len(data). This is the algorithm the
// teacher's match finder lacks an analogue for (WoozyMasta-lzo matches via
// hash chains, not suffix sorting). It runs in O(n log^2 n) because each
// doubling round re-sorts with a general comparator (sort.Slice) rather
// than an O(n) radix/bucket pass, which is the main place a faster
// construction (e.g. SA-IS, true O(n)) would pay off on large blocks; it
// produces the same total lexicographic order over all suffixes that any
// correct suffix-array construction would.
func Build(data []byte) []int32 {
	n := len(data)
	sa := make([]int32, n)
	rankArr := make([]int32, n)
	tmp := make([]int32, n)

	if n == 0 {
		return sa
	}

	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rankArr[i] = int32(data[i])
	}

	for k := 1; ; k *= 2 {
		rankOf := func(i int) int32 {
			if i >= n {
				return -1
			}
			return rankArr[i]
		}
		cmp := func(a, b int32) bool {
			ra, rb := rankArr[a], rankArr[b]
			if ra != rb {
				return ra < rb
			}
			return rankOf(int(a)+k) < rankOf(int(b)+k)
		}
		sort.Slice(sa, func(i, j int) bool { return cmp(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			r := tmp[sa[i-1]]
			if cmp(sa[i-1], sa[i]) {
				r++
			}
			tmp[sa[i]] = r
		}
		copy(rankArr, tmp)

		if int(rankArr[sa[n-1]]) == n-1 {
			break
		}
		if k > n {
			break
		}
	}

	return sa
}
