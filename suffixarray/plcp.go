// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package suffixarray

// ComputeLCP computes the LCP array in suffix-array order using Kärkkäinen,
// Manzini & Puglisi's permuted-LCP (PLCP) method: compute LCP values in
// *text* position order first (cheap, using the previous suffix in SA order
// via a Φ array and the standard "decrement by at most one per step"
// argument), then permute ("rotate") that array into SA order, per §4.3.
func ComputeLCP(data []byte, sa []int32) []int32 {
	n := len(data)
	if n == 0 {
		return nil
	}

	phi := make([]int32, n)
	phi[sa[0]] = -1
	for i := 1; i < n; i++ {
		phi[sa[i]] = sa[i-1]
	}

	plcp := make([]int32, n)
	l := int32(0)
	for i := 0; i < n; i++ {
		j := phi[i]
		if j < 0 {
			plcp[i] = 0
			l = 0
			continue
		}
		for int(i)+int(l) < n && int(j)+int(l) < n && data[int(i)+int(l)] == data[int(j)+int(l)] {
			l++
		}
		plcp[i] = l
		if l > 0 {
			l--
		}
	}

	lcp := make([]int32, n)
	for i := 0; i < n; i++ {
		lcp[i] = plcp[sa[i]]
	}
	lcp[0] = 0
	return lcp
}

// ClampLCP zeroes LCP values below minMatch and caps values above maxMatch,
// per §3's match-candidate invariant.
func ClampLCP(lcp []int32, minMatch, maxMatch int32) {
	for i, v := range lcp {
		switch {
		case v < minMatch:
			lcp[i] = 0
		case v > maxMatch:
			lcp[i] = maxMatch
		}
	}
}
