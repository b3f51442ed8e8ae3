// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package parse

import "github.com/woozymasta/deflopt/suffixarray"

// LeaveAlone is the length threshold (§4.4) at or above which the parser
// considers only the candidate's full length, rather than every length
// down to MinMatch — shortening a very long match is rarely worth the
// search cost it adds.
const LeaveAlone = 40

// Choice is one parse decision: Length == 0 means "emit the literal byte at
// this position"; otherwise (Length, Offset) is the match to emit.
type Choice struct {
	Length int
	Offset int
}

// Candidates is the per-position candidate table produced by
// suffixarray.MatchFinder.FindAll, one row of up to suffixarray.NCandidates
// entries (zero-padded) per block position.
type Candidates = [][suffixarray.NCandidates]suffixarray.Candidate

// Optimal runs the backward shortest-path DP described in §4.4 over
// data[start:end], choosing among a literal and each candidate match
// (at every length down to MinMatch, unless the candidate is at least
// LeaveAlone long) at each position, under the given code-length tables.
// Returns one Choice per position in [start,end).
func Optimal(data []byte, start, end int, candidates Candidates, codeLenL, codeLenD []uint8) []Choice {
	n := end - start
	if n <= 0 {
		return nil
	}

	cost := make([]int, n+1)
	choice := make([]Choice, n)

	limit := end - suffixarray.LastLiterals

	for i := end - 1; i >= start; i-- {
		idx := i - start

		best := LiteralCost(codeLenL, data[i]) + cost[idx+1]
		bestChoice := Choice{Length: 0}

		for _, c := range candidates[idx] {
			if c.Length == 0 {
				continue
			}

			maxLen := c.Length
			if i+maxLen > limit {
				maxLen = limit - i
			}
			if maxLen < suffixarray.MinMatch {
				continue
			}

			if c.Length >= LeaveAlone {
				k := maxLen
				cst := MatchCost(codeLenL, codeLenD, k, c.Offset) + cost[idx+k]
				if cst < best {
					best = cst
					bestChoice = Choice{Length: k, Offset: c.Offset}
				}
				continue
			}

			for k := suffixarray.MinMatch; k <= maxLen; k++ {
				cst := MatchCost(codeLenL, codeLenD, k, c.Offset) + cost[idx+k]
				if cst < best {
					best = cst
					bestChoice = Choice{Length: k, Offset: c.Offset}
				}
			}
		}

		cost[idx] = best
		choice[idx] = bestChoice
	}

	return choice
}
