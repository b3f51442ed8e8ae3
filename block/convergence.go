// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package block

import (
	"github.com/woozymasta/deflopt/huffman"
	"github.com/woozymasta/deflopt/parse"
	"github.com/woozymasta/deflopt/suffixarray"
)

// convergenceExtraPasses is the number of (parse, recount, rebuild) cycles
// run after the initial greedy-seeded table build, per §4.6 step 1
// ("reference uses 3 extra passes").
const convergenceExtraPasses = 3

// greedyParse walks [start, end) picking, at each position, the longest
// available candidate (candidates are already in non-increasing length
// order) or a literal when none qualifies. It seeds the first round of
// frequency counts before any code lengths exist.
func greedyParse(start, end int, candidates parse.Candidates) []parse.Step {
	var steps []parse.Step
	cur := start
	for cur < end {
		best := suffixarray.Candidate{}
		if row := candidates[cur-start]; true {
			if row[0].Length >= suffixarray.MinMatch {
				best = row[0]
			}
		}
		if best.Length == 0 {
			steps = append(steps, parse.Step{Pos: cur, Choice: parse.Choice{Length: 0}})
			cur++
			continue
		}
		steps = append(steps, parse.Step{Pos: cur, Choice: parse.Choice{Length: best.Length, Offset: best.Offset}})
		cur += best.Length
	}
	return steps
}

// seedFrequencies resets and repopulates litLen/dist frequencies from steps.
func seedFrequencies(data []byte, steps []parse.Step, litLen, dist *huffman.Encoder) {
	litLen.Reset()
	dist.Reset()
	for _, s := range steps {
		if s.Choice.Length == 0 {
			litLen.AddFreq(int(data[s.Pos]))
			continue
		}
		lsym, _, _ := huffman.LengthSymbol(s.Choice.Length)
		dsym, _, _ := huffman.DistSymbol(s.Choice.Offset)
		litLen.AddFreq(257 + lsym)
		dist.AddFreq(dsym)
	}
	litLen.AddFreq(huffman.EndOfBlock)
}

// converge runs the iterative optimal-parse refinement described in §4.6
// step 1: seed frequencies from a greedy parse, build tentative tables, then
// alternate (parse under the current tables, recount frequencies from the
// new parse, rebuild tables) for convergenceExtraPasses rounds, then parses
// once more under the final rebuilt tables. litLen and dist are left
// holding the code lengths that final parse was made under; the caller
// still recounts frequencies from the returned steps before committing to
// the codewords actually written to the stream (see encodeDynamic).
func converge(data []byte, start, end int, candidates parse.Candidates, litLen, dist *huffman.Encoder) []parse.Step {
	steps := greedyParse(start, end, candidates)
	seedFrequencies(data, steps, litLen, dist)
	buildTentativeTables(litLen, dist)

	for pass := 0; pass < convergenceExtraPasses; pass++ {
		steps = parse.Walk(start, end, parse.Optimal(data, start, end, candidates, litLen.CodeLen, dist.CodeLen))
		seedFrequencies(data, steps, litLen, dist)
		buildTentativeTables(litLen, dist)
	}

	return parse.Walk(start, end, parse.Optimal(data, start, end, candidates, litLen.CodeLen, dist.CodeLen))
}

// buildTentativeTables estimates canonical code lengths from the current
// frequencies, then assigns default lengths to the symbols that came out
// unused (so the next optimal-parse round can still consider emitting
// them). The order matters: EstimateDynamicCodeLens zeroes CodeLen before
// recomputing it, so defaults must be applied after it runs, not before.
func buildTentativeTables(litLen, dist *huffman.Encoder) {
	litLen.EstimateDynamicCodeLens()
	dist.EstimateDynamicCodeLens()
	litLen.ApplyDefaultLengths()
	dist.ApplyDefaultLengths()
}
