// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package parse

// DowngradeExpensiveMatches walks steps and replaces any match whose
// emission cost (under the now-final code lengths) exceeds the sum of
// literal costs for the same run with that run of literals instead — but
// only when every one of those literals has a defined (nonzero) code
// length, per §4.4's post-optimization pass. Returns a new step slice (the
// input is not mutated in place since a downgraded match expands into
// multiple literal steps).
func DowngradeExpensiveMatches(data []byte, steps []Step, codeLenL, codeLenD []uint8) []Step {
	out := make([]Step, 0, len(steps))

	for _, s := range steps {
		if s.Choice.Length == 0 {
			out = append(out, s)
			continue
		}

		matchCost := MatchCost(codeLenL, codeLenD, s.Choice.Length, s.Choice.Offset)

		litCost := 0
		allDefined := true
		for k := 0; k < s.Choice.Length; k++ {
			b := data[s.Pos+k]
			if codeLenL[b] == 0 {
				allDefined = false
				break
			}
			litCost += LiteralCost(codeLenL, b)
		}

		if allDefined && matchCost > litCost {
			for k := 0; k < s.Choice.Length; k++ {
				out = append(out, Step{Pos: s.Pos + k, Choice: Choice{Length: 0}})
			}
			continue
		}

		out = append(out, s)
	}

	return out
}
