// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package parse implements the OptimalParser component of spec.md §4.4: a
// backward dynamic-programming match selector that minimizes encoded bit
// cost under a given pair of literal/length and distance code-length
// tables, plus the post-optimization match-to-literal downgrade pass.
package parse

import "github.com/woozymasta/deflopt/huffman"

// LiteralCost returns the bit cost of emitting literal byte b under codeLenL.
func LiteralCost(codeLenL []uint8, b byte) int {
	return int(codeLenL[b])
}

// MatchCost returns the bit cost of emitting a (length, offset) match under
// the current literal/length and distance code-length tables: the
// length-symbol codeword plus its extra bits, plus the distance-symbol
// codeword plus its extra bits, per §4.4.
func MatchCost(codeLenL, codeLenD []uint8, length, offset int) int {
	lsym, _, lextra := huffman.LengthSymbol(length)
	dsym, _, dextra := huffman.DistSymbol(offset)
	return int(codeLenL[257+lsym]) + int(lextra) + int(codeLenD[dsym]) + int(dextra)
}
