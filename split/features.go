// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package split implements the BlockSplitter component of spec.md §4.5: a
// recursive search for byte offsets within a block where switching Huffman
// tables pays for its own overhead.
package split

import "github.com/woozymasta/deflopt/parse"

// NumFeatures is the size of the per-chunk histogram: 16 literal buckets
// (high nibble bits 2-3, low bits 0-1) plus 2 match-length buckets.
const NumFeatures = 18

const (
	shortMatchFeature = 16
	longMatchFeature  = 17
	shortMatchMaxLen  = 9
)

// literalFeature maps a literal byte to its histogram bucket: bits 6-7 pick
// one of 4 high groups, bits 0-1 pick one of 4 low groups, giving 16 buckets.
func literalFeature(b byte) int {
	hi := (b >> 6) & 0x3
	lo := b & 0x3
	return int(hi)*4 + int(lo)
}

// matchFeature maps a match length to the short/long bucket.
func matchFeature(length int) int {
	if length < shortMatchMaxLen {
		return shortMatchFeature
	}
	return longMatchFeature
}

// histogram accumulates the 18-feature vector over a run of parse.Step.
type histogram [NumFeatures]int

func (h *histogram) addLiteral(b byte) {
	h[literalFeature(b)]++
}

func (h *histogram) addMatch(length int) {
	h[matchFeature(length)]++
}

func (h *histogram) total() int {
	n := 0
	for _, v := range h {
		n += v
	}
	return n
}

func (h *histogram) add(other histogram) {
	for i := range h {
		h[i] += other[i]
	}
}

func (h *histogram) sub(other histogram) {
	for i := range h {
		h[i] -= other[i]
	}
}

// buildHistogram accumulates the feature histogram for steps whose Pos lies
// in [a, b).
func buildHistogram(data []byte, steps []parse.Step, a, b int) histogram {
	var h histogram
	for _, s := range steps {
		if s.Pos < a || s.Pos >= b {
			continue
		}
		if s.Choice.Length == 0 {
			h.addLiteral(data[s.Pos])
		} else {
			h.addMatch(s.Choice.Length)
		}
	}
	return h
}
