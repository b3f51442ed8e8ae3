// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package huffman

import "github.com/woozymasta/deflopt/bitwriter"

// Run-length encoding of a symbol-length sequence using the 19-symbol
// code-length alphabet (§4.2): symbol 16 copies the previous non-zero
// length (2 extra bits, repeat 3-6); symbol 17 is a zero run (3 extra bits,
// 3-10); symbol 18 is a longer zero run (7 extra bits, 11-138); anything
// else is emitted raw.
//
// Mask bits (Open Question resolved in SPEC_FULL.md §3 / DESIGN.md):
//
//	bit 0 (1):  symbol 16 enabled
//	bit 1 (2):  symbol 17 enabled
//	bit 2 (4):  symbol 18 enabled
//	bit 3 (8):  allow splitting a run of exactly 7 zeros into 4+3 (two
//	            symbol-17 runs) instead of a single run
//	bit 4 (16): allow splitting a run of exactly 8 zeros into 4+4
//
// The estimator and emitter enumerate identical runs; RLEMasksToTry lists
// the small set of masks BlockEncoder searches over.
var RLEMasksToTry = []int{0, 1, 2, 3, 4, 5, 6, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31}

const (
	maskSym16 = 1 << 0
	maskSym17 = 1 << 1
	maskSym18 = 1 << 2
	maskSplit7 = 1 << 3
	maskSplit8 = 1 << 4
)

// rleOp is one emitted unit: either a raw code-length symbol or one of the
// repeat codes with its extra-bit value.
type rleOp struct {
	symbol int
	extra  int
	nbits  uint
}

// planRLE walks lens and produces the run decomposition under mask,
// shared by EstimateRLECost and EmitRLE so they can never disagree.
func planRLE(lens []uint8, mask int) []rleOp {
	var ops []rleOp
	n := len(lens)
	i := 0

	for i < n {
		cur := lens[i]
		runLen := 1
		for i+runLen < n && lens[i+runLen] == cur {
			runLen++
		}

		if cur == 0 {
			ops, i = emitZeroRun(ops, runLen, mask, i)
			continue
		}

		// A maximal run of equal non-zero lengths: one raw symbol to
		// establish the length, then as many symbol-16 repeats as the mask
		// and run length allow.
		ops = append(ops, rleOp{symbol: int(cur), nbits: 0})
		remaining := runLen - 1
		for remaining > 0 {
			if mask&maskSym16 != 0 && remaining >= 3 {
				take := remaining
				if take > 6 {
					take = 6
				}
				ops = append(ops, rleOp{symbol: 16, extra: take - 3, nbits: 2})
				remaining -= take
			} else {
				ops = append(ops, rleOp{symbol: int(cur), nbits: 0})
				remaining--
			}
		}

		i += runLen
	}

	return ops
}

// emitZeroRun decomposes a run of `runLen` zero lengths starting at index i
// into symbol-17/18/raw ops honoring the enable bits and the 7/8 split
// optimizations, and returns the advanced index.
func emitZeroRun(ops []rleOp, runLen int, mask int, i int) ([]rleOp, int) {
	remaining := runLen

	// The 7-into-4+3 / 8-into-4+4 optimizations only ever apply to a whole
	// untouched run, so check them once up front rather than inside the
	// greedy loop below.
	if mask&maskSym17 != 0 {
		if remaining == 7 && mask&maskSplit7 != 0 {
			ops = append(ops, rleOp{symbol: 17, extra: 1, nbits: 3}) // 4
			ops = append(ops, rleOp{symbol: 17, extra: 0, nbits: 3}) // 3
			return ops, i + 7
		}
		if remaining == 8 && mask&maskSplit8 != 0 {
			ops = append(ops, rleOp{symbol: 17, extra: 1, nbits: 3}) // 4
			ops = append(ops, rleOp{symbol: 17, extra: 1, nbits: 3}) // 4
			return ops, i + 8
		}
	}

	for remaining > 0 {
		switch {
		case mask&maskSym18 != 0 && remaining >= 11:
			take := remaining
			if take > 138 {
				take = 138
			}
			ops = append(ops, rleOp{symbol: 18, extra: take - 11, nbits: 7})
			remaining -= take
			i += take
		case mask&maskSym17 != 0 && remaining >= 3:
			take := remaining
			if take > 10 {
				take = 10
			}
			ops = append(ops, rleOp{symbol: 17, extra: take - 3, nbits: 3})
			remaining -= take
			i += take
		default:
			ops = append(ops, rleOp{symbol: 0, nbits: 0})
			remaining--
			i++
		}
	}

	return ops, i
}

// EstimateRLECost returns the total bit cost of emitting lens under mask
// using the code-length Huffman table clEnc, without actually writing
// anything. Must enumerate runs identically to EmitRLE.
func EstimateRLECost(lens []uint8, mask int, clEnc *Encoder) int {
	ops := planRLE(lens, mask)
	bits := 0
	for _, op := range ops {
		bits += int(clEnc.CodeLen[op.symbol]) + int(op.nbits)
	}
	return bits
}

// CountRLESymbols tallies code-length-alphabet symbol frequencies for lens
// under mask into freqOut (len == NumCodeLenSymbols), for building the
// code-length Huffman table itself.
func CountRLESymbols(lens []uint8, mask int, freqOut []uint32) {
	ops := planRLE(lens, mask)
	for _, op := range ops {
		freqOut[op.symbol]++
	}
}

// EmitRLE writes lens under mask using clEnc's codewords.
func EmitRLE(lens []uint8, mask int, clEnc *Encoder, w *bitwriter.Writer) error {
	ops := planRLE(lens, mask)
	for _, op := range ops {
		if err := clEnc.WriteCodeword(op.symbol, w); err != nil {
			return err
		}
		if op.nbits > 0 {
			if err := w.PutBits(uint32(op.extra), op.nbits); err != nil {
				return err
			}
		}
	}
	return nil
}
