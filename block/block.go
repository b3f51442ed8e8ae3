// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package block implements the BlockEncoder component of spec.md §4.6:
// static/dynamic Huffman selection, the optimal-parse convergence loop, the
// code-length RLE mask search, and the stored-block fallback.
package block

import (
	"github.com/woozymasta/deflopt/bitwriter"
	"github.com/woozymasta/deflopt/huffman"
	"github.com/woozymasta/deflopt/parse"
)

const (
	btypeStored  = 0
	btypeStatic  = 1
	btypeDynamic = 2
)

// Encoder holds the reusable Huffman table state for one stream's
// sub-block encoding, mirroring compress9x.go's per-stream orchestrator
// that owns its sub-component handles across many blocks.
type Encoder struct {
	litLen *huffman.Encoder
	dist   *huffman.Encoder
	cl     *huffman.Encoder

	staticLitLen *huffman.Encoder
	staticDist   *huffman.Encoder

	// Stats mirrors the verbose counters compress9x.go keeps per stream,
	// surfaced to the CLI's -v logging (SPEC_FULL.md §1 Logging).
	Stats Stats
}

// Stats accumulates BlockEncoder decisions across an entire stream, for the
// CLI's verbose diagnostics.
type Stats struct {
	DynamicBlocks int
	StaticBlocks  int
	StoredBlocks  int
	RLEMaskUsed   []int // one entry per dynamic block, the mask that won
}

// NewEncoder constructs an Encoder with its Huffman tables pre-allocated.
func NewEncoder() *Encoder {
	e := &Encoder{
		litLen:       huffman.New(huffman.MaxLitLenSymbols, huffman.MaxLitLenCodeLength, 9),
		dist:         huffman.New(huffman.MaxDistSymbols, huffman.MaxDistCodeLength, 6),
		cl:           huffman.New(huffman.NumCodeLenSymbols, huffman.MaxCodeLenCodeLength, 0),
		staticLitLen: huffman.New(huffman.MaxLitLenSymbols, huffman.MaxLitLenCodeLength, 0),
		staticDist:   huffman.New(huffman.MaxDistSymbols, huffman.MaxDistCodeLength, 0),
	}
	copy(e.staticLitLen.CodeLen, huffman.StaticLitLenLengths[:])
	copy(e.staticDist.CodeLen, huffman.StaticDistLengths[:])
	e.staticLitLen.BuildStaticCodewords()
	e.staticDist.BuildStaticCodewords()
	return e
}

// bodyCost sums the bit cost of emitting steps plus one end-of-block
// symbol, under codeLenL/codeLenD.
func bodyCost(steps []parse.Step, data []byte, codeLenL, codeLenD []uint8) int {
	cost := int(codeLenL[huffman.EndOfBlock])
	for _, s := range steps {
		if s.Choice.Length == 0 {
			cost += parse.LiteralCost(codeLenL, data[s.Pos])
		} else {
			cost += parse.MatchCost(codeLenL, codeLenD, s.Choice.Length, s.Choice.Offset)
		}
	}
	return cost
}

// writeBody emits the literal/match codewords for steps followed by the
// end-of-block symbol.
func writeBody(w *bitwriter.Writer, steps []parse.Step, data []byte, litLen, dist *huffman.Encoder) error {
	for _, s := range steps {
		if s.Choice.Length == 0 {
			if err := litLen.WriteCodeword(int(data[s.Pos]), w); err != nil {
				return err
			}
			continue
		}
		lsym, lextra, lextraBits := huffman.LengthSymbol(s.Choice.Length)
		if err := litLen.WriteCodeword(257+lsym, w); err != nil {
			return err
		}
		if lextraBits > 0 {
			if err := w.PutBits(uint32(lextra), lextraBits); err != nil {
				return err
			}
		}
		dsym, dextra, dextraBits := huffman.DistSymbol(s.Choice.Offset)
		if err := dist.WriteCodeword(dsym, w); err != nil {
			return err
		}
		if dextraBits > 0 {
			if err := w.PutBits(uint32(dextra), dextraBits); err != nil {
				return err
			}
		}
	}
	return litLen.WriteCodeword(huffman.EndOfBlock, w)
}

// applyDistanceCodeWorkaround ensures at least two distance symbols carry
// non-zero frequency before the final table build, working around a
// historical decoder that rejects a distance table with fewer than two
// codes (§4.6 step 3).
func applyDistanceCodeWorkaround(dist *huffman.Encoder) {
	nonzero := 0
	last := -1
	for i, f := range dist.Freq {
		if f > 0 {
			nonzero++
			last = i
		}
	}
	if nonzero >= 2 {
		return
	}
	if nonzero == 0 {
		dist.Freq[0] = 1
		dist.Freq[1] = 1
		return
	}
	other := 0
	if last == 0 {
		other = 1
	}
	dist.Freq[other] = 1
}

// EncodeSubBlock writes one sub-block of data[start:end] to w, choosing
// between static and dynamic Huffman per §4.6, and falls back to one or
// more stored blocks if the compressed form is not smaller than raw. final
// reports whether this is the last sub-block of the entire stream (sets
// BFINAL).
func (e *Encoder) EncodeSubBlock(w *bitwriter.Writer, data []byte, start, end int, candidates parse.Candidates, final bool) error {
	startBits := w.BitLength()
	cp := w.Checkpoint()

	greedySteps := greedyParse(start, end, candidates)
	seedFrequencies(data, greedySteps, e.litLen, e.dist)
	buildTentativeTables(e.litLen, e.dist)

	dynamicEstimate := bodyCost(greedySteps, data, e.litLen.CodeLen, e.dist.CodeLen) + approxHeaderOverhead(e.litLen, e.dist)
	staticEstimate := bodyCost(greedySteps, data, e.staticLitLen.CodeLen, e.staticDist.CodeLen)

	var err error
	if staticEstimate <= dynamicEstimate {
		err = e.encodeStatic(w, data, start, end, candidates, final)
	} else {
		err = e.encodeDynamic(w, data, start, end, candidates, final)
	}
	if err != nil {
		return err
	}

	rawBits := (end - start) * 8
	consumed := w.BitLength() - startBits
	if consumed < rawBits {
		return nil
	}

	w.Restore(cp)
	e.Stats.StoredBlocks++
	return writeStoredBlocks(w, data, start, end, final)
}

// approxHeaderOverhead estimates the dynamic block's table overhead (HLIT/
// HDIST/HCLEN fields plus a representative RLE encoding of the code-length
// sequence) for the early static-vs-dynamic decision, before the real mask
// search runs.
func approxHeaderOverhead(litLen, dist *huffman.Encoder) int {
	litCount := huffman.GetDefinedVarLengthsCount(litLen.CodeLen, 257)
	distCount := huffman.GetDefinedVarLengthsCount(dist.CodeLen, 1)
	combined := make([]uint8, 0, litCount+distCount)
	combined = append(combined, litLen.CodeLen[:litCount]...)
	combined = append(combined, dist.CodeLen[:distCount]...)

	const approxMask = 7 // symbols 16/17/18 enabled, no split optimizations
	scratch := huffman.New(huffman.NumCodeLenSymbols, huffman.MaxCodeLenCodeLength, 0)
	huffman.CountRLESymbols(combined, approxMask, scratch.Freq)
	scratch.EstimateDynamicCodeLens()

	return 5 + 5 + 4 + huffman.GetRawTableSize(scratch.CodeLen)*3 + huffman.EstimateRLECost(combined, approxMask, scratch)
}

func (e *Encoder) encodeStatic(w *bitwriter.Writer, data []byte, start, end int, candidates parse.Candidates, final bool) error {
	choices := parse.Optimal(data, start, end, candidates, e.staticLitLen.CodeLen, e.staticDist.CodeLen)
	steps := parse.Walk(start, end, choices)
	steps = parse.DowngradeExpensiveMatches(data, steps, e.staticLitLen.CodeLen, e.staticDist.CodeLen)

	bfinal := uint32(0)
	if final {
		bfinal = 1
	}
	if err := w.PutBits(bfinal, 1); err != nil {
		return err
	}
	if err := w.PutBits(btypeStatic, 2); err != nil {
		return err
	}

	e.Stats.StaticBlocks++
	return writeBody(w, steps, data, e.staticLitLen, e.staticDist)
}

func (e *Encoder) encodeDynamic(w *bitwriter.Writer, data []byte, start, end int, candidates parse.Candidates, final bool) error {
	steps := converge(data, start, end, candidates, e.litLen, e.dist)
	steps = parse.DowngradeExpensiveMatches(data, steps, e.litLen.CodeLen, e.dist.CodeLen)

	seedFrequencies(data, steps, e.litLen, e.dist)
	applyDistanceCodeWorkaround(e.dist)
	e.litLen.BuildDynamicCodewords()
	e.dist.BuildDynamicCodewords()

	litCount := huffman.GetDefinedVarLengthsCount(e.litLen.CodeLen, 257)
	distCount := huffman.GetDefinedVarLengthsCount(e.dist.CodeLen, 1)
	combined := make([]uint8, 0, litCount+distCount)
	combined = append(combined, e.litLen.CodeLen[:litCount]...)
	combined = append(combined, e.dist.CodeLen[:distCount]...)

	bestMask, bestCost := huffman.RLEMasksToTry[0], -1
	for _, mask := range huffman.RLEMasksToTry {
		scratch := huffman.New(huffman.NumCodeLenSymbols, huffman.MaxCodeLenCodeLength, 0)
		huffman.CountRLESymbols(combined, mask, scratch.Freq)
		scratch.EstimateDynamicCodeLens()
		cost := huffman.GetRawTableSize(scratch.CodeLen)*3 + huffman.EstimateRLECost(combined, mask, scratch)
		if bestCost == -1 || cost < bestCost {
			bestCost = cost
			bestMask = mask
		}
	}
	e.Stats.RLEMaskUsed = append(e.Stats.RLEMaskUsed, bestMask)

	e.cl.Reset()
	huffman.CountRLESymbols(combined, bestMask, e.cl.Freq)
	e.cl.BuildDynamicCodewords()

	hlit := litCount - 257
	hdist := distCount - 1
	rawTableSize := huffman.GetRawTableSize(e.cl.CodeLen)
	hclen := rawTableSize - 4

	bfinal := uint32(0)
	if final {
		bfinal = 1
	}
	if err := w.PutBits(bfinal, 1); err != nil {
		return err
	}
	if err := w.PutBits(btypeDynamic, 2); err != nil {
		return err
	}
	if err := w.PutBits(uint32(hlit), 5); err != nil {
		return err
	}
	if err := w.PutBits(uint32(hdist), 5); err != nil {
		return err
	}
	if err := w.PutBits(uint32(hclen), 4); err != nil {
		return err
	}
	for i := 0; i < rawTableSize; i++ {
		sym := huffman.CLCLOrder[i]
		if err := w.PutBits(uint32(e.cl.CodeLen[sym]), 3); err != nil {
			return err
		}
	}
	if err := huffman.EmitRLE(combined, bestMask, e.cl, w); err != nil {
		return err
	}

	e.Stats.DynamicBlocks++
	return writeBody(w, steps, data, e.litLen, e.dist)
}
