// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package huffman

import (
	"container/heap"
	"sort"

	"github.com/woozymasta/deflopt/bitwriter"
)

// Encoder maintains per-symbol frequency, code length, and codeword for a
// single alphabet (literal/length, distance, or the code-length meta
// alphabet), mirroring the parallel-array state layout the teacher uses for
// its sliding-window match tables.
type Encoder struct {
	alphabetSize int
	maxCodeLen   uint
	defaultLen   uint8

	Freq     []uint32
	CodeLen  []uint8
	Codeword []uint16 // reversed (LSB-first) canonical codeword per symbol
}

// New constructs an Encoder for an alphabet of the given size, with codes
// limited to maxCodeLen bits. defaultCodeLen is the length assigned to
// symbols that are unused but must still be considered by the optimal
// parser (see ApplyDefaultLengths).
func New(alphabetSize int, maxCodeLen uint, defaultCodeLen uint8) *Encoder {
	return &Encoder{
		alphabetSize: alphabetSize,
		maxCodeLen:   maxCodeLen,
		defaultLen:   defaultCodeLen,
		Freq:         make([]uint32, alphabetSize),
		CodeLen:      make([]uint8, alphabetSize),
		Codeword:     make([]uint16, alphabetSize),
	}
}

// Reset zeroes frequencies and lengths so the Encoder can be reused across
// sub-blocks without reallocating its backing arrays.
func (e *Encoder) Reset() {
	for i := range e.Freq {
		e.Freq[i] = 0
		e.CodeLen[i] = 0
		e.Codeword[i] = 0
	}
}

// AddFreq bumps the frequency counter for symbol by one.
func (e *Encoder) AddFreq(symbol int) {
	e.Freq[symbol]++
}

// AddFreqN bumps the frequency counter for symbol by n.
func (e *Encoder) AddFreqN(symbol int, n uint32) {
	e.Freq[symbol] += n
}

// ApplyDefaultLengths assigns e.defaultLen to any symbol with zero
// frequency, so the optimal parser can still consider emitting it instead
// of treating it as free (CodeLen 0). Must be called after
// EstimateDynamicCodeLens, which zeroes CodeLen for every symbol before
// recomputing it from Freq — calling this first would just get wiped. The
// final table build (BuildDynamicCodewords) re-prunes unused symbols from
// the actual canonical assignment.
func (e *Encoder) ApplyDefaultLengths() {
	for i := range e.CodeLen {
		if e.Freq[i] == 0 {
			e.CodeLen[i] = e.defaultLen
		}
	}
}

// BuildStaticCodewords accepts pre-filled CodeLen (e.g. the RFC 1951
// §3.2.6 fixed tables) and generates canonical reversed codewords.
func (e *Encoder) BuildStaticCodewords() {
	copy(e.Codeword, canonicalCodewords(e.CodeLen))
}

// heapNode is a min-heap element used to build an optimal (unlimited-length)
// Huffman tree; this is functionally equivalent to the in-place
// Moffat-Katajainen length computation (same optimal lengths), built here
// with a standard binary heap for clarity.
type heapNode struct {
	freq     uint64
	symbol   int // -1 for internal nodes
	depth    uint // not set or read; code lengths are computed without it
	left, right *heapNode
}

type nodeHeap []*heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].symbol < h[j].symbol
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*heapNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EstimateDynamicCodeLens computes canonical code lengths from the current
// frequencies. Symbols with zero frequency receive length 0. When 0 or 1
// symbols have nonzero frequency, that single symbol (or none) receives
// length 1, per §4.2.
func (e *Encoder) EstimateDynamicCodeLens() {
	for i := range e.CodeLen {
		e.CodeLen[i] = 0
	}

	var present []int
	for i, f := range e.Freq {
		if f > 0 {
			present = append(present, i)
		}
	}
	if len(present) == 0 {
		return
	}
	if len(present) == 1 {
		e.CodeLen[present[0]] = 1
		return
	}

	h := make(nodeHeap, 0, len(present))
	leaves := make(map[int]*heapNode, len(present))
	for _, s := range present {
		n := &heapNode{freq: uint64(e.Freq[s]), symbol: s}
		leaves[s] = n
		h = append(h, n)
	}
	heap.Init(&h)

	nextInternalTiebreak := 0
	for h.Len() > 1 {
		a := heap.Pop(&h).(*heapNode)
		b := heap.Pop(&h).(*heapNode)
		parent := &heapNode{
			freq:   a.freq + b.freq,
			symbol: -(nextInternalTiebreak + 1), // keep internal nodes ordered deterministically
			left:   a,
			right:  b,
		}
		nextInternalTiebreak++
		heap.Push(&h, parent)
	}
	root := h[0]
	assignDepth(root, 0, e.CodeLen)

	e.enforceLengthLimit()
}

func assignDepth(n *heapNode, depth uint, out []uint8) {
	if n == nil {
		return
	}
	if n.left == nil && n.right == nil {
		d := depth
		if d == 0 {
			d = 1 // single-symbol subtree edge case
		}
		if d > 255 {
			d = 255
		}
		out[n.symbol] = uint8(d)
		return
	}
	assignDepth(n.left, depth+1, out)
	assignDepth(n.right, depth+1, out)
}

// enforceLengthLimit applies the backward Kraft-sum adjustment described in
// §4.2: clamp overlong symbols to maxCodeLen, then walk the Kraft sum back
// into balance by lengthening the shortest codes or shortening the longest.
func (e *Encoder) enforceLengthLimit() {
	maxLen := e.maxCodeLen

	type sym struct {
		idx int
		len uint8
	}
	var syms []sym
	for i, l := range e.CodeLen {
		if l > 0 {
			syms = append(syms, sym{i, l})
		}
	}
	if len(syms) == 0 {
		return
	}

	overLimit := false
	for i := range syms {
		if uint(syms[i].len) > maxLen {
			syms[i].len = uint8(maxLen)
			overLimit = true
		}
	}
	if !overLimit {
		for _, s := range syms {
			e.CodeLen[s.idx] = s.len
		}
		return
	}

	// k = sum 2^(maxLen - len); a complete code has k == 2^maxLen.
	kraft := func() uint64 {
		var k uint64
		for _, s := range syms {
			k += uint64(1) << (maxLen - uint(s.len))
		}
		return k
	}

	target := uint64(1) << maxLen
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].len != syms[j].len {
			return syms[i].len < syms[j].len
		}
		return syms[i].idx < syms[j].idx
	})

	for {
		k := kraft()
		if k <= target {
			break
		}
		// Lengthen the shortest symbol(s) one step until k fits.
		lengthened := false
		for i := range syms {
			if k <= target {
				break
			}
			if uint(syms[i].len) < maxLen {
				k -= uint64(1) << (maxLen - uint(syms[i].len))
				syms[i].len++
				k += uint64(1) << (maxLen - uint(syms[i].len))
				lengthened = true
			}
		}
		if !lengthened {
			break
		}
		sort.Slice(syms, func(i, j int) bool {
			if syms[i].len != syms[j].len {
				return syms[i].len < syms[j].len
			}
			return syms[i].idx < syms[j].idx
		})
	}

	for {
		k := kraft()
		if k >= target {
			break
		}
		// Shorten the longest symbol one step to use up slack.
		i := len(syms) - 1
		if syms[i].len <= 1 {
			break
		}
		syms[i].len--
		sort.Slice(syms, func(i, j int) bool {
			if syms[i].len != syms[j].len {
				return syms[i].len < syms[j].len
			}
			return syms[i].idx < syms[j].idx
		})
	}

	for i := range e.CodeLen {
		e.CodeLen[i] = 0
	}
	for _, s := range syms {
		e.CodeLen[s.idx] = s.len
	}
}

// BuildDynamicCodewords calls EstimateDynamicCodeLens, enforces the length
// limit, re-prunes any symbol that ended up with an implied default length
// but zero frequency (those only existed to be considered by the optimal
// parser, see ApplyDefaultLengths), and issues canonical codewords.
func (e *Encoder) BuildDynamicCodewords() {
	e.EstimateDynamicCodeLens()
	copy(e.Codeword, canonicalCodewords(e.CodeLen))
}

// canonicalCodewords assigns codewords in order of (length, symbol) as
// consecutive integers, then bit-reverses each into LSB-first form for
// DEFLATE's bitstream. Symbols with length 0 get codeword 0 (unused).
func canonicalCodewords(lens []uint8) []uint16 {
	out := make([]uint16, len(lens))

	maxLen := 0
	var counts [16]int
	for _, l := range lens {
		if int(l) > maxLen {
			maxLen = int(l)
		}
		counts[l]++
	}
	counts[0] = 0

	var nextCode [16]uint16
	code := uint16(0)
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + uint16(counts[bits-1])) << 1
		nextCode[bits] = code
	}

	order := make([]int, 0, len(lens))
	for i := range lens {
		if lens[i] > 0 {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if lens[order[i]] != lens[order[j]] {
			return lens[order[i]] < lens[order[j]]
		}
		return order[i] < order[j]
	})

	for _, sym := range order {
		l := lens[sym]
		c := nextCode[l]
		nextCode[l]++
		out[sym] = reverseBits(c, uint(l))
	}
	return out
}

func reverseBits(v uint16, n uint) uint16 {
	var r uint16
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// WriteCodeword emits the reversed codeword for symbol with its code length.
func (e *Encoder) WriteCodeword(symbol int, w *bitwriter.Writer) error {
	l := e.CodeLen[symbol]
	if l == 0 {
		return errUnencodableSymbol
	}
	return w.PutBits(uint32(e.Codeword[symbol]), uint(l))
}

// GetRawTableSize returns the number of code-length-alphabet symbols that
// must be written (in CLCLOrder), trimming trailing zero lengths but never
// below 4, per §4.2.
func GetRawTableSize(clLens []uint8) int {
	n := NumCodeLenSymbols
	for n > 4 && clLens[CLCLOrder[n-1]] == 0 {
		n--
	}
	return n
}

// GetDefinedVarLengthsCount trims trailing zero lengths (in natural symbol
// order) but never below min (257 for literal/length, 1 for distance).
func GetDefinedVarLengthsCount(lens []uint8, min int) int {
	n := len(lens)
	for n > min && lens[n-1] == 0 {
		n--
	}
	return n
}
