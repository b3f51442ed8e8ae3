// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package stream implements the StreamDriver component of spec.md §4.7 and
// the Framing byte layouts of §6: a pull-based state machine that turns a
// sequence of input chunks into a conformant deflate/zlib/gzip stream,
// running MatchFinder, BlockSplitter and BlockEncoder once per window.
package stream

import (
	"encoding/binary"
	"errors"

	"github.com/coreos/pkg/capnslog"

	"github.com/woozymasta/deflopt/bitwriter"
	"github.com/woozymasta/deflopt/block"
	"github.com/woozymasta/deflopt/parse"
	"github.com/woozymasta/deflopt/split"
	"github.com/woozymasta/deflopt/suffixarray"
)

var log = capnslog.NewPackageLogger("github.com/woozymasta/deflopt", "stream")

const (
	// HistorySize is the sliding-window history carried across blocks.
	HistorySize = 32768

	MinMaxBlockSize     = 32768
	MaxMaxBlockSize     = 2097152
	DefaultMaxBlockSize = 1048576

	// bodyScratchSlack gives EncodeSubBlock room for worst-case expansion
	// (stored-block fallback overhead) before a drain is forced.
	bodyScratchSlack = 4096
)

// State is a stage of the pull-based state machine, per §4.7.
type State int

const (
	StateHeaderPending State = iota
	StateBody
	StateFooterPending
	StateDone
)

// ErrClosed is returned by Compress after the stream has reached StateDone.
var ErrClosed = errors.New("stream: driver already finalized")

// Driver is one stream's compressor context: it owns the sliding window,
// the match finder, the block splitter and encoder, and the pull-based
// output staging buffer. All state for a stream lives here; concurrent
// Drivers never share mutable state (§5).
type Driver struct {
	framing      Framing
	level        int
	maxBlockSize int

	window     []byte // [0:HistorySize) history tail-aligned, [HistorySize:HistorySize+maxBlockSize) new bytes
	historyLen int
	newLen     int

	hasDictionary bool
	dictID        uint32

	mf        *suffixarray.MatchFinder
	splitter  *split.Splitter
	enc       *block.Encoder
	sum       interface{ Write([]byte) (int, error); Sum32() uint32 }

	bw      *bitwriter.Writer
	scratch []byte

	pool BufferPool

	state         State
	headerWritten bool
	pendingOut    []byte

	totalIn  uint64
	totalOut uint64
}

// New constructs a Driver for the given framing, acquiring its window and
// scratch buffers from DefaultBufferPool. maxBlockSize is clamped to
// [MinMaxBlockSize, MaxMaxBlockSize]; 0 means DefaultMaxBlockSize.
func New(framing Framing, maxBlockSize int) *Driver {
	return NewWithPool(framing, maxBlockSize, DefaultBufferPool)
}

// NewWithPool is like New but acquires the window and scratch buffers from
// a caller-supplied BufferPool instead of the package default, per §5's
// pluggable allocator.
func NewWithPool(framing Framing, maxBlockSize int, pool BufferPool) *Driver {
	switch {
	case maxBlockSize == 0:
		maxBlockSize = DefaultMaxBlockSize
	case maxBlockSize < MinMaxBlockSize:
		maxBlockSize = MinMaxBlockSize
	case maxBlockSize > MaxMaxBlockSize:
		maxBlockSize = MaxMaxBlockSize
	}

	d := &Driver{
		framing:      framing,
		maxBlockSize: maxBlockSize,
		pool:         pool,
		window:       pool.Get(HistorySize + maxBlockSize),
		mf:           suffixarray.NewMatchFinder(),
		splitter:     split.New(),
		enc:          block.NewEncoder(),
		sum:          newChecksum(framing),
	}
	d.scratch = pool.Get(maxBlockSize + bodyScratchSlack)
	d.bw = bitwriter.New(d.scratch, 0, len(d.scratch))
	return d
}

// Close releases the Driver's window and scratch buffers back to its
// BufferPool. The Driver must not be used afterward. Safe to call
// multiple times; a no-op after the first call.
func (d *Driver) Close() {
	if d.pool == nil {
		return
	}
	d.pool.Put(d.window)
	d.pool.Put(d.scratch)
	d.window = nil
	d.scratch = nil
	d.pool = nil
}

// SetLevel records a 1-9 compression-level hint used only for the zlib
// header's FLEVEL field (§6); it has no effect on the encoding itself,
// which always runs the optimal parse regardless of level. Must be called
// before the first Compress call.
func (d *Driver) SetLevel(level int) {
	d.level = level
}

// Compress feeds nextIn into the stream. finalize signals that no more
// input will ever be submitted after this call; once set, any remainder of
// nextIn is still accepted, but the stream transitions toward StateDone
// once every byte has been consumed and flushed. Returns the number of
// bytes consumed from nextIn (less than len(nextIn) means the caller must
// call Drain and re-invoke Compress with the remainder).
func (d *Driver) Compress(nextIn []byte, finalize bool) (consumed int, err error) {
	if d.state == StateDone {
		return 0, ErrClosed
	}

	if d.state == StateHeaderPending {
		d.flushHeader()
		d.state = StateBody
	}

	room := d.maxBlockSize - d.newLen
	n := len(nextIn)
	if n > room {
		n = room
	}
	if n > 0 {
		dst := d.window[HistorySize+d.newLen : HistorySize+d.newLen+n]
		copy(dst, nextIn[:n])
		d.sum.Write(nextIn[:n])
		d.newLen += n
		d.totalIn += uint64(n)
	}

	full := d.newLen == d.maxBlockSize
	lastChunk := finalize && n == len(nextIn)

	if full || (lastChunk && d.newLen > 0) || (lastChunk && d.state == StateBody) {
		if err := d.processBlock(lastChunk); err != nil {
			return n, err
		}
	}

	if lastChunk {
		d.flushFooter()
		d.state = StateDone
	}

	return n, nil
}

// Drain copies staged output into buf, returning how many bytes were
// copied (the pull-based avail_out side of §4.7).
func (d *Driver) Drain(buf []byte) int {
	n := copy(buf, d.pendingOut)
	d.pendingOut = d.pendingOut[n:]
	d.totalOut += uint64(n)
	return n
}

// Pending reports how many staged output bytes remain to be drained.
func (d *Driver) Pending() int {
	return len(d.pendingOut)
}

// Done reports whether the stream has reached StateDone and fully drained.
func (d *Driver) Done() bool {
	return d.state == StateDone && len(d.pendingOut) == 0
}

// Stats returns the BlockEncoder's per-stream block-type counters, for the
// CLI's verbose diagnostics (SPEC_FULL.md §3.1).
func (d *Driver) Stats() block.Stats {
	return d.enc.Stats
}

// TotalIn reports the number of uncompressed bytes submitted so far.
func (d *Driver) TotalIn() uint64 {
	return d.totalIn
}

// TotalOut reports the number of compressed bytes drained so far.
func (d *Driver) TotalOut() uint64 {
	return d.totalOut
}

func (d *Driver) flushHeader() {
	var hdr []byte
	hdr = writeHeader(hdr, d.framing, d.level, d.hasDictionary)
	if d.framing == Zlib && d.hasDictionary {
		var id [4]byte
		binary.BigEndian.PutUint32(id[:], d.dictID)
		hdr = append(hdr, id[:]...)
	}
	d.pendingOut = append(d.pendingOut, hdr...)
	d.headerWritten = true
}

func (d *Driver) flushFooter() {
	d.drainBitwriter(true)
	d.pendingOut = writeFooter(d.pendingOut, d.framing, d.sum.Sum32(), d.totalIn)
	d.state = StateFooterPending
}

// processBlock runs MatchFinder + BlockSplitter + BlockEncoder over the
// current new-bytes region, stages the produced bits, and shifts the
// carried-forward history back into window[0:HistorySize].
func (d *Driver) processBlock(final bool) error {
	active := d.window[HistorySize-d.historyLen : HistorySize+d.newLen]
	d.mf.Build(active)

	start := d.historyLen
	end := d.historyLen + d.newLen

	// Walk the history (carried bytes or dictionary) first so its
	// positions are attached to the interval tree and can be matched.
	d.mf.Skip(0, start)
	rows := d.mf.FindAll(start, end)
	candidates := make(parse.Candidates, len(rows))
	copy(candidates, rows)

	boundaries := d.subBlockBoundaries(active, candidates, start, end)

	for i, b := range boundaries {
		isLastSub := final && i == len(boundaries)-1
		// candidates is aligned so row 0 is position `start`; re-slice per
		// sub-block so row 0 lines up with b.start, as parse.Optimal and
		// greedyParse both expect (candidates[pos-rangeStart]).
		sub := candidates[b.start-start : b.end-start]
		if err := d.enc.EncodeSubBlock(d.bw, active, b.start, b.end, sub, isLastSub); err != nil {
			return err
		}
		d.maybeDrainBitwriter()
	}

	log.Debugf("block done: range=[%d,%d) subblocks=%d static=%d dynamic=%d stored=%d",
		start, end, len(boundaries), d.enc.Stats.StaticBlocks, d.enc.Stats.DynamicBlocks, d.enc.Stats.StoredBlocks)

	carry := len(active)
	if carry > HistorySize {
		carry = HistorySize
	}
	copy(d.window[HistorySize-carry:HistorySize], active[len(active)-carry:])
	d.historyLen = carry
	d.newLen = 0

	return nil
}

type subBlockRange struct{ start, end int }

// subBlockBoundaries runs the BlockSplitter over the new-bytes portion of
// active (offset by start) and translates its offsets back into absolute
// positions within active.
func (d *Driver) subBlockBoundaries(active []byte, candidates parse.Candidates, start, end int) []subBlockRange {
	newBytes := active[start:end]
	newSteps := greedyStepsForSplit(newBytes, candidates)
	splits := d.splitter.Find(newBytes, newSteps)

	var out []subBlockRange
	prev := start
	for _, s := range splits {
		abs := start + s
		if abs > prev {
			out = append(out, subBlockRange{start: prev, end: abs})
			prev = abs
		}
	}
	if len(out) == 0 {
		out = append(out, subBlockRange{start: start, end: end})
	}
	return out
}

// greedyStepsForSplit produces a cheap greedy parse over newBytes (local
// positions) so BlockSplitter has literal/match steps to histogram,
// without committing to the final optimal parse (each sub-block reparses
// optimally once its own boundaries are fixed).
func greedyStepsForSplit(newBytes []byte, candidates parse.Candidates) []parse.Step {
	var steps []parse.Step
	cur := 0
	n := len(newBytes)
	for cur < n {
		row := candidates[cur]
		length := 0
		off := 0
		if row[0].Length >= suffixarray.MinMatch {
			length, off = row[0].Length, row[0].Offset
			if cur+length > n {
				length = n - cur
			}
		}
		if length < suffixarray.MinMatch {
			steps = append(steps, parse.Step{Pos: cur, Choice: parse.Choice{Length: 0}})
			cur++
			continue
		}
		steps = append(steps, parse.Step{Pos: cur, Choice: parse.Choice{Length: length, Offset: off}})
		cur += length
	}
	return steps
}

// maybeDrainBitwriter stages fully-written bytes into pendingOut whenever
// the scratch buffer holds any, so each sub-block starts with the whole
// scratch buffer free; any sub-byte pending bits are carried across the
// reset (mirrors zlib's bi_buf/bi_valid handling).
func (d *Driver) maybeDrainBitwriter() {
	off, ok := d.bw.Offset()
	if ok && off == 0 {
		return
	}
	d.drainBitwriter(false)
}

func (d *Driver) drainBitwriter(final bool) {
	if final {
		_ = d.bw.FlushBits()
	}
	d.pendingOut = append(d.pendingOut, d.bw.Bytes()...)

	value, n := d.bw.PendingBits()
	d.bw.Reset(d.scratch, 0, len(d.scratch))
	d.bw.SeedPending(value, n)
}
