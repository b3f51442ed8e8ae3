// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package memoryapi implements the one-shot memory_compress / memory_bound
// wrappers of spec.md §6 on top of stream.Driver, the way
// decompress_reader.go wraps the core decompress loop in a thin
// convenience layer over a lower-level stateful API.
package memoryapi

import (
	"errors"

	"github.com/woozymasta/deflopt/split"
	"github.com/woozymasta/deflopt/stream"
)

// ErrBufferTooSmall is returned by Compress when dst's capacity is less
// than Bound(len(src), framing, maxBlockSize).
var ErrBufferTooSmall = errors.New("memoryapi: destination buffer too small")

const (
	storedChunkSize     = 65535 // maxStoredBlockSize, mirrored from block/stored.go
	storedBlockOverhead = 5     // BFINAL/BTYPE + align(1) + LEN/NLEN(4)
)

// Bound returns an upper bound on the compressed size of an inSize-byte
// input under the given framing and max block size: the worst case where
// every sub-block (including BlockSplitter's maximum possible split count)
// falls back to stored blocks, plus the framing's fixed header/footer
// overhead. Never an underestimate; callers allocating a Compress
// destination from this value never see ErrBufferTooSmall.
func Bound(inSize int, framing stream.Framing, maxBlockSize int) int {
	maxBlockSize = clampMaxBlockSize(maxBlockSize)

	blocks := 1
	if inSize > 0 {
		blocks = (inSize + maxBlockSize - 1) / maxBlockSize
	}

	// Worst case per block: the plain stored-chunk count for a full block,
	// plus up to split.MaxSplits extra small trailing chunks if every
	// possible split point also forces its own short stored chunk.
	chunksPerBlock := (maxBlockSize+storedChunkSize-1)/storedChunkSize + split.MaxSplits
	bound := inSize + blocks*chunksPerBlock*storedBlockOverhead

	switch framing {
	case stream.Zlib:
		bound += 2 + 4 + 4 // CMF/FLG + worst-case DICTID + Adler-32 footer
	case stream.Gzip:
		bound += 10 + 8 // fixed header + CRC-32/ISIZE footer
	}
	return bound
}

func clampMaxBlockSize(n int) int {
	switch {
	case n == 0:
		return stream.DefaultMaxBlockSize
	case n < stream.MinMaxBlockSize:
		return stream.MinMaxBlockSize
	case n > stream.MaxMaxBlockSize:
		return stream.MaxMaxBlockSize
	default:
		return n
	}
}

// Compress is the one-shot wrapper: it runs a single stream.Driver to
// completion over src and writes the compressed bytes into dst, returning
// the number of bytes written. dst must have capacity at least
// Bound(len(src), framing, maxBlockSize); empty src still produces the
// minimal empty-stream encoding and returns a real byte count, never a
// sentinel (spec.md §9 Open Question, resolved in SPEC_FULL.md §3).
func Compress(dst []byte, src []byte, framing stream.Framing, maxBlockSize int) (int, error) {
	need := Bound(len(src), framing, maxBlockSize)
	if cap(dst) < need {
		return 0, ErrBufferTooSmall
	}
	dst = dst[:0]

	d := stream.New(framing, maxBlockSize)

	var scratch [4096]byte
	remaining := src
	for {
		n, err := d.Compress(remaining, true)
		if err != nil {
			return 0, err
		}
		remaining = remaining[n:]

		for d.Pending() > 0 {
			m := d.Drain(scratch[:])
			dst = append(dst, scratch[:m]...)
		}

		if d.Done() {
			break
		}
	}
	return len(dst), nil
}
