// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package block

import "github.com/woozymasta/deflopt/bitwriter"

// maxStoredBlockSize is RFC 1951's stored-block length limit (LEN is a
// 16-bit field).
const maxStoredBlockSize = 65535

// writeStoredBlocks emits data[start:end] as one or more BTYPE=00 blocks,
// each byte-aligned with a 16-bit LEN and its one's-complement NLEN, per
// §4.6 step 5. Only the last stored block carries the caller's BFINAL;
// every earlier one is BFINAL=0 regardless of the caller's intent, since
// the stream is not actually ending until the true last chunk is written.
// An empty range still emits a single zero-length stored block so a
// finalizing caller always terminates the bitstream with a BFINAL=1 block.
func writeStoredBlocks(w *bitwriter.Writer, data []byte, start, end int, final bool) error {
	if start == end {
		return writeOneStoredBlock(w, nil, final)
	}

	for pos := start; pos < end; pos += maxStoredBlockSize {
		chunkEnd := pos + maxStoredBlockSize
		if chunkEnd > end {
			chunkEnd = end
		}
		isLast := chunkEnd == end && final
		if err := writeOneStoredBlock(w, data[pos:chunkEnd], isLast); err != nil {
			return err
		}
	}
	return nil
}

// writeOneStoredBlock emits a single stored block containing chunk.
func writeOneStoredBlock(w *bitwriter.Writer, chunk []byte, isLast bool) error {
	bfinal := uint32(0)
	if isLast {
		bfinal = 1
	}
	if err := w.PutBits(bfinal, 1); err != nil {
		return err
	}
	if err := w.PutBits(0, 2); err != nil { // BTYPE = 00
		return err
	}
	if err := w.FlushBits(); err != nil {
		return err
	}

	length := len(chunk)
	lenField := []byte{byte(length), byte(length >> 8)}
	nlen := uint16(^uint16(length))
	nlenField := []byte{byte(nlen), byte(nlen >> 8)}
	if err := w.WriteBytes(lenField); err != nil {
		return err
	}
	if err := w.WriteBytes(nlenField); err != nil {
		return err
	}
	return w.WriteBytes(chunk)
}
