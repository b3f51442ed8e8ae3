// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

/*
Package deflopt implements a near-optimal DEFLATE compressor (RFC 1951)
with optional zlib (RFC 1950) and gzip (RFC 1952) framing. A suffix-array
match finder and a backward-DP optimal parse choose literal/match
sequences under the true Huffman cost model, with a recursive block
splitter re-starting fresh Huffman tables wherever that pays for itself.
Decompression, multi-threaded encoding, and bit-identical output to any
reference encoder are out of scope.

# One-shot

Options may be nil (default framing DeflateOnly, default max block size):

	out, err := deflopt.Compress(data, nil)
	out, err := deflopt.Compress(data, &deflopt.CompressOptions{Framing: deflopt.Gzip})

Bound reports a safe destination capacity for a one-shot call into a
caller-owned buffer, mirroring memory_bound/memory_compress from spec.md
§6:

	dst := make([]byte, deflopt.Bound(len(data), deflopt.Zlib, 0))
	n, err := deflopt.CompressInto(dst, data, &deflopt.CompressOptions{Framing: deflopt.Zlib})

# Streaming

For large or incrementally-produced input, drive a stream.Driver directly
(github.com/woozymasta/deflopt/stream): feed chunks through Compress,
drain staged output through Drain, finalize once, and the driver handles
header/body/footer framing and window carry-forward across calls.

	d := stream.New(stream.Gzip, 0)
	for more input remains {
		n, err := d.Compress(chunk, isLastChunk)
		for d.Pending() > 0 {
			m := d.Drain(outBuf)
			// write outBuf[:m]
		}
	}
*/
package deflopt
