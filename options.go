// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package deflopt

import "github.com/woozymasta/deflopt/stream"

// Framing selects the outer byte layout wrapped around the RFC 1951 body.
// Re-exported from the stream package so callers of the one-shot API never
// need to import it directly.
type Framing = stream.Framing

const (
	DeflateOnly = stream.DeflateOnly
	Zlib        = stream.Zlib
	Gzip        = stream.Gzip
)

// CompressOptions configures a one-shot Compress/CompressInto call.
type CompressOptions struct {
	// Framing selects DeflateOnly, Zlib, or Gzip. Zero value is DeflateOnly.
	Framing Framing
	// MaxBlockSize is clamped to [stream.MinMaxBlockSize,
	// stream.MaxMaxBlockSize]; 0 means stream.DefaultMaxBlockSize.
	MaxBlockSize int
	// Level is a 1-9 hint affecting only the zlib header's FLEVEL field;
	// it never changes the encoding itself.
	Level int
	// Dictionary seeds match-finder history before the first block. Only
	// valid with Zlib framing; longer than stream.HistorySize is silently
	// truncated to its trailing stream.HistorySize bytes.
	Dictionary []byte
}

// DefaultCompressOptions returns options for deflate-only framing with no
// dictionary and the default block size.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{}
}
