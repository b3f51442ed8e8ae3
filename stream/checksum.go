// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package stream

import (
	"hash"
	"hash/adler32"
	"hash/crc32"
)

// newChecksum returns the running checksum RFC 1950/1952 mandate for the
// given framing: Adler-32 for zlib, CRC-32 (IEEE) for gzip. Deflate-only
// framing carries no checksum; nopHash keeps the driver's update path
// unconditional.
func newChecksum(f Framing) hash.Hash32 {
	switch f {
	case Zlib:
		return adler32.New()
	case Gzip:
		return crc32.NewIEEE()
	default:
		return nopHash{}
	}
}

type nopHash struct{}

func (nopHash) Write(p []byte) (int, error) { return len(p), nil }
func (nopHash) Sum(b []byte) []byte         { return b }
func (nopHash) Reset()                      {}
func (nopHash) Size() int                   { return 0 }
func (nopHash) BlockSize() int              { return 1 }
func (nopHash) Sum32() uint32               { return 0 }
