// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package stream

import "encoding/binary"

// Framing selects the outer byte layout wrapped around the RFC 1951 body.
type Framing int

const (
	// DeflateOnly emits a bare RFC 1951 stream: no header, no footer.
	DeflateOnly Framing = iota
	// Zlib wraps the body in an RFC 1950 header/footer (Adler-32).
	Zlib
	// Gzip wraps the body in an RFC 1952 header/footer (CRC-32).
	Gzip
)

const (
	zlibCM      = 8 // CM = 8 (deflate)
	zlibCINFO32K = 7 // CINFO = 7 (32K window, the only window size this encoder uses)

	gzipID1 = 0x1f
	gzipID2 = 0x8b
	gzipCM  = 8
	gzipXFL = 2 // slowest algorithm, matching this encoder's optimal parse
	gzipOS  = 255 // unknown
)

// writeHeader appends this framing's header bytes to dst, or nothing for
// DeflateOnly. level only affects the zlib FLEVEL hint bits (0-1 give
// FLEVEL 0, 2-5 give 1, 6-8 give 2, 9 and above give 3); it has no effect
// on the actual encoding, which is
// always the optimal parse regardless of a level hint.
func writeHeader(dst []byte, f Framing, level int, hasDictionary bool) []byte {
	switch f {
	case Zlib:
		return append(dst, zlibHeader(level, hasDictionary)...)
	case Gzip:
		return append(dst, gzipHeader()...)
	default:
		return dst
	}
}

// zlibHeader builds the 2-byte RFC 1950 CMF/FLG header. FCHECK (FLG's low 5
// bits) is solved so that (CMF*256+FLG) % 31 == 0, per the RFC.
func zlibHeader(level int, hasDictionary bool) [2]byte {
	cmf := byte(zlibCM | zlibCINFO32K<<4)

	var flevel byte
	switch {
	case level >= 9:
		flevel = 3
	case level >= 6:
		flevel = 2
	case level >= 2:
		flevel = 1
	default:
		flevel = 0
	}

	flg := flevel << 6
	if hasDictionary {
		flg |= 0x20
	}

	rem := (int(cmf)*256 + int(flg)) % 31
	if rem != 0 {
		flg |= byte(31 - rem)
	}

	return [2]byte{cmf, flg}
}

// gzipHeader builds the fixed 10-byte RFC 1952 member header. MTIME is left
// at 0 (unknown, per the RFC's allowance) since this encoder has no wall
// clock dependency.
func gzipHeader() [10]byte {
	return [10]byte{gzipID1, gzipID2, gzipCM, 0, 0, 0, 0, 0, gzipXFL, gzipOS}
}

// writeFooter appends this framing's footer to dst: a big-endian Adler-32
// for zlib, or a little-endian CRC-32 + little-endian ISIZE (mod 2^32) for
// gzip. No footer for DeflateOnly.
func writeFooter(dst []byte, f Framing, checksum uint32, totalIn uint64) []byte {
	switch f {
	case Zlib:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], checksum)
		return append(dst, b[:]...)
	case Gzip:
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:4], checksum)
		binary.LittleEndian.PutUint32(b[4:8], uint32(totalIn))
		return append(dst, b[:]...)
	default:
		return dst
	}
}
