// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package huffman

// Static tables fixed by RFC 1951 §3.2.5/§3.2.6.

const (
	// MaxLitLenSymbols is the literal/length alphabet size (0-255 literals,
	// 256 end-of-block, 257-285 length codes, two unused trailing slots to
	// round the table to a power-friendly size as RFC 1951 permits).
	MaxLitLenSymbols = 288
	// MaxDistSymbols is the distance alphabet size (codes 0-29; RFC 1951's
	// reserved codes 30-31 are not included).
	MaxDistSymbols = 30
	// NumCodeLenSymbols is the size of the code-length alphabet (RLE meta-code).
	NumCodeLenSymbols = 19

	EndOfBlock = 256

	MaxLitLenCodeLength  = 15
	MaxDistCodeLength    = 15
	MaxCodeLenCodeLength = 7
)

// CLCLOrder is the order in which code-length-alphabet lengths are written
// in a dynamic block header (RFC 1951 §3.2.7).
var CLCLOrder = [NumCodeLenSymbols]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// LengthBase and LengthExtraBits implement RFC 1951 §3.2.5's length table,
// indexed by length symbol - 257 (0..28), for lengths 3..258.
var LengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var LengthExtraBits = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// DistBase and DistExtraBits implement RFC 1951 §3.2.5's distance table,
// indexed by distance symbol (0..29), for distances 1..32768.
var DistBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var DistExtraBits = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// StaticLitLenLengths are the fixed code lengths for BTYPE=01 (static
// Huffman) blocks, RFC 1951 §3.2.6.
var StaticLitLenLengths = func() [MaxLitLenSymbols]uint8 {
	var l [MaxLitLenSymbols]uint8
	for i := 0; i <= 143; i++ {
		l[i] = 8
	}
	for i := 144; i <= 255; i++ {
		l[i] = 9
	}
	for i := 256; i <= 279; i++ {
		l[i] = 7
	}
	for i := 280; i <= 287; i++ {
		l[i] = 8
	}
	return l
}()

// StaticDistLengths are the fixed 5-bit distance code lengths for static blocks.
var StaticDistLengths = func() [MaxDistSymbols]uint8 {
	var l [MaxDistSymbols]uint8
	for i := range l {
		l[i] = 5
	}
	return l
}()

// LengthSymbol returns the length-alphabet symbol (0..28, add 257 for the
// wire symbol) and extra-bit value for a match length in [3,258].
func LengthSymbol(length int) (sym int, extra int, extraBits uint) {
	l := length - 3
	for i := len(LengthBase) - 1; i >= 0; i-- {
		if l+3 >= LengthBase[i] {
			return i, l + 3 - LengthBase[i], LengthExtraBits[i]
		}
	}
	return 0, 0, 0
}

// DistSymbol returns the distance-alphabet symbol (0..29) and extra-bit
// value for a match distance in [1,32768]. Distances 1..256 use a direct
// lookup; 257..32768 use ((d-257)>>7)+256 into the same 512-entry table, per
// spec.md §4.4.
var distSymbolTable = func() [512]uint8 {
	var t [512]uint8
	sym := 0
	for i := 0; i < 512; i++ {
		d := i + 1
		if i >= 256 {
			d = 257 + (i-256)<<7
		}
		for sym < len(DistBase)-1 && d >= DistBase[sym+1] {
			sym++
		}
		t[i] = uint8(sym)
	}
	return t
}()

func DistSymbol(dist int) (sym int, extra int, extraBits uint) {
	var idx int
	if dist <= 256 {
		idx = dist - 1
	} else {
		idx = 256 + ((dist - 257) >> 7)
	}
	s := int(distSymbolTable[idx])
	return s, dist - DistBase[s], DistExtraBits[s]
}
