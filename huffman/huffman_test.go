package huffman

import (
	"math"
	"testing"
)

func TestHuffman_CanonicalCodeIsComplete(t *testing.T) {
	e := New(8, 15, 9)
	freqs := []uint32{1, 1, 2, 3, 5, 8, 13, 21}
	for i, f := range freqs {
		e.AddFreqN(i, f)
	}
	e.BuildDynamicCodewords()

	sum := 0.0
	maxLen := 0
	for _, l := range e.CodeLen {
		if l > 0 {
			sum += math.Pow(2, -float64(l))
			if int(l) > maxLen {
				maxLen = int(l)
			}
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("Kraft sum = %v, want 1.0", sum)
	}
	if maxLen > 15 {
		t.Fatalf("max code length %d exceeds limit", maxLen)
	}
}

func TestHuffman_SingleSymbolGetsLengthOne(t *testing.T) {
	e := New(4, 15, 9)
	e.AddFreqN(2, 100)
	e.BuildDynamicCodewords()

	if e.CodeLen[2] != 1 {
		t.Fatalf("single symbol length = %d, want 1", e.CodeLen[2])
	}
	for i, l := range e.CodeLen {
		if i != 2 && l != 0 {
			t.Fatalf("symbol %d unexpectedly has length %d", i, l)
		}
	}
}

func TestHuffman_NoSymbolsPresent(t *testing.T) {
	e := New(4, 15, 9)
	e.BuildDynamicCodewords()
	for i, l := range e.CodeLen {
		if l != 0 {
			t.Fatalf("symbol %d has length %d with zero frequencies present", i, l)
		}
	}
}

func TestHuffman_LengthLimitEnforced(t *testing.T) {
	// A Fibonacci-like skewed frequency distribution over many symbols
	// forces the unlimited Huffman tree deeper than a small max length.
	n := 40
	e := New(n, 7, 5)
	a, b := uint32(1), uint32(1)
	for i := 0; i < n; i++ {
		e.AddFreqN(i, a)
		a, b = b, a+b
	}
	e.BuildDynamicCodewords()

	for i, l := range e.CodeLen {
		if l > 7 {
			t.Fatalf("symbol %d length %d exceeds max 7", i, l)
		}
	}

	sum := 0.0
	for _, l := range e.CodeLen {
		if l > 0 {
			sum += math.Pow(2, -float64(l))
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("Kraft sum after length-limit enforcement = %v, want 1.0", sum)
	}
}

func TestHuffman_StaticTableIsComplete(t *testing.T) {
	e := New(MaxLitLenSymbols, MaxLitLenCodeLength, 0)
	copy(e.CodeLen, StaticLitLenLengths[:])
	e.BuildStaticCodewords()

	sum := 0.0
	for _, l := range e.CodeLen {
		if l > 0 {
			sum += math.Pow(2, -float64(l))
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("static literal/length Kraft sum = %v, want 1.0", sum)
	}
}

func TestHuffman_DefinedVarLengthsCountRespectsMin(t *testing.T) {
	lens := make([]uint8, 300)
	lens[256] = 7
	got := GetDefinedVarLengthsCount(lens, 257)
	if got != 257 {
		t.Fatalf("got %d, want 257 (min applies since nothing beyond 256 is defined)", got)
	}

	lens[290] = 5
	got = GetDefinedVarLengthsCount(lens, 257)
	if got != 291 {
		t.Fatalf("got %d, want 291", got)
	}
}

func TestHuffman_RawTableSizeNeverBelowFour(t *testing.T) {
	lens := make([]uint8, NumCodeLenSymbols)
	got := GetRawTableSize(lens)
	if got != 4 {
		t.Fatalf("got %d, want 4 (floor)", got)
	}
}

func TestDistSymbol_MatchesDirectAndLogTable(t *testing.T) {
	cases := []struct {
		dist   int
		symbol int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 3},
		{257, 16},
		{32768, 29},
	}
	for _, c := range cases {
		sym, extra, _ := DistSymbol(c.dist)
		if sym != c.symbol {
			t.Fatalf("DistSymbol(%d) = %d, want %d", c.dist, sym, c.symbol)
		}
		if DistBase[sym]+extra != c.dist {
			t.Fatalf("DistSymbol(%d): base+extra = %d, want %d", c.dist, DistBase[sym]+extra, c.dist)
		}
	}
}

func TestLengthSymbol_RoundTrips(t *testing.T) {
	for l := 3; l <= 258; l++ {
		sym, extra, _ := LengthSymbol(l)
		if LengthBase[sym]+extra != l {
			t.Fatalf("LengthSymbol(%d): base+extra = %d, want %d", l, LengthBase[sym]+extra, l)
		}
	}
}
