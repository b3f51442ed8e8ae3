package block

import (
	"testing"

	"github.com/woozymasta/deflopt/huffman"
)

func TestBuildTentativeTables_UnusedSymbolsKeepDefaultLength(t *testing.T) {
	litLen := huffman.New(huffman.MaxLitLenSymbols, huffman.MaxLitLenCodeLength, 9)
	dist := huffman.New(huffman.MaxDistSymbols, huffman.MaxDistCodeLength, 6)

	litLen.AddFreq('a')
	litLen.AddFreqN('a', 9)
	litLen.AddFreq('b')
	dist.AddFreq(0)

	buildTentativeTables(litLen, dist)

	for i, f := range litLen.Freq {
		if f == 0 && litLen.CodeLen[i] != 9 {
			t.Fatalf("litLen symbol %d: unused symbol has CodeLen=%d, want default 9", i, litLen.CodeLen[i])
		}
	}
	for i, f := range dist.Freq {
		if f == 0 && dist.CodeLen[i] != 6 {
			t.Fatalf("dist symbol %d: unused symbol has CodeLen=%d, want default 6", i, dist.CodeLen[i])
		}
	}

	if litLen.CodeLen['a'] == 0 {
		t.Fatal("frequent symbol 'a' must not be left at CodeLen 0")
	}
}
