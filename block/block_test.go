package block

import (
	"bytes"
	"compress/flate"
	"io"
	"testing"

	"github.com/woozymasta/deflopt/bitwriter"
	"github.com/woozymasta/deflopt/parse"
	"github.com/woozymasta/deflopt/suffixarray"
)

func encodeOneBlock(t *testing.T, data []byte) []byte {
	t.Helper()

	mf := suffixarray.NewMatchFinder()
	mf.Build(data)
	rows := mf.FindAll(0, len(data))
	candidates := make(parse.Candidates, len(rows))
	copy(candidates, rows)

	out := make([]byte, len(data)*2+4096)
	w := bitwriter.New(out, 0, len(out))

	enc := NewEncoder()
	if err := enc.EncodeSubBlock(w, data, 0, len(data), candidates, true); err != nil {
		t.Fatalf("EncodeSubBlock: %v", err)
	}
	if err := w.FlushBits(); err != nil {
		t.Fatalf("FlushBits: %v", err)
	}
	return w.Bytes()
}

func decode(t *testing.T, body []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(body))
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	return got
}

func TestEncodeSubBlock_RoundTripsRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)
	body := encodeOneBlock(t, data)
	got := decode(t, body)
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func TestEncodeSubBlock_RoundTripsHighEntropyData(t *testing.T) {
	data := make([]byte, 5000)
	x := uint32(12345)
	for i := range data {
		x = x*1664525 + 1013904223
		data[i] = byte(x >> 24)
	}
	body := encodeOneBlock(t, data)
	got := decode(t, body)
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch on high-entropy input")
	}
}

func TestEncodeSubBlock_RoundTripsEmptyInput(t *testing.T) {
	data := []byte{}
	body := encodeOneBlock(t, data)
	got := decode(t, body)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestEncodeSubBlock_FallsBackToStoredForIncompressibleTinyInput(t *testing.T) {
	data := []byte{0x01}
	body := encodeOneBlock(t, data)
	// BFINAL=1, BTYPE=00 in the low three bits of the first byte.
	if body[0]&0x07 != 0x01 {
		t.Fatalf("expected a final stored block header, got first byte %08b", body[0])
	}
	got := decode(t, body)
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch on tiny input")
	}
}

func TestApplyDistanceCodeWorkaround_ForcesTwoNonZeroSymbols(t *testing.T) {
	enc := NewEncoder()
	applyDistanceCodeWorkaround(enc.dist)
	nonzero := 0
	for _, f := range enc.dist.Freq {
		if f > 0 {
			nonzero++
		}
	}
	if nonzero < 2 {
		t.Fatalf("expected at least 2 non-zero distance frequencies, got %d", nonzero)
	}
}

func TestApplyDistanceCodeWorkaround_LeavesExistingTwoAlone(t *testing.T) {
	enc := NewEncoder()
	enc.dist.Freq[3] = 5
	enc.dist.Freq[9] = 7
	applyDistanceCodeWorkaround(enc.dist)
	if enc.dist.Freq[3] != 5 || enc.dist.Freq[9] != 7 {
		t.Fatalf("workaround modified existing frequencies")
	}
}

func TestWriteStoredBlocks_SplitsAtSixtyFiveKBBoundary(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, maxStoredBlockSize+10)
	out := make([]byte, len(data)+64)
	w := bitwriter.New(out, 0, len(out))
	if err := writeStoredBlocks(w, data, 0, len(data), true); err != nil {
		t.Fatalf("writeStoredBlocks: %v", err)
	}
	if err := w.FlushBits(); err != nil {
		t.Fatalf("FlushBits: %v", err)
	}
	got := decode(t, w.Bytes())
	if !bytes.Equal(got, data) {
		t.Fatalf("stored-block round trip mismatch")
	}
}
