package memoryapi

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"testing"

	"github.com/woozymasta/deflopt/stream"
)

func TestCompress_DeflateRoundTrips(t *testing.T) {
	src := bytes.Repeat([]byte("memoryapi one-shot round trip payload. "), 2000)
	dst := make([]byte, Bound(len(src), stream.DeflateOnly, 0))

	n, err := Compress(dst, src, stream.DeflateOnly, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	r := flate.NewReader(bytes.NewReader(dst[:n]))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes want %d", len(got), len(src))
	}
}

func TestCompress_GzipRoundTrips(t *testing.T) {
	src := []byte("small gzip payload")
	dst := make([]byte, Bound(len(src), stream.Gzip, 0))

	n, err := Compress(dst, src, stream.Gzip, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	r, err := gzip.NewReader(bytes.NewReader(dst[:n]))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("gzip decode: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %q want %q", got, src)
	}
}

func TestCompress_EmptyInputReturnsRealByteCount(t *testing.T) {
	dst := make([]byte, Bound(0, stream.DeflateOnly, 0))
	n, err := Compress(dst, nil, stream.DeflateOnly, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if n <= 0 {
		t.Fatalf("expected a positive byte count for the minimal empty stream, got %d", n)
	}

	r := flate.NewReader(bytes.NewReader(dst[:n]))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty decompressed output, got %d bytes", len(got))
	}
}

func TestCompress_TooSmallBufferReturnsError(t *testing.T) {
	src := []byte("some input that needs more room than we will give it")
	dst := make([]byte, 1)
	if _, err := Compress(dst, src, stream.DeflateOnly, 0); err != ErrBufferTooSmall {
		t.Fatalf("got %v, want ErrBufferTooSmall", err)
	}
}

func TestBound_NeverUnderestimatesActualOutput(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("x"),
		bytes.Repeat([]byte{0xAA, 0x55}, 100000), // high-entropy-ish alternation
		bytes.Repeat([]byte("aaaaaaaaaa"), 50000),
	}
	for _, framing := range []stream.Framing{stream.DeflateOnly, stream.Zlib, stream.Gzip} {
		for _, src := range inputs {
			bound := Bound(len(src), framing, 0)
			dst := make([]byte, bound)
			n, err := Compress(dst, src, framing, 0)
			if err != nil {
				t.Fatalf("framing=%v len(src)=%d: Compress: %v", framing, len(src), err)
			}
			if n > bound {
				t.Fatalf("framing=%v len(src)=%d: output %d bytes exceeds bound %d", framing, len(src), n, bound)
			}
		}
	}
}
