package stream

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"hash/adler32"
	"io"
	"testing"
)

// drive pushes all of src through a Driver in chunkSize pieces, draining
// staged output after every Compress call, and returns the full compressed
// byte stream. Works for empty src too: a single Compress(nil, true) call
// both finalizes and flushes the footer.
func drive(t *testing.T, d *Driver, src []byte, chunkSize int) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 4096)

	drainAll := func() {
		for d.Pending() > 0 {
			m := d.Drain(buf)
			out = append(out, buf[:m]...)
		}
	}

	pos := 0
	for {
		end := pos + chunkSize
		if end > len(src) {
			end = len(src)
		}
		chunk := src[pos:end]
		finalize := end == len(src)

		for len(chunk) > 0 || (finalize && !d.Done()) {
			n, err := d.Compress(chunk, finalize)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			chunk = chunk[n:]
			drainAll()
		}

		pos = end
		if pos >= len(src) {
			break
		}
	}
	return out
}

func TestDriver_DeflateOnlyRoundTrips(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)

	d := New(DeflateOnly, 0)
	out := drive(t, d, data, 4096)

	r := flate.NewReader(bytes.NewReader(out))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestDriver_ZlibRoundTrips(t *testing.T) {
	data := bytes.Repeat([]byte("zlib framed payload data 0123456789"), 1000)

	d := New(Zlib, 0)
	out := drive(t, d, data, 8192)

	if len(out) < 6 {
		t.Fatalf("output too short for zlib framing: %d bytes", len(out))
	}

	sum := int(out[0])*256 + int(out[1])
	if sum%31 != 0 {
		t.Fatalf("zlib header checksum invalid: (CMF*256+FLG)%%31=%d", sum%31)
	}
	if out[0]&0x0F != 8 {
		t.Fatalf("CM != 8")
	}

	body := out[2 : len(out)-4]
	footer := out[len(out)-4:]

	r := flate.NewReader(bytes.NewReader(body))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode of zlib body: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}

	want := adler32.Checksum(data)
	gotSum := uint32(footer[0])<<24 | uint32(footer[1])<<16 | uint32(footer[2])<<8 | uint32(footer[3])
	if gotSum != want {
		t.Fatalf("adler32 footer=%08x want=%08x", gotSum, want)
	}
}

func TestDriver_GzipRoundTrips(t *testing.T) {
	data := bytes.Repeat([]byte("gzip framed payload data ABCDEFGHIJ"), 1000)

	d := New(Gzip, 0)
	out := drive(t, d, data, 16384)

	r, err := gzip.NewReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("gzip decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
	}
}

func TestDriver_EmptyInputProducesValidStream(t *testing.T) {
	d := New(DeflateOnly, 0)
	out := drive(t, d, nil, 1)

	r := flate.NewReader(bytes.NewReader(out))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode of empty stream: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestDriver_MultiBlockStreamCrossingMaxBlockSize(t *testing.T) {
	data := make([]byte, 3*MinMaxBlockSize+1234)
	for i := range data {
		data[i] = byte(i % 251)
	}
	// Sprinkle in repeats so matches can reach back across block boundaries
	// once history is carried forward.
	copy(data[MinMaxBlockSize+100:], data[:5000])

	d := New(DeflateOnly, MinMaxBlockSize)
	out := drive(t, d, data, 4096)

	r := flate.NewReader(bytes.NewReader(out))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch across block boundary: got %d bytes want %d", len(got), len(data))
	}
}

func TestDriver_DictionarySeedsHistoryWithoutAffectingChecksum(t *testing.T) {
	dict := []byte("common preamble text shared across many small messages")
	data := []byte("common preamble text shared across many small messages plus unique payload")

	d := New(Zlib, 0)
	if err := d.SetDictionary(dict); err != nil {
		t.Fatalf("SetDictionary: %v", err)
	}
	out := drive(t, d, data, 4096)

	if out[1]&0x20 == 0 {
		t.Fatal("FDICT bit not set in zlib header")
	}

	dictID := adler32.Checksum(dict)
	gotID := uint32(out[2])<<24 | uint32(out[3])<<16 | uint32(out[4])<<8 | uint32(out[5])
	if gotID != dictID {
		t.Fatalf("DICTID=%08x want %08x", gotID, dictID)
	}

	body := out[6 : len(out)-4] // CMF/FLG + 4-byte DICTID precede the body
	footer := out[len(out)-4:]

	r := flate.NewReaderDict(bytes.NewReader(body), dict)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("flate decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %q want %q", got, data)
	}

	want := adler32.Checksum(data)
	gotSum := uint32(footer[0])<<24 | uint32(footer[1])<<16 | uint32(footer[2])<<8 | uint32(footer[3])
	if gotSum != want {
		t.Fatalf("checksum must exclude dictionary bytes: got=%08x want=%08x", gotSum, want)
	}
}

func TestDriver_DictionaryLongerThanHistorySizeUsesFullDictionaryForID(t *testing.T) {
	dict := bytes.Repeat([]byte("x"), HistorySize+5000)
	data := []byte("payload after an oversized dictionary")

	d := New(Zlib, 0)
	if err := d.SetDictionary(dict); err != nil {
		t.Fatalf("SetDictionary: %v", err)
	}
	out := drive(t, d, data, 4096)

	wantID := adler32.Checksum(dict)
	gotID := uint32(out[2])<<24 | uint32(out[3])<<16 | uint32(out[4])<<8 | uint32(out[5])
	if gotID != wantID {
		t.Fatalf("DICTID=%08x want %08x (must cover the full dictionary, not just the truncated seed)", gotID, wantID)
	}
}

func TestDriver_SetDictionaryRejectsNonZlibFraming(t *testing.T) {
	d := New(DeflateOnly, 0)
	if err := d.SetDictionary([]byte("x")); err != ErrDictionaryRequiresZlib {
		t.Fatalf("got %v, want ErrDictionaryRequiresZlib", err)
	}
}

func TestDriver_SetDictionaryRejectsAfterInput(t *testing.T) {
	d := New(Zlib, 0)
	buf := make([]byte, 64)
	if _, err := d.Compress([]byte("x"), false); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	for d.Pending() > 0 {
		d.Drain(buf)
	}
	if err := d.SetDictionary([]byte("y")); err != ErrDictionaryAfterInput {
		t.Fatalf("got %v, want ErrDictionaryAfterInput", err)
	}
}

func TestDriver_CompressAfterDoneReturnsErrClosed(t *testing.T) {
	d := New(DeflateOnly, 0)
	buf := make([]byte, 64)
	if _, err := d.Compress([]byte("abc"), true); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	for d.Pending() > 0 {
		d.Drain(buf)
	}
	if !d.Done() {
		t.Fatal("stream not done after a finalizing Compress and a full drain")
	}
	if _, err := d.Compress([]byte("more"), true); err != ErrClosed {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}
