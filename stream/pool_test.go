package stream

import "testing"

func TestSizeClassPool_GetReturnsZeroedBufferOfRequestedSize(t *testing.T) {
	p := newSizeClassPool()
	buf := p.Get(128)
	if len(buf) != 128 {
		t.Fatalf("len=%d, want 128", len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestSizeClassPool_PutThenGetReturnsZeroedBuffer(t *testing.T) {
	p := newSizeClassPool()
	buf := p.Get(64)
	buf[0] = 0xFF
	p.Put(buf)

	got := p.Get(64)
	if len(got) != 64 {
		t.Fatalf("len=%d, want 64", len(got))
	}
	if got[0] != 0 {
		t.Fatal("reused buffer must be zeroed before reuse")
	}
}

func TestSizeClassPool_DifferentSizesDoNotCollide(t *testing.T) {
	p := newSizeClassPool()
	small := p.Get(16)
	large := p.Get(1024)
	if len(small) != 16 || len(large) != 1024 {
		t.Fatalf("got sizes %d, %d", len(small), len(large))
	}
}

func TestDriver_CloseReleasesBuffersToPool(t *testing.T) {
	pool := newSizeClassPool()
	d := NewWithPool(DeflateOnly, MinMaxBlockSize, pool)
	d.Close()
	// A second Close must be a harmless no-op.
	d.Close()
}

func TestDriver_NewUsesDefaultBufferPoolWithoutPanicking(t *testing.T) {
	d := New(DeflateOnly, 0)
	defer d.Close()
	buf := make([]byte, 16)
	if _, err := d.Compress([]byte("hi"), true); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	for d.Pending() > 0 {
		d.Drain(buf)
	}
}
