// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package stream

import "sync"

// BufferPool acquires and releases the large buffers a Driver owns (its
// sliding window and bit-writer scratch space), generalizing
// sliding_window_pool.go's acquire/release pair into an explicit
// interface — the Go shape of spec.md §5's pluggable
// alloc(opaque,count,size)/free(opaque,ptr) allocator pair.
type BufferPool interface {
	// Get returns a []byte with length exactly size. Implementations may
	// recycle a previously Put buffer of the same size.
	Get(size int) []byte
	// Put returns a buffer obtained from Get for possible reuse. The
	// caller must not use buf after calling Put.
	Put(buf []byte)
}

// DefaultBufferPool is the process-allocator-backed default: a sync.Pool
// bucketed by exact size class, so Drivers constructed with the same
// maxBlockSize reuse each other's window/scratch buffers across their
// lifetimes.
var DefaultBufferPool BufferPool = newSizeClassPool()

type sizeClassPool struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

func newSizeClassPool() *sizeClassPool {
	return &sizeClassPool{pools: make(map[int]*sync.Pool)}
}

func (p *sizeClassPool) poolFor(size int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sp, ok := p.pools[size]
	if !ok {
		sp = &sync.Pool{New: func() any { return make([]byte, size) }}
		p.pools[size] = sp
	}
	return sp
}

func (p *sizeClassPool) Get(size int) []byte {
	buf := p.poolFor(size).Get().([]byte)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

func (p *sizeClassPool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	p.poolFor(len(buf)).Put(buf)
}
