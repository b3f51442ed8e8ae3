// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package deflopt

import (
	"github.com/woozymasta/deflopt/internal/memoryapi"
	"github.com/woozymasta/deflopt/stream"
)

// Compress compresses src in one shot. opts may be nil (deflate-only
// framing, default block size, no dictionary).
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	dst := make([]byte, Bound(len(src), opts.Framing, opts.MaxBlockSize))
	n, err := compressInto(dst, src, opts)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// CompressInto compresses src into dst, which must have capacity at least
// Bound(len(src), opts.Framing, opts.MaxBlockSize). opts may be nil, as in
// Compress. Returns the number of bytes written.
func CompressInto(dst []byte, src []byte, opts *CompressOptions) (int, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	return compressInto(dst, src, opts)
}

// Bound returns an upper bound on the compressed size of an inSize-byte
// input under the given framing and max block size, per memory_bound
// (spec.md §6).
func Bound(inSize int, framing Framing, maxBlockSize int) int {
	return memoryapi.Bound(inSize, framing, maxBlockSize)
}

func compressInto(dst []byte, src []byte, opts *CompressOptions) (int, error) {
	d := stream.New(opts.Framing, opts.MaxBlockSize)
	d.SetLevel(opts.Level)
	if len(opts.Dictionary) > 0 {
		if err := d.SetDictionary(opts.Dictionary); err != nil {
			return 0, ErrDictionaryError
		}
	}

	var scratch [4096]byte
	out := dst[:0]
	remaining := src
	for {
		n, err := d.Compress(remaining, true)
		if err != nil {
			return 0, wrapStreamError(err)
		}
		remaining = remaining[n:]

		for d.Pending() > 0 {
			m := d.Drain(scratch[:])
			out = append(out, scratch[:m]...)
		}
		if d.Done() {
			break
		}
	}
	return len(out), nil
}

func wrapStreamError(err error) error {
	if err == memoryapi.ErrBufferTooSmall {
		return ErrDestinationError
	}
	return ErrCompressionError
}
