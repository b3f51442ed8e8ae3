// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package main

import (
	"fmt"

	"github.com/woozymasta/deflopt"
)

// FramingFlag parses a framing name into deflopt.Framing. It implements
// flag.Value, following flagutil's IPv4Flag pattern of a small named type
// wrapping the parsed value.
type FramingFlag struct {
	val deflopt.Framing
	set bool
}

func (f *FramingFlag) Framing() deflopt.Framing {
	if !f.set {
		return deflopt.DeflateOnly
	}
	return f.val
}

func (f *FramingFlag) Set(v string) error {
	switch v {
	case "deflate":
		f.val = deflopt.DeflateOnly
	case "zlib":
		f.val = deflopt.Zlib
	case "gzip":
		f.val = deflopt.Gzip
	default:
		return fmt.Errorf("unknown framing %q (want deflate, zlib or gzip)", v)
	}
	f.set = true
	return nil
}

func (f *FramingFlag) String() string {
	switch f.val {
	case deflopt.Zlib:
		return "zlib"
	case deflopt.Gzip:
		return "gzip"
	default:
		return "deflate"
	}
}

// LevelFlag parses a 1-9 compression-level hint. It only feeds the zlib
// header's FLEVEL field (deflopt always runs the optimal parse); out-of-range
// values are rejected the way IPv4Flag.Set rejects a malformed address.
type LevelFlag struct {
	val int
}

func (f *LevelFlag) Level() int {
	if f.val == 0 {
		return 6
	}
	return f.val
}

func (f *LevelFlag) Set(v string) error {
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fmt.Errorf("not an integer level: %w", err)
	}
	if n < 1 || n > 9 {
		return fmt.Errorf("level %d out of range [1,9]", n)
	}
	f.val = n
	return nil
}

func (f *LevelFlag) String() string {
	return fmt.Sprintf("%d", f.Level())
}
