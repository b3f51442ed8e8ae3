// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package deflopt

import "errors"

// Sentinel errors for the streaming and one-shot compression API, following
// spec.md §7's taxonomy.
var (
	// ErrSourceError is returned when reading the input failed.
	ErrSourceError = errors.New("deflopt: source read failed")
	// ErrDestinationError is returned when writing output failed, including
	// bit writer overflow detected at the stream level.
	ErrDestinationError = errors.New("deflopt: destination write failed")
	// ErrDictionaryError is returned when a preset dictionary could not be
	// loaded (wrong framing, or set after input was already consumed).
	ErrDictionaryError = errors.New("deflopt: dictionary could not be loaded")
	// ErrMemoryError is returned when an allocation failed.
	ErrMemoryError = errors.New("deflopt: allocation failed")
	// ErrCompressionError is returned when an internal invariant was
	// violated (parse left bytes unconsumed, bit writer offset corrupt,
	// header encoding failed). Callers can use errors.Is(err,
	// deflopt.ErrCompressionError).
	ErrCompressionError = errors.New("deflopt: internal compressor error")
)
