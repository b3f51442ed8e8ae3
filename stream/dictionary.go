// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package stream

import "errors"

var (
	// ErrDictionaryRequiresZlib is returned when SetDictionary is called on
	// a non-zlib Driver.
	ErrDictionaryRequiresZlib = errors.New("stream: dictionary is only valid with zlib framing")
	// ErrDictionaryAfterInput is returned when SetDictionary is called
	// after the Driver has already consumed input.
	ErrDictionaryAfterInput = errors.New("stream: dictionary must be set before any input is compressed")
)

// SetDictionary seeds the history region with dict before the first block
// is processed, per §4.7. dict participates in match finding (its bytes
// can be referenced by the first block's matches) but not in the running
// checksum or the BlockSplitter's work range. Only valid for zlib framing,
// and only before any input has been submitted.
//
// A dict longer than HistorySize is silently truncated to its last
// HistorySize bytes — the encoder can never reference further back than
// HistorySize regardless, so the leading bytes could never be matched
// anyway (Open Question resolved in SPEC_FULL.md §3).
func (d *Driver) SetDictionary(dict []byte) error {
	if d.framing != Zlib {
		return ErrDictionaryRequiresZlib
	}
	if d.totalIn != 0 {
		return ErrDictionaryAfterInput
	}

	// DICTID is defined over the full dictionary the caller supplied, per
	// zlib's deflateSetDictionary, regardless of how much of it actually
	// fits in HistorySize — a decoder handed the same full dictionary must
	// compute the same ID to accept the stream.
	d.hasDictionary = len(dict) > 0
	if d.hasDictionary {
		d.dictID = adlerSum(dict)
	}

	seed := dict
	if len(seed) > HistorySize {
		seed = seed[len(seed)-HistorySize:]
	}
	copy(d.window[HistorySize-len(seed):HistorySize], seed)
	d.historyLen = len(seed)
	return nil
}

func adlerSum(p []byte) uint32 {
	h := newChecksum(Zlib)
	h.Write(p)
	return h.Sum32()
}
