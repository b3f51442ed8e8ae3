// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package huffman

import "errors"

// errUnencodableSymbol is returned when WriteCodeword is asked to emit a
// symbol that ended up with a zero code length (never occurred, and was
// pruned from the final canonical table).
var errUnencodableSymbol = errors.New("huffman: symbol has no assigned code length")
