// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Command deflopt is the CLI surface of spec.md §6: compress, round-trip
// verification, in-memory benchmarking and corpus self-tests over the
// deflopt encoder.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "deflopt: %v\n", err)
		os.Exit(100)
	}
}
