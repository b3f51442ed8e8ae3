// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package main

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coreos/pkg/capnslog"

	"github.com/woozymasta/deflopt"
)

var repoLog = capnslog.MustRepoLogger("github.com/woozymasta/deflopt")
var log = capnslog.NewPackageLogger("github.com/woozymasta/deflopt", "cmd/deflopt")

// run dispatches on the first argument, a mutually-exclusive command of
// {compress, verify-after-compress, benchmark, self-test, quick-self-test},
// following jonjohnsonjr-targz's run(args) error shape: main only converts
// the returned error into an exit code.
func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: deflopt <command> [flags]")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "compress":
		return runCompress(rest)
	case "verify-after-compress":
		return runVerifyAfterCompress(rest)
	case "benchmark":
		return runBenchmark(rest)
	case "self-test":
		return runSelfTest(rest)
	case "quick-self-test":
		return runQuickSelfTest(rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func compressFlags(name string) (fs *flag.FlagSet, framing *FramingFlag, level *LevelFlag, verbose *bool, dict *string) {
	fs = flag.NewFlagSet(name, flag.ContinueOnError)
	framing = &FramingFlag{}
	fs.Var(framing, "framing", "output framing: deflate, zlib or gzip")
	level = &LevelFlag{}
	fs.Var(level, "level", "compression-level hint 1-9 (zlib FLEVEL only)")
	verbose = fs.Bool("v", false, "verbose diagnostics logging")
	dict = fs.String("dictionary", "", "path to a zlib preset dictionary file")
	return
}

func applyVerbose(verbose bool) {
	if verbose {
		repoLog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		repoLog.SetGlobalLogLevel(capnslog.NOTICE)
	}
}

func runCompress(args []string) error {
	fs, framing, level, verbose, dictPath := compressFlags("compress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbose(*verbose)

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: deflopt compress [flags] <input> <output>")
	}

	src, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("phase=read file=%s: %w", rest[0], err)
	}

	opts := deflopt.DefaultCompressOptions()
	opts.Framing = framing.Framing()
	opts.Level = level.Level()
	if *dictPath != "" {
		dict, err := os.ReadFile(*dictPath)
		if err != nil {
			return fmt.Errorf("phase=read-dictionary file=%s: %w", *dictPath, err)
		}
		opts.Dictionary = dict
	}

	out, err := deflopt.Compress(src, opts)
	if err != nil {
		return fmt.Errorf("phase=compress file=%s: %w", rest[0], err)
	}

	if err := os.WriteFile(rest[1], out, 0o644); err != nil {
		return fmt.Errorf("phase=write file=%s: %w", rest[1], err)
	}

	log.Infof("compressed %s (%d bytes) -> %s (%d bytes)", rest[0], len(src), rest[1], len(out))
	return nil
}

func runVerifyAfterCompress(args []string) error {
	fs, framing, level, verbose, dictPath := compressFlags("verify-after-compress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbose(*verbose)

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: deflopt verify-after-compress [flags] <input>")
	}

	src, err := os.ReadFile(rest[0])
	if err != nil {
		return fmt.Errorf("phase=read file=%s: %w", rest[0], err)
	}

	opts := deflopt.DefaultCompressOptions()
	opts.Framing = framing.Framing()
	opts.Level = level.Level()
	if *dictPath != "" {
		dict, err := os.ReadFile(*dictPath)
		if err != nil {
			return fmt.Errorf("phase=read-dictionary file=%s: %w", *dictPath, err)
		}
		opts.Dictionary = dict
	}

	out, err := deflopt.Compress(src, opts)
	if err != nil {
		return fmt.Errorf("phase=compress file=%s: %w", rest[0], err)
	}

	got, err := decodeWithOptions(out, opts)
	if err != nil {
		return fmt.Errorf("phase=verify file=%s: %w", rest[0], err)
	}
	if !bytes.Equal(got, src) {
		return fmt.Errorf("phase=verify file=%s: round trip mismatch (in=%d bytes, out=%d bytes)", rest[0], len(src), len(got))
	}

	log.Infof("verified %s: %d -> %d bytes, round trip OK", rest[0], len(src), len(out))
	return nil
}

// decodeWithOptions round-trips compressed output through the standard
// library's decoders purely as a verifying decoder, never as part of the
// encoder itself (decompression is an explicit Non-goal of the core).
func decodeWithOptions(compressed []byte, opts *deflopt.CompressOptions) ([]byte, error) {
	switch opts.Framing {
	case deflopt.Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(zr)
	case deflopt.Zlib:
		if len(compressed) < 6 {
			return nil, fmt.Errorf("zlib stream too short: %d bytes", len(compressed))
		}
		bodyStart := 2
		if len(opts.Dictionary) > 0 {
			bodyStart += 4 // DICTID
		}
		body := compressed[bodyStart : len(compressed)-4]
		var fr io.Reader
		if len(opts.Dictionary) > 0 {
			fr = flate.NewReaderDict(bytes.NewReader(body), opts.Dictionary)
		} else {
			fr = flate.NewReader(bytes.NewReader(body))
		}
		return io.ReadAll(fr)
	default:
		fr := flate.NewReader(bytes.NewReader(compressed))
		return io.ReadAll(fr)
	}
}
