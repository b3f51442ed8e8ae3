// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/woozymasta/deflopt"
	"github.com/woozymasta/deflopt/config"
)

func parseFraming(name string) (deflopt.Framing, error) {
	switch strings.ToLower(name) {
	case "", "deflate":
		return deflopt.DeflateOnly, nil
	case "zlib":
		return deflopt.Zlib, nil
	case "gzip":
		return deflopt.Gzip, nil
	default:
		return 0, fmt.Errorf("unknown framing %q", name)
	}
}

func runSelfTest(args []string) error {
	fs := flag.NewFlagSet("self-test", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "", "path to a YAML scenario manifest")
	verbose := fs.Bool("v", false, "verbose diagnostics logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbose(*verbose)

	if *manifestPath == "" {
		return fmt.Errorf("usage: deflopt self-test -manifest <path>")
	}

	raw, err := os.ReadFile(*manifestPath)
	if err != nil {
		return fmt.Errorf("phase=read-manifest file=%s: %w", *manifestPath, err)
	}
	manifest, err := config.ParseManifest(raw)
	if err != nil {
		return fmt.Errorf("phase=parse-manifest file=%s: %w", *manifestPath, err)
	}

	base := filepath.Dir(*manifestPath)
	for _, sc := range manifest.Scenarios {
		matches, err := doublestar.FilepathGlob(filepath.Join(base, sc.Path))
		if err != nil {
			return fmt.Errorf("phase=glob scenario=%s: %w", sc.Name, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("phase=glob scenario=%s: pattern %q matched no files", sc.Name, sc.Path)
		}

		framing, err := parseFraming(sc.Framing)
		if err != nil {
			return fmt.Errorf("scenario=%s: %w", sc.Name, err)
		}

		if err := runScenarioFiles(sc.Name, matches, framing, sc.MaxBlockSize, sc.MinRatio); err != nil {
			return err
		}
	}

	log.Infof("self-test OK: %d scenarios", len(manifest.Scenarios))
	return nil
}

func runScenarioFiles(name string, files []string, framing deflopt.Framing, maxBlockSize int, minRatio float64) error {
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("phase=read scenario=%s file=%s: %w", name, f, err)
		}
		if err := runScenarioBytes(name, f, src, framing, maxBlockSize, minRatio); err != nil {
			return err
		}
	}
	return nil
}

// runScenarioBytes compresses src, round-trips it through the verifying
// decoder, and checks the compression-ratio budget.
func runScenarioBytes(name, label string, src []byte, framing deflopt.Framing, maxBlockSize int, minRatio float64) error {
	opts := deflopt.DefaultCompressOptions()
	opts.Framing = framing
	opts.MaxBlockSize = maxBlockSize

	out, err := deflopt.Compress(src, opts)
	if err != nil {
		return fmt.Errorf("phase=compress scenario=%s file=%s: %w", name, label, err)
	}

	got, err := decodeWithOptions(out, opts)
	if err != nil {
		return fmt.Errorf("phase=verify scenario=%s file=%s: %w", name, label, err)
	}
	if !bytes.Equal(got, src) {
		return fmt.Errorf("phase=verify scenario=%s file=%s: round trip mismatch", name, label)
	}

	if minRatio > 0 && len(src) > 0 {
		ratio := float64(len(out)) / float64(len(src))
		if ratio > minRatio {
			return fmt.Errorf("phase=ratio scenario=%s file=%s: ratio %.4f exceeds budget %.4f", name, label, ratio, minRatio)
		}
	}

	log.Infof("scenario=%s file=%s: %d -> %d bytes, OK", name, label, len(src), len(out))
	return nil
}

// runQuickSelfTest exercises QuickManifest's framings against a small
// built-in corpus, needing no files on disk, for CI smoke checks.
func runQuickSelfTest(args []string) error {
	fs := flag.NewFlagSet("quick-self-test", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose diagnostics logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbose(*verbose)

	corpus := map[string][]byte{
		"repeating":    bytes.Repeat([]byte("quick self test payload "), 200),
		"binary-cycle": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 1000),
		"mixed": append(
			bytes.Repeat([]byte("abc"), 500),
			bytes.Repeat([]byte{0xFF, 0x00}, 500)...,
		),
	}

	manifest := config.QuickManifest()
	for _, sc := range manifest.Scenarios {
		framing, err := parseFraming(sc.Framing)
		if err != nil {
			return fmt.Errorf("scenario=%s: %w", sc.Name, err)
		}
		for label, src := range corpus {
			if err := runScenarioBytes(sc.Name, label, src, framing, 0, sc.MinRatio); err != nil {
				return err
			}
		}
	}

	log.Infof("quick-self-test OK: %d scenarios x %d inputs", len(manifest.Scenarios), len(corpus))
	return nil
}
