// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

// Package config loads the YAML corpus manifests consumed by the CLI's
// self-test and quick-self-test commands: which files to compress, which
// framing to exercise, and how much compression-ratio regression is
// tolerated before a run is considered a failure.
package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Scenario names one corpus entry a self-test run exercises.
type Scenario struct {
	// Name identifies the scenario in test output.
	Name string `yaml:"name"`
	// Path is a file path, or a doublestar glob pattern, relative to the
	// manifest's own directory.
	Path string `yaml:"path"`
	// Framing selects "deflate", "zlib", or "gzip" (case-insensitive).
	Framing string `yaml:"framing"`
	// MaxBlockSize overrides stream.DefaultMaxBlockSize when non-zero.
	MaxBlockSize int `yaml:"max_block_size"`
	// MinRatio is the highest tolerable compressed/original size ratio
	// (compressed_bytes / original_bytes); self-test reports a regression
	// for any file of this scenario whose ratio exceeds it. 0 means "no
	// ratio budget enforced".
	MinRatio float64 `yaml:"min_ratio"`
}

// Manifest is the top-level shape of a self-test YAML file.
type Manifest struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// ParseManifest decodes raw YAML bytes into a Manifest, following
// yamlutil's thin yaml.Unmarshal-wrapper pattern rather than hand-rolling a
// line-oriented parser.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("config: parse manifest: %w", err)
	}
	for i := range m.Scenarios {
		if m.Scenarios[i].Name == "" {
			return nil, fmt.Errorf("config: scenario %d missing name", i)
		}
		if m.Scenarios[i].Path == "" {
			return nil, fmt.Errorf("config: scenario %q missing path", m.Scenarios[i].Name)
		}
	}
	return &m, nil
}

// QuickManifest returns a small built-in manifest requiring no files on
// disk, for the quick-self-test CLI command's CI smoke check. The inline
// content is synthesized by the caller (quick-self-test fabricates its own
// in-memory corpus); this manifest only describes framings to exercise.
func QuickManifest() *Manifest {
	return &Manifest{
		Scenarios: []Scenario{
			{Name: "quick-deflate", Framing: "deflate", MinRatio: 0},
			{Name: "quick-zlib", Framing: "zlib", MinRatio: 0},
			{Name: "quick-gzip", Framing: "gzip", MinRatio: 0},
		},
	}
}
