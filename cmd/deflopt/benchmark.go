// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/woozymasta/deflopt"
)

// fileResult is one corpus file's in-memory benchmark outcome.
type fileResult struct {
	path       string
	inBytes    int
	outBytes   int
	elapsed    time.Duration
	throughput float64 // MB/s
}

// mmapFile loads a file read-only via mmap, avoiding a read() copy for
// large corpus files; the caller must call the returned closer once done.
func mmapFile(path string) (data []byte, closer func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if info.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

func runBenchmark(args []string) error {
	fs, framing, _, verbose, _ := compressFlags("benchmark")
	corpus := fs.String("corpus", "", "doublestar glob pattern of input files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbose(*verbose)

	if *corpus == "" {
		return fmt.Errorf("usage: deflopt benchmark -corpus <glob> [flags]")
	}

	files, err := doublestar.FilepathGlob(*corpus)
	if err != nil {
		return fmt.Errorf("phase=glob pattern=%s: %w", *corpus, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("phase=glob pattern=%s: matched no files", *corpus)
	}

	opts := deflopt.DefaultCompressOptions()
	opts.Framing = framing.Framing()

	results := make([]fileResult, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			r, err := benchmarkOne(path, opts)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("phase=benchmark: %w", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })
	printBenchmarkReport(results)
	return nil
}

// benchmarkOne compresses one file's full contents in memory, reporting
// elapsed time and throughput. All files share one read-only
// CompressOptions; each runs in its own goroutine with its own encoder
// and no shared mutable encoder state (§5);
// the core encoder itself remains single-threaded per file.
func benchmarkOne(path string, opts *deflopt.CompressOptions) (fileResult, error) {
	data, closer, err := mmapFile(path)
	if err != nil {
		return fileResult{}, err
	}
	if closer != nil {
		defer closer()
	}

	start := time.Now()
	out, err := deflopt.Compress(data, opts)
	elapsed := time.Since(start)
	if err != nil {
		return fileResult{}, fmt.Errorf("phase=compress file=%s: %w", path, err)
	}

	mb := float64(len(data)) / (1024 * 1024)
	var throughput float64
	if elapsed > 0 {
		throughput = mb / elapsed.Seconds()
	}

	return fileResult{
		path:       path,
		inBytes:    len(data),
		outBytes:   len(out),
		elapsed:    elapsed,
		throughput: throughput,
	}, nil
}

func printBenchmarkReport(results []fileResult) {
	var totalIn, totalOut int
	var totalElapsed time.Duration
	for _, r := range results {
		ratio := 1.0
		if r.inBytes > 0 {
			ratio = float64(r.outBytes) / float64(r.inBytes)
		}
		fmt.Printf("%-40s %10d -> %10d bytes  ratio=%.4f  %8.2f MB/s  %v\n",
			r.path, r.inBytes, r.outBytes, ratio, r.throughput, r.elapsed)
		totalIn += r.inBytes
		totalOut += r.outBytes
		totalElapsed += r.elapsed
	}

	ratio := 1.0
	if totalIn > 0 {
		ratio = float64(totalOut) / float64(totalIn)
	}
	fmt.Printf("TOTAL %d files: %d -> %d bytes  ratio=%.4f  elapsed=%v\n",
		len(results), totalIn, totalOut, ratio, totalElapsed)
}
