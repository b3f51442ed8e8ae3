// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/deflopt

package suffixarray

const (
	MinMatch   = 3
	MaxMatch   = 258
	MinOffset  = 1
	MaxOffset  = 32768
	NCandidates = 8 // NMATCHES_PER_OFFSET, §3
	LastLiterals = 1

	// maxAscend bounds how many ancestor intervals a single query walks
	// before giving up, independent of how many of those ancestors are
	// already visited (and thus yield a candidate). Without this a
	// pathological input (a long run of one byte) could make a single
	// query touch O(n) intervals; NCandidates alone does not bound that
	// because many ascend steps can land on unvisited intervals that
	// contribute nothing.
	maxAscend = 64
)

// Candidate is one (length, offset) match candidate, per spec.md §3.
type Candidate struct {
	Length int
	Offset int
}

// MatchFinder indexes a byte window (history + new bytes) and answers
// per-position candidate-match queries against it, mirroring the shape of
// the teacher's slidingWindowDict: Build is analogous to dict.init, and
// FindAll/Skip are analogous to dict.findBestMatch/dict.accept — an index
// built once per block, then walked position by position.
type MatchFinder struct {
	data          []byte
	sa            []int32
	rank          []int32 // rank[pos] = suffix-array rank of suffix starting at pos
	intervals     []interval
	rankToInterval []int32
}

// NewMatchFinder returns an unindexed MatchFinder; call Build before use.
func NewMatchFinder() *MatchFinder {
	return &MatchFinder{}
}

// Build indexes data (the full history+new-bytes window for the current
// block). Build allocates fresh sa/rank/intervals on every call, since they
// depend on the window contents; no buffers are reused across blocks.
func (mf *MatchFinder) Build(data []byte) {
	mf.data = data
	mf.sa = Build(data)

	n := len(data)
	mf.rank = make([]int32, n)
	for i, s := range mf.sa {
		mf.rank[s] = int32(i)
	}

	lcp := ComputeLCP(data, mf.sa)
	ClampLCP(lcp, MinMatch, MaxMatch)

	mf.intervals, mf.rankToInterval = buildIntervals(lcp)
}

// ascend walks from position p's deepest interval toward the root, marking
// each interval visited and attached to p. If emit is true, it appends a
// candidate for every already-visited ancestor encountered, in
// non-increasing length order (ancestors get shallower, i.e. shorter, as we
// ascend), capped at NCandidates. If emit is false (Skip), it performs the
// same bookkeeping without allocating candidates.
func (mf *MatchFinder) ascend(p int, emit bool, out []Candidate) []Candidate {
	if len(mf.data) == 0 {
		return out
	}
	idx := mf.rankToInterval[mf.rank[p]]
	steps := 0

	for idx != -1 && steps < maxAscend {
		steps++
		iv := &mf.intervals[idx]

		if emit && len(out) < NCandidates && iv.visited && iv.pos != 0 {
			matchPos := int(iv.pos) - 1
			if matchPos != p && matchPos < p {
				length := int(iv.lcp)
				offset := p - matchPos
				if length >= MinMatch && offset >= MinOffset && offset <= MaxOffset {
					out = append(out, Candidate{Length: length, Offset: offset})
				}
			}
		}

		iv.visited = true
		iv.pos = int32(p) + 1

		if emit && len(out) >= NCandidates {
			break
		}
		idx = iv.parent
	}

	return out
}

// FindAll produces, for every position in [start,end), up to NCandidates
// match candidates in non-increasing length order, zero-padded to
// NCandidates, capping any candidate whose length would run past
// len(data)-LastLiterals, where data is the window passed to Build (the
// last LAST_LITERALS bytes of the window are never covered by a match,
// per §4.3).
func (mf *MatchFinder) FindAll(start, end int) [][NCandidates]Candidate {
	out := make([][NCandidates]Candidate, end-start)
	scratch := make([]Candidate, 0, NCandidates)

	limit := len(mf.data) - LastLiterals
	for p := start; p < end; p++ {
		scratch = scratch[:0]
		scratch = mf.ascend(p, true, scratch)
		var row [NCandidates]Candidate
		for i, c := range scratch {
			if p+c.Length > limit {
				c.Length = limit - p
			}
			if c.Length < MinMatch {
				continue
			}
			row[i] = c
		}
		out[p-start] = row
	}
	return out
}

// Skip walks positions in [start,end) performing the same traversal as
// FindAll but discarding candidates, to keep the interval tree's "visited"
// state correct when the caller has already decided (e.g. via a prior
// parse) not to query these positions individually.
func (mf *MatchFinder) Skip(start, end int) {
	for p := start; p < end; p++ {
		mf.ascend(p, false, nil)
	}
}
