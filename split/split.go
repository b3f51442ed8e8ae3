package split

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/woozymasta/deflopt/huffman"
	"github.com/woozymasta/deflopt/parse"
)

// splitCandidate pairs a proposed split offset with the bit-cost saving it
// was chosen for, so Find can rank candidates by saving before the
// MaxSplits cap truncates them.
type splitCandidate struct {
	pos    int
	saving int
}

// Tuning constants for the recursive split search (§4.5), named the way
// level_params.go names its per-level greedy/chain knobs.
const (
	MinSpan         = 8192
	MaxDepth        = 6
	MaxSplits       = 63
	DeltaThreshold  = 0.45
	chunkMinFeature = 256
	chunkMinSpan    = 512

	litLenAlphabetSize = 288
	distAlphabetSize   = 30
	litLenDefaultLen   = 9
	distDefaultLen     = 6
	maxCodeLen         = 15
)

// Splitter locates split offsets within a parsed sub-block where starting a
// fresh pair of Huffman tables pays for its own overhead.
type Splitter struct {
	minSpan        int
	maxDepth       int
	maxSplits      int
	deltaThreshold float64
}

// New constructs a Splitter with the reference tuning constants.
func New() *Splitter {
	return &Splitter{
		minSpan:        MinSpan,
		maxDepth:       MaxDepth,
		maxSplits:      MaxSplits,
		deltaThreshold: DeltaThreshold,
	}
}

// Find returns an ordered list of split offsets covering [0, len(data)],
// always ending with len(data), capped at MaxSplits entries. When more
// candidates are proposed than fit under the cap, the ones with the
// smallest bit-cost saving are dropped first.
func (s *Splitter) Find(data []byte, steps []parse.Step) []int {
	if len(data) == 0 {
		return []int{0}
	}

	var candidates []splitCandidate
	s.split(data, steps, 0, len(data), 0, &candidates)

	if len(candidates) > s.maxSplits-1 {
		slices.SortStableFunc(candidates, func(a, b splitCandidate) int {
			return b.saving - a.saving
		})
		candidates = candidates[:s.maxSplits-1]
	}

	splits := make([]int, 0, len(candidates)+1)
	for _, c := range candidates {
		splits = append(splits, c.pos)
	}
	splits = append(splits, len(data))
	sort.Ints(splits)

	out := splits[:0:0]
	var prev = -1
	for _, v := range splits {
		if v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}

// split searches [a, b) for the single best split point (by cost saving)
// using a histogram-threshold scan to propose candidates, then recurses
// into the left and right halves of the chosen split.
func (s *Splitter) split(data []byte, steps []parse.Step, a, b, depth int, splits *[]splitCandidate) {
	if b-a < s.minSpan || depth >= s.maxDepth || len(*splits) >= s.maxSplits-1 {
		return
	}

	candidate, ok := s.findCandidate(data, steps, a, b)
	if !ok {
		return
	}

	baseline := blockCost(data, steps, a, b)
	left := blockCost(data, steps, a, candidate)
	right := blockCost(data, steps, candidate, b)
	saving := baseline - (left + right)
	if saving <= 0 {
		return
	}

	*splits = append(*splits, splitCandidate{pos: candidate, saving: saving})
	s.split(data, steps, a, candidate, depth+1, splits)
	s.split(data, steps, candidate, b, depth+1, splits)
}

// findCandidate accumulates chunks of the feature histogram from a forward
// and proposes the position where the per-chunk feature distribution
// diverges most sharply (by proportional delta) from the distribution
// accumulated so far, per §4.5 steps 1-3. It returns the single position
// with the largest divergence observed, since step 4 evaluates only one
// candidate per recursive call.
func (s *Splitter) findCandidate(data []byte, steps []parse.Step, a, b int) (int, bool) {
	positions := chunkBoundaries(steps, a, b)
	if len(positions) < 2 {
		return 0, false
	}

	var accumulated histogram
	accumulated.add(buildHistogram(data, steps, a, positions[0]))

	bestPos := -1
	bestDelta := 0.0

	for i := 1; i < len(positions); i++ {
		chunkStart, chunkEnd := positions[i-1], positions[i]
		chunk := buildHistogram(data, steps, chunkStart, chunkEnd)
		chunkTotal := chunk.total()
		if chunkTotal == 0 {
			continue
		}

		priorTotal := accumulated.total()
		if priorTotal == 0 {
			accumulated.add(chunk)
			continue
		}

		delta := 0.0
		for f := 0; f < NumFeatures; f++ {
			expected := float64(accumulated[f]) / float64(priorTotal) * float64(chunkTotal)
			actual := float64(chunk[f])
			d := expected - actual
			if d < 0 {
				d = -d
			}
			delta += d
		}

		if delta > s.deltaThreshold*float64(priorTotal) && delta > bestDelta {
			bestDelta = delta
			bestPos = chunkStart
		}

		accumulated.add(chunk)
	}

	if bestPos <= a || bestPos >= b {
		return 0, false
	}
	return bestPos, true
}

// chunkBoundaries walks steps in [a, b) and returns positions that each
// accumulate at least chunkMinFeature histogram entries and chunkMinSpan
// bytes, per §4.5 step 2, ending with b.
func chunkBoundaries(steps []parse.Step, a, b int) []int {
	var bounds []int
	chunkStart := a
	count := 0
	for _, st := range steps {
		if st.Pos < a || st.Pos >= b {
			continue
		}
		count++
		span := st.Pos - chunkStart
		if count >= chunkMinFeature && span >= chunkMinSpan {
			bounds = append(bounds, st.Pos)
			chunkStart = st.Pos
			count = 0
		}
	}
	bounds = append(bounds, b)
	return bounds
}

// blockCost estimates the dynamic-Huffman bit cost (codewords only, no
// table-encoding overhead) of emitting steps in [a, b), used to compare a
// proposed split against leaving the range whole.
func blockCost(data []byte, steps []parse.Step, a, b int) int {
	litLen := huffman.New(litLenAlphabetSize, maxCodeLen, litLenDefaultLen)
	dist := huffman.New(distAlphabetSize, maxCodeLen, distDefaultLen)

	extra := 0
	for _, st := range steps {
		if st.Pos < a || st.Pos >= b {
			continue
		}
		if st.Choice.Length == 0 {
			litLen.AddFreq(int(data[st.Pos]))
			continue
		}
		lsym, _, lextra := huffman.LengthSymbol(st.Choice.Length)
		dsym, _, dextra := huffman.DistSymbol(st.Choice.Offset)
		litLen.AddFreqN(257+lsym, 1)
		dist.AddFreqN(dsym, 1)
		extra += int(lextra) + int(dextra)
	}
	litLen.AddFreq(256)

	litLen.EstimateDynamicCodeLens()
	dist.EstimateDynamicCodeLens()

	cost := extra
	for i, f := range litLen.Freq {
		cost += int(f) * int(litLen.CodeLen[i])
	}
	for i, f := range dist.Freq {
		cost += int(f) * int(dist.CodeLen[i])
	}
	return cost
}
