package pipeline

import (
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/flowml/flowprep/pkg/frame"
)

// splitFrame partitions the frame rows into train and test sets using a
// seeded random permutation, so a fixed seed reproduces the exact split.
// The test partition gets ceil(testSize*n) rows, clamped so the train
// partition is never empty. Callers must handle frames with <=1 row.
//
// When stratify is set the split is proportional per class of the last
// column, falling back to a plain random split (with a log note) when any
// class has fewer than two rows or there are more classes than test rows:
// stratification is unsound for continuous or high-cardinality targets.
func splitFrame(f *frame.Frame, testSize float64, seed int64, stratify bool) (train, test *frame.Frame, note string) {
	n := f.Rows()
	testCount := int(math.Ceil(testSize * float64(n)))
	if testCount < 1 {
		testCount = 1
	}
	if testCount >= n {
		testCount = n - 1
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // G404: reproducible split, not cryptographic

	if stratify {
		trainIdx, testIdx, ok := stratifiedIndices(f, testCount, rng)
		if ok {
			return f.Select(trainIdx), f.Select(testIdx), ""
		}
		note = "Stratified split infeasible for target column; fell back to random split"
	}

	perm := rng.Perm(n)
	test = f.Select(perm[:testCount])
	train = f.Select(perm[testCount:])
	return train, test, note
}

// stratifiedIndices splits proportionally by the last column. Returns
// ok=false when infeasible.
func stratifiedIndices(f *frame.Frame, testCount int, rng *rand.Rand) (trainIdx, testIdx []int, ok bool) {
	target := f.Column(f.Cols() - 1)

	groups := make(map[string][]int)
	for i := 0; i < f.Rows(); i++ {
		groups[classKey(target, i)] = append(groups[classKey(target, i)], i)
	}

	if len(groups) > testCount {
		return nil, nil, false
	}
	for _, rows := range groups {
		if len(rows) < 2 {
			return nil, nil, false
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Proportional quota per class via largest remainder, capped so every
	// class keeps at least one training row.
	share := float64(testCount) / float64(f.Rows())
	quotas := make(map[string]int, len(keys))
	type remainder struct {
		key  string
		frac float64
	}
	var remainders []remainder
	assigned := 0
	for _, key := range keys {
		exact := share * float64(len(groups[key]))
		quota := int(exact)
		quotas[key] = quota
		assigned += quota
		remainders = append(remainders, remainder{key: key, frac: exact - float64(quota)})
	}
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})
	for _, r := range remainders {
		if assigned >= testCount {
			break
		}
		if quotas[r.key] < len(groups[r.key])-1 {
			quotas[r.key]++
			assigned++
		}
	}
	if assigned != testCount {
		return nil, nil, false
	}

	for _, key := range keys {
		rows := append([]int(nil), groups[key]...)
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		quota := quotas[key]
		testIdx = append(testIdx, rows[:quota]...)
		trainIdx = append(trainIdx, rows[quota:]...)
	}
	return trainIdx, testIdx, true
}

// classKey renders a row's target value for grouping.
func classKey(col *frame.Column, row int) string {
	if col.Null[row] {
		return ""
	}
	if col.Kind == frame.KindNumeric {
		return strconv.FormatFloat(col.Floats[row], 'g', -1, 64)
	}
	return col.Labels[row]
}
