package pipeline

import (
	"fmt"

	"github.com/flowml/flowprep/pkg/errors"
	"github.com/flowml/flowprep/pkg/frame"
)

// engineerFeatures appends degree-2 interaction-only features: for each
// pair of numeric columns a, b it adds a column {a}_x_{b} holding their
// elementwise product. Runs after scaling, so products are of the scaled
// values. Returns the stage log line, or "" when fewer than two numeric
// columns exist.
func engineerFeatures(f *frame.Frame) (string, error) {
	nums := f.NumericColumns()
	if len(nums) < 2 {
		return "", nil
	}

	added := 0
	for i := 0; i < len(nums); i++ {
		for j := i + 1; j < len(nums); j++ {
			a, b := nums[i], nums[j]
			product := &frame.Column{
				Name:   fmt.Sprintf("%s_x_%s", a.Name, b.Name),
				Kind:   frame.KindNumeric,
				Floats: make([]float64, a.Len()),
				Null:   make([]bool, a.Len()),
			}
			for ri := range product.Floats {
				if a.Null[ri] || b.Null[ri] {
					product.Null[ri] = true
					continue
				}
				product.Floats[ri] = a.Floats[ri] * b.Floats[ri]
			}
			if err := f.AppendColumn(product); err != nil {
				return "", errors.Wrap(err, errors.ErrorTypeStage, "feature engineering failed")
			}
			added++
		}
	}

	return fmt.Sprintf("Added %d interaction features", added), nil
}
