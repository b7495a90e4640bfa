package pipeline

import (
	"fmt"

	"github.com/flowml/flowprep/pkg/errors"
	"github.com/flowml/flowprep/pkg/frame"
)

// encodeCategoricals transforms every categorical column into a numeric
// representation and returns the stage log line, or "" when the frame has
// no categorical columns.
//
// maxOneHot is the basic path's cardinality heuristic: columns with more
// distinct values than maxOneHot are label encoded even when one-hot was
// requested. Zero means unlimited, honoring the caller's explicit choice
// unconditionally (the advanced path).
func encodeCategoricals(f *frame.Frame, method EncodingMethod, maxOneHot int) (string, error) {
	cats := f.CategoricalColumns()
	if len(cats) == 0 {
		return "", nil
	}

	for _, col := range cats {
		useOneHot := method == EncodeOneHot &&
			(maxOneHot == 0 || len(col.DistinctLabels()) <= maxOneHot)
		if useOneHot {
			if err := oneHotEncode(f, col); err != nil {
				return "", err
			}
		} else {
			labelEncode(col)
		}
	}

	if maxOneHot > 0 {
		return fmt.Sprintf("Encoded %d categorical columns", len(cats)), nil
	}
	if method == EncodeOneHot {
		return fmt.Sprintf("One-hot encoding applied to %d categorical columns", len(cats)), nil
	}
	return fmt.Sprintf("Label encoding applied to %d categorical columns", len(cats)), nil
}

// oneHotEncode replaces col with one 0/1 indicator column per observed
// distinct value, named {column}_{value} in sorted value order. Rows
// missing in the original column get zeros in every indicator.
func oneHotEncode(f *frame.Frame, col *frame.Column) error {
	for _, value := range col.DistinctLabels() {
		indicator := &frame.Column{
			Name:   fmt.Sprintf("%s_%s", col.Name, value),
			Kind:   frame.KindNumeric,
			Floats: make([]float64, col.Len()),
			Null:   make([]bool, col.Len()),
		}
		for i, label := range col.Labels {
			if !col.Null[i] && label == value {
				indicator.Floats[i] = 1
			}
		}
		if err := f.AppendColumn(indicator); err != nil {
			return errors.Wrap(err, errors.ErrorTypeStage,
				fmt.Sprintf("one-hot encoding failed for column %q", col.Name))
		}
	}

	f.DropColumn(col.Name)
	return nil
}

// labelEncode converts col in place to integer codes assigned in
// first-seen order of its distinct values. Missing cells stay missing.
func labelEncode(col *frame.Column) {
	codes := make(map[string]float64)
	values := make([]float64, col.Len())
	for i, label := range col.Labels {
		if col.Null[i] {
			continue
		}
		code, seen := codes[label]
		if !seen {
			code = float64(len(codes))
			codes[label] = code
		}
		values[i] = code
	}
	col.ToNumeric(values)
}
