package pipeline

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/flowml/flowprep/pkg/errors"
	"github.com/flowml/flowprep/pkg/frame"
)

// fallbackLabel fills categorical columns that have no observed values.
const fallbackLabel = "Unknown"

// imputeMissing replaces missing cells per the configured strategy and
// returns the stage log lines. With ImputeDrop every row containing any
// missing cell is removed instead of filled.
//
// A numeric column with no observed values has an undefined mean/median;
// such columns are filled with 0 and the fallback is noted in the log so
// downstream consumers can see it happened.
func imputeMissing(f *frame.Frame, method ImputationMethod) ([]string, error) {
	before := f.NullCount()

	var notes []string
	switch method {
	case ImputeDrop:
		f.DropNullRows()

	case ImputeMean, ImputeMedian:
		for _, col := range f.NumericColumns() {
			note, err := fillNumeric(col, method)
			if err != nil {
				return nil, err
			}
			if note != "" {
				notes = append(notes, note)
			}
		}
		for _, col := range f.CategoricalColumns() {
			fillCategoricalMode(col)
		}

	case ImputeMode:
		for _, col := range f.Columns() {
			if col.Kind == frame.KindCategorical {
				fillCategoricalMode(col)
				continue
			}
			note, err := fillNumeric(col, method)
			if err != nil {
				return nil, err
			}
			if note != "" {
				notes = append(notes, note)
			}
		}
	}

	after := f.NullCount()
	lines := []string{fmt.Sprintf("Missing values: %d -> %d (method: %s)", before, after, method)}
	return append(lines, notes...), nil
}

// fillNumeric fills a numeric column's missing cells with its mean, median
// or mode. Returns a log note when the all-missing fallback was taken.
func fillNumeric(col *frame.Column, method ImputationMethod) (string, error) {
	if col.NullCount() == 0 {
		return "", nil
	}

	observed := col.NonNullFloats()
	if len(observed) == 0 {
		for i := range col.Null {
			col.SetFloat(i, 0)
		}
		return fmt.Sprintf("Column %q had no observed values; filled with 0", col.Name), nil
	}

	var fill float64
	var err error
	switch method {
	case ImputeMean:
		fill, err = stats.Mean(observed)
	case ImputeMedian:
		fill, err = stats.Median(observed)
	case ImputeMode:
		fill, err = numericMode(observed)
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeStage,
			fmt.Sprintf("imputation failed for column %q", col.Name))
	}

	for i, isNull := range col.Null {
		if isNull {
			col.SetFloat(i, fill)
		}
	}
	return "", nil
}

// numericMode returns the most frequent value, breaking ties toward the
// smallest. When every value is unique the smallest value is the mode,
// matching how a sorted mode series indexes its first element.
func numericMode(observed []float64) (float64, error) {
	modes, err := stats.Mode(observed)
	if err != nil {
		return 0, err
	}
	if len(modes) > 0 {
		return stats.Min(modes)
	}
	return stats.Min(observed)
}

// fillCategoricalMode fills a categorical column's missing cells with its
// mode, breaking ties lexicographically, or with "Unknown" when the column
// has no observed values.
func fillCategoricalMode(col *frame.Column) {
	if col.NullCount() == 0 {
		return
	}

	fill, ok := col.ModeLabel()
	if !ok {
		fill = fallbackLabel
	}
	for i, isNull := range col.Null {
		if isNull {
			col.SetLabel(i, fill)
		}
	}
}
