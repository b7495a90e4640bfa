package pipeline

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/flowml/flowprep/pkg/frame"
)

// filterOutliers removes rows flagged as outliers, testing numeric columns
// one at a time in frame column order. Filtering is sequential and
// cumulative: each column's bounds are computed against the rows that
// survived the previous columns, not against a single combined mask.
// Missing cells are never flagged.
func filterOutliers(f *frame.Frame, method OutlierMethod) string {
	before := f.Rows()

	// Snapshot names up front; the column set is stable during this stage
	// but the backing rows shrink as we filter.
	var names []string
	for _, col := range f.NumericColumns() {
		names = append(names, col.Name)
	}

	for _, name := range names {
		col := f.ColumnByName(name)
		observed := col.NonNullFloats()
		if len(observed) < 2 {
			continue
		}

		var keep []bool
		switch method {
		case OutlierIQR:
			keep = iqrMask(col, observed)
		case OutlierZScore:
			keep = zscoreMask(col, observed)
		}
		if keep != nil {
			f.Filter(keep)
		}
	}

	return fmt.Sprintf("Outliers removed: %d -> %d rows (method: %s)", before, f.Rows(), method)
}

// iqrMask keeps rows inside [Q1-1.5*IQR, Q3+1.5*IQR] for the column.
// Quartile indices are undefined below four observations; with so few rows
// no value is declared an outlier.
func iqrMask(col *frame.Column, observed []float64) []bool {
	if len(observed) < 4 {
		return nil
	}
	q1, err1 := stats.Percentile(observed, 25)
	q3, err2 := stats.Percentile(observed, 75)
	if err1 != nil || err2 != nil {
		return nil
	}

	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	keep := make([]bool, col.Len())
	for i := range keep {
		if col.Null[i] {
			keep[i] = true
			continue
		}
		v := col.Floats[i]
		keep[i] = v >= lower && v <= upper
	}
	return keep
}

// zscoreMask keeps rows with |z| < 3 for the column. A zero-variance
// column produces undefined z-scores and never flags anything.
func zscoreMask(col *frame.Column, observed []float64) []bool {
	mean, err1 := stats.Mean(observed)
	std, err2 := stats.StandardDeviation(observed)
	if err1 != nil || err2 != nil || std == 0 {
		return nil
	}

	keep := make([]bool, col.Len())
	for i := range keep {
		if col.Null[i] {
			keep[i] = true
			continue
		}
		keep[i] = math.Abs(col.Floats[i]-mean)/std < 3
	}
	return keep
}
