package pipeline

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/flowml/flowprep/pkg/frame"
)

// scaleNumeric normalizes every numeric column in place and returns the
// stage log line, or "" when nothing was scaled. It runs post-encoding, so
// one-hot indicator columns are scaled too unless excludeBinary is set.
//
// Degenerate columns (max==min, std==0, IQR==0, or too few values to place
// quartiles) map every value to 0 rather than dividing by zero.
func scaleNumeric(f *frame.Frame, method ScalingMethod, excludeBinary bool) (string, error) {
	scaled := 0
	for _, col := range f.NumericColumns() {
		if excludeBinary && col.IsBinary() {
			continue
		}
		observed := col.NonNullFloats()
		if len(observed) == 0 {
			continue
		}

		var err error
		switch method {
		case ScaleMinMax:
			err = scaleMinMax(col, observed)
		case ScaleStandard:
			err = scaleStandard(col, observed)
		case ScaleRobust:
			err = scaleRobust(col, observed)
		}
		if err != nil {
			return "", err
		}
		scaled++
	}

	if scaled == 0 {
		return "", nil
	}
	return fmt.Sprintf("Scaling applied using %s method to %d numeric columns", method, scaled), nil
}

func scaleMinMax(col *frame.Column, observed []float64) error {
	minVal, err := stats.Min(observed)
	if err != nil {
		return err
	}
	maxVal, err := stats.Max(observed)
	if err != nil {
		return err
	}

	applyScale(col, minVal, maxVal-minVal)
	return nil
}

func scaleStandard(col *frame.Column, observed []float64) error {
	mean, err := stats.Mean(observed)
	if err != nil {
		return err
	}
	std, err := stats.StandardDeviation(observed)
	if err != nil {
		return err
	}

	applyScale(col, mean, std)
	return nil
}

func scaleRobust(col *frame.Column, observed []float64) error {
	median, err := stats.Median(observed)
	if err != nil {
		return err
	}
	// Percentile cannot place both quartile indices below four
	// observations; the IQR is undefined there, so the column is treated
	// as degenerate.
	if len(observed) < 4 {
		applyScale(col, median, 0)
		return nil
	}
	q1, err := stats.Percentile(observed, 25)
	if err != nil {
		return err
	}
	q3, err := stats.Percentile(observed, 75)
	if err != nil {
		return err
	}

	applyScale(col, median, q3-q1)
	return nil
}

// applyScale maps each non-missing value to (v-center)/spread, or to 0 for
// every value when spread is zero.
func applyScale(col *frame.Column, center, spread float64) {
	for i := range col.Floats {
		if col.Null[i] {
			continue
		}
		if spread == 0 {
			col.Floats[i] = 0
		} else {
			col.Floats[i] = (col.Floats[i] - center) / spread
		}
	}
}
