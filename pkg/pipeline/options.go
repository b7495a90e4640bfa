package pipeline

import (
	"github.com/flowml/flowprep/pkg/errors"
)

// ImputationMethod selects the missing-value strategy.
type ImputationMethod string

// Supported imputation methods.
const (
	// ImputeMean fills numeric columns with their mean, categorical with
	// their mode
	ImputeMean ImputationMethod = "mean"
	// ImputeMedian fills numeric columns with their median, categorical
	// with their mode
	ImputeMedian ImputationMethod = "median"
	// ImputeMode fills every column with its own mode
	ImputeMode ImputationMethod = "mode"
	// ImputeDrop removes every row containing any missing cell
	ImputeDrop ImputationMethod = "drop"
)

// ScalingMethod selects the numeric scaling transform.
type ScalingMethod string

// Supported scaling methods.
const (
	// ScaleMinMax rescales each column linearly to [0,1]
	ScaleMinMax ScalingMethod = "minmax"
	// ScaleStandard centers to zero mean and unit variance
	ScaleStandard ScalingMethod = "standard"
	// ScaleRobust centers on the median and divides by the IQR
	ScaleRobust ScalingMethod = "robust"
)

// EncodingMethod selects the categorical encoding transform.
type EncodingMethod string

// Supported encoding methods.
const (
	// EncodeOneHot replaces each categorical column with one indicator
	// column per distinct value
	EncodeOneHot EncodingMethod = "onehot"
	// EncodeLabel replaces values with integer codes in first-seen order
	EncodeLabel EncodingMethod = "label"
)

// OutlierMethod selects the outlier detection rule.
type OutlierMethod string

// Supported outlier methods.
const (
	// OutlierIQR drops rows outside [Q1-1.5*IQR, Q3+1.5*IQR] per column
	OutlierIQR OutlierMethod = "iqr"
	// OutlierZScore drops rows with |z| >= 3 per column
	OutlierZScore OutlierMethod = "zscore"
)

// Options configures the advanced pipeline, exposing explicit method
// selection per stage. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// Imputation is the missing-value strategy
	Imputation ImputationMethod `json:"imputation_method" yaml:"imputation_method"`
	// Scaling is the numeric scaling transform
	Scaling ScalingMethod `json:"scaling_method" yaml:"scaling_method"`
	// Encoding is the categorical encoding transform
	Encoding EncodingMethod `json:"encoding_method" yaml:"encoding_method"`
	// RemoveOutliers enables the outlier filter stage
	RemoveOutliers bool `json:"remove_outliers" yaml:"remove_outliers"`
	// OutlierMethod is the detection rule when RemoveOutliers is set
	OutlierMethod OutlierMethod `json:"outlier_method" yaml:"outlier_method"`
	// TestSize is the held-out fraction, in (0,1)
	TestSize float64 `json:"test_size" yaml:"test_size"`
	// Seed makes the train/test row assignment reproducible. Zero falls
	// back to the engine configuration's split seed.
	Seed int64 `json:"seed" yaml:"seed"`
	// EngineerFeatures appends degree-2 interaction features after scaling
	EngineerFeatures bool `json:"engineer_features" yaml:"engineer_features"`
	// Stratify partitions proportionally by the last column when feasible
	Stratify bool `json:"stratify" yaml:"stratify"`
}

// DefaultOptions returns the documented defaults:
// mean / minmax / onehot / no outlier removal / iqr / 0.2.
func DefaultOptions() Options {
	return Options{
		Imputation:     ImputeMean,
		Scaling:        ScaleMinMax,
		Encoding:       EncodeOneHot,
		RemoveOutliers: false,
		OutlierMethod:  OutlierIQR,
		TestSize:       0.2,
		Seed:           42,
	}
}

// Validate checks every option against its enumerated set, failing fast on
// unrecognized values rather than silently defaulting.
func (o Options) Validate() error {
	switch o.Imputation {
	case ImputeMean, ImputeMedian, ImputeMode, ImputeDrop:
	default:
		return errors.Newf(errors.ErrorTypeOption, "unknown imputation method %q", o.Imputation)
	}
	switch o.Scaling {
	case ScaleMinMax, ScaleStandard, ScaleRobust:
	default:
		return errors.Newf(errors.ErrorTypeOption, "unknown scaling method %q", o.Scaling)
	}
	switch o.Encoding {
	case EncodeOneHot, EncodeLabel:
	default:
		return errors.Newf(errors.ErrorTypeOption, "unknown encoding method %q", o.Encoding)
	}
	switch o.OutlierMethod {
	case OutlierIQR, OutlierZScore:
	default:
		return errors.Newf(errors.ErrorTypeOption, "unknown outlier method %q", o.OutlierMethod)
	}
	if o.TestSize <= 0 || o.TestSize >= 1 {
		return errors.Newf(errors.ErrorTypeOption, "test_size must be in (0,1), got %v", o.TestSize)
	}
	return nil
}

// BasicOptions configures the basic pipeline path: a small fixed option set
// with heuristic encoding (one-hot below 10 distinct values per column,
// label above) and minmax scaling.
type BasicOptions struct {
	// SplitFraction is the training fraction, in (0,1)
	SplitFraction float64 `json:"train_test_split" yaml:"train_test_split"`
	// EngineerFeatures appends degree-2 interaction features after scaling
	EngineerFeatures bool `json:"feature_engineering" yaml:"feature_engineering"`
	// Seed makes the train/test row assignment reproducible
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultBasicOptions returns the basic path defaults: 0.8 training
// fraction, no feature engineering.
func DefaultBasicOptions() BasicOptions {
	return BasicOptions{
		SplitFraction: 0.8,
		Seed:          42,
	}
}

// Validate checks the basic option set.
func (o BasicOptions) Validate() error {
	if o.SplitFraction <= 0 || o.SplitFraction >= 1 {
		return errors.Newf(errors.ErrorTypeOption, "train_test_split must be in (0,1), got %v", o.SplitFraction)
	}
	return nil
}

// ImputationMethods lists the supported imputation method names.
func ImputationMethods() []string {
	return []string{string(ImputeMean), string(ImputeMedian), string(ImputeMode), string(ImputeDrop)}
}

// ScalingMethods lists the supported scaling method names.
func ScalingMethods() []string {
	return []string{string(ScaleMinMax), string(ScaleStandard), string(ScaleRobust)}
}

// EncodingMethods lists the supported encoding method names.
func EncodingMethods() []string {
	return []string{string(EncodeOneHot), string(EncodeLabel)}
}

// OutlierMethods lists the supported outlier method names.
func OutlierMethods() []string {
	return []string{string(OutlierIQR), string(OutlierZScore)}
}
