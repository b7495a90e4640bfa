// Package flowprep provides a dataset preprocessing engine for tabular
// machine-learning workloads. Given a CSV or XLSX file it cleans missing
// values, removes outliers, encodes categorical variables, scales numeric
// features, optionally engineers interaction features, and splits the
// result into train/test sets, producing transformed CSV outputs plus a
// human-readable log of every transformation applied.
//
// # Architecture
//
// The engine is a single forward pass through five ordered stages operating
// on an in-memory tabular frame:
//
//  1. Missing-Value Imputer: fills or drops null cells per strategy.
//  2. Outlier Filter: optionally removes rows flagged as outliers.
//  3. Categorical Encoder: one-hot or label encodes non-numeric columns.
//  4. Numeric Scaler: minmax/standard/robust normalization.
//  5. Splitter & Writer: seeded train/test partition, written as CSV.
//
// Stage ordering is a correctness invariant: later stages assume earlier
// stages' output shape (the scaler operates over columns produced by the
// encoder). Each invocation is stateless over a fresh load of the source
// file; nothing is shared between invocations.
//
// # Quick Start
//
// Run the advanced pipeline with explicit method selection:
//
//	import (
//	    "context"
//	    "github.com/flowml/flowprep/pkg/config"
//	    "github.com/flowml/flowprep/pkg/pipeline"
//	)
//
//	cfg := config.NewEngineConfig()
//	engine, err := pipeline.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := pipeline.DefaultOptions()
//	opts.Imputation = pipeline.ImputeMedian
//	opts.Scaling = pipeline.ScaleStandard
//	opts.RemoveOutliers = true
//
//	result := engine.Run(context.Background(), "data.csv", opts, "out_train.csv")
//	if !result.Success {
//	    log.Fatal(result.Error)
//	}
//
// Or the basic path with its small fixed option set:
//
//	result := engine.RunBasic(context.Background(), "data.csv", pipeline.DefaultBasicOptions())
//
// # Key Packages
//
//	pkg/pipeline  - the preprocessing engine: options, stages, result
//	pkg/frame     - tabular frame with typed columns and CSV/XLSX loading
//	pkg/config    - explicit engine configuration (no global state)
//	pkg/errors    - structured error handling
//	pkg/logger    - structured logging built on zap
//	pkg/metrics   - Prometheus metrics collection
//
// # Error Handling
//
// The engine never lets a failure escape to its caller: every invocation
// returns a terminal Result, with Success=false and Error populated on any
// failure, carrying the partial preprocessing log collected up to the
// failure point. Nothing is retried inside the engine; retry policy belongs
// to the orchestration layer.
package flowprep
