// Package pipeline implements the preprocessing engine: a single forward
// pass of ordered transformation stages over an in-memory tabular frame.
//
// # Overview
//
// The engine provides:
//   - Missing-value imputation (mean, median, mode, drop)
//   - Outlier removal (IQR, z-score)
//   - Categorical encoding (one-hot, label)
//   - Numeric scaling (minmax, standard, robust)
//   - Optional degree-2 interaction features
//   - Seeded, reproducible train/test splitting
//
// # Architecture
//
// Each invocation loads a fresh frame from the source file, mutates it in
// place through the stages in a fixed order, writes the train/test outputs
// as CSV, and returns a terminal Result. Stage ordering is a correctness
// invariant: the scaler operates over columns produced by the encoder, so
// stages must not be reordered or parallelized against each other.
//
// # Basic Usage
//
//	engine, err := pipeline.New(config.NewEngineConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := pipeline.DefaultOptions()
//	opts.RemoveOutliers = true
//	result := engine.Run(ctx, "data.csv", opts, "train.csv")
//
// The engine never returns an error from Run: failures are reported
// through Result.Success and Result.Error, carrying the partial log
// collected up to the failure point. Nothing is retried; retry policy
// belongs to the orchestration layer. Cancellation mid-pipeline is not
// supported: a caller wanting cancellation must not invoke the engine.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowml/flowprep/pkg/config"
	"github.com/flowml/flowprep/pkg/errors"
	"github.com/flowml/flowprep/pkg/frame"
	"github.com/flowml/flowprep/pkg/logger"
	"github.com/flowml/flowprep/pkg/metrics"
)

// basicOneHotLimit is the basic path's cardinality heuristic: categorical
// columns with more distinct values than this are label encoded.
const basicOneHotLimit = 10

// Engine is the preprocessing engine. It is stateless across invocations;
// concurrent Run calls are safe because each loads its own frame.
type Engine struct {
	cfg    *config.EngineConfig
	logger *zap.Logger
}

// New creates an engine with the given configuration. A nil configuration
// gets the defaults.
func New(cfg *config.EngineConfig) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	log := zap.NewNop()
	if cfg.Observability.EnableLogging {
		if err := logger.Init(logger.Config{
			Level:    cfg.Observability.LogLevel,
			Encoding: "json",
		}); err != nil {
			return nil, fmt.Errorf("logger initialization failed: %w", err)
		}
		log = logger.Get()
	}

	return &Engine{cfg: cfg, logger: log}, nil
}

// Run executes the advanced pipeline: explicit method selection per stage.
// The train partition is written to outputPath (or to a generated file
// under the configured output directory when outputPath is empty); a
// non-empty test partition is written beside it.
func (e *Engine) Run(ctx context.Context, sourcePath string, opts Options, outputPath string) *Result {
	return e.run(ctx, sourcePath, opts, outputPath, 0, "advanced")
}

// RunBasic executes the basic pipeline: mean/mode imputation, heuristic
// encoding, minmax scaling, and a split at the configured training
// fraction. Output files are generated under the configured output
// directory.
func (e *Engine) RunBasic(ctx context.Context, sourcePath string, opts BasicOptions) *Result {
	if err := opts.Validate(); err != nil {
		e.recordRun("basic", false)
		return failure(err, nil, frame.Shape{})
	}

	advanced := Options{
		Imputation:       ImputeMean,
		Scaling:          ScaleMinMax,
		Encoding:         EncodeOneHot,
		OutlierMethod:    OutlierIQR,
		TestSize:         1 - opts.SplitFraction,
		Seed:             opts.Seed,
		EngineerFeatures: opts.EngineerFeatures,
	}
	return e.run(ctx, sourcePath, advanced, "", basicOneHotLimit, "basic")
}

// run is the shared stage driver for both call paths.
func (e *Engine) run(ctx context.Context, sourcePath string, opts Options, outputPath string, maxOneHot int, path string) (res *Result) {
	log := logger.WithContext(ctx).With(
		zap.String("pipeline", path),
		zap.String("source", sourcePath),
	)
	if !e.cfg.Observability.EnableLogging {
		log = zap.NewNop()
	}

	var (
		lines    []string
		original frame.Shape
	)

	// The engine contract is a terminal result, never an escaped fault.
	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf(errors.ErrorTypeInternal, "pipeline panic: %v", r)
			log.Error("pipeline panicked", zap.Any("panic", r))
			e.recordRun(path, false)
			res = failure(err, lines, original)
		}
	}()

	fail := func(err error) *Result {
		log.Error("pipeline failed",
			zap.String("error_type", string(errors.TypeOf(err))),
			zap.Error(err))
		e.recordRun(path, false)
		return failure(err, lines, original)
	}

	if err := opts.Validate(); err != nil {
		return fail(err)
	}
	if err := e.checkSource(sourcePath); err != nil {
		return fail(err)
	}

	loadTimer := e.stageTimer("load")
	fr, err := frame.Load(sourcePath)
	e.observe(loadTimer)
	if err != nil {
		return fail(err)
	}
	if max := e.cfg.Limits.MaxRows; max > 0 && fr.Rows() > max {
		return fail(errors.Newf(errors.ErrorTypeInput,
			"source file has %d rows, limit is %d", fr.Rows(), max))
	}

	original = fr.Shape()
	log.Info("starting preprocessing",
		zap.Int("rows", original.Rows),
		zap.Int("cols", original.Cols))

	// Stage 1: missing values
	imputeTimer := e.stageTimer("impute")
	imputeLines, err := imputeMissing(fr, opts.Imputation)
	e.observe(imputeTimer)
	if err != nil {
		return fail(err)
	}
	lines = append(lines, imputeLines...)

	// Stage 2: outliers
	if opts.RemoveOutliers {
		outlierTimer := e.stageTimer("outliers")
		lines = append(lines, filterOutliers(fr, opts.OutlierMethod))
		e.observe(outlierTimer)
	}

	// Stage 3: categorical encoding
	encodedCount := len(fr.CategoricalColumns())
	encodeTimer := e.stageTimer("encode")
	encodeLine, err := encodeCategoricals(fr, opts.Encoding, maxOneHot)
	e.observe(encodeTimer)
	if err != nil {
		return fail(err)
	}
	if encodeLine != "" {
		lines = append(lines, encodeLine)
	}

	// Stage 4: scaling
	scaleTimer := e.stageTimer("scale")
	scaleLine, err := scaleNumeric(fr, opts.Scaling, e.cfg.Scaling.ExcludeBinaryColumns)
	e.observe(scaleTimer)
	if err != nil {
		return fail(errors.Wrap(err, errors.ErrorTypeStage, "scaling failed"))
	}
	if scaleLine != "" {
		lines = append(lines, scaleLine)
	}

	// Stage 5: feature engineering (optional)
	if opts.EngineerFeatures {
		engineerTimer := e.stageTimer("engineer")
		engineerLine, err := engineerFeatures(fr)
		e.observe(engineerTimer)
		if err != nil {
			return fail(err)
		}
		if engineerLine != "" {
			lines = append(lines, engineerLine)
		}
	}

	processed := fr.Shape()

	// Stage 6: split and write
	splitTimer := e.stageTimer("split")
	var train, test *frame.Frame
	if fr.Rows() > 1 {
		var note string
		stratify := opts.Stratify || e.cfg.Split.Stratify
		train, test, note = splitFrame(fr, opts.TestSize, e.seed(opts), stratify)
		if note != "" {
			lines = append(lines, note)
		}
	} else {
		train = fr
		test = fr.Select(nil)
	}
	e.observe(splitTimer)

	trainPath, testPath, err := e.writeOutputs(train, test, outputPath)
	if err != nil {
		return fail(err)
	}

	lines = append(lines, fmt.Sprintf("Train/test split: %d train rows, %d test rows (test_size: %g)",
		train.Rows(), test.Rows(), opts.TestSize))
	lines = append(lines, fmt.Sprintf("Final shape: %d rows, %d columns", processed.Rows, processed.Cols))

	log.Info("preprocessing completed",
		zap.Int("train_rows", train.Rows()),
		zap.Int("test_rows", test.Rows()),
		zap.String("output", trainPath))
	e.recordRun(path, true)
	if e.cfg.Observability.EnableMetrics {
		metrics.RowsProcessed.WithLabelValues("train").Add(float64(train.Rows()))
		metrics.RowsProcessed.WithLabelValues("test").Add(float64(test.Rows()))
	}

	return &Result{
		Success:        true,
		OriginalShape:  original,
		ProcessedShape: processed,
		TrainShape:     train.Shape(),
		TestShape:      test.Shape(),
		Log:            lines,
		OutputPath:     trainPath,
		TestPath:       testPath,
		Columns: ColumnsInfo{
			Total:   processed.Cols,
			Numeric: len(fr.NumericColumns()),
			Encoded: encodedCount,
		},
	}
}

// checkSource verifies the source file exists and is within the configured
// size limit before any stage runs.
func (e *Engine) checkSource(sourcePath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInput, "source file not readable")
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrorTypeInput, "source path %q is a directory", sourcePath)
	}
	if max := e.cfg.Limits.MaxFileSizeMB; max > 0 && info.Size() > int64(max)*1024*1024 {
		return errors.Newf(errors.ErrorTypeInput,
			"source file is %d bytes, limit is %d MB", info.Size(), max)
	}
	return nil
}

// writeOutputs persists the train partition to outputPath (generating a
// path when empty) and the test partition beside it when non-empty. A
// failed test write removes the already written train file so a failure
// never references partial output.
func (e *Engine) writeOutputs(train, test *frame.Frame, outputPath string) (string, string, error) {
	delimiter := e.cfg.Output.DelimiterRune()

	if outputPath == "" {
		if err := os.MkdirAll(e.cfg.Output.Dir, 0o755); err != nil {
			return "", "", errors.Wrap(err, errors.ErrorTypeIO, "failed to create output directory")
		}
		outputPath = filepath.Join(e.cfg.Output.Dir, uuid.NewString()+"_train.csv")
	}

	if err := train.WriteCSV(outputPath, delimiter); err != nil {
		return "", "", err
	}

	if test.Rows() == 0 {
		return outputPath, "", nil
	}

	testPath := testPathFor(outputPath)
	if err := test.WriteCSV(testPath, delimiter); err != nil {
		_ = os.Remove(outputPath)
		return "", "", err
	}
	return outputPath, testPath, nil
}

// testPathFor derives the test partition path from the train path:
// data_train.csv -> data_test.csv, data.csv -> data_test.csv.
func testPathFor(trainPath string) string {
	ext := filepath.Ext(trainPath)
	base := strings.TrimSuffix(trainPath, ext)
	if strings.HasSuffix(base, "_train") {
		return strings.TrimSuffix(base, "_train") + "_test" + ext
	}
	return base + "_test" + ext
}

// seed resolves the effective split seed: the per-invocation option wins,
// zero falls back to the configured default.
func (e *Engine) seed(opts Options) int64 {
	if opts.Seed != 0 {
		return opts.Seed
	}
	return e.cfg.Split.Seed
}

func (e *Engine) stageTimer(stage string) *metrics.StageTimer {
	if !e.cfg.Observability.EnableMetrics {
		return nil
	}
	return metrics.NewStageTimer(stage)
}

func (e *Engine) observe(timer *metrics.StageTimer) {
	if timer != nil {
		timer.ObserveDuration()
	}
}

func (e *Engine) recordRun(path string, success bool) {
	if e.cfg.Observability.EnableMetrics {
		metrics.RecordRun(path, success)
	}
}
