package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flowml/flowprep/pkg/config"
	"github.com/flowml/flowprep/pkg/json"
	"github.com/flowml/flowprep/pkg/logger"
	"github.com/flowml/flowprep/pkg/pipeline"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "flowprep",
		Short: "flowprep - dataset preprocessing engine",
		Long: `flowprep cleans, encodes, scales and splits tabular datasets for
machine-learning workloads. It reads a CSV or XLSX file, applies the
configured preprocessing stages, and writes train/test CSV outputs plus a
log of every transformation applied.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flowprep v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Methods command to show available methods per stage
	root.AddCommand(&cobra.Command{
		Use:   "methods",
		Short: "List available preprocessing methods",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Imputation methods:")
			for _, m := range pipeline.ImputationMethods() {
				fmt.Printf("  - %s\n", m)
			}
			fmt.Println("\nScaling methods:")
			for _, m := range pipeline.ScalingMethods() {
				fmt.Printf("  - %s\n", m)
			}
			fmt.Println("\nEncoding methods:")
			for _, m := range pipeline.EncodingMethods() {
				fmt.Printf("  - %s\n", m)
			}
			fmt.Println("\nOutlier methods:")
			for _, m := range pipeline.OutlierMethods() {
				fmt.Printf("  - %s\n", m)
			}
		},
	})

	// Main run command
	var (
		inputPath, outputPath, configFile string
		imputation, scaling, encoding     string
		outlierMethod, logLevel           string
		removeOutliers, engineer          bool
		basic, stratify                   bool
		testSize, splitFraction           float64
		seed                              int64
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the preprocessing pipeline on a dataset",
		Long: `Run the preprocessing pipeline with explicit method selection per stage,
or with --basic for the fixed basic option set.

Example:
  flowprep run --input data.csv --output train.csv --imputation median --scaling standard
  flowprep run --input data.csv --basic --split-fraction 0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(runParams{
				input:          inputPath,
				output:         outputPath,
				configFile:     configFile,
				logLevel:       logLevel,
				basic:          basic,
				imputation:     imputation,
				scaling:        scaling,
				encoding:       encoding,
				outlierMethod:  outlierMethod,
				removeOutliers: removeOutliers,
				engineer:       engineer,
				stratify:       stratify,
				testSize:       testSize,
				splitFraction:  splitFraction,
				seed:           seed,
			})
		},
	}

	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the source CSV/XLSX file (required)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the train output (generated when omitted)")
	_ = runCmd.MarkFlagRequired("input")

	runCmd.Flags().StringVar(&configFile, "config", "", "Path to engine configuration YAML file (optional)")
	runCmd.Flags().BoolVar(&basic, "basic", false, "Use the basic pipeline with its fixed option set")
	runCmd.Flags().StringVar(&imputation, "imputation", "mean", "Missing-value method (mean, median, mode, drop)")
	runCmd.Flags().StringVar(&scaling, "scaling", "minmax", "Scaling method (minmax, standard, robust)")
	runCmd.Flags().StringVar(&encoding, "encoding", "onehot", "Encoding method (onehot, label)")
	runCmd.Flags().BoolVar(&removeOutliers, "remove-outliers", false, "Enable the outlier filter stage")
	runCmd.Flags().StringVar(&outlierMethod, "outlier-method", "iqr", "Outlier method (iqr, zscore)")
	runCmd.Flags().Float64Var(&testSize, "test-size", 0.2, "Held-out fraction for the advanced path")
	runCmd.Flags().Float64Var(&splitFraction, "split-fraction", 0.8, "Training fraction for the basic path")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for reproducible train/test splits")
	runCmd.Flags().BoolVar(&engineer, "engineer-features", false, "Append degree-2 interaction features")
	runCmd.Flags().BoolVar(&stratify, "stratify", false, "Stratify the split by the last column when feasible")
	runCmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runParams struct {
	input, output, configFile, logLevel          string
	basic                                        bool
	imputation, scaling, encoding, outlierMethod string
	removeOutliers, engineer, stratify           bool
	testSize, splitFraction                      float64
	seed                                         int64
}

// runPipeline executes one preprocessing invocation and prints the result
// as JSON. A failed result exits non-zero so orchestration scripts can
// detect it without parsing output.
func runPipeline(params runParams) error {
	if err := logger.Init(logger.Config{
		Level:    params.logLevel,
		Encoding: "json",
	}); err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.NewEngineConfig()
	if params.configFile != "" {
		loaded, err := config.LoadEngineConfig(params.configFile)
		if err != nil {
			return fmt.Errorf("engine configuration error: %w", err)
		}
		cfg = loaded
	}

	engine, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	log := logger.With(
		zap.String("component", "flowprep-cli"),
		zap.String("input", params.input),
	)
	log.Info("starting preprocessing run", zap.Bool("basic", params.basic))

	ctx := context.Background()
	var result *pipeline.Result
	if params.basic {
		opts := pipeline.BasicOptions{
			SplitFraction:    params.splitFraction,
			EngineerFeatures: params.engineer,
			Seed:             params.seed,
		}
		result = engine.RunBasic(ctx, params.input, opts)
	} else {
		opts := pipeline.Options{
			Imputation:       pipeline.ImputationMethod(params.imputation),
			Scaling:          pipeline.ScalingMethod(params.scaling),
			Encoding:         pipeline.EncodingMethod(params.encoding),
			RemoveOutliers:   params.removeOutliers,
			OutlierMethod:    pipeline.OutlierMethod(params.outlierMethod),
			TestSize:         params.testSize,
			Seed:             params.seed,
			EngineerFeatures: params.engineer,
			Stratify:         params.stratify,
		}
		result = engine.Run(ctx, params.input, opts, params.output)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("preprocessing failed: %s", result.Error)
	}
	return nil
}
