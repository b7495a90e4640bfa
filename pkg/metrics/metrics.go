// Package metrics provides performance tracking and observability for
// flowprep using Prometheus metrics. It offers collectors for pipeline
// runs, per-stage latency, and row throughput.
//
// # Basic Usage
//
//	// Record a completed run
//	metrics.PipelineRuns.WithLabelValues("advanced", "success").Inc()
//
//	// Track stage latency
//	timer := metrics.NewStageTimer("impute")
//	runImputation(frame)
//	timer.ObserveDuration()
//
// # Metric Types
//
// Counter: Monotonically increasing values (e.g., total runs)
// Histogram: Distribution of values (e.g., stage latency percentiles)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRuns counts completed pipeline invocations.
	// Labels: path (basic/advanced), status (success/failure)
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowprep_pipeline_runs_total",
			Help: "Total number of pipeline invocations",
		},
		[]string{"path", "status"},
	)

	// StageDuration tracks the distribution of per-stage wall time.
	// Labels: stage (load/impute/outliers/encode/scale/engineer/split)
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "flowprep_stage_duration_seconds",
			Help: "Per-stage processing time in seconds",
			Buckets: []float64{
				.001, // small frames
				.01,
				.1,
				1,
				10,  // large frames
				60,  // spreadsheet parsing worst case
				600, // pathological inputs
			},
		},
		[]string{"stage"},
	)

	// RowsProcessed counts data rows flowing out of completed pipelines.
	// Labels: partition (train/test)
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowprep_rows_processed_total",
			Help: "Total number of output rows written",
		},
		[]string{"partition"},
	)
)

// StageTimer measures the duration of a single pipeline stage.
type StageTimer struct {
	stage string
	start time.Time
}

// NewStageTimer starts timing the named stage.
func NewStageTimer(stage string) *StageTimer {
	return &StageTimer{stage: stage, start: time.Now()}
}

// ObserveDuration records the elapsed time into StageDuration and returns it.
func (t *StageTimer) ObserveDuration() time.Duration {
	elapsed := time.Since(t.start)
	StageDuration.WithLabelValues(t.stage).Observe(elapsed.Seconds())
	return elapsed
}

// RecordRun records a completed pipeline invocation.
func RecordRun(path string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	PipelineRuns.WithLabelValues(path, status).Inc()
}
