package pipeline

import "github.com/flowml/flowprep/pkg/frame"

// ColumnsInfo summarizes the column makeup of the processed frame.
type ColumnsInfo struct {
	Total   int `json:"total_columns"`
	Numeric int `json:"numeric_columns"`
	Encoded int `json:"encoded_columns"`
}

// Result is the terminal outcome of a pipeline invocation. The engine
// always returns one: Success is false and Error is populated on any
// failure, with Log carrying the entries collected up to the failure point.
// File paths are populated only on success.
type Result struct {
	Success        bool        `json:"success"`
	OriginalShape  frame.Shape `json:"original_shape"`
	ProcessedShape frame.Shape `json:"processed_shape"`
	TrainShape     frame.Shape `json:"train_shape"`
	TestShape      frame.Shape `json:"test_shape"`
	// Log is the ordered, append-only record of what each stage did
	Log []string `json:"preprocessing_log"`
	// OutputPath is the written train partition
	OutputPath string `json:"output_path,omitempty"`
	// TestPath is the written test partition, empty when no test rows
	TestPath string `json:"test_path,omitempty"`
	Columns  ColumnsInfo `json:"columns_info"`
	Error    string      `json:"error,omitempty"`
}

// failure builds a failed result carrying the partial log.
func failure(err error, log []string, original frame.Shape) *Result {
	return &Result{
		Success:       false,
		OriginalShape: original,
		Log:           log,
		Error:         err.Error(),
	}
}
