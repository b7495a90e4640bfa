package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowml/flowprep/pkg/config"
	"github.com/flowml/flowprep/pkg/testutil"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := config.NewEngineConfig()
	cfg.Output.Dir = t.TempDir()
	cfg.Observability.EnableLogging = false

	engine, err := New(cfg)
	require.NoError(t, err)
	return engine
}

const peopleCSV = `age,dept
25,IT
,HR
35,IT
`

func TestRunEndToEnd(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)

	result := engine.Run(context.Background(), source, DefaultOptions(), "")

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, 3, result.OriginalShape.Rows)
	assert.Equal(t, 2, result.OriginalShape.Cols)
	assert.Equal(t, 3, result.ProcessedShape.Rows)
	assert.Equal(t, 3, result.ProcessedShape.Cols)
	assert.Equal(t, 2, result.TrainShape.Rows)
	assert.Equal(t, 1, result.TestShape.Rows)
	assert.Equal(t, ColumnsInfo{Total: 3, Numeric: 3, Encoded: 1}, result.Columns)

	assert.Contains(t, result.Log, "Missing values: 1 -> 0 (method: mean)")
	assert.Contains(t, result.Log, "One-hot encoding applied to 1 categorical columns")
	assert.Contains(t, result.Log, "Scaling applied using minmax method to 3 numeric columns")
	assert.Contains(t, result.Log, "Train/test split: 2 train rows, 1 test rows (test_size: 0.2)")
	assert.Contains(t, result.Log, "Final shape: 3 rows, 3 columns")

	train, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(train), "age,dept_HR,dept_IT\n"))

	_, err = os.Stat(result.TestPath)
	require.NoError(t, err)
}

func TestRunExplicitOutputPath(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)
	out := filepath.Join(t.TempDir(), "people_train.csv")

	result := engine.Run(context.Background(), source, DefaultOptions(), out)

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, out, result.OutputPath)
	assert.Equal(t, filepath.Join(filepath.Dir(out), "people_test.csv"), result.TestPath)
}

func TestRunIsReproducibleWithFixedSeed(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)

	opts := DefaultOptions()
	first := engine.Run(context.Background(), source, opts, "")
	second := engine.Run(context.Background(), source, opts, "")

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, first.Log, second.Log)

	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRunWithOutlierRemoval(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "values.csv", "v\n1\n2\n3\n4\n100\n")

	opts := DefaultOptions()
	opts.RemoveOutliers = true

	result := engine.Run(context.Background(), source, opts, "")

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Contains(t, result.Log, "Outliers removed: 5 -> 4 rows (method: iqr)")
	assert.Equal(t, 4, result.ProcessedShape.Rows)
}

func TestRunWithFeatureEngineering(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "values.csv", "a,b\n1,10\n2,20\n3,30\n")

	opts := DefaultOptions()
	opts.EngineerFeatures = true

	result := engine.Run(context.Background(), source, opts, "")

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Contains(t, result.Log, "Added 1 interaction features")
	assert.Equal(t, 3, result.ProcessedShape.Cols)

	train, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(train), "a,b,a_x_b\n"))
}

func TestRunSingleDataRow(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "one.csv", "a\n7\n")

	result := engine.Run(context.Background(), source, DefaultOptions(), "")

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, 1, result.TrainShape.Rows)
	assert.Equal(t, 0, result.TestShape.Rows)
	assert.Empty(t, result.TestPath)
}

func TestRunMissingSourceFile(t *testing.T) {
	engine := testEngine(t)

	result := engine.Run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), DefaultOptions(), "")

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "not readable")
	assert.Empty(t, result.OutputPath)
}

func TestRunRejectsBadOptions(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)

	opts := DefaultOptions()
	opts.Imputation = "average"

	result := engine.Run(context.Background(), source, opts, "")

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown imputation method")
}

func TestRunEnforcesRowLimit(t *testing.T) {
	cfg := config.NewEngineConfig()
	cfg.Output.Dir = t.TempDir()
	cfg.Observability.EnableLogging = false
	cfg.Limits.MaxRows = 2

	engine, err := New(cfg)
	require.NoError(t, err)

	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)
	result := engine.Run(context.Background(), source, DefaultOptions(), "")

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "limit is 2")
}

func TestRunBasicAppliesCardinalityHeuristic(t *testing.T) {
	engine := testEngine(t)

	var b strings.Builder
	b.WriteString("grade,city\n")
	for i := 0; i < 12; i++ {
		grade := "a"
		if i%2 == 1 {
			grade = "b"
		}
		fmt.Fprintf(&b, "%s,city%02d\n", grade, i%11)
	}
	source := testutil.WriteTempCSV(t, "students.csv", b.String())

	result := engine.RunBasic(context.Background(), source, DefaultBasicOptions())

	require.True(t, result.Success, "error: %s", result.Error)
	assert.Contains(t, result.Log, "Encoded 2 categorical columns")

	// grade (2 distinct) becomes grade_a/grade_b indicators; city (11
	// distinct) exceeds the one-hot limit and stays a single label column.
	train, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	header := strings.SplitN(string(train), "\n", 2)[0]
	assert.Equal(t, "city,grade_a,grade_b", header)

	assert.Equal(t, 9, result.TrainShape.Rows)
	assert.Equal(t, 3, result.TestShape.Rows)
}

func TestRunBasicRejectsBadSplitFraction(t *testing.T) {
	engine := testEngine(t)
	source := testutil.WriteTempCSV(t, "people.csv", peopleCSV)

	result := engine.RunBasic(context.Background(), source, BasicOptions{SplitFraction: 1.5})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "train_test_split")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.NewEngineConfig()
	cfg.Output.Delimiter = "||"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewRejectsUnknownLogLevel(t *testing.T) {
	cfg := config.NewEngineConfig()
	cfg.Observability.LogLevel = "loud"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewNilConfigUsesDefaults(t *testing.T) {
	engine, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestTestPathFor(t *testing.T) {
	assert.Equal(t, "data_test.csv", testPathFor("data_train.csv"))
	assert.Equal(t, "data_test.csv", testPathFor("data.csv"))
	assert.Equal(t, "/tmp/out_test.csv", testPathFor("/tmp/out_train.csv"))
}
