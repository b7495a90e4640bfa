package frame_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowml/flowprep/pkg/errors"
	"github.com/flowml/flowprep/pkg/frame"
	"github.com/flowml/flowprep/pkg/testutil"
)

func TestLoadInfersColumnKinds(t *testing.T) {
	path := testutil.WriteTempCSV(t, "people.csv", `age,dept,salary
25,IT,50000
30,HR,60000
35,IT,
`)

	f, err := frame.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, 3, f.Cols())
	assert.Equal(t, frame.KindNumeric, f.ColumnByName("age").Kind)
	assert.Equal(t, frame.KindCategorical, f.ColumnByName("dept").Kind)
	assert.Equal(t, frame.KindNumeric, f.ColumnByName("salary").Kind)
	assert.Equal(t, 1, f.ColumnByName("salary").NullCount())
}

func TestLoadMixedColumnIsCategorical(t *testing.T) {
	path := testutil.WriteTempCSV(t, "mixed.csv", `code
12
abc
34
`)

	f, err := frame.Load(path)
	require.NoError(t, err)

	assert.Equal(t, frame.KindCategorical, f.ColumnByName("code").Kind)
}

func TestLoadMissingMarkers(t *testing.T) {
	path := testutil.WriteTempCSV(t, "markers.csv", `a,b
NA,1
null,2
None,NaN
 ,4
`)

	f, err := frame.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, f.ColumnByName("a").NullCount())
	assert.Equal(t, 1, f.ColumnByName("b").NullCount())
	// With every cell missing the column carries no type evidence.
	assert.Equal(t, frame.KindNumeric, f.ColumnByName("a").Kind)
}

func TestLoadTSV(t *testing.T) {
	path := testutil.WriteTempCSV(t, "data.tsv", "x\ty\n1\tfoo\n2\tbar\n")

	f, err := frame.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, f.Rows())
	assert.Equal(t, []float64{1, 2}, f.ColumnByName("x").Floats)
	assert.Equal(t, []string{"foo", "bar"}, f.ColumnByName("y").Labels)
}

func TestLoadPadsShortRows(t *testing.T) {
	path := testutil.WriteTempCSV(t, "ragged.csv", "a,b\n1,x\n2\n")

	f, err := frame.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, f.Rows())
	assert.Equal(t, 1, f.ColumnByName("b").NullCount())
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := testutil.WriteTempCSV(t, "data.parquet", "a,b\n1,2\n")

	_, err := frame.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInput))
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := testutil.WriteTempCSV(t, "empty.csv", "")

	_, err := frame.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInput))
}

func TestLoadRejectsHeaderOnly(t *testing.T) {
	path := testutil.WriteTempCSV(t, "header.csv", "a,b,c\n")

	_, err := frame.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInput))
}

func TestLoadRejectsBlankHeaderName(t *testing.T) {
	path := testutil.WriteTempCSV(t, "blank.csv", "a,,c\n1,2,3\n")

	_, err := frame.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInput))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := testutil.WriteTempCSV(t, "in.csv", `name,score
alice,1.5
bob,
carol,3
`)

	f, err := frame.Load(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, f.WriteCSV(out, ','))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "name,score\nalice,1.5\nbob,\ncarol,3\n", string(data))
}

func TestWriteCSVBadPath(t *testing.T) {
	f, err := frame.Load(testutil.WriteTempCSV(t, "in.csv", "a\n1\n"))
	require.NoError(t, err)

	err = f.WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), ',')
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}
