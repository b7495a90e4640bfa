package frame

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/flowml/flowprep/pkg/errors"
)

// WriteCSV writes the frame to path as a delimited file with a header row.
// Floats are rendered with the shortest representation that round-trips;
// missing cells are rendered empty. The file is created or truncated.
func (f *Frame) WriteCSV(path string, delimiter rune) error {
	file, err := os.Create(path) //nolint:gosec // G304: path comes from engine configuration
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to create output file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	header := make([]string, len(f.cols))
	for i, col := range f.cols {
		header[i] = col.Name
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to write header")
	}

	row := make([]string, len(f.cols))
	for ri := 0; ri < f.rows; ri++ {
		for ci, col := range f.cols {
			switch {
			case col.Null[ri]:
				row[ci] = ""
			case col.Kind == KindNumeric:
				row[ci] = strconv.FormatFloat(col.Floats[ri], 'g', -1, 64)
			default:
				row[ci] = col.Labels[ri]
			}
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to write row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to flush output file")
	}
	return nil
}
