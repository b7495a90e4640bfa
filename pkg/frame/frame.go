// Package frame implements the in-memory tabular frame the preprocessing
// engine operates on: an ordered sequence of named columns, each either
// numeric or categorical, with rows aligned by position. A frame is created
// by loading a source file at pipeline start, mutated in place by the
// pipeline stages, and discarded after the outputs are written.
package frame

import (
	"sort"

	"github.com/flowml/flowprep/pkg/errors"
)

// Kind identifies the value type of a column.
type Kind int

const (
	// KindNumeric columns store float64 values
	KindNumeric Kind = iota
	// KindCategorical columns store string labels
	KindCategorical
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named column. Floats is the backing store for numeric
// columns, Labels for categorical ones; Null marks missing cells in either.
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64
	Labels []string
	Null   []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Null)
}

// NullCount returns the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.Null {
		if isNull {
			n++
		}
	}
	return n
}

// NonNullFloats returns the non-missing numeric values in row order.
func (c *Column) NonNullFloats() []float64 {
	vals := make([]float64, 0, len(c.Floats))
	for i, v := range c.Floats {
		if !c.Null[i] {
			vals = append(vals, v)
		}
	}
	return vals
}

// SetFloat assigns a numeric value and clears the null flag.
func (c *Column) SetFloat(row int, v float64) {
	c.Floats[row] = v
	c.Null[row] = false
}

// SetLabel assigns a categorical value and clears the null flag.
func (c *Column) SetLabel(row int, v string) {
	c.Labels[row] = v
	c.Null[row] = false
}

// ModeLabel returns the most frequent non-missing label. Ties break to the
// lexicographically smallest value so results are deterministic. The second
// return is false when every cell is missing.
func (c *Column) ModeLabel() (string, bool) {
	counts := make(map[string]int)
	for i, label := range c.Labels {
		if !c.Null[i] {
			counts[label]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}

	best := ""
	bestCount := -1
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best, true
}

// DistinctLabels returns the sorted distinct non-missing labels.
func (c *Column) DistinctLabels() []string {
	seen := make(map[string]struct{})
	for i, label := range c.Labels {
		if !c.Null[i] {
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ToNumeric converts a categorical column to numeric in place using the
// provided values, which must be aligned with the column's rows.
func (c *Column) ToNumeric(values []float64) {
	c.Kind = KindNumeric
	c.Floats = values
	c.Labels = nil
}

// IsBinary reports whether every non-missing value of a numeric column is
// exactly 0 or 1. Used to identify one-hot indicator columns.
func (c *Column) IsBinary() bool {
	if c.Kind != KindNumeric {
		return false
	}
	for i, v := range c.Floats {
		if c.Null[i] {
			continue
		}
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

// Frame is an ordered collection of equally sized columns.
type Frame struct {
	cols []*Column
	rows int
}

// Shape is a (rows, columns) pair.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// New creates a frame from columns. All columns must have the same length
// and distinct names.
func New(cols []*Column) (*Frame, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Len()
	}
	names := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if col.Len() != rows {
			return nil, errors.Newf(errors.ErrorTypeInternal,
				"column %q has %d rows, expected %d", col.Name, col.Len(), rows)
		}
		if _, dup := names[col.Name]; dup {
			return nil, errors.Newf(errors.ErrorTypeInput, "duplicate column name %q", col.Name)
		}
		names[col.Name] = struct{}{}
	}
	return &Frame{cols: cols, rows: rows}, nil
}

// Rows returns the number of data rows.
func (f *Frame) Rows() int {
	return f.rows
}

// Cols returns the number of columns.
func (f *Frame) Cols() int {
	return len(f.cols)
}

// Shape returns the frame dimensions.
func (f *Frame) Shape() Shape {
	return Shape{Rows: f.rows, Cols: len(f.cols)}
}

// Columns returns the columns in order. Callers must not reorder the slice.
func (f *Frame) Columns() []*Column {
	return f.cols
}

// Column returns the column at position i.
func (f *Frame) Column(i int) *Column {
	return f.cols[i]
}

// ColumnByName returns the named column, or nil if absent.
func (f *Frame) ColumnByName(name string) *Column {
	for _, col := range f.cols {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// NumericColumns returns the numeric columns in frame order.
func (f *Frame) NumericColumns() []*Column {
	var cols []*Column
	for _, col := range f.cols {
		if col.Kind == KindNumeric {
			cols = append(cols, col)
		}
	}
	return cols
}

// CategoricalColumns returns the categorical columns in frame order.
func (f *Frame) CategoricalColumns() []*Column {
	var cols []*Column
	for _, col := range f.cols {
		if col.Kind == KindCategorical {
			cols = append(cols, col)
		}
	}
	return cols
}

// NullCount returns the total number of missing cells across all columns.
func (f *Frame) NullCount() int {
	n := 0
	for _, col := range f.cols {
		n += col.NullCount()
	}
	return n
}

// AppendColumn adds a column to the end of the frame.
func (f *Frame) AppendColumn(col *Column) error {
	if col.Len() != f.rows {
		return errors.Newf(errors.ErrorTypeInternal,
			"column %q has %d rows, expected %d", col.Name, col.Len(), f.rows)
	}
	if f.ColumnByName(col.Name) != nil {
		return errors.Newf(errors.ErrorTypeInternal, "column %q already exists", col.Name)
	}
	f.cols = append(f.cols, col)
	return nil
}

// DropColumn removes the named column, preserving the order of the rest.
func (f *Frame) DropColumn(name string) bool {
	for i, col := range f.cols {
		if col.Name == name {
			f.cols = append(f.cols[:i], f.cols[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceColumn swaps the named column for a replacement at the same
// position.
func (f *Frame) ReplaceColumn(name string, replacement *Column) error {
	if replacement.Len() != f.rows {
		return errors.Newf(errors.ErrorTypeInternal,
			"column %q has %d rows, expected %d", replacement.Name, replacement.Len(), f.rows)
	}
	for i, col := range f.cols {
		if col.Name == name {
			f.cols[i] = replacement
			return nil
		}
	}
	return errors.Newf(errors.ErrorTypeInternal, "no column named %q", name)
}

// Filter keeps only the rows where keep is true, preserving row order.
// The mask must be aligned with the frame's rows.
func (f *Frame) Filter(keep []bool) {
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}

	for _, col := range f.cols {
		null := make([]bool, 0, kept)
		switch col.Kind {
		case KindNumeric:
			floats := make([]float64, 0, kept)
			for i, k := range keep {
				if k {
					floats = append(floats, col.Floats[i])
					null = append(null, col.Null[i])
				}
			}
			col.Floats = floats
		case KindCategorical:
			labels := make([]string, 0, kept)
			for i, k := range keep {
				if k {
					labels = append(labels, col.Labels[i])
					null = append(null, col.Null[i])
				}
			}
			col.Labels = labels
		}
		col.Null = null
	}
	f.rows = kept
}

// DropNullRows removes every row containing at least one missing cell and
// returns the number of rows removed.
func (f *Frame) DropNullRows() int {
	keep := make([]bool, f.rows)
	for i := range keep {
		keep[i] = true
	}
	for _, col := range f.cols {
		for i, isNull := range col.Null {
			if isNull {
				keep[i] = false
			}
		}
	}

	before := f.rows
	f.Filter(keep)
	return before - f.rows
}

// Select returns a new frame containing the rows at the given indices, in
// the given order. Column data is copied; the receiver is unchanged.
func (f *Frame) Select(indices []int) *Frame {
	cols := make([]*Column, len(f.cols))
	for ci, col := range f.cols {
		out := &Column{
			Name: col.Name,
			Kind: col.Kind,
			Null: make([]bool, len(indices)),
		}
		switch col.Kind {
		case KindNumeric:
			out.Floats = make([]float64, len(indices))
			for i, idx := range indices {
				out.Floats[i] = col.Floats[idx]
				out.Null[i] = col.Null[idx]
			}
		case KindCategorical:
			out.Labels = make([]string, len(indices))
			for i, idx := range indices {
				out.Labels[i] = col.Labels[idx]
				out.Null[i] = col.Null[idx]
			}
		}
		cols[ci] = out
	}
	return &Frame{cols: cols, rows: len(indices)}
}
