// Package predictors holds the environmental samples a fitted model is
// projected onto: one named column of float64 values per predictor variable,
// aligned on a shared location index.
package predictors

import (
	"errors"
	"fmt"
)

var (
	ErrNoSamples       = errors.New("no predictor samples")
	ErrLenMismatch     = errors.New("column has a different length than the table")
	ErrDuplicateColumn = errors.New("column name already present in table")
	ErrUnknownColumn   = errors.New("column name not present in table")
)

// Table is a set of named predictor columns. Column order is the insertion
// order. Columns flagged categorical hold category codes rather than
// continuous measurements, which downstream consumers treat differently when
// clamping and when picking reference values.
type Table struct {
	names       []string
	cols        map[string][]float64
	categorical map[string]bool
	n           int
}

// New returns an empty table. The first column added sets the number of
// locations all later columns must match.
func New() *Table {
	return &Table{
		cols:        make(map[string][]float64),
		categorical: make(map[string]bool),
	}
}

// AddColumn adds a continuous predictor column. The values are copied.
func (t *Table) AddColumn(name string, vals []float64) error {
	return t.add(name, vals, false)
}

// AddCategoricalColumn adds a predictor column holding category codes. The
// values are copied.
func (t *Table) AddCategoricalColumn(name string, vals []float64) error {
	return t.add(name, vals, true)
}

func (t *Table) add(name string, vals []float64, categorical bool) error {
	if len(vals) == 0 {
		return fmt.Errorf("column %q, %w", name, ErrNoSamples)
	}
	if len(t.names) > 0 && len(vals) != t.n {
		return fmt.Errorf(
			"column %q has length of %d, but table has a length of %d, %w",
			name, len(vals), t.n, ErrLenMismatch,
		)
	}
	if _, ok := t.cols[name]; ok {
		return fmt.Errorf("column %q, %w", name, ErrDuplicateColumn)
	}

	col := make([]float64, len(vals))
	copy(col, vals)
	t.names = append(t.names, name)
	t.cols[name] = col
	if categorical {
		t.categorical[name] = true
	}
	t.n = len(vals)
	return nil
}

// Column returns the values of the named column. The slice is the table's
// backing storage, not a copy, and must not be mutated by the caller.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// Categorical reports whether the named column holds category codes.
func (t *Table) Categorical(name string) bool {
	return t.categorical[name]
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Len returns the number of locations in the table.
func (t *Table) Len() int {
	return t.n
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	cpy := New()
	for _, name := range t.names {
		col := t.cols[name]
		vals := make([]float64, len(col))
		copy(vals, col)
		cpy.names = append(cpy.names, name)
		cpy.cols[name] = vals
		if t.categorical[name] {
			cpy.categorical[name] = true
		}
	}
	cpy.n = t.n
	return cpy
}

// WithConstant returns a table where the named column is replaced with the
// given value at every location. The remaining columns share backing storage
// with the receiver, so repeated single-variable substitutions stay cheap.
func (t *Table) WithConstant(name string, value float64) (*Table, error) {
	if _, ok := t.cols[name]; !ok {
		return nil, fmt.Errorf("column %q, %w", name, ErrUnknownColumn)
	}

	cpy := New()
	cpy.names = append(cpy.names, t.names...)
	for _, n := range t.names {
		cpy.cols[n] = t.cols[n]
		if t.categorical[n] {
			cpy.categorical[n] = true
		}
	}
	cpy.n = t.n

	col := make([]float64, t.n)
	for i := range col {
		col[i] = value
	}
	cpy.cols[name] = col
	return cpy, nil
}
