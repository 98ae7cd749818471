package theory

import (
	"errors"
	"fmt"
	"reflect"

	"autoparam/param"
)

// ErrCompositeData reports data sources that cannot be merged into rows.
var ErrCompositeData = errors.New("invalid composite data")

// DataSource supplies rows of literal values for the leading parameters.
type DataSource interface {
	Rows(ds []param.Descriptor) ([][]any, error)
}

// DataSourceFunc adapts a function to DataSource.
type DataSourceFunc func(ds []param.Descriptor) ([][]any, error)

// Rows implements DataSource.
func (fn DataSourceFunc) Rows(ds []param.Descriptor) ([][]any, error) { return fn(ds) }

// Row is a single row of literal values; the remaining parameters are generated.
type Row []any

// Rows implements DataSource.
func (r Row) Rows([]param.Descriptor) ([][]any, error) {
	return [][]any{[]any(r)}, nil
}

// Table is a fixed set of rows.
type Table [][]any

// Rows implements DataSource.
func (t Table) Rows([]param.Descriptor) ([][]any, error) {
	return [][]any(t), nil
}

// Composite merges several sources column-wise. The first source decides the
// number of rows. Each later source is consulted only while rows are shorter
// than the parameter list; it must then supply at least as many rows, and each
// of its rows contributes the values past those already merged.
type Composite []DataSource

// Rows implements DataSource.
func (c Composite) Rows(ds []param.Descriptor) ([][]any, error) {
	if len(c) == 0 {
		return nil, nil
	}

	if err := checkSource(c); err != nil {
		return nil, err
	}

	rows, err := c[0].Rows(ds)
	if err != nil {
		return nil, err
	}

	merged := make([][]any, len(rows))
	for i, r := range rows {
		merged[i] = append([]any(nil), r...)
	}

	for si, src := range c[1:] {
		if complete(merged, len(ds)) {
			break
		}

		more, err := src.Rows(ds)
		if err != nil {
			return nil, err
		}

		if len(more) < len(merged) {
			return nil, fmt.Errorf("%w: source %d supplies %d rows, expected at least %d",
				ErrCompositeData, si+1, len(more), len(merged))
		}

		for i := range merged {
			have := len(merged[i])
			if have >= len(ds) {
				continue
			}

			if len(more[i]) < have {
				return nil, fmt.Errorf("%w: source %d row %d supplies %d values, fewer than the %d already merged",
					ErrCompositeData, si+1, i, len(more[i]), have)
			}

			merged[i] = append(merged[i], more[i][have:]...)
		}
	}

	return merged, nil
}

func complete(rows [][]any, n int) bool {
	for _, r := range rows {
		if len(r) < n {
			return false
		}
	}

	return true
}

// ErrNilDataSource reports a nil data source, directly or inside a Composite.
var ErrNilDataSource = errors.New("nil data source")

func checkSource(src DataSource) error {
	if src == nil {
		return ErrNilDataSource
	}

	switch v := reflect.ValueOf(src); v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return ErrNilDataSource
		}
	}

	if c, ok := src.(Composite); ok {
		for i, inner := range c {
			if err := checkSource(inner); err != nil {
				return fmt.Errorf("composite source %d: %w", i, err)
			}
		}
	}

	return nil
}

// literalRows returns the rows of sources known without calling user code.
func literalRows(src DataSource) [][]any {
	switch s := src.(type) {
	case Row:
		return [][]any{s}
	case Table:
		return s
	default:
		return nil
	}
}
