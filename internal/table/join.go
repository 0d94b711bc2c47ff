package table

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexMismatch is returned when two tables do not share the same index.
	ErrIndexMismatch = errors.New("mismatched indexes")
	// ErrColumnConflict is returned when both join inputs carry the same column.
	ErrColumnConflict = errors.New("column present in both tables")
)

// Join combines two tables with identical indexes (same identifiers, same
// order). Columns of left come first, followed by columns of right.
func Join(left, right *Table) (*Table, error) {
	if len(left.Rows) != len(right.Rows) {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d", ErrIndexMismatch, left.Name, len(left.Rows), right.Name, len(right.Rows))
	}
	for i := range left.Rows {
		if left.Rows[i].ID != right.Rows[i].ID {
			return nil, fmt.Errorf("%w: row %d is %q in %s but %q in %s", ErrIndexMismatch, i+1, left.Rows[i].ID, left.Name, right.Rows[i].ID, right.Name)
		}
	}
	for _, c := range right.Columns {
		if left.ColumnIndex(c) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrColumnConflict, c)
		}
	}

	out := &Table{
		Name: left.Name + "+" + right.Name,
		Key:  left.Key,
	}
	out.Columns = make([]string, 0, len(left.Columns)+len(right.Columns))
	out.Columns = append(out.Columns, left.Columns...)
	out.Columns = append(out.Columns, right.Columns...)
	out.Rows = make([]Row, len(left.Rows))
	for i := range left.Rows {
		vals := make([]string, 0, len(out.Columns))
		vals = append(vals, left.Rows[i].Values...)
		vals = append(vals, right.Rows[i].Values...)
		out.Rows[i] = Row{ID: left.Rows[i].ID, Values: vals}
	}
	return out, nil
}
