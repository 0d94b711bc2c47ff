package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKey is the identifier column of both WMU tables.
const DefaultKey = "wmu"

var (
	// ErrNoHeader is returned when a file has no header row.
	ErrNoHeader = errors.New("missing header row")
	// ErrMissingKey is returned when the header lacks the key column.
	ErrMissingKey = errors.New("key column not found in header")
	// ErrDuplicateKey is returned when two rows share an identifier.
	ErrDuplicateKey = errors.New("duplicate identifier")
	// ErrUnknownColumn is returned when a named column does not exist.
	ErrUnknownColumn = errors.New("unknown column")
)

// ParseError reports a malformed data line.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// LoadOptions controls how a whitespace-delimited table is read.
type LoadOptions struct {
	// Key names the identifier column. Empty means DefaultKey.
	Key string
	// NATokens are read as missing cells. Nil means DefaultNATokens.
	NATokens []string
}

// DefaultNATokens mirror the usual dataframe missing-value markers.
var DefaultNATokens = []string{"NA", "N/A", "NaN", "nan", "-NaN", "-nan", "NULL", "null", "#N/A", "<NA>"}

// Row is one keyed record. Values align with Table.Columns; an empty string
// is a missing cell.
type Row struct {
	ID     string
	Values []string
}

// Table is an in-memory keyed table. Rows keep file order.
type Table struct {
	Name    string
	Key     string
	Columns []string
	Rows    []Row
}

// Load reads a whitespace-delimited table from path.
func Load(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), opt)
}

// Read parses a whitespace-delimited table. The first non-blank line is the header.
func Read(r io.Reader, name string, opt LoadOptions) (*Table, error) {
	key := opt.Key
	if key == "" {
		key = DefaultKey
	}
	na := opt.NATokens
	if na == nil {
		na = DefaultNATokens
	}
	naSet := make(map[string]struct{}, len(na))
	for _, tok := range na {
		naSet[tok] = struct{}{}
	}

	sc := bufio.NewScanner(r)
	var (
		header []string
		keyIdx = -1
		line   int
	)
	t := &Table{Name: name, Key: key}
	seen := map[string]struct{}{}
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if header == nil {
			header = fields
			for i, h := range header {
				if h == key {
					keyIdx = i
					continue
				}
				t.Columns = append(t.Columns, h)
			}
			if keyIdx < 0 {
				return nil, fmt.Errorf("%s: %w: %q", name, ErrMissingKey, key)
			}
			continue
		}
		if len(fields) > len(header) {
			return nil, &ParseError{File: name, Line: line, Msg: fmt.Sprintf("expected %d fields, saw %d", len(header), len(fields))}
		}
		if keyIdx >= len(fields) {
			return nil, &ParseError{File: name, Line: line, Msg: "row has no identifier"}
		}
		id := fields[keyIdx]
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s:%d: %w: %q", name, line, ErrDuplicateKey, id)
		}
		seen[id] = struct{}{}
		vals := make([]string, 0, len(t.Columns))
		for i := range header {
			if i == keyIdx {
				continue
			}
			v := ""
			if i < len(fields) {
				v = fields[i]
			}
			if _, ok := naSet[v]; ok {
				v = ""
			}
			vals = append(vals, v)
		}
		t.Rows = append(t.Rows, Row{ID: id, Values: vals})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if header == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	return t, nil
}

// Index returns the row identifiers in order.
func (t *Table) Index() []string {
	ids := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		ids[i] = r.ID
	}
	return ids
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Lookup returns the column position, failing with ErrUnknownColumn.
func (t *Table) Lookup(name string) (int, error) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return i, nil
}

// Value returns a cell and whether it is present (non-missing).
func (t *Table) Value(r Row, col int) (string, bool) {
	if col < 0 || col >= len(r.Values) {
		return "", false
	}
	v := r.Values[col]
	return v, v != ""
}

// DropColumns returns a copy without the named columns. Every name must exist.
func (t *Table) DropColumns(names ...string) (*Table, error) {
	drop := make(map[int]bool, len(names))
	for _, n := range names {
		i, err := t.Lookup(n)
		if err != nil {
			return nil, err
		}
		drop[i] = true
	}
	out := &Table{Name: t.Name, Key: t.Key}
	for i, c := range t.Columns {
		if !drop[i] {
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		vals := make([]string, 0, len(out.Columns))
		for i, v := range r.Values {
			if !drop[i] {
				vals = append(vals, v)
			}
		}
		out.Rows = append(out.Rows, Row{ID: r.ID, Values: vals})
	}
	return out, nil
}

// Filter returns a table holding only rows for which keep reports true.
// Row order is preserved.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Name: t.Name, Key: t.Key, Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
