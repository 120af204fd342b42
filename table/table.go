package table

import (
	"fmt"
	"slices"
	"strings"
)

// Table is an immutable set of uniquely named columns and the rows loaded for them.
// It is safe for concurrent queries.
type Table struct {
	headers []string
	types   []Type
	index   map[string]int
	rows    []*Row
}

// New builds a table from headers, declared column types and raw records.
//
// Types are positional and padded with TypeText when fewer than headers are
// given. Every record must have exactly one value per header, and every value
// must satisfy its column type; otherwise no table is returned.
func New(headers []string, types []Type, records [][]string) (*Table, error) {
	if len(types) > len(headers) {
		return nil, fmt.Errorf("%w: %d types given for %d columns", ErrTableInputInvalid, len(types), len(headers))
	}

	t := &Table{
		headers: slices.Clone(headers),
		types:   make([]Type, len(headers)),
		index:   make(map[string]int, len(headers)),
		rows:    make([]*Row, 0, len(records)),
	}
	copy(t.types, types)

	for i, h := range t.headers {
		if strings.TrimSpace(h) == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrTableInputInvalid, i+1)
		}
		if _, dup := t.index[h]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrTableInputInvalid, h)
		}
		t.index[h] = i
	}

	for i, record := range records {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d", ErrTableInputInvalid, i+1, len(record), len(headers))
		}
		row, err := newRow(t.types, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// Headers returns the column names in table order
func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// Types returns the declared column types in table order
func (t *Table) Types() []Type { return slices.Clone(t.types) }

// ColumnIndex returns the position of a column
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the table has a column named name
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at position i
func (t *Table) Row(i int) *Row { return t.rows[i] }

// Rows returns every row in load order
func (t *Table) Rows() []*Row { return slices.Clone(t.rows) }

// Records returns the raw values of every row in load order
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.rows))
	for i, r := range t.rows {
		records[i] = r.Values()
	}
	return records
}

func (t *Table) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: column %q doesn't exist", ErrColumnInvalid, name)
	}
	return i, nil
}
