package table

import (
	"fmt"
	"slices"

	"github.com/vegasq/tabq/query"
)

// ColumnKind tells whether an output column is backed by the table
type ColumnKind int

const (
	// ColumnReal is bound to a table column
	ColumnReal ColumnKind = iota
	// ColumnSupplement has no backing column and is always blank
	ColumnSupplement
)

// ColumnTarget is a resolved output column
type ColumnTarget struct {
	Kind  ColumnKind
	Name  string // header text, or the requested name of a supplement
	Index int    // header position, only meaningful for ColumnReal
}

// String returns the column name
func (c ColumnTarget) String() string { return c.Name }

// Resolve maps the requested columns onto the table.
//
// "*" selects every table column in table order, and explicit names of real
// columns next to it add nothing. A name that is not a header becomes a
// supplement when flags has query.FlagSupplement, otherwise it fails with
// ErrColumnInvalid. Supplements follow the real columns when "*" is used.
func (t *Table) Resolve(columns []string, flags query.Flags) ([]ColumnTarget, error) {
	wildcard := false
	var supplements, targets []ColumnTarget

	for _, name := range columns {
		if name == "*" {
			wildcard = true
			continue
		}
		var target ColumnTarget
		if i, ok := t.index[name]; ok {
			target = ColumnTarget{Kind: ColumnReal, Name: name, Index: i}
		} else if flags.Has(query.FlagSupplement) {
			target = ColumnTarget{Kind: ColumnSupplement, Name: name, Index: -1}
			supplements = append(supplements, target)
		} else {
			return nil, fmt.Errorf("%w: column %q doesn't exist", ErrColumnInvalid, name)
		}
		targets = append(targets, target)
	}

	if !wildcard {
		return targets, nil
	}

	targets = make([]ColumnTarget, 0, len(t.headers)+len(supplements))
	for i, h := range t.headers {
		targets = append(targets, ColumnTarget{Kind: ColumnReal, Name: h, Index: i})
	}
	return append(targets, supplements...), nil
}

// Projection is the resolved output layout of a query. It is computed
// before any row is scanned, so column and header map errors never follow
// filtering work.
type Projection struct {
	targets   []ColumnTarget
	header    []string // nil without query.FlagPrintHeader
	transpose bool
}

// Plan resolves the output columns of q against t.
//
// With query.FlagPrintHeader the first record holds the column labels, taken
// from q.Rename when given. A rename map must have one label per resolved
// column, whether or not a header is printed.
func (t *Table) Plan(q *query.Query) (*Projection, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", query.ErrQueryStatementInvalid)
	}
	targets, err := t.Resolve(q.Columns, q.Flags)
	if err != nil {
		return nil, err
	}
	if q.Rename != nil && len(q.Rename) != len(targets) {
		return nil, fmt.Errorf("%w: header map has %d labels for %d columns",
			query.ErrQueryStatementInvalid, len(q.Rename), len(targets))
	}

	p := &Projection{targets: targets, transpose: q.Flags.Has(query.FlagTranspose)}
	if q.Flags.Has(query.FlagPrintHeader) {
		p.header = make([]string, len(targets))
		for i, c := range targets {
			if q.Rename != nil {
				p.header[i] = q.Rename[i]
			} else {
				p.header[i] = c.Name
			}
		}
	}
	return p, nil
}

// Targets returns the resolved output columns
func (p *Projection) Targets() []ColumnTarget {
	return slices.Clone(p.targets)
}

// Records turns query results into output records. With
// query.FlagTranspose the whole matrix, header included, is transposed.
func (p *Projection) Records(rows []*Row) [][]string {
	records := make([][]string, 0, len(rows)+1)
	if p.header != nil {
		records = append(records, slices.Clone(p.header))
	}

	for _, r := range rows {
		record := make([]string, len(p.targets))
		for i, c := range p.targets {
			if c.Kind == ColumnReal {
				record[i] = r.cells[c.Index].value
			}
		}
		records = append(records, record)
	}

	if p.transpose {
		records = Transpose(records)
	}
	return records
}

// Project plans q and turns rows into output records
func (t *Table) Project(q *query.Query, rows []*Row) ([][]string, error) {
	p, err := t.Plan(q)
	if err != nil {
		return nil, err
	}
	return p.Records(rows), nil
}

// Transpose swaps the rows and columns of a rectangular matrix.
// The width of the first record decides the result height.
func Transpose(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	width := len(records[0])
	out := make([][]string, width)
	for c := range width {
		out[c] = make([]string, len(records))
		for r, record := range records {
			if c < len(record) {
				out[c][r] = record[c]
			}
		}
	}
	return out
}
