package query

import (
	"errors"
	"fmt"
	"slices"
)

// Builder assembles a Query without going through the statement parser.
//
// Errors are collected and returned by Build, so calls can be chained:
//
//	q, err := query.NewBuilder().
//	    Table("users").
//	    Columns("id", "address").
//	    Predicate("id", query.OpEqual, "10").
//	    Build()
type Builder struct {
	q    Query
	errs []error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Table sets the queried table
func (b *Builder) Table(name string) *Builder {
	b.q.TableName = name
	return b
}

// Columns sets the projected columns
func (b *Builder) Columns(columns ...string) *Builder {
	b.q.Columns = slices.Clone(columns)
	return b
}

// Rename sets the header labels (HMAP)
func (b *Builder) Rename(labels ...string) *Builder {
	b.q.Rename = slices.Clone(labels)
	return b
}

// Where appends an already built predicate
func (b *Builder) Where(p *Predicate) *Builder {
	if p == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: nil predicate", ErrQueryStatementInvalid))
		return b
	}
	b.q.Predicates = append(b.q.Predicates, p)
	return b
}

// Predicate builds and appends an AND predicate
func (b *Builder) Predicate(column string, op Operator, args ...string) *Builder {
	p, err := NewPredicate(column, op, args...)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.q.Predicates = append(b.q.Predicates, p)
	return b
}

// OrderBy sets the sort column and direction
func (b *Builder) OrderBy(column string, dir Direction) *Builder {
	b.q.Order = Order{Column: column, Direction: dir}
	return b
}

// Flags adds query flags
func (b *Builder) Flags(flags ...Flags) *Builder {
	for _, f := range flags {
		b.q.Flags |= f
	}
	return b
}

// Offset sets the number of leading result rows to skip
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: OFFSET must be non-negative, got %d", ErrQueryStatementInvalid, n))
		return b
	}
	b.q.Offset = n
	return b
}

// Limit sets the maximum number of result rows
func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: LIMIT must be non-negative, got %d", ErrQueryStatementInvalid, n))
		return b
	}
	b.q.Limit = n
	return b
}

// Join records a joined table. Joins are not executed.
func (b *Builder) Join(table string) *Builder {
	b.q.Joined = append(b.q.Joined, table)
	return b
}

// Build returns the assembled query
func (b *Builder) Build() (*Query, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if b.q.Order.Column == "" {
		b.q.Order.Direction = OrderNone
	}
	for _, col := range b.q.Columns {
		if err := ValidateColumnName(col); err != nil {
			return nil, err
		}
	}

	return b.q.Clone(), nil
}
