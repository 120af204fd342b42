package table

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vegasq/tabq/query"
)

type queryConfig struct {
	scanner Scanner
	logger  *slog.Logger
}

// QueryOption configures a single Query call
type QueryOption func(*queryConfig)

// WithScanner sets the strategy used to filter rows. The default is Sequential.
func WithScanner(s Scanner) QueryOption {
	return func(c *queryConfig) {
		if s != nil {
			c.scanner = s
		}
	}
}

// WithLogger sets the logger receiving rows dropped during filtering.
// By default nothing is logged.
func WithLogger(l *slog.Logger) QueryOption {
	return func(c *queryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Query filters, orders and slices the rows of t.
//
// Every predicate column must exist, and a row is kept only when all
// predicates hold. A row whose value cannot be compared with an argument is
// dropped and logged, it does not fail the query. The returned rows belong
// to t and must not be modified.
func (t *Table) Query(q *query.Query, opts ...QueryOption) ([]*Row, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", query.ErrQueryStatementInvalid)
	}

	cfg := queryConfig{
		scanner: Sequential(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ordered := q.Order.Column != "" && q.Order.Direction != query.OrderNone
	orderCol := -1
	if ordered {
		col, err := t.column(q.Order.Column)
		if err != nil {
			return nil, err
		}
		orderCol = col
	}

	bound := make([]boundPredicate, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		b, err := t.bind(p)
		if err != nil {
			return nil, err
		}
		bound = append(bound, b)
	}

	rows := t.rows
	if len(bound) > 0 {
		rows = cfg.scanner.Scan(t.rows, func(i int, row *Row) bool {
			for _, b := range bound {
				ok, err := b.eval(row)
				if err != nil {
					cfg.logger.Warn("row dropped",
						slog.Int("row", i+1),
						slog.String("column", b.pred.Column()),
						slog.Any("error", err))
					return false
				}
				if !ok {
					return false
				}
			}
			return true
		})
	} else {
		rows = slices.Clone(rows)
	}

	if ordered {
		sorted, err := t.order(rows, orderCol, q.Order)
		if err != nil {
			return nil, err
		}
		rows = sorted
	}

	if q.HasRange() {
		rows = paginate(rows, q.Offset, q.Limit)
	}

	return rows, nil
}

func (t *Table) order(rows []*Row, col int, o query.Order) ([]*Row, error) {
	type keyed struct {
		row *Row
		key Variant
	}
	keys := make([]keyed, len(rows))
	for i, r := range rows {
		v, err := r.cells[col].Variant()
		if err != nil {
			return nil, fmt.Errorf("ordering by %q: %w", o.Column, err)
		}
		keys[i] = keyed{row: r, key: v}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		// keys share the column type, so Compare cannot fail
		c, _ := a.key.Compare(b.key)
		if o.Direction == query.OrderDesc {
			return -c
		}
		return c
	})

	sorted := make([]*Row, len(keys))
	for i, k := range keys {
		sorted[i] = k.row
	}
	return sorted, nil
}

func paginate(rows []*Row, offset, limit int) []*Row {
	offset = min(offset, len(rows))
	end := len(rows)
	if limit != 0 {
		end = min(offset+limit, len(rows))
	}
	return rows[offset:end]
}

// boundPredicate is a predicate resolved against a column of one table.
// Arguments are coerced once to the column type.
type boundPredicate struct {
	pred   *query.Predicate
	index  int
	args   []Variant
	argErr error
}

func (t *Table) bind(p *query.Predicate) (boundPredicate, error) {
	col, err := t.column(p.Column())
	if err != nil {
		return boundPredicate{}, err
	}
	b := boundPredicate{pred: p, index: col}

	raw := p.Args()
	need := 1
	switch p.Operator() {
	case query.OpLike:
		return b, nil
	case query.OpBetween:
		need = 2
	}
	if len(raw) < need {
		return boundPredicate{}, fmt.Errorf("%w: %s expects %d arguments", query.ErrQueryStatementInvalid, p, need)
	}
	if p.Operator() != query.OpIn {
		raw = raw[:need]
	}

	typ := t.types[col]
	b.args = make([]Variant, 0, len(raw))
	for _, a := range raw {
		v, err := NewVariant(typ, a)
		if err != nil {
			b.argErr = fmt.Errorf("argument of %s: %w", p, err)
			break
		}
		b.args = append(b.args, v)
	}
	return b, nil
}

func (b *boundPredicate) eval(row *Row) (bool, error) {
	cell := row.cells[b.index]
	if b.pred.Operator() == query.OpLike {
		return b.pred.Match(cell.value), nil
	}
	if b.argErr != nil {
		return false, b.argErr
	}

	v, err := cell.Variant()
	if err != nil {
		return false, err
	}

	switch b.pred.Operator() {
	case query.OpIn:
		for _, a := range b.args {
			c, err := v.Compare(a)
			if err != nil {
				return false, err
			}
			if c == 0 {
				return true, nil
			}
		}
		return false, nil
	case query.OpBetween:
		lo, err := v.Compare(b.args[0])
		if err != nil {
			return false, err
		}
		hi, err := v.Compare(b.args[1])
		if err != nil {
			return false, err
		}
		return lo >= 0 && hi <= 0, nil
	}

	c, err := v.Compare(b.args[0])
	if err != nil {
		return false, err
	}
	switch b.pred.Operator() {
	case query.OpGreater:
		return c > 0, nil
	case query.OpGreaterEqual:
		return c >= 0, nil
	case query.OpLess:
		return c < 0, nil
	case query.OpLessEqual:
		return c <= 0, nil
	case query.OpEqual:
		return c == 0, nil
	case query.OpNotEqual:
		return c != 0, nil
	}
	return false, errors.New("unsupported operator " + b.pred.Operator().String())
}
