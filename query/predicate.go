package query

import (
	"fmt"
	"regexp"
	"slices"
)

// Predicate tests a single column of a row
type Predicate struct {
	separator Separator
	column    string
	op        Operator
	args      []string
	matcher   *regexp.Regexp
}

// NewPredicate creates a predicate and validates its argument list.
//
// LIKE compiles its last argument as a regular expression. A predicate
// without arguments, or a BETWEEN with fewer than two, is rejected.
func NewPredicate(column string, op Operator, args ...string) (*Predicate, error) {
	if column == "" {
		return nil, fmt.Errorf("%w: predicate without a column", ErrQueryStatementInvalid)
	}
	if err := ValidateColumnName(column); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: predicate %s %s has no arguments", ErrQueryStatementInvalid, column, op)
	}
	if op == OpBetween && len(args) < 2 {
		return nil, fmt.Errorf("%w: BETWEEN on %s requires two arguments, got %d", ErrQueryStatementInvalid, column, len(args))
	}

	p := &Predicate{
		separator: SeparatorAnd,
		column:    column,
		op:        op,
		args:      slices.Clone(args),
	}

	if op == OpLike {
		pattern := args[len(args)-1]
		matcher, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid regex pattern %q", ErrQueryStatementInvalid, pattern)
		}
		p.matcher = matcher
	}

	return p, nil
}

// WithSeparator returns a copy of p tagged with sep
func (p *Predicate) WithSeparator(sep Separator) *Predicate {
	c := *p
	c.separator = sep
	return &c
}

// Separator returns the logical tag recorded in front of the predicate
func (p *Predicate) Separator() Separator { return p.separator }

// Column returns the tested column name
func (p *Predicate) Column() string { return p.column }

// Operator returns the comparison operator
func (p *Predicate) Operator() Operator { return p.op }

// Args returns a copy of the argument list
func (p *Predicate) Args() []string { return slices.Clone(p.args) }

// Match reports whether a LIKE predicate's pattern matches s.
// It is always false for other operators.
func (p *Predicate) Match(s string) bool {
	if p.matcher == nil {
		return false
	}
	return p.matcher.MatchString(s)
}

// String renders the predicate back into statement form
func (p *Predicate) String() string {
	s := fmt.Sprintf("%s %s", p.column, p.op)
	for _, arg := range p.args {
		s += " " + arg
	}
	return s
}

// wherePhase tracks which part of a predicate the next WHERE token fills
type wherePhase int

const (
	phaseLeft wherePhase = iota
	phaseOperator
	phaseRight
)

// predicateDraft accumulates a predicate while its tokens are read
type predicateDraft struct {
	separator Separator
	column    string
	op        Operator
	args      []string
}

func (d *predicateDraft) finalize() (*Predicate, error) {
	p, err := NewPredicate(d.column, d.op, d.args...)
	if err != nil {
		return nil, err
	}
	return p.WithSeparator(d.separator), nil
}

// separatorOf recognizes the literal AND / OR separators
func separatorOf(tok Token) (Separator, bool) {
	if tok.Type == TokenQuoted {
		return 0, false
	}
	switch tok.Value {
	case "AND":
		return SeparatorAnd, true
	case "OR":
		return SeparatorOr, true
	}
	return 0, false
}

// parsePredicates builds predicates from the flat WHERE token buffer
func parsePredicates(tokens []Token) ([]*Predicate, error) {
	var predicates []*Predicate
	draft := &predicateDraft{separator: SeparatorAnd, op: OpEqual}
	phase := phaseLeft

	flush := func() error {
		if draft.column == "" {
			return nil
		}
		p, err := draft.finalize()
		if err != nil {
			return err
		}
		predicates = append(predicates, p)
		return nil
	}

	for _, tok := range tokens {
		if sep, ok := separatorOf(tok); ok {
			if err := flush(); err != nil {
				return nil, err
			}
			draft = &predicateDraft{separator: sep, op: OpEqual}
			phase = phaseLeft
			continue
		}

		switch phase {
		case phaseLeft:
			draft.column = tok.Value
			phase = phaseOperator
		case phaseOperator:
			op, err := ParseOperator(tok.Value)
			if err != nil {
				return nil, err
			}
			draft.op = op
			phase = phaseRight
		case phaseRight:
			draft.args = append(draft.args, tok.Value)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return predicates, nil
}
