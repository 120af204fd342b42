package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestParsePredicates(t *testing.T) {
	type want struct {
		sep    Separator
		column string
		op     Operator
		args   []string
	}

	tests := []struct {
		name  string
		where string
		want  []want
	}{
		{
			name:  "single comparison",
			where: "age > 30",
			want:  []want{{SeparatorAnd, "age", OpGreater, []string{"30"}}},
		},
		{
			name:  "and separator",
			where: "a = 1 AND b != 2",
			want: []want{
				{SeparatorAnd, "a", OpEqual, []string{"1"}},
				{SeparatorAnd, "b", OpNotEqual, []string{"2"}},
			},
		},
		{
			name:  "or separator is recorded",
			where: "a >= 1 OR b <= 2",
			want: []want{
				{SeparatorAnd, "a", OpGreaterEqual, []string{"1"}},
				{SeparatorOr, "b", OpLessEqual, []string{"2"}},
			},
		},
		{
			name:  "between and in",
			where: "a BETWEEN 1 5 AND b in x y z",
			want: []want{
				{SeparatorAnd, "a", OpBetween, []string{"1", "5"}},
				{SeparatorAnd, "b", OpIn, []string{"x", "y", "z"}},
			},
		},
		{
			name:  "like keeps pattern",
			where: "name LIKE ^al",
			want:  []want{{SeparatorAnd, "name", OpLike, []string{"^al"}}},
		},
		{
			name:  "quoted argument with space",
			where: "name = 'John Doe'",
			want:  []want{{SeparatorAnd, "name", OpEqual, []string{"John Doe"}}},
		},
		{
			name:  "quoted AND is an argument",
			where: "a IN 'AND' x",
			want:  []want{{SeparatorAnd, "a", OpIn, []string{"AND", "x"}}},
		},
		{
			name:  "lower case and is an argument",
			where: "a IN and or",
			want:  []want{{SeparatorAnd, "a", OpIn, []string{"and", "or"}}},
		},
		{
			name:  "leading separator",
			where: "AND a = 1",
			want:  []want{{SeparatorAnd, "a", OpEqual, []string{"1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse("SELECT * FROM t WHERE " + tt.where)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(q.Predicates) != len(tt.want) {
				t.Fatalf("expected %d predicates, got %d", len(tt.want), len(q.Predicates))
			}
			for i, p := range q.Predicates {
				w := tt.want[i]
				if p.Separator() != w.sep {
					t.Errorf("predicate %d: separator = %s, want %s", i, p.Separator(), w.sep)
				}
				if p.Column() != w.column {
					t.Errorf("predicate %d: column = %q, want %q", i, p.Column(), w.column)
				}
				if p.Operator() != w.op {
					t.Errorf("predicate %d: operator = %s, want %s", i, p.Operator(), w.op)
				}
				if !reflect.DeepEqual(p.Args(), w.args) {
					t.Errorf("predicate %d: args = %q, want %q", i, p.Args(), w.args)
				}
			}
		})
	}
}

func TestParsePredicates_Errors(t *testing.T) {
	tests := []struct {
		name  string
		where string
	}{
		{name: "unknown operator", where: "a ~ 1"},
		{name: "missing argument", where: "a ="},
		{name: "missing operator", where: "a"},
		{name: "empty predicate before separator", where: "a = AND b = 1"},
		{name: "between with one bound", where: "a BETWEEN 1"},
		{name: "bad regex", where: "a LIKE ("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("SELECT * FROM t WHERE " + tt.where)
			if err == nil {
				t.Fatalf("Parse() should fail for %q", tt.where)
			}
			if !errors.Is(err, ErrQueryStatementInvalid) {
				t.Errorf("error %v should wrap ErrQueryStatementInvalid", err)
			}
		})
	}
}

func TestPredicate_Match(t *testing.T) {
	p, err := NewPredicate("name", OpLike, "ignored", "^a.*e$")
	if err != nil {
		t.Fatalf("NewPredicate() error = %v", err)
	}
	if !p.Match("alice") {
		t.Error("pattern should match alice")
	}
	if p.Match("bob") {
		t.Error("pattern should not match bob")
	}

	eq, err := NewPredicate("name", OpEqual, "alice")
	if err != nil {
		t.Fatalf("NewPredicate() error = %v", err)
	}
	if eq.Match("alice") {
		t.Error("non-LIKE predicates never match patterns")
	}
}

func TestPredicate_WithSeparator(t *testing.T) {
	p, err := NewPredicate("a", OpEqual, "1")
	if err != nil {
		t.Fatalf("NewPredicate() error = %v", err)
	}
	or := p.WithSeparator(SeparatorOr)
	if p.Separator() != SeparatorAnd {
		t.Error("WithSeparator must not modify the receiver")
	}
	if or.Separator() != SeparatorOr {
		t.Errorf("separator = %s, want OR", or.Separator())
	}

	args := p.Args()
	args[0] = "changed"
	if p.Args()[0] != "1" {
		t.Error("Args must return a copy")
	}
}
