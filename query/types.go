package query

import (
	"fmt"
	"slices"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	// TokenWord is a bare whitespace-delimited word
	TokenWord TokenType = iota
	// TokenQuoted is a word that contained a quoted region. Quoted words are
	// never keywords or predicate separators.
	TokenQuoted
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Operator is a WHERE clause comparison operator
type Operator int

const (
	OpGreater      Operator = iota // >
	OpGreaterEqual                 // >=
	OpLess                         // <
	OpLessEqual                    // <=
	OpEqual                        // =
	OpNotEqual                     // !=
	OpLike                         // LIKE (regular expression)
	OpBetween                      // BETWEEN lo hi (inclusive)
	OpIn                           // IN v1 v2 ...
)

var operatorNames = map[Operator]string{
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpEqual:        "=",
	OpNotEqual:     "!=",
	OpLike:         "LIKE",
	OpBetween:      "BETWEEN",
	OpIn:           "IN",
}

// String returns the operator as written in a statement
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator resolves an operator token, case-insensitively
func ParseOperator(token string) (Operator, error) {
	switch strings.ToLower(token) {
	case ">":
		return OpGreater, nil
	case ">=":
		return OpGreaterEqual, nil
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEqual, nil
	case "=":
		return OpEqual, nil
	case "!=":
		return OpNotEqual, nil
	case "like":
		return OpLike, nil
	case "between":
		return OpBetween, nil
	case "in":
		return OpIn, nil
	}
	return 0, fmt.Errorf("%w: unsupported operator %q", ErrQueryStatementInvalid, token)
}

// Separator is the logical tag recorded in front of a predicate.
//
// The tag is kept for callers that inspect a parsed query, but execution
// always requires every predicate to hold.
type Separator int

const (
	SeparatorAnd Separator = iota
	SeparatorOr
)

// String returns AND or OR
func (s Separator) String() string {
	if s == SeparatorOr {
		return "OR"
	}
	return "AND"
}

// Flags is a set of query modifiers given after FLAG
type Flags uint8

const (
	// FlagPrintHeader (PHD) emits a header row
	FlagPrintHeader Flags = 1 << iota
	// FlagTranspose (TP) transposes the result matrix
	FlagTranspose
	// FlagSupplement (SUP) allows selecting absent columns, which come out blank
	FlagSupplement
)

// Has reports whether every flag in f is set
func (fs Flags) Has(f Flags) bool {
	return fs&f == f
}

// String lists the set flags using their statement names
func (fs Flags) String() string {
	var names []string
	if fs.Has(FlagPrintHeader) {
		names = append(names, "PHD")
	}
	if fs.Has(FlagSupplement) {
		names = append(names, "SUP")
	}
	if fs.Has(FlagTranspose) {
		names = append(names, "TP")
	}
	return strings.Join(names, " ")
}

// ParseFlag resolves one FLAG token
func ParseFlag(token string) (Flags, error) {
	switch strings.ToLower(token) {
	case "phd", "print-header":
		return FlagPrintHeader, nil
	case "sup", "supplement":
		return FlagSupplement, nil
	case "tp", "transpose":
		return FlagTranspose, nil
	}
	return 0, fmt.Errorf("%w: invalid query flag %q", ErrQueryStatementInvalid, token)
}

// Direction is the sort direction of an ORDER BY clause
type Direction int

const (
	OrderNone Direction = iota
	OrderAsc
	OrderDesc
)

// String returns the direction keyword
func (d Direction) String() string {
	switch d {
	case OrderAsc:
		return "ASEC"
	case OrderDesc:
		return "DESC"
	default:
		return "NONE"
	}
}

// ParseDirection resolves an ORDER BY direction keyword
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "asec", "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	}
	return OrderNone, fmt.Errorf("%w: order direction can only be ASEC or DESC but given %q", ErrQueryStatementInvalid, token)
}

// Order is the sort specification of a query
type Order struct {
	Column    string
	Direction Direction
}

// Query represents a parsed statement.
//
// A Query is not modified by execution and may be shared between goroutines.
type Query struct {
	TableName  string
	Columns    []string     // Requested columns, "*" selects every table column
	Rename     []string     // HMAP labels, nil when not given
	Predicates []*Predicate // WHERE predicates, all must hold
	Order      Order
	Flags      Flags
	Offset     int // 0 means unset
	Limit      int // 0 means unset
	Joined     []string // JOIN targets, captured but not executed
}

// Clone returns a copy of q that shares no slices with it.
// Predicates are immutable and are shared.
func (q *Query) Clone() *Query {
	c := *q
	c.Columns = slices.Clone(q.Columns)
	c.Rename = slices.Clone(q.Rename)
	c.Predicates = slices.Clone(q.Predicates)
	c.Joined = slices.Clone(q.Joined)
	return &c
}

// HasRange reports whether an offset or a limit was given
func (q *Query) HasRange() bool {
	return q.Offset != 0 || q.Limit != 0
}
