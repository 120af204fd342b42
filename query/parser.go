package query

import (
	"fmt"
	"strconv"
	"strings"
)

// cursor is the clause the parser is currently filling
type cursor int

const (
	cursorNone cursor = iota
	cursorSelect
	cursorFrom
	cursorWhere
	cursorJoin
	cursorOrder // ORDER seen, waiting for BY
	cursorOrderBy
	cursorLimit
	cursorOffset
	cursorHmap
	cursorFlag
)

var keywords = map[string]cursor{
	"select": cursorSelect,
	"from":   cursorFrom,
	"where":  cursorWhere,
	"join":   cursorJoin,
	"order":  cursorOrder,
	"by":     cursorOrderBy,
	"limit":  cursorLimit,
	"offset": cursorOffset,
	"hmap":   cursorHmap,
	"flag":   cursorFlag,
}

// parseState accumulates clause content in raw form until the statement ends
type parseState struct {
	tableName string
	columns   []string
	where     []Token
	joined    []string
	orderBy   []string
	hmap      []string
	flags     Flags
	offset    int
	limit     int
}

// Parser turns tokens into a Query
type Parser struct {
	tokens []Token
	cursor cursor
	state  parseState
}

// routes holds the content handler of every cursor state
var routes = [...]func(*Parser, Token) error{
	cursorNone:    (*Parser).ignore,
	cursorSelect:  (*Parser).routeSelect,
	cursorFrom:    (*Parser).routeFrom,
	cursorWhere:   (*Parser).routeWhere,
	cursorJoin:    (*Parser).routeJoin,
	cursorOrder:   (*Parser).ignore,
	cursorOrderBy: (*Parser).routeOrderBy,
	cursorLimit:   (*Parser).routeLimit,
	cursorOffset:  (*Parser).routeOffset,
	cursorHmap:    (*Parser).routeHmap,
	cursorFlag:    (*Parser).routeFlag,
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, cursor: cursorNone}
}

// Parse parses a statement into a Query.
//
// The table name is not required here; an unknown or empty table is
// reported when the query is executed.
func Parse(statement string) (*Query, error) {
	if err := ValidateQuery(statement); err != nil {
		return nil, err
	}

	tokens := Tokenize(statement)
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	return NewParser(tokens).parseQuery()
}

// MustParse is like Parse but panics on error. Intended for tests and
// statements known at compile time.
func MustParse(statement string) *Query {
	q, err := Parse(statement)
	if err != nil {
		panic(err)
	}
	return q
}

func (p *Parser) parseQuery() (*Query, error) {
	for _, tok := range p.tokens {
		if p.transition(tok) {
			continue
		}
		tok.Value = strings.Trim(tok.Value, `"`)
		if err := routes[p.cursor](p, tok); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

// transition switches the cursor when tok is a keyword for a different
// clause. BY only counts as a keyword directly after ORDER.
func (p *Parser) transition(tok Token) bool {
	if tok.Type == TokenQuoted {
		return false
	}
	next, ok := keywords[strings.ToLower(tok.Value)]
	if !ok || next == p.cursor {
		return false
	}
	if next == cursorOrderBy && p.cursor != cursorOrder {
		return false
	}
	p.cursor = next
	return true
}

func (p *Parser) ignore(Token) error { return nil }

func (p *Parser) routeSelect(tok Token) error {
	p.state.columns = append(p.state.columns, tok.Value)
	return nil
}

func (p *Parser) routeFrom(tok Token) error {
	p.state.tableName = tok.Value
	return nil
}

func (p *Parser) routeWhere(tok Token) error {
	p.state.where = append(p.state.where, tok)
	return nil
}

func (p *Parser) routeJoin(tok Token) error {
	p.state.joined = append(p.state.joined, tok.Value)
	p.cursor = cursorNone
	return nil
}

func (p *Parser) routeOrderBy(tok Token) error {
	p.state.orderBy = append(p.state.orderBy, tok.Value)
	return nil
}

func (p *Parser) routeLimit(tok Token) error {
	n, err := parseCount("LIMIT", tok.Value)
	if err != nil {
		return err
	}
	p.state.limit = n
	return nil
}

func (p *Parser) routeOffset(tok Token) error {
	n, err := parseCount("OFFSET", tok.Value)
	if err != nil {
		return err
	}
	p.state.offset = n
	return nil
}

func (p *Parser) routeHmap(tok Token) error {
	p.state.hmap = append(p.state.hmap, tok.Value)
	return nil
}

func (p *Parser) routeFlag(tok Token) error {
	f, err := ParseFlag(tok.Value)
	if err != nil {
		return err
	}
	p.state.flags |= f
	return nil
}

// finish converts the raw clause buffers into a Query
func (p *Parser) finish() (*Query, error) {
	q := &Query{
		TableName: p.state.tableName,
		Columns:   splitList(p.state.columns),
		Flags:     p.state.flags,
		Offset:    p.state.offset,
		Limit:     p.state.limit,
		Joined:    p.state.joined,
	}

	if len(p.state.hmap) > 0 {
		q.Rename = splitList(p.state.hmap)
	}

	for _, col := range q.Columns {
		if err := ValidateColumnName(col); err != nil {
			return nil, err
		}
	}

	order, err := buildOrder(p.state.orderBy)
	if err != nil {
		return nil, err
	}
	q.Order = order

	predicates, err := parsePredicates(p.state.where)
	if err != nil {
		return nil, err
	}
	q.Predicates = predicates

	return q, nil
}

// buildOrder interprets the ORDER BY tokens: column, then optional direction
func buildOrder(tokens []string) (Order, error) {
	switch len(tokens) {
	case 0:
		return Order{Direction: OrderNone}, nil
	case 1:
		return Order{Column: tokens[0], Direction: OrderAsc}, nil
	default:
		dir, err := ParseDirection(tokens[1])
		if err != nil {
			return Order{}, err
		}
		return Order{Column: tokens[0], Direction: dir}, nil
	}
}

// splitList joins raw clause words with spaces, then splits on commas
func splitList(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	var items []string
	for _, item := range strings.Split(strings.Join(words, " "), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseCount(clause, value string) (int, error) {
	n, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects an unsigned integer, got %q", ErrQueryStatementInvalid, clause, value)
	}
	return int(n), nil
}
