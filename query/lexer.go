package query

import "strings"

const eof = -1

// Lexer splits a statement into whitespace-delimited tokens.
//
// A backslash or a single quote toggles quoted mode and is dropped from the
// output. Whitespace inside a quoted region is kept literally. Input is
// scanned byte by byte, so bytes that are not valid UTF-8 pass through
// unchanged.
type Lexer struct {
	input  string
	pos    int
	ch     int
	quoted bool
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = eof
		return
	}
	l.ch = int(l.input[l.pos])
	l.pos++
}

func isSpace(ch int) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// skipWhitespace skips unquoted whitespace
func (l *Lexer) skipWhitespace() {
	for !l.quoted && isSpace(l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token, or false once the input is exhausted
func (l *Lexer) NextToken() (Token, bool) {
	for {
		l.skipWhitespace()
		if l.ch == eof {
			return Token{}, false
		}

		var word strings.Builder
		tokType := TokenWord
	scan:
		for l.ch != eof {
			switch {
			case l.ch == '\\' || l.ch == '\'':
				l.quoted = !l.quoted
				tokType = TokenQuoted
			case !l.quoted && isSpace(l.ch):
				break scan
			default:
				word.WriteByte(byte(l.ch))
			}
			l.readChar()
		}

		// Empty quoted regions such as '' produce nothing
		if word.Len() > 0 {
			return Token{Type: tokType, Value: word.String()}, true
		}
	}
}

// Tokenize returns all tokens from the input. It never fails: an unclosed
// quote simply extends the last token to the end of input.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, ok := lexer.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// Words returns only the token values
func Words(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Value
	}
	return words
}
