package path

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the type of a path syntax token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIRI           // <http://...>
	TokenName          // prefix:local or "a"
	TokenSlash
	TokenPipe
	TokenCaret
	TokenStar
	TokenPlus
	TokenQuestion
	TokenLeftParen
	TokenRightParen
)

// Token represents a lexical token in a path expression
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return fmt.Sprintf("EOF[%d]", t.Pos)
	case TokenIRI:
		return fmt.Sprintf("IRI[%d]:<%s>", t.Pos, t.Value)
	case TokenName:
		return fmt.Sprintf("Name[%d]:%s", t.Pos, t.Value)
	default:
		return fmt.Sprintf("Op[%d]:%s", t.Pos, t.Value)
	}
}

const delimiters = "/|^*+?()<"

// Lexer tokenizes path syntax
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Lex tokenizes the entire input
func (l *Lexer) Lex() ([]Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		start := l.pos
		ch := l.input[l.pos]
		switch ch {
		case '<':
			end := strings.IndexByte(l.input[l.pos:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated IRI at position %d", ErrUnsupportedPath, start)
			}
			l.emit(TokenIRI, l.input[l.pos+1:l.pos+end], start)
			l.pos += end + 1
		case '/':
			l.op(TokenSlash, start)
		case '|':
			l.op(TokenPipe, start)
		case '^':
			l.op(TokenCaret, start)
		case '*':
			l.op(TokenStar, start)
		case '+':
			l.op(TokenPlus, start)
		case '?':
			l.op(TokenQuestion, start)
		case '(':
			l.op(TokenLeftParen, start)
		case ')':
			l.op(TokenRightParen, start)
		default:
			l.emit(TokenName, l.readName(), start)
		}
	}

	l.emit(TokenEOF, "", l.pos)
	return l.tokens, nil
}

func (l *Lexer) op(typ TokenType, start int) {
	l.emit(typ, l.input[l.pos:l.pos+1], start)
	l.pos++
}

func (l *Lexer) emit(typ TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Pos: pos})
}

func (l *Lexer) readName() string {
	start := l.pos
	for l.pos < len(l.input) {
		r := rune(l.input[l.pos])
		if unicode.IsSpace(r) || strings.ContainsRune(delimiters, r) {
			break
		}
		l.pos++
	}
	return l.input[start:l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
