// Package lexer tokenizes VTC source text into the stream the parser
// consumes.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vtcfg/vtc/internal/token"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// Lexer scans VTC source rune-by-rune, tracking line and column for
// ParseError positions. Runes are read through a small lookahead queue so
// the lexer can peek up to two runes ahead (needed to distinguish "0x" from
// a bare "0", and "1." from "1..2") without relying on bufio's single-rune
// pushback.
type Lexer struct {
	reader  *bufio.Reader
	pending []rune // runes read from reader but not yet consumed by the scanner
	line    int
	col     int
	peeked  *token.Token
}

// New returns a Lexer reading from r.
func New(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r), line: 1, col: 1}
}

// NewFromString returns a Lexer over s.
func NewFromString(s string) *Lexer {
	return New(strings.NewReader(s))
}

// fill ensures at least n runes are buffered in pending, short of EOF.
func (l *Lexer) fill(n int) {
	for len(l.pending) < n {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			return
		}
		l.pending = append(l.pending, r)
	}
}

// lookahead returns the rune n positions ahead (0 = next rune to be
// consumed) without consuming anything. ok is false past EOF.
func (l *Lexer) lookahead(n int) (rune, bool) {
	l.fill(n + 1)
	if n < len(l.pending) {
		return l.pending[n], true
	}
	return 0, false
}

// advance consumes and returns the next rune, updating line/column.
func (l *Lexer) advance() (rune, bool) {
	l.fill(1)
	if len(l.pending) == 0 {
		return 0, false
	}
	r := l.pending[0]
	l.pending = l.pending[1:]
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	t, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	l.peeked = &t
	return t, nil
}

// Next returns and consumes the next token.
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, nil
	}
	return l.scan()
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		r, ok := l.lookahead(0)
		if !ok {
			return
		}
		if r == '#' {
			for {
				r2, ok := l.advance()
				if !ok || r2 == '\n' {
					break
				}
			}
			continue
		}
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			l.advance()
			continue
		}
		return
	}
}

func (l *Lexer) scan() (token.Token, error) {
	l.skipWhitespaceAndComments()

	startLine, startCol := l.line, l.col

	r, ok := l.advance()
	if !ok {
		return token.Token{Kind: token.EOF, Line: startLine, Column: startCol}, nil
	}

	switch r {
	case '@':
		return token.Token{Kind: token.AT, Value: "@", Line: startLine, Column: startCol}, nil
	case ':':
		if nr, ok := l.lookahead(0); ok && nr == '=' {
			l.advance()
			return token.Token{Kind: token.ASSIGN, Value: ":=", Line: startLine, Column: startCol}, nil
		}
		return token.Token{Kind: token.COLON, Value: ":", Line: startLine, Column: startCol}, nil
	case '$':
		return token.Token{Kind: token.DOLLAR, Value: "$", Line: startLine, Column: startCol}, nil
	case '[':
		return token.Token{Kind: token.LBRACKET, Value: "[", Line: startLine, Column: startCol}, nil
	case ']':
		return token.Token{Kind: token.RBRACKET, Value: "]", Line: startLine, Column: startCol}, nil
	case ',':
		return token.Token{Kind: token.COMMA, Value: ",", Line: startLine, Column: startCol}, nil
	case '%':
		return token.Token{Kind: token.PERCENT, Value: "%", Line: startLine, Column: startCol}, nil
	case '&':
		return token.Token{Kind: token.AMP, Value: "&", Line: startLine, Column: startCol}, nil
	case '(':
		return token.Token{Kind: token.LPAREN, Value: "(", Line: startLine, Column: startCol}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Value: ")", Line: startLine, Column: startCol}, nil
	case '!':
		if nr, ok := l.lookahead(0); ok && nr == '!' {
			l.advance()
			return token.Token{Kind: token.BANGBANG, Value: "!!", Line: startLine, Column: startCol}, nil
		}
		return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.UnexpectedToken, Detail: "unexpected '!'"}
	case '-':
		if nr, ok := l.lookahead(0); ok && nr == '>' {
			l.advance()
			return token.Token{Kind: token.ARROW, Value: "->", Line: startLine, Column: startCol}, nil
		}
		return l.scanNumber(r, startLine, startCol)
	case '.':
		if nr, ok := l.lookahead(0); ok && nr == '.' {
			l.advance()
			return token.Token{Kind: token.DOTDOT, Value: "..", Line: startLine, Column: startCol}, nil
		}
		return token.Token{Kind: token.DOT, Value: ".", Line: startLine, Column: startCol}, nil
	case '"', '\'':
		return l.scanString(r, startLine, startCol)
	case '\\':
		if nr, ok := l.lookahead(0); ok && nr == '0' {
			l.advance()
			return token.Token{Kind: token.NIL, Value: "\\0", Line: startLine, Column: startCol}, nil
		}
		return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.UnexpectedToken, Detail: "unexpected '\\'"}
	}

	if isDigit(r) {
		return l.scanNumber(r, startLine, startCol)
	}

	if isIdentStart(r) {
		var b strings.Builder
		b.WriteRune(r)
		for {
			nr, ok := l.lookahead(0)
			if !ok || !isIdentChar(nr) {
				break
			}
			l.advance()
			b.WriteRune(nr)
		}
		name := b.String()
		switch name {
		case "True":
			return token.Token{Kind: token.TRUE, Value: name, Line: startLine, Column: startCol}, nil
		case "False":
			return token.Token{Kind: token.FALSE, Value: name, Line: startLine, Column: startCol}, nil
		}
		return token.Token{Kind: token.IDENT, Value: name, Line: startLine, Column: startCol}, nil
	}

	return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.UnexpectedToken, Detail: fmt.Sprintf("unexpected character %q", r)}
}

// scanNumber scans an integer or float literal. first is the first rune
// already consumed ('-' or a digit).
func (l *Lexer) scanNumber(first rune, startLine, startCol int) (token.Token, error) {
	var b strings.Builder
	b.WriteRune(first)

	negative := first == '-'
	firstDigit := first
	if negative {
		r, ok := l.lookahead(0)
		if !ok || !isDigit(r) {
			return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.BadNumber, Detail: "expected digit after '-'"}
		}
		firstDigit = r
	}

	if firstDigit == '0' {
		// lookahead(0) is the '0' itself when negative hasn't consumed it
		// yet; peek one further to find a radix marker.
		idx := 0
		if negative {
			idx = 1
		}
		if marker, ok := l.lookahead(idx); ok && (marker == 'b' || marker == 'x') {
			if negative {
				l.advance() // '0'
				b.WriteRune('0')
			}
			l.advance() // 'b' or 'x'
			b.WriteRune(marker)
			isHex := marker == 'x'
			digits := 0
			for {
				r, ok := l.lookahead(0)
				if !ok {
					break
				}
				if (isHex && isHexDigit(r)) || (!isHex && (r == '0' || r == '1')) {
					l.advance()
					b.WriteRune(r)
					digits++
					continue
				}
				break
			}
			if digits == 0 {
				return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.BadNumber, Detail: "radix literal with no digits"}
			}
			return token.Token{Kind: token.INTEGER, Value: b.String(), Line: startLine, Column: startCol}, nil
		}
	}

	for {
		r, ok := l.lookahead(0)
		if !ok || !isDigit(r) {
			break
		}
		l.advance()
		b.WriteRune(r)
	}

	isFloat := false
	if r, ok := l.lookahead(0); ok && r == '.' {
		if r2, ok2 := l.lookahead(1); ok2 && isDigit(r2) {
			isFloat = true
			l.advance()
			b.WriteRune('.')
			for {
				r, ok := l.lookahead(0)
				if !ok || !isDigit(r) {
					break
				}
				l.advance()
				b.WriteRune(r)
			}
		}
	}

	kind := token.INTEGER
	if isFloat {
		kind = token.FLOAT
	}
	return token.Token{Kind: kind, Value: b.String(), Line: startLine, Column: startCol}, nil
}

func (l *Lexer) scanString(quote rune, startLine, startCol int) (token.Token, error) {
	var b strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.UnterminatedString}
		}
		if r == quote {
			return token.Token{Kind: token.STRING, Value: b.String(), Line: startLine, Column: startCol}, nil
		}
		if r == '\\' {
			esc, ok := l.advance()
			if !ok {
				return token.Token{}, &vtcerr.ParseError{Line: startLine, Column: startCol, Kind: vtcerr.UnterminatedString}
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '\'':
				b.WriteByte('\'')
			case '0':
				b.WriteByte(0)
			default:
				return token.Token{}, &vtcerr.ParseError{Line: l.line, Column: l.col, Kind: vtcerr.BadEscape, Detail: fmt.Sprintf("unknown escape \\%c", esc)}
			}
			continue
		}
		b.WriteRune(r)
	}
}

// Line returns the current line number (1-based).
func (l *Lexer) Line() int { return l.line }
