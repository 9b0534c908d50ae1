// Package parser turns a token stream into an ordered sequence of parsed
// namespaces, ready for Store.Load. It does not resolve references or
// evaluate intrinsics — expressions are captured exactly as written.
package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/vtcfg/vtc/internal/lexer"
	"github.com/vtcfg/vtc/internal/store"
	"github.com/vtcfg/vtc/internal/token"
	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// Parser consumes a token stream and produces parsed namespaces.
type Parser struct {
	lex     *lexer.Lexer
	pending []token.Token
}

// New returns a Parser reading source from r.
func New(r io.Reader) *Parser {
	return &Parser{lex: lexer.New(r)}
}

// NewFromString returns a Parser over s.
func NewFromString(s string) *Parser {
	return &Parser{lex: lexer.NewFromString(s)}
}

// fill ensures at least n+1 tokens are buffered in pending.
func (p *Parser) fill(n int) error {
	for len(p.pending) <= n {
		t, err := p.lex.Next()
		if err != nil {
			return err
		}
		p.pending = append(p.pending, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return nil
}

func (p *Parser) peekN(n int) (token.Token, error) {
	if err := p.fill(n); err != nil {
		return token.Token{}, err
	}
	if n < len(p.pending) {
		return p.pending[n], nil
	}
	return p.pending[len(p.pending)-1], nil // EOF
}

func (p *Parser) peek() (token.Token, error) { return p.peekN(0) }

func (p *Parser) advance() (token.Token, error) {
	if err := p.fill(0); err != nil {
		return token.Token{}, err
	}
	t := p.pending[0]
	p.pending = p.pending[1:]
	return t, nil
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	t, err := p.advance()
	if err != nil {
		return token.Token{}, err
	}
	if t.Kind != kind {
		return token.Token{}, p.unexpected(t, kind.String())
	}
	return t, nil
}

func (p *Parser) unexpected(t token.Token, want string) error {
	if t.Kind == token.EOF {
		return &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.UnexpectedEOF, Detail: "expected " + want}
	}
	return &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.UnexpectedToken, Detail: "expected " + want + ", got " + t.Kind.String()}
}

// Parse consumes the whole source and returns the ordered namespace blocks
// it contains.
func (p *Parser) Parse() ([]store.ParsedNamespace, error) {
	var out []store.ParsedNamespace
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == token.EOF {
			return out, nil
		}
		ns, err := p.parseNamespace()
		if err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
}

func (p *Parser) parseNamespace() (store.ParsedNamespace, error) {
	if _, err := p.expect(token.AT); err != nil {
		return store.ParsedNamespace{}, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return store.ParsedNamespace{}, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return store.ParsedNamespace{}, err
	}

	ns := store.ParsedNamespace{Name: nameTok.Value}
	for {
		t, err := p.peek()
		if err != nil {
			return store.ParsedNamespace{}, err
		}
		if t.Kind != token.DOLLAR {
			return ns, nil
		}
		b, err := p.parseBinding()
		if err != nil {
			return store.ParsedNamespace{}, err
		}
		ns.Bindings = append(ns.Bindings, b)
	}
}

func (p *Parser) parseBinding() (store.ParsedBinding, error) {
	if _, err := p.expect(token.DOLLAR); err != nil {
		return store.ParsedBinding{}, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return store.ParsedBinding{}, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return store.ParsedBinding{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return store.ParsedBinding{}, err
	}
	return store.ParsedBinding{Name: nameTok.Value, Expr: expr}, nil
}

func (p *Parser) parseExpression() (value.Value, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case token.STRING:
		p.advance()
		return value.String(t.Value), nil
	case token.INTEGER:
		p.advance()
		return parseIntegerLiteral(t)
	case token.FLOAT:
		p.advance()
		return parseFloatLiteral(t)
	case token.TRUE:
		p.advance()
		return value.Boolean(true), nil
	case token.FALSE:
		p.advance()
		return value.Boolean(false), nil
	case token.NIL:
		p.advance()
		return value.Nil{}, nil
	case token.PERCENT:
		p.advance()
		return p.parseReference(value.Local)
	case token.AMP:
		p.advance()
		return p.parseReference(value.External)
	case token.LBRACKET:
		return p.parseBracketed()
	}
	return nil, p.unexpected(t, "expression")
}

// parseBracketed disambiguates an intrinsic call from a list literal: a
// '[' followed by an identifier immediately followed by '!!' is a call.
func (p *Parser) parseBracketed() (value.Value, error) {
	open, err := p.expect(token.LBRACKET)
	if err != nil {
		return nil, err
	}

	t1, err := p.peekN(0)
	if err != nil {
		return nil, err
	}
	if t1.Kind == token.IDENT {
		t2, err := p.peekN(1)
		if err != nil {
			return nil, err
		}
		if t2.Kind == token.BANGBANG {
			return p.parseIntrinsicCallBody(open)
		}
	}
	return p.parseListBody(open)
}

func (p *Parser) parseIntrinsicCallBody(open token.Token) (value.Value, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BANGBANG); err != nil {
		return nil, err
	}

	var args []value.Value
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == token.RBRACKET {
			p.advance()
			return value.Intrinsic{Name: nameTok.Value, Args: args}, nil
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == token.RBRACKET {
			p.advance()
			return value.Intrinsic{Name: nameTok.Value, Args: args}, nil
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (p *Parser) parseListBody(open token.Token) (value.Value, error) {
	var items []value.Value
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == token.RBRACKET {
		p.advance()
		return value.NewList(items), nil
	}
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case token.RBRACKET:
			p.advance()
			return value.NewList(items), nil
		case token.COMMA:
			p.advance()
			t2, err := p.peek()
			if err != nil {
				return nil, err
			}
			if t2.Kind == token.RBRACKET { // trailing comma
				p.advance()
				return value.NewList(items), nil
			}
		default:
			return nil, p.unexpected(t, "',' or ']'")
		}
	}
}

func (p *Parser) parseReference(refType value.RefType) (value.Value, error) {
	first, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	ref := value.Reference{RefType: refType}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == token.DOT {
		p.advance()
		varTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		ref.HasNamespace = true
		ref.Namespace = first.Value
		ref.Variable = varTok.Value
	} else {
		ref.Variable = first.Value
	}

	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind != token.ARROW {
			break
		}
		acc, err := p.parseAccessor()
		if err != nil {
			return nil, err
		}
		ref.Accessors = append(ref.Accessors, acc)
	}

	return ref, nil
}

func (p *Parser) parseAccessor() (value.Accessor, error) {
	if _, err := p.expect(token.ARROW); err != nil {
		return value.Accessor{}, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return value.Accessor{}, err
	}

	t, err := p.peek()
	if err != nil {
		return value.Accessor{}, err
	}

	// '..' integer  -> Range(none, end)
	if t.Kind == token.DOTDOT {
		p.advance()
		endTok, err := p.expect(token.INTEGER)
		if err != nil {
			return value.Accessor{}, err
		}
		end, err := strconv.ParseInt(endTok.Value, 10, 64)
		if err != nil {
			return value.Accessor{}, &vtcerr.ParseError{Line: endTok.Line, Column: endTok.Column, Kind: vtcerr.BadNumber}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return value.Accessor{}, err
		}
		return value.Accessor{Kind: value.AccRange, HasEnd: true, End: end}, nil
	}

	firstTok, err := p.expect(token.INTEGER)
	if err != nil {
		return value.Accessor{}, err
	}
	first, err := strconv.ParseInt(firstTok.Value, 10, 64)
	if err != nil {
		return value.Accessor{}, &vtcerr.ParseError{Line: firstTok.Line, Column: firstTok.Column, Kind: vtcerr.BadNumber}
	}

	t, err = p.peek()
	if err != nil {
		return value.Accessor{}, err
	}
	if t.Kind == token.DOTDOT {
		p.advance()
		t, err = p.peek()
		if err != nil {
			return value.Accessor{}, err
		}
		if t.Kind == token.RPAREN {
			// integer '..'  -> Range(start, none)
			p.advance()
			return value.Accessor{Kind: value.AccRange, HasStart: true, Start: first}, nil
		}
		endTok, err := p.expect(token.INTEGER)
		if err != nil {
			return value.Accessor{}, err
		}
		end, err := strconv.ParseInt(endTok.Value, 10, 64)
		if err != nil {
			return value.Accessor{}, &vtcerr.ParseError{Line: endTok.Line, Column: endTok.Column, Kind: vtcerr.BadNumber}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return value.Accessor{}, err
		}
		return value.Accessor{Kind: value.AccRange, HasStart: true, Start: first, HasEnd: true, End: end}, nil
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return value.Accessor{}, err
	}
	return value.Accessor{Kind: value.AccIndex, Index: first}, nil
}

func parseIntegerLiteral(t token.Token) (value.Value, error) {
	text := t.Value
	neg := strings.HasPrefix(text, "-")
	body := text
	if neg {
		body = text[1:]
	}
	switch {
	case strings.HasPrefix(body, "0b"):
		n, err := strconv.ParseInt(body[2:], 2, 64)
		if err != nil {
			return nil, &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.BadNumber, Detail: err.Error()}
		}
		if neg {
			n = -n
		}
		return value.Integer(n), nil
	case strings.HasPrefix(body, "0x"):
		n, err := strconv.ParseInt(body[2:], 16, 64)
		if err != nil {
			return nil, &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.BadNumber, Detail: err.Error()}
		}
		if neg {
			n = -n
		}
		return value.Integer(n), nil
	default:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.BadNumber, Detail: err.Error()}
		}
		return value.Integer(n), nil
	}
}

func parseFloatLiteral(t token.Token) (value.Value, error) {
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return nil, &vtcerr.ParseError{Line: t.Line, Column: t.Column, Kind: vtcerr.BadNumber, Detail: err.Error()}
	}
	return value.Float(f), nil
}
