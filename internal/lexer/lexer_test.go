package lexer

import (
	"testing"

	"github.com/vtcfg/vtc/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	l := NewFromString(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := collect(t, "@ : $ := [ ] , !! % & . -> ( ) ..")
	want := []token.Kind{
		token.AT, token.COLON, token.DOLLAR, token.ASSIGN, token.LBRACKET, token.RBRACKET,
		token.COMMA, token.BANGBANG, token.PERCENT, token.AMP, token.DOT, token.ARROW,
		token.LPAREN, token.RPAREN, token.DOTDOT, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := collect(t, "foo True False \\0")
	if toks[0].Kind != token.IDENT || toks[0].Value != "foo" {
		t.Errorf("got %v", toks[0])
	}
	if toks[1].Kind != token.TRUE {
		t.Errorf("expected TRUE, got %v", toks[1])
	}
	if toks[2].Kind != token.FALSE {
		t.Errorf("expected FALSE, got %v", toks[2])
	}
	if toks[3].Kind != token.NIL {
		t.Errorf("expected NIL, got %v", toks[3])
	}
}

func TestLexerIntegers(t *testing.T) {
	cases := map[string]string{
		"42":    "42",
		"-7":    "-7",
		"0x1F":  "0x1F",
		"0b101": "0b101",
	}
	for src, want := range cases {
		toks := collect(t, src)
		if toks[0].Kind != token.INTEGER {
			t.Errorf("%q: expected INTEGER, got %s", src, toks[0].Kind)
			continue
		}
		if toks[0].Value != want {
			t.Errorf("%q: got value %q, want %q", src, toks[0].Value, want)
		}
	}
}

func TestLexerFloatVsRange(t *testing.T) {
	toks := collect(t, "1.5")
	if toks[0].Kind != token.FLOAT || toks[0].Value != "1.5" {
		t.Errorf("expected FLOAT 1.5, got %v", toks[0])
	}

	toks = collect(t, "1..2")
	if toks[0].Kind != token.INTEGER || toks[0].Value != "1" {
		t.Errorf("expected INTEGER 1 before a range, got %v", toks[0])
	}
	if toks[1].Kind != token.DOTDOT {
		t.Errorf("expected DOTDOT, got %v", toks[1])
	}
	if toks[2].Kind != token.INTEGER || toks[2].Value != "2" {
		t.Errorf("expected INTEGER 2, got %v", toks[2])
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := collect(t, `"a\nb\t\"c\""`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	if toks[0].Value != "a\nb\t\"c\"" {
		t.Errorf("got %q", toks[0].Value)
	}
}

func TestLexerSingleQuoteString(t *testing.T) {
	toks := collect(t, `'hello'`)
	if toks[0].Kind != token.STRING || toks[0].Value != "hello" {
		t.Errorf("got %v", toks[0])
	}
}

func TestLexerComment(t *testing.T) {
	toks := collect(t, "# a comment\n$x")
	if toks[0].Kind != token.DOLLAR {
		t.Errorf("expected comment to be skipped, got %v", toks[0])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewFromString(`"unterminated`)
	_, err := l.Next()
	if err == nil {
		t.Fatalf("expected an error for an unterminated string")
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := NewFromString("$x")
	p1, err := l.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := l.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 != p2 {
		t.Errorf("Peek should be idempotent: %v != %v", p1, p2)
	}
	n, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != p1 {
		t.Errorf("Next after Peek should return the peeked token")
	}
}
