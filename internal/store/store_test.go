package store

import (
	"testing"

	"github.com/vtcfg/vtc/internal/value"
)

func TestStoreLoadAndGet(t *testing.T) {
	s := New()
	s.Load([]ParsedNamespace{
		{Name: "a", Bindings: []ParsedBinding{
			{Name: "x", Expr: value.Integer(1)},
			{Name: "y", Expr: value.String("hi")},
		}},
	})

	b, ok := s.GetBinding("a", "x")
	if !ok {
		t.Fatalf("expected binding a.x to exist")
	}
	if b.Expr != value.Integer(1) {
		t.Errorf("expected a.x = 1, got %v", b.Expr)
	}

	if _, ok := s.GetBinding("a", "missing"); ok {
		t.Errorf("expected a.missing to be absent")
	}
	if _, ok := s.GetBinding("missing", "x"); ok {
		t.Errorf("expected missing namespace to be absent")
	}
}

func TestStoreLoadLastWriteWins(t *testing.T) {
	s := New()
	s.Load([]ParsedNamespace{
		{Name: "a", Bindings: []ParsedBinding{{Name: "x", Expr: value.Integer(1)}}},
	})
	s.Load([]ParsedNamespace{
		{Name: "a", Bindings: []ParsedBinding{{Name: "x", Expr: value.Integer(2)}}},
	})

	b, ok := s.GetBinding("a", "x")
	if !ok {
		t.Fatalf("expected binding a.x to exist")
	}
	if b.Expr != value.Integer(2) {
		t.Errorf("expected last-write-wins, got %v", b.Expr)
	}
	if names := s.ListVariables("a"); len(names) != 1 || names[0] != "x" {
		t.Errorf("redeclaration should not change position/count: %v", names)
	}
}

func TestStoreInsertionOrder(t *testing.T) {
	s := New()
	s.Load([]ParsedNamespace{
		{Name: "b", Bindings: []ParsedBinding{{Name: "x", Expr: value.Integer(1)}}},
		{Name: "a", Bindings: []ParsedBinding{
			{Name: "second", Expr: value.Integer(1)},
			{Name: "first", Expr: value.Integer(2)},
		}},
	})

	nsOrder := s.ListNamespaces()
	if len(nsOrder) != 2 || nsOrder[0] != "b" || nsOrder[1] != "a" {
		t.Errorf("expected namespace insertion order [b a], got %v", nsOrder)
	}

	varOrder := s.ListVariables("a")
	if len(varOrder) != 2 || varOrder[0] != "second" || varOrder[1] != "first" {
		t.Errorf("expected variable insertion order [second first], got %v", varOrder)
	}
}

func TestStoreListVariablesUnknownNamespace(t *testing.T) {
	s := New()
	if got := s.ListVariables("nope"); got != nil {
		t.Errorf("expected nil for unknown namespace, got %v", got)
	}
}
