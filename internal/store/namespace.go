package store

import "github.com/vtcfg/vtc/internal/value"

// Binding pairs a variable name with the expression it was declared with.
// Expressions are stored exactly as parsed; a Binding never changes after
// insertion except via last-write-wins replacement of its Expr.
type Binding struct {
	Name string
	Expr value.Value
}

// Namespace is an insertion-ordered mapping of variable name to Binding.
// Redeclaring a name replaces its expression but keeps the name's original
// position in iteration order.
type Namespace struct {
	name     string
	order    []string
	bindings map[string]Binding
}

func newNamespace(name string) *Namespace {
	return &Namespace{
		name:     name,
		bindings: make(map[string]Binding),
	}
}

// Name returns the namespace's identifier.
func (ns *Namespace) Name() string { return ns.name }

// Insert adds or replaces a binding. The first insertion of a name fixes
// its position in Names(); later insertions of the same name only replace
// the expression.
func (ns *Namespace) Insert(name string, expr value.Value) {
	if _, exists := ns.bindings[name]; !exists {
		ns.order = append(ns.order, name)
	}
	ns.bindings[name] = Binding{Name: name, Expr: expr}
}

// Get returns the binding for name, if any.
func (ns *Namespace) Get(name string) (Binding, bool) {
	b, ok := ns.bindings[name]
	return b, ok
}

// Names returns variable names in insertion order.
func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.order))
	copy(out, ns.order)
	return out
}
