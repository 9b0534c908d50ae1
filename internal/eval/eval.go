// Package eval implements the VTC evaluator: it reduces a stored
// expression to a fully resolved Value by dereferencing references,
// applying accessors, and invoking intrinsics, detecting reference cycles
// along the way.
package eval

import (
	"github.com/vtcfg/vtc/internal/intrinsic"
	"github.com/vtcfg/vtc/internal/store"
	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// TraceFunc is invoked once per reference hop during resolution, purely for
// diagnostics; it never affects the result.
type TraceFunc func(namespace, variable string, depth int)

// Evaluator resolves expressions stored in a Store against an Intrinsic
// Registry.
type Evaluator struct {
	store    *store.Store
	registry *intrinsic.Registry
	trace    TraceFunc
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithTrace installs a hook fired on every reference hop.
func WithTrace(fn TraceFunc) Option {
	return func(e *Evaluator) { e.trace = fn }
}

// New returns an Evaluator over s using reg for intrinsic dispatch.
func New(s *store.Store, reg *intrinsic.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{store: s, registry: reg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// refKey identifies a binding under resolution, for cycle detection.
type refKey struct {
	namespace string
	variable  string
}

// context threads the "current namespace" (for unqualified local
// references) and the in-flight cycle-detection set through one top-level
// resolution. A fresh context is created per top-level Resolve call; its
// memo cache never outlives that call.
type context struct {
	namespace string
	visited   map[refKey]bool
	memo      map[refKey]value.Value
	depth     int
}

// Resolve fully evaluates the binding named variable in namespace ns,
// returning a Value with no remaining References or Intrinsics.
func (e *Evaluator) Resolve(ns, variable string) (value.Value, error) {
	binding, ok := e.store.GetBinding(ns, variable)
	if !ok {
		return nil, &vtcerr.UnresolvedReference{Namespace: ns, Variable: variable}
	}
	ctx := &context{
		namespace: ns,
		visited:   map[refKey]bool{{ns, variable}: true},
		memo:      map[refKey]value.Value{},
	}
	v, err := e.resolve(binding.Expr, ctx)
	if err != nil {
		return nil, err
	}
	ctx.memo[refKey{ns, variable}] = v
	return v, nil
}

// resolve is the recursive core of the algorithm.
func (e *Evaluator) resolve(expr value.Value, ctx *context) (value.Value, error) {
	switch t := expr.(type) {
	case value.List:
		items := t.Items()
		resolved := make([]value.Value, len(items))
		for i, item := range items {
			v, err := e.resolve(item, ctx)
			if err != nil {
				return nil, err
			}
			resolved[i] = v
		}
		return value.NewList(resolved), nil

	case value.Reference:
		return e.resolveReference(t, ctx)

	case value.Intrinsic:
		args := make([]value.Value, len(t.Args))
		for i, a := range t.Args {
			v, err := e.resolve(a, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		v, err := e.registry.Invoke(t.Name, args)
		if err != nil {
			switch specific := err.(type) {
			case *vtcerr.IntrinsicError:
				return nil, specific
			case *vtcerr.UnknownIntrinsic:
				return nil, specific
			}
			return nil, &vtcerr.IntrinsicError{Name: t.Name, Kind: vtcerr.BadArgument, Detail: err.Error()}
		}
		return v, nil

	default:
		// String, Integer, Float, Boolean, Nil resolve to themselves.
		return expr, nil
	}
}

func (e *Evaluator) resolveReference(ref value.Reference, ctx *context) (value.Value, error) {
	targetNS := ref.Namespace
	if !ref.HasNamespace {
		if ref.RefType == value.External {
			return nil, &vtcerr.UnresolvedReference{Namespace: "", Variable: ref.Variable}
		}
		targetNS = ctx.namespace
	}

	key := refKey{targetNS, ref.Variable}

	if v, ok := ctx.memo[key]; ok {
		return applyAccessors(v, ref.Accessors)
	}

	if ctx.visited[key] {
		return nil, &vtcerr.CyclicReference{Namespace: targetNS, Variable: ref.Variable}
	}

	binding, ok := e.store.GetBinding(targetNS, ref.Variable)
	if !ok {
		return nil, &vtcerr.UnresolvedReference{Namespace: targetNS, Variable: ref.Variable}
	}

	if e.trace != nil {
		e.trace(targetNS, ref.Variable, ctx.depth)
	}

	ctx.visited[key] = true
	sub := &context{namespace: targetNS, visited: ctx.visited, memo: ctx.memo, depth: ctx.depth + 1}
	resolved, err := e.resolve(binding.Expr, sub)
	if err != nil {
		return nil, err
	}
	// The key is freed on success, not on failure: a diamond-shaped,
	// non-cyclic reference graph may legitimately revisit the same
	// (namespace, variable) pair via a different path later in the same
	// top-level resolution.
	delete(ctx.visited, key)
	ctx.memo[key] = resolved

	return applyAccessors(resolved, ref.Accessors)
}
