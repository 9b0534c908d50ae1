// Package intrinsic implements the named-function registry the Evaluator
// dispatches intrinsic calls through, plus the standard library handlers
// registered into it at store creation.
package intrinsic

import (
	"strconv"
	"sync"

	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// Handler is a callable an intrinsic name resolves to. args are already
// fully resolved values; a Handler must never write to the Store.
type Handler func(args []value.Value) (value.Value, error)

// Registry is a mutable, host-extensible name->Handler table. It starts
// empty; New populates it with the standard library.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewEmpty returns a Registry with no handlers registered.
func NewEmpty() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// New returns a Registry pre-populated with the standard library.
func New() *Registry {
	r := NewEmpty()
	registerStdlib(r)
	return r
}

// Register adds or replaces the handler for name. Safe to call at any
// time; a query already in flight when Register runs is not required to
// observe the change (its memoized resolutions are unaffected).
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Lookup returns the handler for name, if registered.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Invoke looks up name and calls it, wrapping a missing name as
// UnknownIntrinsic.
func (r *Registry) Invoke(name string, args []value.Value) (value.Value, error) {
	h, ok := r.Lookup(name)
	if !ok {
		return nil, &vtcerr.UnknownIntrinsic{Name: name}
	}
	return h(args)
}

func arityError(name string, want int, got int) error {
	return &vtcerr.IntrinsicError{Name: name, Kind: vtcerr.Arity, Detail: "expected " + strconv.Itoa(want) + " argument(s), got " + strconv.Itoa(got)}
}

func badArgument(name, detail string) error {
	return &vtcerr.IntrinsicError{Name: name, Kind: vtcerr.BadArgument, Detail: detail}
}
