// Package store holds the in-memory, insertion-ordered container of
// namespaces and bindings a VTC program loads into. The Store is append-only
// once queries begin: load inserts, queries never mutate.
package store

import (
	"sync"

	"github.com/vtcfg/vtc/internal/value"
)

// Store is an insertion-ordered mapping of namespace name to Namespace.
// It is safe for concurrent reads; the single-threaded contract in the
// language's design notes means callers must not interleave a Load with
// an in-flight query.
type Store struct {
	mu         sync.RWMutex
	order      []string
	namespaces map[string]*Namespace
}

// New returns an empty Store.
func New() *Store {
	return &Store{namespaces: make(map[string]*Namespace)}
}

// InsertNamespace returns the Namespace for name, creating it (and
// appending it to iteration order) if it doesn't already exist. Duplicate
// headers are merged onto the first occurrence, so callers get the same
// handle back.
func (s *Store) InsertNamespace(name string) *Namespace {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.namespaces[name]
	if !ok {
		ns = newNamespace(name)
		s.namespaces[name] = ns
		s.order = append(s.order, name)
	}
	return ns
}

// InsertBinding is a convenience wrapper over InsertNamespace followed by
// Namespace.Insert.
func (s *Store) InsertBinding(namespace, name string, expr value.Value) {
	s.InsertNamespace(namespace).Insert(name, expr)
}

// GetBinding looks up a namespace/variable pair. ok is false if either the
// namespace or the variable within it is absent.
func (s *Store) GetBinding(namespace, name string) (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		return Binding{}, false
	}
	return ns.Get(name)
}

// Namespace returns the namespace handle for name, or nil if it has never
// been inserted.
func (s *Store) Namespace(name string) *Namespace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespaces[name]
}

// ListNamespaces returns namespace names in insertion order.
func (s *Store) ListNamespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ListVariables returns the variable names of namespace in insertion order,
// or nil if the namespace doesn't exist.
func (s *Store) ListVariables(namespace string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		return nil
	}
	return ns.Names()
}

// ParsedNamespace is the parser's output shape for a single namespace block:
// a name plus its bindings in source order. Load commits a whole slice of
// these at once, after the caller has confirmed the parse that produced
// them succeeded in full — so a failing load never reaches the Store.
type ParsedNamespace struct {
	Name     string
	Bindings []ParsedBinding
}

// ParsedBinding is a single $name := expression pair as the parser saw it.
type ParsedBinding struct {
	Name string
	Expr value.Value
}

// Load commits a fully-parsed program into the Store. Each namespace merges
// into any existing namespace of the same name; each binding follows
// last-write-wins. Callers must only call Load with the complete output of
// a successful parse — partial programs are the parser's problem to reject
// before this point, never the Store's to roll back.
func (s *Store) Load(namespaces []ParsedNamespace) {
	for _, pns := range namespaces {
		ns := s.InsertNamespace(pns.Name)
		for _, b := range pns.Bindings {
			ns.Insert(b.Name, b.Expr)
		}
	}
}
