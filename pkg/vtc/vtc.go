// Package vtc is the public entry point for the VTC configuration
// language: parse source text into an in-memory Store, then query it with
// typed getters while references and intrinsics resolve lazily.
package vtc

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"time"

	"github.com/vtcfg/vtc/internal/eval"
	"github.com/vtcfg/vtc/internal/intrinsic"
	"github.com/vtcfg/vtc/internal/parser"
	"github.com/vtcfg/vtc/internal/sqlitecache"
	"github.com/vtcfg/vtc/internal/store"
	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// IntrinsicHandler is a host-supplied intrinsic implementation, operating
// on fully resolved public Values.
type IntrinsicHandler func(args []Value) (Value, error)

// Runtime is a loaded VTC program: a Store plus the Evaluator and Intrinsic
// Registry that resolve queries against it.
type Runtime struct {
	store     *store.Store
	registry  *intrinsic.Registry
	evaluator *eval.Evaluator
	trace     func(namespace, variable string, depth int)
	cache     *sqlitecache.Cache
	logger    *slog.Logger
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithTrace installs a callback fired once per reference hop during
// resolution, for diagnostics only.
func WithTrace(fn func(namespace, variable string, depth int)) Option {
	return func(r *Runtime) { r.trace = fn }
}

// WithIntrinsic registers a host-supplied intrinsic before the registry is
// used by any query. It may also replace a standard library entry.
func WithIntrinsic(name string, handler IntrinsicHandler) Option {
	return func(r *Runtime) {
		r.registry.Register(name, func(args []value.Value) (value.Value, error) {
			pubArgs := make([]Value, len(args))
			for i, a := range args {
				pubArgs[i] = toPublic(a)
			}
			result, err := handler(pubArgs)
			if err != nil {
				return nil, err
			}
			return toInternal(result), nil
		})
	}
}

// WithNoStdlib skips registering the standard library, leaving the
// Intrinsic Registry empty for the host to populate from scratch.
func WithNoStdlib() Option {
	return func(r *Runtime) { r.registry = intrinsic.NewEmpty() }
}

// WithLogger overrides the slog.Logger used for cache diagnostics. Options
// apply in order, so WithSQLiteCache logs a failure to open its cache to
// this logger only when WithLogger precedes it. The language core itself
// never logs.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// New returns an empty Runtime configured by opts.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		store:    store.New(),
		registry: intrinsic.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	evalOpts := []eval.Option{}
	if r.trace != nil {
		evalOpts = append(evalOpts, eval.WithTrace(r.trace))
	}
	r.evaluator = eval.New(r.store, r.registry, evalOpts...)
	return r
}

// Load parses src and commits its namespaces into the Store. A failing
// parse leaves the Store untouched, since Parse builds its result fully
// before Load ever calls Store.Load.
func (r *Runtime) Load(src string) error {
	namespaces, err := parser.NewFromString(src).Parse()
	if err != nil {
		return err
	}
	r.store.Load(namespaces)
	return nil
}

// LoadFile reads path and loads it.
func (r *Runtime) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &vtcerr.IoError{Path: path, Err: err}
	}
	return r.Load(string(data))
}

// WithSQLiteCache attaches a change-detection cache at dbPath, used by
// LoadFileCached.
func WithSQLiteCache(dbPath string) Option {
	return func(r *Runtime) {
		c, err := sqlitecache.Open(dbPath)
		if err != nil {
			r.logger.Warn("vtc: sqlite cache unavailable", "path", dbPath, "error", err)
			return
		}
		r.cache = c
	}
}

// LoadFileCached behaves like LoadFile, but also consults the SQLite
// change-detection cache (if configured via WithSQLiteCache): it logs
// whether the file's content changed since the cache last saw it, and
// updates the cache with the canonical rendering of the whole Store
// (RenderAll) after the load. It parses
// the file either way — the cache never substitutes for a parse.
func (r *Runtime) LoadFileCached(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &vtcerr.IoError{Path: path, Err: err}
	}
	if err := r.Load(string(data)); err != nil {
		return err
	}
	if r.cache == nil {
		return nil
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	prev, ok, err := r.cache.Lookup(path)
	if err != nil {
		r.logger.Warn("vtc: cache lookup failed", "path", path, "error", err)
	} else if ok && prev.Digest == digest {
		r.logger.Debug("vtc: file unchanged since last load", "path", path)
	} else if ok {
		r.logger.Info("vtc: file content changed since last load", "path", path)
	}

	rendered := r.RenderAll()
	if err := r.cache.Put(path, sqlitecache.Entry{Digest: digest, Rendered: rendered, SeenAt: time.Now().Unix()}); err != nil {
		r.logger.Warn("vtc: cache update failed", "path", path, "error", err)
	}
	return nil
}

// Close releases any resources the Runtime opened, such as a configured
// SQLite cache.
func (r *Runtime) Close() error {
	if r.cache != nil {
		return r.cache.Close()
	}
	return nil
}
