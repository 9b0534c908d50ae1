package vtc

import (
	"github.com/vtcfg/vtc/internal/eval"
	"github.com/vtcfg/vtc/internal/render"
	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// GetString resolves ns.name and requires it to be a String.
func (r *Runtime) GetString(ns, name string) (string, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.String)
	if !ok {
		return "", &vtcerr.TypeMismatch{Expected: "String", Got: v.Kind().String()}
	}
	return string(s), nil
}

// GetInteger resolves ns.name and requires it to be an Integer. Unlike
// GetFloat, a Float value is not auto-coerced.
func (r *Runtime) GetInteger(ns, name string) (int64, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return 0, err
	}
	i, ok := v.(value.Integer)
	if !ok {
		return 0, &vtcerr.TypeMismatch{Expected: "Integer", Got: v.Kind().String()}
	}
	return int64(i), nil
}

// GetFloat resolves ns.name, accepting either a Float or an Integer
// (promoted to Float).
func (r *Runtime) GetFloat(ns, name string) (float64, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case value.Float:
		return float64(t), nil
	case value.Integer:
		return float64(t), nil
	}
	return 0, &vtcerr.TypeMismatch{Expected: "Float", Got: v.Kind().String()}
}

// GetBoolean resolves ns.name and requires it to be a Boolean.
func (r *Runtime) GetBoolean(ns, name string) (bool, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Boolean)
	if !ok {
		return false, &vtcerr.TypeMismatch{Expected: "Boolean", Got: v.Kind().String()}
	}
	return bool(b), nil
}

// GetList resolves ns.name and requires it to be a List, returning its
// elements as resolved public Values.
func (r *Runtime) GetList(ns, name string) ([]Value, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return nil, err
	}
	l, ok := v.(value.List)
	if !ok {
		return nil, &vtcerr.TypeMismatch{Expected: "List", Got: v.Kind().String()}
	}
	pub := toPublic(l)
	items, _ := pub.AsList()
	return items, nil
}

// GetValue resolves ns.name and returns its raw resolved Value, with
// optional trailing accessors applied left-to-right after resolution.
func (r *Runtime) GetValue(ns, name string, accessors ...Accessor) (Value, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return Value{}, err
	}
	for _, acc := range accessors {
		v, err = applyPublicAccessor(v, acc)
		if err != nil {
			return Value{}, err
		}
	}
	return toPublic(v), nil
}

// Accessor is a host-constructed index or range, usable with GetValue.
type Accessor struct {
	isRange  bool
	index    int64
	hasStart bool
	start    int64
	hasEnd   bool
	end      int64
}

// Index returns an Accessor selecting a single element (negative counts
// from the end).
func Index(i int64) Accessor { return Accessor{index: i} }

// Range returns an Accessor selecting a half-open [start,end) window.
// Either bound may be omitted via RangeFrom, RangeTo, or both via RangeAll.
func Range(start, end int64) Accessor {
	return Accessor{isRange: true, hasStart: true, start: start, hasEnd: true, end: end}
}

// RangeFrom returns a Range with no upper bound.
func RangeFrom(start int64) Accessor {
	return Accessor{isRange: true, hasStart: true, start: start}
}

// RangeTo returns a Range with no lower bound.
func RangeTo(end int64) Accessor {
	return Accessor{isRange: true, hasEnd: true, end: end}
}

// RangeAll returns a Range with neither bound set, selecting the whole
// sequence.
func RangeAll() Accessor {
	return Accessor{isRange: true}
}

func applyPublicAccessor(v value.Value, acc Accessor) (value.Value, error) {
	internalAcc := value.Accessor{Index: acc.index, HasStart: acc.hasStart, Start: acc.start, HasEnd: acc.hasEnd, End: acc.end}
	if acc.isRange {
		internalAcc.Kind = value.AccRange
	} else {
		internalAcc.Kind = value.AccIndex
	}
	return eval.ApplyAccessor(v, internalAcc)
}

// FlattenList resolves ns.name to a list and recursively descends into any
// List elements, preserving non-list elements in order.
func (r *Runtime) FlattenList(ns, name string) ([]Value, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return nil, err
	}
	l, ok := v.(value.List)
	if !ok {
		return nil, &vtcerr.TypeMismatch{Expected: "List", Got: v.Kind().String()}
	}
	var out []value.Value
	flatten(l, &out)
	result := make([]Value, len(out))
	for i, item := range out {
		result[i] = toPublic(item)
	}
	return result, nil
}

func flatten(l value.List, out *[]value.Value) {
	for _, item := range l.Items() {
		if sub, ok := item.(value.List); ok {
			flatten(sub, out)
			continue
		}
		*out = append(*out, item)
	}
}

// AsDict interprets ns.name as a list of [key: String, value] pairs,
// last-write-wins on duplicate keys. A malformed entry is reported as
// BadDictShape.
func (r *Runtime) AsDict(ns, name string) (map[string]Value, error) {
	v, err := r.evaluator.Resolve(ns, name)
	if err != nil {
		return nil, err
	}
	l, ok := v.(value.List)
	if !ok {
		return nil, &vtcerr.TypeMismatch{Expected: "List", Got: v.Kind().String()}
	}
	out := make(map[string]Value)
	for _, entry := range l.Items() {
		pair, ok := entry.(value.List)
		if !ok || pair.Len() != 2 {
			return nil, &vtcerr.BadDictShape{Detail: "expected a [key, value] pair"}
		}
		key, ok := pair.At(0).(value.String)
		if !ok {
			return nil, &vtcerr.BadDictShape{Detail: "key must be a String"}
		}
		out[string(key)] = toPublic(pair.At(1))
	}
	return out, nil
}

// ListNamespaces returns namespace names in insertion order. It never
// evaluates any binding.
func (r *Runtime) ListNamespaces() []string {
	return r.store.ListNamespaces()
}

// ListVariables returns the variable names of ns in insertion order. It
// never evaluates any binding.
func (r *Runtime) ListVariables(ns string) []string {
	return r.store.ListVariables(ns)
}

// Render renders namespace ns back into VTC source text.
func (r *Runtime) Render(ns string) (string, error) {
	out := render.Namespace(r.store, ns)
	if out == "" {
		return "", &vtcerr.NotFound{Namespace: ns}
	}
	return out, nil
}

// RenderAll renders every namespace in the Store back into VTC source
// text.
func (r *Runtime) RenderAll() string {
	return render.All(r.store)
}
