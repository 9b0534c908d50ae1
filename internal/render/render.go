// Package render serializes a Store's namespaces back into VTC source
// text, the inverse of internal/parser.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vtcfg/vtc/internal/store"
	"github.com/vtcfg/vtc/internal/value"
)

// Namespace renders a single namespace as a "@name:\n $var := expr\n"
// block. It returns an empty string if the namespace doesn't exist.
func Namespace(s *store.Store, name string) string {
	ns := s.Namespace(name)
	if ns == nil {
		return ""
	}
	return renderNamespace(ns)
}

// All renders every namespace in the store, in insertion order, separated
// by blank lines.
func All(s *store.Store) string {
	var b strings.Builder
	for i, name := range s.ListNamespaces() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderNamespace(s.Namespace(name)))
	}
	return b.String()
}

func renderNamespace(ns *store.Namespace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s:\n", ns.Name())
	for _, name := range ns.Names() {
		binding, _ := ns.Get(name)
		fmt.Fprintf(&b, "    $%s := %s\n", name, Expr(binding.Expr))
	}
	return b.String()
}

// Expr renders a single expression as VTC source text.
func Expr(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return quote(string(t))
	case value.Integer:
		return strconv.FormatInt(int64(t), 10)
	case value.Float:
		// Always keep a fractional part so the text lexes back as a FLOAT,
		// not an INTEGER.
		s := strconv.FormatFloat(float64(t), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case value.Boolean:
		if t {
			return "True"
		}
		return "False"
	case value.Nil:
		return "\\0"
	case value.List:
		items := t.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = Expr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.Reference:
		return renderReference(t)
	case value.Intrinsic:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Expr(a)
		}
		args := strings.Join(parts, ", ")
		if args == "" {
			return "[" + t.Name + "!!]"
		}
		return "[" + t.Name + "!!, " + args + "]"
	}
	return ""
}

func renderReference(ref value.Reference) string {
	var b strings.Builder
	if ref.RefType == value.External {
		b.WriteByte('&')
	} else {
		b.WriteByte('%')
	}
	if ref.HasNamespace {
		b.WriteString(ref.Namespace)
		b.WriteByte('.')
	}
	b.WriteString(ref.Variable)
	for _, acc := range ref.Accessors {
		b.WriteString(renderAccessor(acc))
	}
	return b.String()
}

func renderAccessor(acc value.Accessor) string {
	if acc.Kind == value.AccIndex {
		return fmt.Sprintf("->(%d)", acc.Index)
	}
	switch {
	case acc.HasStart && acc.HasEnd:
		return fmt.Sprintf("->(%d..%d)", acc.Start, acc.End)
	case acc.HasStart:
		return fmt.Sprintf("->(%d..)", acc.Start)
	case acc.HasEnd:
		return fmt.Sprintf("->(..%d)", acc.End)
	default:
		return "->(..)"
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
