package vtc

import "github.com/vtcfg/vtc/internal/value"

// Kind tags the concrete variant a Value holds, mirroring the internal
// value sum type without exposing it.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindList
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindList:
		return "List"
	case KindNil:
		return "Nil"
	}
	return "Unknown"
}

// Value is a fully resolved VTC value, handed back across the public API
// boundary. Exactly one accessor matching Kind() is meaningful.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	list []Value
}

// Kind reports which field of Value is meaningful.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string and true if Kind() == KindString.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInteger returns the integer and true if Kind() == KindInteger.
func (v Value) AsInteger() (int64, bool) { return v.i, v.kind == KindInteger }

// AsFloat returns the float and true if Kind() == KindFloat.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsBoolean returns the boolean and true if Kind() == KindBoolean.
func (v Value) AsBoolean() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsList returns the elements and true if Kind() == KindList.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

func stringValue(s string) Value  { return Value{kind: KindString, str: s} }
func integerValue(i int64) Value  { return Value{kind: KindInteger, i: i} }
func floatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func booleanValue(b bool) Value   { return Value{kind: KindBoolean, b: b} }
func nilValue() Value             { return Value{kind: KindNil} }
func listValue(items []Value) Value { return Value{kind: KindList, list: items} }

// toPublic converts a fully resolved internal value into the public Value
// facade. v must already be resolved: no Reference or Intrinsic.
func toPublic(v value.Value) Value {
	switch t := v.(type) {
	case value.String:
		return stringValue(string(t))
	case value.Integer:
		return integerValue(int64(t))
	case value.Float:
		return floatValue(float64(t))
	case value.Boolean:
		return booleanValue(bool(t))
	case value.Nil:
		return nilValue()
	case value.List:
		items := t.Items()
		out := make([]Value, len(items))
		for i, item := range items {
			out[i] = toPublic(item)
		}
		return listValue(out)
	}
	return nilValue()
}

// toInternal converts a public Value back into the internal representation,
// for handlers registered by the host via WithIntrinsic.
func toInternal(v Value) value.Value {
	switch v.kind {
	case KindString:
		return value.String(v.str)
	case KindInteger:
		return value.Integer(v.i)
	case KindFloat:
		return value.Float(v.f)
	case KindBoolean:
		return value.Boolean(v.b)
	case KindList:
		items := make([]value.Value, len(v.list))
		for i, item := range v.list {
			items[i] = toInternal(item)
		}
		return value.NewList(items)
	default:
		return value.Nil{}
	}
}

// String returns a String Value.
func String(s string) Value { return stringValue(s) }

// Integer returns an Integer Value.
func Integer(i int64) Value { return integerValue(i) }

// Float returns a Float Value.
func Float(f float64) Value { return floatValue(f) }

// Boolean returns a Boolean Value.
func Boolean(b bool) Value { return booleanValue(b) }

// List returns a List Value.
func List(items []Value) Value { return listValue(items) }

// Nil returns the Nil Value.
func Nil() Value { return nilValue() }
