package intrinsic

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math"
	"strings"

	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

func registerStdlib(r *Registry) {
	r.Register("std_add_int", intArith("std_add_int", func(a, b int64) (int64, bool) { return addOverflows(a, b) }))
	r.Register("std_sub_int", intArith("std_sub_int", func(a, b int64) (int64, bool) { return subOverflows(a, b) }))
	r.Register("std_mul_int", intArith("std_mul_int", func(a, b int64) (int64, bool) { return mulOverflows(a, b) }))
	r.Register("std_div_int", stdDivInt)
	r.Register("std_mod_int", stdModInt)

	r.Register("std_add_float", floatArith("std_add_float", func(a, b float64) float64 { return a + b }))
	r.Register("std_sub_float", floatArith("std_sub_float", func(a, b float64) float64 { return a - b }))
	r.Register("std_mul_float", floatArith("std_mul_float", func(a, b float64) float64 { return a * b }))
	r.Register("std_div_float", floatArith("std_div_float", func(a, b float64) float64 { return a / b }))

	r.Register("std_int_to_float", stdIntToFloat)
	r.Register("std_float_to_int", stdFloatToInt)

	r.Register("std_eq", stdCompare("std_eq", func(c int, eq bool) bool { return eq }))
	r.Register("std_lt", stdCompare("std_lt", func(c int, eq bool) bool { return c < 0 }))
	r.Register("std_gt", stdCompare("std_gt", func(c int, eq bool) bool { return c > 0 }))
	r.Register("std_le", stdCompare("std_le", func(c int, eq bool) bool { return c < 0 || eq }))
	r.Register("std_ge", stdCompare("std_ge", func(c int, eq bool) bool { return c > 0 || eq }))

	r.Register("std_if", stdIf)

	r.Register("std_bitwise_and", intArith("std_bitwise_and", func(a, b int64) (int64, bool) { return a & b, false }))
	r.Register("std_bitwise_or", intArith("std_bitwise_or", func(a, b int64) (int64, bool) { return a | b, false }))
	r.Register("std_bitwise_xor", intArith("std_bitwise_xor", func(a, b int64) (int64, bool) { return a ^ b, false }))
	r.Register("std_bitwise_not", stdBitwiseNot)

	r.Register("std_concat", stdConcat)
	r.Register("std_to_uppercase", stdToUppercase)
	r.Register("std_to_lowercase", stdToLowercase)
	r.Register("std_substring", stdSubstring)
	r.Register("std_replace", stdReplace)
	r.Register("std_base64_encode", stdBase64Encode)
	r.Register("std_base64_decode", stdBase64Decode)
	r.Register("std_hash", stdHash)
}

func asInteger(name string, v value.Value) (int64, error) {
	i, ok := v.(value.Integer)
	if !ok {
		return 0, badArgument(name, "expected Integer, got "+v.Kind().String())
	}
	return int64(i), nil
}

func asFloatLike(name string, v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.Float:
		return float64(t), nil
	case value.Integer:
		return float64(t), nil
	}
	return 0, badArgument(name, "expected numeric value, got "+v.Kind().String())
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", badArgument(name, "expected String, got "+v.Kind().String())
	}
	return string(s), nil
}

func addOverflows(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, true
	}
	return sum, false
}

func subOverflows(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, true
	}
	return diff, false
}

func mulOverflows(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, true
	}
	prod := a * b
	if prod/b != a {
		return 0, true
	}
	return prod, false
}

func intArith(name string, op func(a, b int64) (int64, bool)) Handler {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(name, 2, len(args))
		}
		a, err := asInteger(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInteger(name, args[1])
		if err != nil {
			return nil, err
		}
		result, overflow := op(a, b)
		if overflow {
			return nil, &vtcerr.IntrinsicError{Name: name, Kind: vtcerr.Overflow}
		}
		return value.Integer(result), nil
	}
}

func floatArith(name string, op func(a, b float64) float64) Handler {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(name, 2, len(args))
		}
		a, err := asFloatLike(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asFloatLike(name, args[1])
		if err != nil {
			return nil, err
		}
		return value.Float(op(a, b)), nil
	}
}

func stdDivInt(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("std_div_int", 2, len(args))
	}
	a, err := asInteger("std_div_int", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger("std_div_int", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, &vtcerr.IntrinsicError{Name: "std_div_int", Kind: vtcerr.DivByZero}
	}
	if a == math.MinInt64 && b == -1 {
		return nil, &vtcerr.IntrinsicError{Name: "std_div_int", Kind: vtcerr.Overflow}
	}
	return value.Integer(a / b), nil
}

func stdModInt(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("std_mod_int", 2, len(args))
	}
	a, err := asInteger("std_mod_int", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger("std_mod_int", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, &vtcerr.IntrinsicError{Name: "std_mod_int", Kind: vtcerr.DivByZero}
	}
	return value.Integer(a % b), nil
}

func stdIntToFloat(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_int_to_float", 1, len(args))
	}
	i, err := asInteger("std_int_to_float", args[0])
	if err != nil {
		return nil, err
	}
	return value.Float(float64(i)), nil
}

func stdFloatToInt(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_float_to_int", 1, len(args))
	}
	f, ok := args[0].(value.Float)
	if !ok {
		return nil, badArgument("std_float_to_int", "expected Float, got "+args[0].Kind().String())
	}
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) || float64(f) > math.MaxInt64 || float64(f) < math.MinInt64 {
		return nil, &vtcerr.IntrinsicError{Name: "std_float_to_int", Kind: vtcerr.Overflow}
	}
	return value.Integer(int64(f)), nil
}

// stdCompare builds a comparison handler: decide receives cmp (<0/0/>0 for
// the ordering of the two arguments) and eq (whether they are equal). Equality
// itself is always decided by value.Equal, so std_eq and the equality branch
// of std_le/std_ge can never diverge from it.
func stdCompare(name string, decide func(cmp int, eq bool) bool) Handler {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(name, 2, len(args))
		}
		a, b := args[0], args[1]

		if _, aNil := a.(value.Nil); aNil {
			return value.Boolean(decide(0, value.Equal(a, b))), nil
		}
		if _, bNil := b.(value.Nil); bNil {
			return value.Boolean(decide(0, false)), nil
		}

		if as, aok := a.(value.String); aok {
			bs, bok := b.(value.String)
			if !bok {
				return nil, badArgument(name, "mismatched types for comparison")
			}
			return value.Boolean(decide(strings.Compare(string(as), string(bs)), value.Equal(a, b))), nil
		}

		if ab, aok := a.(value.Boolean); aok {
			bb, bok := b.(value.Boolean)
			if !bok {
				return nil, badArgument(name, "mismatched types for comparison")
			}
			c := 0
			if ab != bb {
				if !ab {
					c = -1
				} else {
					c = 1
				}
			}
			return value.Boolean(decide(c, value.Equal(a, b))), nil
		}

		af, aerr := asFloatLike(name, a)
		bf, berr := asFloatLike(name, b)
		if aerr != nil || berr != nil {
			return nil, badArgument(name, "mismatched or non-numeric types for comparison")
		}
		if math.IsNaN(af) || math.IsNaN(bf) {
			return value.Boolean(false), nil // neither < nor > nor == holds
		}
		switch {
		case af < bf:
			return value.Boolean(decide(-1, false)), nil
		case af > bf:
			return value.Boolean(decide(1, false)), nil
		default:
			return value.Boolean(decide(0, value.Equal(a, b))), nil
		}
	}
}

func stdIf(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, arityError("std_if", 3, len(args))
	}
	cond, ok := args[0].(value.Boolean)
	if !ok {
		return nil, &vtcerr.TypeMismatch{Expected: "Boolean", Got: args[0].Kind().String()}
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func stdBitwiseNot(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_bitwise_not", 1, len(args))
	}
	a, err := asInteger("std_bitwise_not", args[0])
	if err != nil {
		return nil, err
	}
	return value.Integer(^a), nil
}

func stdConcat(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, arityError("std_concat", 1, len(args))
	}
	var b strings.Builder
	for _, a := range args {
		s, err := asString("std_concat", a)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return value.String(b.String()), nil
}

func stdToUppercase(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_to_uppercase", 1, len(args))
	}
	s, err := asString("std_to_uppercase", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(asciiUpper(s)), nil
}

func stdToLowercase(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_to_lowercase", 1, len(args))
	}
	s, err := asString("std_to_lowercase", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(asciiLower(s)), nil
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func stdSubstring(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, arityError("std_substring", 3, len(args))
	}
	s, err := asString("std_substring", args[0])
	if err != nil {
		return nil, err
	}
	start, err := asInteger("std_substring", args[1])
	if err != nil {
		return nil, err
	}
	end, err := asInteger("std_substring", args[2])
	if err != nil {
		return nil, err
	}
	n := int64(len(s))
	if start < 0 || end < 0 || start > n || end > n || start > end {
		return nil, badArgument("std_substring", "range out of bounds")
	}
	return value.String(s[start:end]), nil
}

func stdReplace(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, arityError("std_replace", 3, len(args))
	}
	haystack, err := asString("std_replace", args[0])
	if err != nil {
		return nil, err
	}
	needle, err := asString("std_replace", args[1])
	if err != nil {
		return nil, err
	}
	repl, err := asString("std_replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(haystack, needle, repl)), nil
}

func stdBase64Encode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_base64_encode", 1, len(args))
	}
	s, err := asString("std_base64_encode", args[0])
	if err != nil {
		return nil, err
	}
	return value.String(base64.StdEncoding.EncodeToString([]byte(s))), nil
}

func stdBase64Decode(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("std_base64_decode", 1, len(args))
	}
	s, err := asString("std_base64_decode", args[0])
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, badArgument("std_base64_decode", "invalid base64 input")
	}
	return value.String(decoded), nil
}

func stdHash(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("std_hash", 2, len(args))
	}
	data, err := asString("std_hash", args[0])
	if err != nil {
		return nil, err
	}
	algo, err := asString("std_hash", args[1])
	if err != nil {
		return nil, err
	}
	if algo != "sha256" {
		return nil, badArgument("std_hash", "unsupported algorithm "+algo)
	}
	sum := sha256.Sum256([]byte(data))
	return value.String(hex.EncodeToString(sum[:])), nil
}
