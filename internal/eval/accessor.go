package eval

import (
	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

// ApplyAccessor applies a single accessor to an already-resolved value,
// exported for the query layer's GetValue.
func ApplyAccessor(v value.Value, acc value.Accessor) (value.Value, error) {
	return applyAccessor(v, acc)
}

func applyAccessors(v value.Value, accessors []value.Accessor) (value.Value, error) {
	for _, acc := range accessors {
		var err error
		v, err = applyAccessor(v, acc)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func applyAccessor(v value.Value, acc value.Accessor) (value.Value, error) {
	switch t := v.(type) {
	case value.List:
		return applyListAccessor(t, acc)
	case value.String:
		return applyStringAccessor(t, acc)
	default:
		return nil, &vtcerr.BadAccessor{Detail: "accessor applied to " + v.Kind().String()}
	}
}

// resolveIndex normalizes a possibly-negative index against length and
// bounds-checks it.
func resolveIndex(i int64, length int) (int, error) {
	n := int64(length)
	idx := i
	if idx < 0 {
		idx = n + idx
	}
	if idx < 0 || idx >= n {
		return 0, &vtcerr.BadAccessor{Detail: "index out of bounds"}
	}
	return int(idx), nil
}

// resolveRange normalizes a half-open range's optional endpoints against
// length, wrapping negatives and clamping to [0,length]. If start>end after
// normalization the result is an empty (not erroring) range.
func resolveRange(acc value.Accessor, length int) (start, end int) {
	n := int64(length)

	s := int64(0)
	if acc.HasStart {
		s = acc.Start
		if s < 0 {
			s += n
		}
	}
	e := n
	if acc.HasEnd {
		e = acc.End
		if e < 0 {
			e += n
		}
	}

	if s < 0 {
		s = 0
	}
	if s > n {
		s = n
	}
	if e < 0 {
		e = 0
	}
	if e > n {
		e = n
	}
	if s > e {
		s = e
	}
	return int(s), int(e)
}

func applyListAccessor(l value.List, acc value.Accessor) (value.Value, error) {
	switch acc.Kind {
	case value.AccIndex:
		idx, err := resolveIndex(acc.Index, l.Len())
		if err != nil {
			return nil, err
		}
		return l.At(idx), nil
	case value.AccRange:
		start, end := resolveRange(acc, l.Len())
		return l.View(start, end), nil
	}
	return nil, &vtcerr.BadAccessor{Detail: "unknown accessor kind"}
}

func applyStringAccessor(s value.String, acc value.Accessor) (value.Value, error) {
	b := []byte(s)
	switch acc.Kind {
	case value.AccIndex:
		idx, err := resolveIndex(acc.Index, len(b))
		if err != nil {
			return nil, err
		}
		return value.String(b[idx : idx+1]), nil
	case value.AccRange:
		start, end := resolveRange(acc, len(b))
		return value.String(b[start:end]), nil
	}
	return nil, &vtcerr.BadAccessor{Detail: "unknown accessor kind"}
}
