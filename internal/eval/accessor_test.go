package eval

import (
	"testing"

	"github.com/vtcfg/vtc/internal/value"
	"github.com/vtcfg/vtc/internal/vtcerr"
)

func TestApplyAccessorIndexNegative(t *testing.T) {
	l := value.NewList([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	v, err := ApplyAccessor(l, value.Accessor{Kind: value.AccIndex, Index: -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != value.Integer(3) {
		t.Errorf("got %v", v)
	}
}

func TestApplyAccessorIndexOutOfBounds(t *testing.T) {
	l := value.NewList([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	_, err := ApplyAccessor(l, value.Accessor{Kind: value.AccIndex, Index: -4})
	if _, ok := err.(*vtcerr.BadAccessor); !ok {
		t.Errorf("expected *vtcerr.BadAccessor, got %T: %v", err, err)
	}
}

func TestApplyAccessorRangeEmptyWhenStartPastEnd(t *testing.T) {
	l := value.NewList([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)})
	v, err := ApplyAccessor(l, value.Accessor{Kind: value.AccRange, HasStart: true, Start: 5, HasEnd: true, End: 2})
	if err != nil {
		t.Fatalf("expected a clamped empty range, not an error: %v", err)
	}
	got, ok := v.(value.List)
	if !ok || got.Len() != 0 {
		t.Errorf("expected an empty list, got %v", v)
	}
}

func TestApplyAccessorRangeOpenBounds(t *testing.T) {
	l := value.NewList([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3), value.Integer(4)})

	v, err := ApplyAccessor(l, value.Accessor{Kind: value.AccRange, HasEnd: true, End: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(value.List); got.Len() != 2 || got.At(0) != value.Integer(1) {
		t.Errorf("got %v", v)
	}

	v, err = ApplyAccessor(l, value.Accessor{Kind: value.AccRange, HasStart: true, Start: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(value.List); got.Len() != 2 || got.At(0) != value.Integer(3) {
		t.Errorf("got %v", v)
	}
}

func TestApplyAccessorStringIsByteBased(t *testing.T) {
	// A multi-byte UTF-8 character's accessor addresses one byte, not one
	// Unicode scalar.
	s := value.String("aéb") // 'a', U+00E9 (2 bytes), 'b' -> 4 bytes total
	v, err := ApplyAccessor(s, value.Accessor{Kind: value.AccIndex, Index: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.(value.String)) != 1 {
		t.Errorf("expected a single byte, got %q", v)
	}
}

func TestApplyAccessorOnScalarIsBadAccessor(t *testing.T) {
	_, err := ApplyAccessor(value.Integer(1), value.Accessor{Kind: value.AccIndex, Index: 0})
	if _, ok := err.(*vtcerr.BadAccessor); !ok {
		t.Errorf("expected *vtcerr.BadAccessor, got %T: %v", err, err)
	}
}
