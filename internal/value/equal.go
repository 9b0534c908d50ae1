package value

// Equal is the shared equality primitive that intrinsic.stdCompare
// delegates to for std_eq and the equality branch of std_le/std_ge, with
// numeric cross-type promotion. NaN never equals itself, per IEEE-754; Nil
// equals only Nil.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Float:
			return av == bv
		case Integer:
			return av == Float(bv)
		}
		return false
	case List:
		bv, ok := b.(List)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !Equal(av.At(i), bv.At(i)) {
				return false
			}
		}
		return true
	}
	return false
}
