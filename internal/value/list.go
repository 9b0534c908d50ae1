package value

// List is a shared-ownership, ordered sequence of Values. Slicing produces a
// new List that borrows the same backing array under a different
// offset/length window, so a Reference plus a Range accessor never copies
// the underlying storage. Go's garbage collector frees the backing array
// once every List view referencing it has gone out of scope; no manual
// reference counting is needed.
type List struct {
	backing *[]Value
	offset  int
	length  int
}

// NewList copies items into a freshly allocated backing array and returns a
// List view over the whole of it.
func NewList(items []Value) List {
	backing := make([]Value, len(items))
	copy(backing, items)
	return List{backing: &backing, offset: 0, length: len(backing)}
}

// Len returns the number of elements visible through this view.
func (l List) Len() int {
	return l.length
}

// Kind implements Value.
func (List) Kind() Kind { return KList }

// Items returns the elements visible through this view, in order. The
// returned slice aliases the shared backing array and must not be mutated.
func (l List) Items() []Value {
	if l.backing == nil {
		return nil
	}
	return (*l.backing)[l.offset : l.offset+l.length]
}

// At returns the element at logical position i (0-based, within [0,Len())).
func (l List) At(i int) Value {
	return (*l.backing)[l.offset+i]
}

// View returns a new List sharing this List's backing array, covering the
// half-open range [start,end) of this view's own index space. Callers are
// responsible for clamping start/end to [0,Len()] beforehand.
func (l List) View(start, end int) List {
	if start >= end {
		empty := []Value{}
		return List{backing: &empty, offset: 0, length: 0}
	}
	return List{backing: l.backing, offset: l.offset + start, length: end - start}
}
