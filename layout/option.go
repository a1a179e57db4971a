package layout

// opt holds a constraint that may be left unset, so defaults can be layered
// without clobbering explicit values.
type opt[T any] struct {
	v  T
	ok bool
}

func some[T any](v T) opt[T] { return opt[T]{v: v, ok: true} }

// or returns the value, or def when unset.
func (o opt[T]) or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// merge takes other's value if it is set.
func (o *opt[T]) merge(other opt[T]) {
	if other.ok {
		*o = other
	}
}
