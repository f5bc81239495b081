package introspect

import "github.com/mohae/deepcopy"

// Clone returns a structural deep copy of v. Nested maps, slices and
// structs are duplicated; funcs and channels are shared with the original,
// so models are expected to be plain value-like data.
func Clone[T any](v T) T {
	cloned := deepcopy.Copy(v)
	if cloned == nil {
		var zero T
		return zero
	}
	return cloned.(T)
}
