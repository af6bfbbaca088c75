package feature

import "fmt"

// Key names a feature kind and pins its implementation type. Two keys are
// the same iff their names are equal; the type parameter exists purely so
// lookups come back typed.
type Key[T any] struct {
	name string
}

// NewKey returns a key for the feature kind called name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's unique name.
func (k Key[T]) Name() string { return k.name }

func (k Key[T]) String() string { return k.name }

// TypeMismatchError reports that a key resolved to an implementation of an
// unexpected dynamic type. This means the same key name was reused for two
// incompatible features.
type TypeMismatchError struct {
	Key  string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("feature %q is installed as %s, not %s", e.Key, e.Got, e.Want)
}
