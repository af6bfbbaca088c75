// Package registry provides the lock-free keyed store underneath feature
// storage. It only covers single-key operations; compound invariants across
// several structures are the caller's to guard.
package registry

import "github.com/alphadose/haxmap"

// Store is a concurrent map from string keys to values of type T.
type Store[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	// ForEach visits entries until fn returns false. Visit order is
	// unspecified.
	ForEach(fn func(key string, value T) bool)
	Len() int
}

type store[T any] struct {
	values *haxmap.Map[string, T]
}

// New returns an empty Store.
func New[T any]() Store[T] {
	return &store[T]{values: haxmap.New[string, T]()}
}

func (s *store[T]) Get(key string) (T, bool) {
	return s.values.Get(key)
}

func (s *store[T]) Set(key string, value T) {
	s.values.Set(key, value)
}

func (s *store[T]) Delete(key string) {
	s.values.Del(key)
}

func (s *store[T]) ForEach(fn func(key string, value T) bool) {
	s.values.ForEach(fn)
}

func (s *store[T]) Len() int {
	return int(s.values.Len())
}
