package feature

import (
	"context"
	"errors"
	"fmt"

	"github.com/casualjim/relay/internal/registry"
)

// Closer is implemented by feature implementations holding resources that
// must be released on uninstall.
type Closer interface {
	Close(ctx context.Context) error
}

// Flusher is implemented by feature implementations buffering output (a
// message exporter, a span buffer) that should be drained on uninstall.
type Flusher interface {
	Flush(ctx context.Context) error
}

type entry struct {
	config any
	impl   any
}

// Storage maps feature key names to their installed configuration and
// implementation. It owns the entries exclusively; nothing else holds a
// strong reference past a single dispatch.
type Storage struct {
	entries registry.Store[entry]
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{entries: registry.New[entry]()}
}

// Install inserts or replaces the entry for key. Replacing an existing
// entry is deliberate and silent. The config is stored untyped; only the
// implementation type is pinned by the key.
func Install[T any](s *Storage, key Key[T], config any, impl T) {
	s.entries.Set(key.Name(), entry{config: config, impl: impl})
}

// Resolve returns the implementation installed under key. The boolean is
// false when nothing is installed. An entry of the wrong dynamic type
// yields a TypeMismatchError.
func Resolve[T any](s *Storage, key Key[T]) (T, bool, error) {
	var zero T
	e, ok := s.entries.Get(key.Name())
	if !ok {
		return zero, false, nil
	}
	impl, ok := e.impl.(T)
	if !ok {
		return zero, false, &TypeMismatchError{
			Key:  key.Name(),
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", e.impl),
		}
	}
	return impl, true, nil
}

// Config returns the configuration stored for key, untyped. The boolean is
// false when nothing is installed.
func (s *Storage) Config(name string) (any, bool) {
	e, ok := s.entries.Get(name)
	if !ok {
		return nil, false
	}
	return e.config, true
}

// Installed returns the raw implementation stored under name. Handler
// wrappers use it for the identity check that disables stale handlers.
func (s *Storage) Installed(name string) (any, bool) {
	e, ok := s.entries.Get(name)
	if !ok {
		return nil, false
	}
	return e.impl, true
}

// Uninstall removes the entry for name, draining and closing the
// implementation when it exposes Flusher or Closer. Unknown names are a
// no-op.
func (s *Storage) Uninstall(ctx context.Context, name string) error {
	e, ok := s.entries.Get(name)
	if !ok {
		return nil
	}
	s.entries.Delete(name)
	return cleanup(ctx, e.impl)
}

// Close drains and closes every installed feature and empties the storage.
func (s *Storage) Close(ctx context.Context) error {
	var names []string
	s.entries.ForEach(func(name string, _ entry) bool {
		names = append(names, name)
		return true
	})

	var errs []error
	for _, name := range names {
		if err := s.Uninstall(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("uninstall %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of installed features.
func (s *Storage) Len() int { return s.entries.Len() }

func cleanup(ctx context.Context, impl any) error {
	var errs []error
	if f, ok := impl.(Flusher); ok {
		errs = append(errs, f.Flush(ctx))
	}
	if c, ok := impl.(Closer); ok {
		errs = append(errs, c.Close(ctx))
	}
	return errors.Join(errs...)
}
