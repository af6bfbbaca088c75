package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	s := New[int]()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", 1)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	s.Set("a", 2)
	v, _ = s.Get("a")
	assert.Equal(t, 2, v, "set replaces")

	s.Set("b", 3)
	assert.Equal(t, 2, s.Len())

	seen := map[string]int{}
	s.ForEach(func(k string, v int) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[string]int{"a": 2, "b": 3}, seen)

	s.Delete("a")
	_, ok = s.Get("a")
	assert.False(t, ok)
	s.Delete("a") // deleting a missing key is a no-op
	assert.Equal(t, 1, s.Len())
}
