package hset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// modHasher sends every int to one of two buckets, so that most elements collide
type modHasher struct{}

func (modHasher) Hash(i int) uint32   { return uint32(i % 2) }
func (modHasher) Equal(a, b int) bool { return a == b }

func TestHSet(t *testing.T) {
	s := New[int](modHasher{}, 1, 2, 3)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(5))

	assert.False(t, s.Add(1, 3))
	assert.True(t, s.Add(3, 5))
	assert.Equal(t, 4, s.Len())

	s.Remove(1, 7)
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(5))

	all := slices.Sorted(s.All())
	assert.Equal(t, []int{2, 3, 5}, all)
}

func TestHSetCopiesShareElements(t *testing.T) {
	s := Empty[int](modHasher{})
	alias := s
	alias.Add(4)
	assert.True(t, s.Contains(4))
	assert.Equal(t, 1, s.Len())
}
