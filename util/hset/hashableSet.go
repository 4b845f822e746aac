// Package hset implements a set of hashable elements, JVM style
package hset

import (
	"iter"

	"github.com/benbjohnson/immutable"
)

// HSet is a shallow wrapper around a map of buckets.
// Elements with colliding hashes are told apart with the Equal of the hasher.
// Use immutable.Set if you are not going to be modifying this
// as it is more copy efficient
type HSet[A any] struct {
	hasher     immutable.Hasher[A]
	underlying map[uint32][]A
	len        *int
}

func Empty[A any](hasher immutable.Hasher[A]) HSet[A] {
	return HSet[A]{
		hasher:     hasher,
		underlying: make(map[uint32][]A),
		len:        new(int),
	}
}

func New[A any](hasher immutable.Hasher[A], elems ...A) HSet[A] {
	n := Empty(hasher)
	n.Add(elems...)
	return n
}

// Add inserts elems, and reports whether at least one of them was not present yet
func (s HSet[A]) Add(elems ...A) bool {
	added := false
	for _, elem := range elems {
		if s.Contains(elem) {
			continue
		}
		key := s.hasher.Hash(elem)
		s.underlying[key] = append(s.underlying[key], elem)
		*s.len++
		added = true
	}
	return added
}

func (s HSet[A]) Remove(elems ...A) {
	for _, elem := range elems {
		key := s.hasher.Hash(elem)
		bucket := s.underlying[key]
		for i, candidate := range bucket {
			if s.hasher.Equal(candidate, elem) {
				s.underlying[key] = append(bucket[:i:i], bucket[i+1:]...)
				*s.len--
				break
			}
		}
		if len(s.underlying[key]) == 0 {
			delete(s.underlying, key)
		}
	}
}

func (s HSet[A]) Contains(elem A) bool {
	for _, candidate := range s.underlying[s.hasher.Hash(elem)] {
		if s.hasher.Equal(candidate, elem) {
			return true
		}
	}
	return false
}

func (s HSet[A]) Len() int {
	return *s.len
}

func (s HSet[A]) All() iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, bucket := range s.underlying {
			for _, elem := range bucket {
				if !yield(elem) {
					return
				}
			}
		}
	}
}
