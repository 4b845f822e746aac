package util

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatIter(t *testing.T) {
	joined := ConcatIter(slices.Values([]int{1, 2}), SingleIter(3), slices.Values([]int{}))
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(joined))

	var pulled []int
	for v := range ConcatIter(slices.Values([]int{1, 2}), slices.Values([]int{3})) {
		pulled = append(pulled, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, pulled)
}
