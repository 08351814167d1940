package rbtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatorSentinel(t *testing.T) {
	alloc := NewAllocator()
	assert.Equal(t, 1, alloc.Size())
	assert.Equal(t, 0, alloc.Used())
	assert.Equal(t, []node{{color: Black}}, alloc.storage)
	assert.PanicsWithValue(t, "the sentinel cannot be deallocated", func() { alloc.free(sentinel) })
}

func TestAllocatorMallocFree(t *testing.T) {
	alloc := NewAllocator()
	n1 := alloc.malloc(7)
	n2 := alloc.malloc(8)
	assert.Equal(t, uint32(1), n1)
	assert.Equal(t, uint32(2), n2)
	assert.Equal(t, node{key: 7, color: Red}, alloc.storage[n1])
	assert.Equal(t, 2, alloc.Used())
	alloc.free(n1)
	assert.Equal(t, 1, alloc.Used())
	assert.Equal(t, 3, alloc.Size())
	assert.Panics(t, func() { alloc.free(n1) })
	// the gap is reused
	n3 := alloc.malloc(9)
	assert.Equal(t, n1, n3)
	assert.Equal(t, node{key: 9, color: Red}, alloc.storage[n3])
	assert.Equal(t, 3, alloc.Size())
}

func TestAllocatorClone(t *testing.T) {
	alloc1 := NewAllocator()
	n := alloc1.malloc(7)
	alloc1.malloc(8)
	alloc1.free(n)
	alloc2 := alloc1.Clone()
	assert.Equal(t, alloc1.storage, alloc2.storage)
	assert.Equal(t, alloc1.gaps, alloc2.gaps)
	alloc2.malloc(10)
	assert.Equal(t, 1, alloc1.Used())
	assert.Equal(t, 2, alloc2.Used())
	assert.Equal(t, node{}, alloc1.storage[n])
}

func TestAllocatorReset(t *testing.T) {
	alloc := NewAllocator()
	for i := 0; i < 10; i++ {
		alloc.malloc(i)
	}
	assert.Equal(t, 10, alloc.Used())
	alloc.Reset()
	assert.Equal(t, 0, alloc.Used())
	assert.Equal(t, 1, alloc.Size())
	assert.Equal(t, node{color: Black}, alloc.storage[sentinel])
	assert.Equal(t, uint32(1), alloc.malloc(3))
}
