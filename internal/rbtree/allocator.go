package rbtree

import "math"

// sentinel is the index of the shared black leaf. It is reserved in every
// allocator and is never handed out by malloc().
const sentinel uint32 = 0

const maxNodes = math.MaxUint32

// Allocator is the arena which owns the nodes of a single Tree.
// Nodes reference each other by their index in the arena, the index 0 is the
// sentinel.
type Allocator struct {
	storage []node
	gaps    map[uint32]bool
}

// NewAllocator creates a new allocator for Tree's nodes. The sentinel slot is
// created immediately.
func NewAllocator() *Allocator {
	return &Allocator{
		storage: []node{{color: Black}},
		gaps:    map[uint32]bool{},
	}
}

// Size returns the currently allocated size, including the sentinel and the
// freed slots.
func (allocator Allocator) Size() int {
	return len(allocator.storage)
}

// Used returns the number of live nodes contained in the allocator, excluding
// the sentinel.
func (allocator Allocator) Used() int {
	return len(allocator.storage) - len(allocator.gaps) - 1
}

// Clone copies an existing allocator.
func (allocator Allocator) Clone() *Allocator {
	newAllocator := &Allocator{
		storage: make([]node, len(allocator.storage), cap(allocator.storage)),
		gaps:    map[uint32]bool{},
	}
	copy(newAllocator.storage, allocator.storage)
	for key, val := range allocator.gaps {
		newAllocator.gaps[key] = val
	}
	return newAllocator
}

// Reset frees every node at once. The sentinel survives.
func (allocator *Allocator) Reset() {
	allocator.storage = allocator.storage[:1]
	allocator.storage[sentinel] = node{color: Black}
	allocator.gaps = map[uint32]bool{}
}

// malloc returns a fresh red node with all the relations pointing to the sentinel.
func (allocator *Allocator) malloc(key int) uint32 {
	var n uint32
	if len(allocator.gaps) > 0 {
		for n = range allocator.gaps {
			break
		}
		delete(allocator.gaps, n)
	} else {
		if uint64(len(allocator.storage)) >= maxNodes {
			panic("the size of the node allocator has reached the maximum value for uint32")
		}
		n = uint32(len(allocator.storage))
		allocator.storage = append(allocator.storage, node{})
	}
	allocator.storage[n] = node{key: key, color: Red}
	return n
}

func (allocator *Allocator) free(n uint32) {
	if n == sentinel {
		panic("the sentinel cannot be deallocated")
	}
	_, exists := allocator.gaps[n]
	doAssert(!exists)
	allocator.storage[n] = node{}
	allocator.gaps[n] = true
}
