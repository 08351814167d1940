package rbtree

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ViolationKind enumerates the Red-Black properties checked by Validate().
type ViolationKind int

const (
	// RootNotBlack means that the root is red.
	RootNotBlack ViolationKind = iota
	// SentinelNotBlack means that the shared leaf is not black.
	SentinelNotBlack
	// RedRed means that a red node has a red child.
	RedRed
	// BlackHeightMismatch means that the paths from a node down to the leaves
	// contain different numbers of black nodes.
	BlackHeightMismatch
)

// String returns the short name of the property.
func (kind ViolationKind) String() string {
	switch kind {
	case RootNotBlack:
		return "root-black"
	case SentinelNotBlack:
		return "sentinel-black"
	case RedRed:
		return "red-red"
	case BlackHeightMismatch:
		return "black-height"
	}
	return fmt.Sprintf("ViolationKind(%d)", int(kind))
}

// Violation describes a broken Red-Black property.
type Violation struct {
	Kind ViolationKind
	// Key of the offending node. Undefined for SentinelNotBlack.
	Key int
	// Child is the key of the red child for RedRed.
	Child   int
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// Validate checks the Red-Black properties and returns the list of violations.
// An empty list means that the tree is a valid Red-Black tree.
// The check is meaningful only when the pending queue is empty.
func (tree *Tree) Validate() []Violation {
	alloc := tree.storage()
	var violations []Violation
	if tree.root != sentinel && alloc[tree.root].color != Black {
		violations = append(violations, Violation{
			Kind: RootNotBlack, Key: alloc[tree.root].key,
			Message: fmt.Sprintf("Root node %d is not black.", alloc[tree.root].key),
		})
	}
	if alloc[sentinel].color != Black {
		violations = append(violations, Violation{
			Kind: SentinelNotBlack, Message: "NIL sentinel is not black.",
		})
	}
	var checkRedChildren func(n uint32)
	checkRedChildren = func(n uint32) {
		if n == sentinel {
			return
		}
		if alloc[n].color == Red {
			for _, side := range [...]struct {
				name  string
				child uint32
			}{{"left", alloc[n].left}, {"right", alloc[n].right}} {
				if alloc[side.child].color == Red {
					violations = append(violations, Violation{
						Kind: RedRed, Key: alloc[n].key, Child: alloc[side.child].key,
						Message: fmt.Sprintf("Red node %d has red %s child %d.",
							alloc[n].key, side.name, alloc[side.child].key),
					})
				}
			}
		}
		checkRedChildren(alloc[n].left)
		checkRedChildren(alloc[n].right)
	}
	checkRedChildren(tree.root)

	// blackHeight counts the sentinel, returns -1 if the subtree is inconsistent
	var blackHeight func(n uint32) int
	blackHeight = func(n uint32) int {
		if n == sentinel {
			return 1
		}
		left := blackHeight(alloc[n].left)
		right := blackHeight(alloc[n].right)
		if left < 0 || right < 0 {
			return -1
		}
		if left != right {
			violations = append(violations, Violation{
				Kind: BlackHeightMismatch, Key: alloc[n].key,
				Message: fmt.Sprintf("Black-height mismatch at node %d.", alloc[n].key),
			})
			return -1
		}
		if alloc[n].color == Black {
			left++
		}
		return left
	}
	blackHeight(tree.root)
	return violations
}

// Check returns nil if Validate() is happy, otherwise an error listing all the
// violations.
func (tree *Tree) Check() error {
	violations := tree.Validate()
	if len(violations) == 0 {
		return nil
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return errors.Errorf("%d Red-Black violation(s): %s", len(violations), strings.Join(msgs, " "))
}

// BlackHeight returns the black-height of the root, excluding the root itself
// and counting the sentinel, or -1 if it is not uniform.
func (tree *Tree) BlackHeight() int {
	alloc := tree.storage()
	var height func(n uint32) int
	height = func(n uint32) int {
		if n == sentinel {
			return 1
		}
		left, right := height(alloc[n].left), height(alloc[n].right)
		if left < 0 || left != right {
			return -1
		}
		if alloc[n].color == Black {
			left++
		}
		return left
	}
	if tree.root == sentinel {
		return 0
	}
	h := height(alloc[tree.root].left)
	if h < 0 || h != height(alloc[tree.root].right) {
		return -1
	}
	return h
}
