package rbtree

import "fmt"

// Order is the depth-first traversal order.
type Order int

const (
	// InOrder visits left subtree, node, right subtree. The keys come sorted.
	InOrder Order = iota
	// PreOrder visits node, left subtree, right subtree.
	PreOrder
	// PostOrder visits left subtree, right subtree, node.
	PostOrder
)

// String returns the lowercase name of the order.
func (o Order) String() string {
	switch o {
	case InOrder:
		return "inorder"
	case PreOrder:
		return "preorder"
	case PostOrder:
		return "postorder"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Walk calls fn for every real node in the requested order until fn returns false.
func (tree *Tree) Walk(order Order, fn func(Entry) bool) {
	tree.walk(tree.root, order, tree.storage(), fn)
}

func (tree *Tree) walk(n uint32, order Order, alloc []node, fn func(Entry) bool) bool {
	if n == sentinel {
		return true
	}
	entry := Entry{Key: alloc[n].key, Color: alloc[n].color}
	if order == PreOrder && !fn(entry) {
		return false
	}
	if !tree.walk(alloc[n].left, order, alloc, fn) {
		return false
	}
	if order == InOrder && !fn(entry) {
		return false
	}
	if !tree.walk(alloc[n].right, order, alloc, fn) {
		return false
	}
	return order != PostOrder || fn(entry)
}

// Traverse collects all the entries in the requested order.
func (tree *Tree) Traverse(order Order) []Entry {
	result := make([]Entry, 0, tree.count)
	tree.Walk(order, func(e Entry) bool {
		result = append(result, e)
		return true
	})
	return result
}

// Inorder returns the (key, color) pairs sorted by key.
func (tree *Tree) Inorder() []Entry {
	return tree.Traverse(InOrder)
}

// Preorder returns the (key, color) pairs in the node, left, right order.
func (tree *Tree) Preorder() []Entry {
	return tree.Traverse(PreOrder)
}

// Postorder returns the (key, color) pairs in the left, right, node order.
func (tree *Tree) Postorder() []Entry {
	return tree.Traverse(PostOrder)
}

// Keys returns the sorted keys.
func (tree *Tree) Keys() []int {
	keys := make([]int, 0, tree.count)
	tree.Walk(InOrder, func(e Entry) bool {
		keys = append(keys, e.Key)
		return true
	})
	return keys
}
