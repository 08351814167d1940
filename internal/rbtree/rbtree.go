package rbtree

import (
	"fmt"

	"github.com/cyraxred/redblack/internal/core"
)

//
// Public definitions
//

// Color is the color tag of a tree node.
type Color bool

const (
	// Red nodes are the fresh ones; a red node may not have red children.
	Red Color = false
	// Black nodes define the black-height. The sentinel is always black.
	Black Color = true
)

// String returns "red" or "black".
func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "red"
}

// Mode selects the insertion rebalancing algorithm.
type Mode int

const (
	// FullMode restores all the Red-Black properties with rotations and recoloring.
	FullMode Mode = iota
	// ColorOnlyMode only recolors and gives up as soon as a rotation is required.
	// It does not guarantee the Red-Black properties.
	ColorOnlyMode
)

// String returns the name of the mode as it appears in the step log.
func (m Mode) String() string {
	switch m {
	case FullMode:
		return "FULL"
	case ColorOnlyMode:
		return "COLOR-ONLY"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Entry is a (key, color) pair produced by the traversals.
type Entry struct {
	Key   int
	Color Color
}

// String formats the entry as "(key,color)".
func (e Entry) String() string {
	return fmt.Sprintf("(%d,%s)", e.Key, e.Color)
}

// Tree is a red-black tree with deferred, caller-driven insertion fixup.
//
// Insert() places the new node and puts it into the pending queue;
// RebalanceStep() fixes one pending node at a time so that the intermediate
// states can be observed. Delete() is always rebalanced immediately.
// Every mutation appends a human readable description to the step log.
//
// Tree is not safe for concurrent use.
type Tree struct {
	root      uint32
	count     int
	mode      Mode
	pending   []uint32
	steps     []string
	allocator *Allocator
	logger    core.Logger
}

// New creates an empty tree. colorOnly selects ColorOnlyMode instead of FullMode.
func New(colorOnly bool) *Tree {
	tree := &Tree{allocator: NewAllocator(), root: sentinel}
	if colorOnly {
		tree.mode = ColorOnlyMode
	}
	return tree
}

// SetLogger mirrors the step log to the specified logger at the debug level.
func (tree *Tree) SetLogger(logger core.Logger) {
	tree.logger = logger
}

// Mode returns the current insertion rebalancing mode.
func (tree *Tree) Mode() Mode {
	return tree.mode
}

// ColorOnly returns true if the tree rebalances in ColorOnlyMode.
func (tree *Tree) ColorOnly() bool {
	return tree.mode == ColorOnlyMode
}

// SetMode switches the rebalancing algorithm. The change takes effect on the next
// RebalanceStep().
func (tree *Tree) SetMode(mode Mode) {
	tree.mode = mode
	tree.step("Switched to %s rebalancing mode.", mode)
}

// SetColorOnly is the boolean shortcut for SetMode().
func (tree *Tree) SetColorOnly(colorOnly bool) {
	if colorOnly {
		tree.SetMode(ColorOnlyMode)
	} else {
		tree.SetMode(FullMode)
	}
}

// Len returns the number of keys in the tree.
func (tree *Tree) Len() int {
	return tree.count
}

// Allocator returns the bound nodes allocator.
func (tree *Tree) Allocator() *Allocator {
	return tree.allocator
}

// Root returns the handle of the root node. It is nil if the tree is empty.
func (tree *Tree) Root() Node {
	return Node{tree, tree.root}
}

// Clone performs a deep copy of the tree including the pending queue.
// The step log of the clone is empty.
func (tree *Tree) Clone() *Tree {
	clone := &Tree{
		root:      tree.root,
		count:     tree.count,
		mode:      tree.mode,
		pending:   make([]uint32, len(tree.pending)),
		allocator: tree.allocator.Clone(),
		logger:    tree.logger,
	}
	copy(clone.pending, tree.pending)
	return clone
}

//
// Step log
//

// Steps returns a copy of the step log.
func (tree *Tree) Steps() []string {
	result := make([]string, len(tree.steps))
	copy(result, tree.steps)
	return result
}

// DrainSteps returns the step log and empties it.
func (tree *Tree) DrainSteps() []string {
	result := tree.steps
	tree.steps = nil
	return result
}

// ClearSteps empties the step log.
func (tree *Tree) ClearSteps() {
	tree.steps = nil
}

func (tree *Tree) step(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	tree.steps = append(tree.steps, msg)
	if tree.logger != nil {
		tree.logger.Debug(msg)
	}
}

//
// Pending queue
//

// PendingLen returns the number of inserted nodes which still wait for the fixup.
func (tree *Tree) PendingLen() int {
	return len(tree.pending)
}

// Pending returns the keys of the pending nodes, oldest first.
func (tree *Tree) Pending() []int {
	alloc := tree.storage()
	keys := make([]int, len(tree.pending))
	for i, n := range tree.pending {
		keys[i] = alloc[n].key
	}
	return keys
}

// RebalanceStep fixes the oldest pending node.
// Returns false if there was nothing to do.
func (tree *Tree) RebalanceStep() bool {
	if len(tree.pending) == 0 {
		tree.step("No pending nodes to rebalance.")
		return false
	}
	n := tree.pending[0]
	tree.pending[0] = sentinel
	tree.pending = tree.pending[1:]
	switch tree.mode {
	case ColorOnlyMode:
		tree.rebalanceColorOnly(n)
	default:
		tree.rebalanceFull(n)
	}
	return true
}

// RebalanceAll calls RebalanceStep() until the pending queue is empty.
// Returns the number of steps performed.
func (tree *Tree) RebalanceAll() int {
	steps := 0
	for len(tree.pending) > 0 {
		tree.RebalanceStep()
		steps++
	}
	return steps
}

func (tree *Tree) dropPending(n uint32) {
	for i, p := range tree.pending {
		if p == n {
			tree.pending = append(tree.pending[:i], tree.pending[i+1:]...)
			return
		}
	}
}

//
// Mutations
//

// Insert adds the key to the tree and schedules the fixup.
// If the key already exists, do nothing and return false.
func (tree *Tree) Insert(key int) bool {
	if tree.find(key) != sentinel {
		tree.step("Value %d already exists, skipping.", key)
		return false
	}
	n := tree.allocator.malloc(key)
	alloc := tree.storage()
	parent := sentinel
	for cur := tree.root; cur != sentinel; {
		parent = cur
		if key < alloc[cur].key {
			cur = alloc[cur].left
		} else {
			cur = alloc[cur].right
		}
	}
	alloc[n].parent = parent
	tree.count++
	if parent == sentinel {
		alloc[n].color = Black
		tree.root = n
		tree.step("Inserted node %d as root (black).", key)
		return true
	}
	if key < alloc[parent].key {
		alloc[parent].left = n
	} else {
		alloc[parent].right = n
	}
	tree.pending = append(tree.pending, n)
	tree.step("Inserted node %d (red).", key)
	return true
}

// Clear removes all the nodes and forgets the pending queue.
// The node handles obtained before become invalid.
func (tree *Tree) Clear() {
	tree.allocator.Reset()
	tree.root = sentinel
	tree.count = 0
	tree.pending = nil
	tree.step("Cleared the entire tree.")
}

// Recolor flips the color of the node with the given key, ignoring the
// Red-Black properties. Returns false if the key does not exist.
func (tree *Tree) Recolor(key int) bool {
	n := tree.find(key)
	if n == sentinel {
		tree.step("Value %d not found for recoloring.", key)
		return false
	}
	alloc := tree.storage()
	old := alloc[n].color
	alloc[n].color = !old
	tree.step("Toggled node %d from %s to %s.", key, old, alloc[n].color)
	return true
}

//
// Queries
//

// Edge is a (parent, child) link visited during Search().
type Edge struct {
	Parent, Child Node
}

// Search finds the node with the given key. The colors and the structure are
// not touched.
func (tree *Tree) Search(key int) (Node, bool) {
	n := tree.find(key)
	return Node{tree, n}, n != sentinel
}

// SearchPath works like Search() and additionally returns the links which were
// followed from the root, in order. If the key is absent, the path is nil.
func (tree *Tree) SearchPath(key int) (Node, []Edge, bool) {
	alloc := tree.storage()
	var path []Edge
	prev := sentinel
	for n := tree.root; n != sentinel; {
		if prev != sentinel {
			path = append(path, Edge{Node{tree, prev}, Node{tree, n}})
		}
		if key == alloc[n].key {
			return Node{tree, n}, path, true
		}
		prev = n
		if key < alloc[n].key {
			n = alloc[n].left
		} else {
			n = alloc[n].right
		}
	}
	return Node{tree, sentinel}, nil, false
}

// Contains checks whether the key exists in the tree.
func (tree *Tree) Contains(key int) bool {
	return tree.find(key) != sentinel
}

func (tree *Tree) find(key int) uint32 {
	alloc := tree.storage()
	n := tree.root
	for n != sentinel {
		if key == alloc[n].key {
			return n
		} else if key < alloc[n].key {
			n = alloc[n].left
		} else {
			n = alloc[n].right
		}
	}
	return sentinel
}

// Node is the read-only handle of a tree node.
//
// Handle invalidation rule: Delete() invalidates the handle of the deleted
// node, Clear() invalidates all the handles. Other operations keep the handles
// valid, though rotations change the relations.
type Node struct {
	tree *Tree
	node uint32
}

// Nil checks if the handle points to the sentinel.
func (n Node) Nil() bool {
	return n.node == sentinel
}

// Key returns the node's key. Panics on the sentinel.
func (n Node) Key() int {
	doAssert(!n.Nil())
	return n.tree.storage()[n.node].key
}

// Color returns the node's color. The sentinel is black.
func (n Node) Color() Color {
	return n.tree.storage()[n.node].color
}

// Parent returns the parent node handle.
func (n Node) Parent() Node {
	return Node{n.tree, n.tree.storage()[n.node].parent}
}

// Left returns the left child handle.
func (n Node) Left() Node {
	return Node{n.tree, n.tree.storage()[n.node].left}
}

// Right returns the right child handle.
func (n Node) Right() Node {
	return Node{n.tree, n.tree.storage()[n.node].right}
}

// Entry returns the (key, color) pair of the node.
func (n Node) Entry() Entry {
	return Entry{Key: n.Key(), Color: n.Color()}
}

func doAssert(b bool) {
	if !b {
		panic("rbtree internal assertion failed")
	}
}

type node struct {
	key                 int
	parent, left, right uint32
	color               Color
}

func (tree *Tree) storage() []node {
	return tree.allocator.storage
}

//
// Internal node attribute accessors
//

func isLeftChild(n uint32, alloc []node) bool {
	return n == alloc[alloc[n].parent].left
}

func isRightChild(n uint32, alloc []node) bool {
	return n == alloc[alloc[n].parent].right
}

// paint never touches the sentinel so its color stays black.
func paint(n uint32, c Color, alloc []node) {
	if n != sentinel {
		alloc[n].color = c
	}
}
