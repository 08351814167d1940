package rbtree

// Delete removes the key from the tree and restores the Red-Black properties
// before returning. Returns false if the key was not found.
func (tree *Tree) Delete(key int) bool {
	n := tree.find(key)
	if n == sentinel {
		tree.step("Value %d not found for deletion.", key)
		return false
	}
	tree.doDelete(n)
	return true
}

// doDelete unlinks z. If z has two children, its in-order successor y is moved
// into z's place and takes over z's color.
//
// x is the node which took the place of the removed one. It may be the
// sentinel, so its parent is tracked in xParent instead of being written
// into the sentinel.
func (tree *Tree) doDelete(z uint32) {
	alloc := tree.storage()
	key := alloc[z].key
	originalColor := alloc[z].color
	var x, xParent uint32
	if alloc[z].left == sentinel {
		x = alloc[z].right
		xParent = alloc[z].parent
		tree.transplant(z, x)
	} else if alloc[z].right == sentinel {
		x = alloc[z].left
		xParent = alloc[z].parent
		tree.transplant(z, x)
	} else {
		y := minimum(alloc[z].right, alloc)
		originalColor = alloc[y].color
		x = alloc[y].right
		if alloc[y].parent == z {
			xParent = y
		} else {
			xParent = alloc[y].parent
			tree.transplant(y, x)
			alloc[y].right = alloc[z].right
			alloc[alloc[y].right].parent = y
		}
		tree.transplant(z, y)
		alloc[y].left = alloc[z].left
		alloc[alloc[y].left].parent = y
		alloc[y].color = alloc[z].color
	}
	tree.dropPending(z)
	tree.allocator.free(z)
	tree.count--
	tree.step("Deleted node %d.", key)
	if originalColor == Black {
		tree.deleteFixup(x, xParent)
	}
}

// transplant replaces the subtree rooted at u with the subtree rooted at v.
func (tree *Tree) transplant(u, v uint32) {
	alloc := tree.storage()
	parent := alloc[u].parent
	if parent == sentinel {
		tree.root = v
	} else if u == alloc[parent].left {
		alloc[parent].left = v
	} else {
		alloc[parent].right = v
	}
	if v != sentinel {
		alloc[v].parent = parent
	}
}

func minimum(n uint32, alloc []node) uint32 {
	for alloc[n].left != sentinel {
		n = alloc[n].left
	}
	return n
}

// deleteFixup carries the extra black of x up the tree until it can be absorbed.
func (tree *Tree) deleteFixup(x, parent uint32) {
	alloc := tree.storage()
	for x != tree.root && alloc[x].color == Black {
		if parent == sentinel {
			break
		}
		if x == alloc[parent].left {
			sibling := alloc[parent].right
			// case 1: red sibling
			if alloc[sibling].color == Red {
				alloc[sibling].color = Black
				alloc[parent].color = Red
				tree.rotateLeft(parent)
				sibling = alloc[parent].right
			}
			// case 2: black sibling with black children
			if alloc[alloc[sibling].left].color == Black && alloc[alloc[sibling].right].color == Black {
				paint(sibling, Red, alloc)
				x = parent
				parent = alloc[x].parent
				continue
			}
			// case 3: the near child is red
			if alloc[alloc[sibling].right].color == Black {
				alloc[alloc[sibling].left].color = Black
				alloc[sibling].color = Red
				tree.rotateRight(sibling)
				sibling = alloc[parent].right
			}
			// case 4: the far child is red
			alloc[sibling].color = alloc[parent].color
			alloc[parent].color = Black
			alloc[alloc[sibling].right].color = Black
			tree.rotateLeft(parent)
			x = tree.root
		} else {
			sibling := alloc[parent].left
			if alloc[sibling].color == Red {
				alloc[sibling].color = Black
				alloc[parent].color = Red
				tree.rotateRight(parent)
				sibling = alloc[parent].left
			}
			if alloc[alloc[sibling].right].color == Black && alloc[alloc[sibling].left].color == Black {
				paint(sibling, Red, alloc)
				x = parent
				parent = alloc[x].parent
				continue
			}
			if alloc[alloc[sibling].left].color == Black {
				alloc[alloc[sibling].right].color = Black
				alloc[sibling].color = Red
				tree.rotateLeft(sibling)
				sibling = alloc[parent].left
			}
			alloc[sibling].color = alloc[parent].color
			alloc[parent].color = Black
			alloc[alloc[sibling].left].color = Black
			tree.rotateRight(parent)
			x = tree.root
		}
	}
	paint(x, Black, alloc)
}
