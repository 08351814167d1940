package rbtree

// rebalanceFull is the classic insertion fixup started from z.
// z may have been painted black as an uncle since it was queued, then there is
// nothing to fix at z.
func (tree *Tree) rebalanceFull(z uint32) {
	alloc := tree.storage()
	for alloc[z].color == Red && alloc[alloc[z].parent].color == Red {
		parent := alloc[z].parent
		grandparent := alloc[parent].parent
		if grandparent == sentinel {
			break
		}
		parentIsLeft := parent == alloc[grandparent].left
		var uncle uint32
		if parentIsLeft {
			uncle = alloc[grandparent].right
		} else {
			uncle = alloc[grandparent].left
		}

		// uncle is red: push the violation up
		if alloc[uncle].color == Red {
			tree.step("Recoloring parent, uncle, and grandparent.")
			alloc[parent].color = Black
			paint(uncle, Black, alloc)
			alloc[grandparent].color = Red
			z = grandparent
			continue
		}

		// uncle is black, z is an inner child: make it the outer one
		if parentIsLeft && isRightChild(z, alloc) {
			z = parent
			tree.rotateLeft(z)
		} else if !parentIsLeft && isLeftChild(z, alloc) {
			z = parent
			tree.rotateRight(z)
		}

		// uncle is black, z is an outer child
		alloc[alloc[z].parent].color = Black
		alloc[grandparent].color = Red
		if parentIsLeft {
			tree.rotateRight(grandparent)
		} else {
			tree.rotateLeft(grandparent)
		}
		break
	}
	paint(tree.root, Black, alloc)
}

// rebalanceColorOnly walks up like rebalanceFull() but never rotates.
// It stops at the first black uncle, leaving the violation in place.
func (tree *Tree) rebalanceColorOnly(z uint32) {
	alloc := tree.storage()
	for z != tree.root && alloc[alloc[z].parent].color == Red {
		parent := alloc[z].parent
		grandparent := alloc[parent].parent
		if grandparent == sentinel {
			break
		}
		uncle := alloc[grandparent].left
		if parent == uncle {
			uncle = alloc[grandparent].right
		}
		if alloc[uncle].color == Black {
			tree.step("Parent red, uncle black -> skipping rotation (color-only).")
			break
		}
		tree.step("Recoloring parent, uncle, and grandparent (color-only).")
		alloc[parent].color = Black
		alloc[uncle].color = Black
		alloc[grandparent].color = Red
		z = grandparent
	}
	paint(tree.root, Black, alloc)
}

/*
    X		     Y
  A   Y	    =>     X   C
     B C 	  A B
*/
func (tree *Tree) rotateLeft(x uint32) {
	alloc := tree.storage()
	y := alloc[x].right
	doAssert(y != sentinel)
	alloc[x].right = alloc[y].left
	if alloc[y].left != sentinel {
		alloc[alloc[y].left].parent = x
	}
	alloc[y].parent = alloc[x].parent
	if alloc[x].parent == sentinel {
		tree.root = y
	} else if isLeftChild(x, alloc) {
		alloc[alloc[x].parent].left = y
	} else {
		alloc[alloc[x].parent].right = y
	}
	alloc[y].left = x
	alloc[x].parent = y
	tree.step("Left rotation at node %d.", alloc[x].key)
}

/*
     Y           X
   X   C  =>   A   Y
  A B             B C
*/
func (tree *Tree) rotateRight(y uint32) {
	alloc := tree.storage()
	x := alloc[y].left
	doAssert(x != sentinel)

	// Move "B"
	alloc[y].left = alloc[x].right
	if alloc[x].right != sentinel {
		alloc[alloc[x].right].parent = y
	}

	alloc[x].parent = alloc[y].parent
	if alloc[y].parent == sentinel {
		tree.root = x
	} else if isLeftChild(y, alloc) {
		alloc[alloc[y].parent].left = x
	} else {
		alloc[alloc[y].parent].right = x
	}
	alloc[x].right = y
	alloc[y].parent = x
	tree.step("Right rotation at node %d.", alloc[y].key)
}
