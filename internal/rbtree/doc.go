/*
Package rbtree implements the red-black tree with observable rebalancing.

The nodes live in an arena (Allocator) and refer to each other by index; the
index 0 is the black sentinel which stands for every absent child and parent.

Insertion is split in two halves. Insert() performs the plain BST placement and
queues the new red node; RebalanceStep() pops the oldest queued node and runs
the fixup according to the current Mode:

	tree := rbtree.New(false)
	tree.Insert(10)
	tree.Insert(20)
	tree.Insert(30)
	for tree.PendingLen() > 0 {
		tree.RebalanceStep()
		fmt.Println(tree.Preorder(), tree.DrainSteps())
	}

ColorOnlyMode never rotates and therefore may leave the tree invalid, which
Validate() reports. Deletion always runs the complete fixup synchronously.
*/
package rbtree
