/*
Package redblack contains the Red-Black tree engine with observable, step by
step rebalancing.

Tree is the main object. Insert() places a red node and queues it; nothing is
rebalanced until the caller asks for it. Each RebalanceStep() call runs the
insertion fixup for the oldest queued node and appends the human readable
description of what happened to the step log:

	tree := redblack.New(false)
	for _, key := range []int{10, 20, 30} {
		tree.Insert(key)
	}
	for tree.RebalanceStep() {
		fmt.Println(tree.DrainSteps())
	}
	fmt.Println(tree.Preorder()) // [(20,black) (10,red) (30,red)]

There are two insertion fixup algorithms, selected with Tree.SetMode().
FullMode is the classic one with recoloring and rotations. ColorOnlyMode never
rotates and stops at the first black uncle, so it may leave the tree invalid;
Tree.Validate() lists the broken properties. Delete() always restores the
properties before it returns.

NewReport() takes the snapshot of a tree which can be serialized to YAML or
Protocol Buffers. ParseScript() and RunScript() drive a tree through a session
of operations described in YAML, the way cmd/redblack does.
*/
package redblack
