package redblack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade(t *testing.T) {
	tree := New(false)
	for _, key := range []int{10, 20, 30} {
		tree.Insert(key)
	}
	steps := 0
	for tree.RebalanceStep() {
		steps++
	}
	assert.Equal(t, 2, steps)
	assert.Equal(t, []Entry{{Key: 20, Color: Black}, {Key: 10, Color: Red}, {Key: 30, Color: Red}},
		tree.Preorder())
	assert.Equal(t, FullMode, tree.Mode())
	assert.Empty(t, tree.Validate())
	rep := NewReport(tree)
	assert.True(t, rep.Valid())
	assert.Equal(t, 3, rep.Size)
}

func TestFacadeColorOnly(t *testing.T) {
	tree := New(true)
	assert.Equal(t, ColorOnlyMode, tree.Mode())
	session, err := ParseScript([]byte("operations:\n  - fill 10 20 30\n  - check\n"))
	require.Nil(t, err)
	results, err := RunScript(tree, session, NewLogger(false))
	require.Nil(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"RB Check Failed: Red node 20 has red right child 30."}, results[1].Output)
	violations := tree.Validate()
	require.Len(t, violations, 1)
	assert.Equal(t, RedRed, violations[0].Kind)
	assert.Equal(t, "inorder", InOrder.String())
	assert.Equal(t, "preorder", PreOrder.String())
	assert.Equal(t, "postorder", PostOrder.String())
}
