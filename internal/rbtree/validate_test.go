package rbtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkProperties verifies the Red-Black properties independently of Validate().
func checkProperties(t *testing.T, tree *Tree) {
	alloc := tree.storage()
	require.Equal(t, Black, alloc[sentinel].color)
	require.Equal(t, Black, alloc[tree.root].color)
	var walk func(n uint32, lo, hi *int) int
	walk = func(n uint32, lo, hi *int) int {
		if n == sentinel {
			return 1
		}
		key := alloc[n].key
		if lo != nil {
			require.True(t, key > *lo)
		}
		if hi != nil {
			require.True(t, key < *hi)
		}
		if alloc[n].color == Red {
			require.Equal(t, Black, alloc[alloc[n].left].color)
			require.Equal(t, Black, alloc[alloc[n].right].color)
		}
		left := walk(alloc[n].left, lo, &key)
		right := walk(alloc[n].right, &key, hi)
		require.Equal(t, left, right, "black-height at %d", key)
		if alloc[n].color == Black {
			left++
		}
		return left
	}
	walk(tree.root, nil, nil)
}

func TestValidateDrained(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		tree := New(false)
		for i := 0; i < 300; i++ {
			tree.Insert(r.Intn(1000) - 500)
			tree.RebalanceAll()
		}
		assert.Empty(t, tree.Validate())
		checkProperties(t, tree)
		keys := tree.Keys()
		for i := 1; i < len(keys); i++ {
			require.True(t, keys[i-1] < keys[i])
		}
		assert.True(t, tree.BlackHeight() > 0)
	}
}

func TestValidateBlackHeightReportedOnce(t *testing.T) {
	tree := newDrainedTree(false, 40, 20, 60, 10, 30, 50, 70)
	require.Empty(t, tree.Validate())
	// 40B (20B (10R, 30R), 60B (50R, 70R))
	tree.Recolor(10)
	violations := tree.Validate()
	require.Len(t, violations, 1)
	assert.Equal(t, BlackHeightMismatch, violations[0].Kind)
	assert.Equal(t, 20, violations[0].Key)
	assert.Equal(t, "Black-height mismatch at node 20.", violations[0].String())
}

func TestCheck(t *testing.T) {
	tree := newDrainedTree(true, 10, 20, 30)
	err := tree.Check()
	require.NotNil(t, err)
	assert.Equal(t, "1 Red-Black violation(s): Red node 20 has red right child 30.", err.Error())
	tree.SetColorOnly(false)
	tree.Clear()
	assert.Nil(t, tree.Check())
	assert.Equal(t, "ViolationKind(9)", ViolationKind(9).String())
	assert.Equal(t, "red-red", RedRed.String())
	assert.Equal(t, "black-height", BlackHeightMismatch.String())
	assert.Equal(t, "sentinel-black", SentinelNotBlack.String())
}
