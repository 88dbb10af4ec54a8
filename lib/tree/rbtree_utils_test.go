package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Hand-linked broken trees, bypassing Insert on purpose.

func brokenTree(root *rbNode[uint64, uint64], count int64) *rbTree[uint64, uint64] {
	tree := NewRBTree[uint64, uint64]().(*rbTree[uint64, uint64])
	tree.root = root
	tree.count = count
	return tree
}

func TestRedViolationValidate_RedRedEdge(t *testing.T) {
	child := &rbNode[uint64, uint64]{key: 1, color: Red}
	root := &rbNode[uint64, uint64]{key: 2, color: Black}
	mid := &rbNode[uint64, uint64]{key: 3, color: Red, parent: root, right: child}
	child.parent = mid
	root.right = mid

	tree := brokenTree(root, 3)
	require.Error(t, RedViolationValidate[uint64, uint64](tree))
	require.Error(t, InvariantValidate[uint64, uint64](tree))
}

func TestRedViolationValidate_RedRoot(t *testing.T) {
	tree := brokenTree(&rbNode[uint64, uint64]{key: 1, color: Red}, 1)
	require.Error(t, RedViolationValidate[uint64, uint64](tree))
}

func TestBlackViolationValidate_UnevenBlackDepth(t *testing.T) {
	// Left path carries one extra black node.
	ll := &rbNode[uint64, uint64]{key: 1, color: Black}
	l := &rbNode[uint64, uint64]{key: 2, color: Black, left: ll}
	ll.parent = l
	r := &rbNode[uint64, uint64]{key: 9, color: Black}
	root := &rbNode[uint64, uint64]{key: 5, color: Black, left: l, right: r}
	l.parent, r.parent = root, root

	tree := brokenTree(root, 4)
	require.Error(t, BlackViolationValidate[uint64, uint64](tree))
	require.Error(t, InvariantValidate[uint64, uint64](tree))
}

func TestOrderViolationValidate_SwappedKeys(t *testing.T) {
	l := &rbNode[uint64, uint64]{key: 9, color: Red}
	r := &rbNode[uint64, uint64]{key: 1, color: Red}
	root := &rbNode[uint64, uint64]{key: 5, color: Black, left: l, right: r}
	l.parent, r.parent = root, root

	tree := brokenTree(root, 3)
	require.Error(t, OrderViolationValidate[uint64, uint64](tree))
}

func TestInvariantValidate_HealthyTree(t *testing.T) {
	tree := NewRBTree[uint64, uint64]()
	mustInsert(t, tree, 13, 8, 15, 6, 11, 14, 17, 1, 16)
	require.NoError(t, RedViolationValidate[uint64, uint64](tree))
	require.NoError(t, BlackViolationValidate[uint64, uint64](tree))
	require.NoError(t, OrderViolationValidate[uint64, uint64](tree))
	require.NoError(t, InvariantValidate[uint64, uint64](tree))
	require.Nil(t, InvariantValidate[uint64, uint64](NewRBTree[uint64, uint64]()))
}
