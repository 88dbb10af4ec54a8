package tree

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

func isNilLeaf[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node == nil
}

func isBlack[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return isNilLeaf[K, V](node) || node.Color() == Black
}

func isRed[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return !isNilLeaf[K, V](node) && node.Color() == Red
}

func isRoot[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node != nil && node.Parent() == nil
}

func blackDepthTo[K infra.OrderedKey, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlack[K, V](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// Inorder traversal to validate that no red node has a red parent or
// a red child and that the root is black.
func RedViolationValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size < 0 || aux == nil {
		return nil
	}
	if isRed[K, V](aux) {
		return errors.New("rbtree red root violation")
	}

	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !isNilLeaf[K, V](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; isRed[K, V](aux) {
			if isRed[K, V](aux.Parent()) ||
				(isRed[K, V](aux.Left()) || isRed[K, V](aux.Right())) {
				return errors.New("rbtree red violation")
			}
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// BFS traversal to load all nodes adjacent to at least one absent
// child position.
func bfsLeaves[K infra.OrderedKey, V any](tree RBTree[K, V]) []RBNode[K, V] {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size < 0 || isNilLeaf[K, V](aux) {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, size>>1+1)
	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)

	for len(stack) > 0 {
		aux = stack[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ isNilLeaf[K, V](l) || isNilLeaf[K, V](r) {
			leaves = append(leaves, aux)
		}
		if !isNilLeaf[K, V](l) {
			stack = append(stack, l)
		}
		if !isNilLeaf[K, V](r) {
			stack = append(stack, r)
		}
		stack = stack[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

Each path from a node adjacent to an absent child up to the root must
carry the same number of black nodes.
*/
func BlackViolationValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], tree.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], tree.Root()) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// OrderViolationValidate checks that the in-order key sequence is
// non-decreasing in tree order (binary-search-tree property, duplicate
// keys permitted).
func OrderViolationValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	var (
		prev    K
		started bool
		err     error
	)
	desc := false
	if t, ok := tree.(*rbTree[K, V]); ok {
		desc = t.isDesc
	}
	tree.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		if started {
			if (!desc && key < prev) || (desc && key > prev) {
				err = errors.New("rbtree order violation")
				return false
			}
		}
		prev, started = key, true
		return true
	})
	return err
}

// InvariantValidate bundles the three structural validators. All
// violations are reported together rather than the first one only.
func InvariantValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	return multierr.Combine(
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		OrderViolationValidate[K, V](tree),
	)
}

// maxDepth reports the node height of the subtree, 0 for an absent
// subtree. Test helper for the 2*log2(N+1) height bound.
func maxDepth[K infra.OrderedKey, V any](node RBNode[K, V]) int {
	if isNilLeaf[K, V](node) {
		return 0
	}
	l, r := maxDepth[K, V](node.Left()), maxDepth[K, V](node.Right())
	if l > r {
		return l + 1
	}
	return r + 1
}
