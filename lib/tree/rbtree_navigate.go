package tree

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to the first ancestor reached through a right-child step.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to the first ancestor reached through a left-child step.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// Minimum returns the node holding the smallest key in tree order, or
// nil for an empty tree. The empty case is informational, not an error.
func (tree *rbTree[K, V]) Minimum() RBNode[K, V] {
	_min := tree.root.minimum()
	if _min.isNilLeaf() {
		tree.logger.Warn("[rbtree] minimum on empty tree")
		return nil
	}
	return _min
}

// Maximum returns the node holding the greatest key in tree order, or
// nil for an empty tree.
func (tree *rbTree[K, V]) Maximum() RBNode[K, V] {
	_max := tree.root.maximum()
	if _max.isNilLeaf() {
		tree.logger.Warn("[rbtree] maximum on empty tree")
		return nil
	}
	return _max
}

// Successor returns the next node in sorted order, or nil when the
// node holds the greatest key. Read-only, never touches links.
func (tree *rbTree[K, V]) Successor(node RBNode[K, V]) (RBNode[K, V], error) {
	if node == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	x, ok := node.(*rbNode[K, V])
	if !ok {
		return nil, infra.WrapErrorStack(ErrForeignNode)
	}
	if x == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	s := x.succ()
	if s == nil {
		return nil, nil
	}
	return s, nil
}

// Predecessor returns the previous node in sorted order, or nil when
// the node holds the smallest key.
func (tree *rbTree[K, V]) Predecessor(node RBNode[K, V]) (RBNode[K, V], error) {
	if node == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	x, ok := node.(*rbNode[K, V])
	if !ok {
		return nil, infra.WrapErrorStack(ErrForeignNode)
	}
	if x == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	p := x.pred()
	if p == nil {
		return nil, nil
	}
	return p, nil
}

func (tree *rbTree[K, V]) searchNode(key K) *rbNode[K, V] {
	for aux := tree.root; !aux.isNilLeaf(); {
		res := tree.keyCmp(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

// Search locates a node by key-guided descent, nil when absent. With
// duplicate keys the topmost match is returned.
func (tree *rbTree[K, V]) Search(key K) RBNode[K, V] {
	if z := tree.searchNode(key); z != nil {
		return z
	}
	return nil
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size < 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

// Release drops the whole structure and unlinks every node so that
// detached nodes never keep subtrees alive through stale references.
func (tree *rbTree[K, V]) Release() {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	tree.root = nil
	if size < 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	released := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		aux.right, aux.left, aux.parent = nil, nil, nil
		atomic.AddInt64(&tree.count, -1)
		released++
		stack = stack[:size-1]
		if r != nil {
			for aux = r; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
	tree.logger.Debug("[rbtree] released", zap.Int64("nodes", released))
}
