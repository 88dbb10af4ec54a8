package tree

import (
	"sync/atomic"

	"github.com/benz9527/xtree/lib/infra"
)

// transplant rewires the parent of u to point at v instead of u.
// Colors are untouched, u keeps its stale links for the caller to
// clean up.
func (tree *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
	if u == nil {
		// impossible run to here
		panic(infra.NewErrorStack("[rbtree] transplant on nil node"))
	}
	switch u.Direction() {
	case Root:
		tree.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to transplant")
	}
	if v != nil {
		v.parent = u.parent
	}
}

/*
r1: Z is a leaf, detach it directly. The spliced-out color is Z's own.

r2: Z has one child. The child must be red (see conclusion under the
rbtree properties), it takes Z's position.

r3: Z has two children. The in-order successor Y lies in Z's right
subtree and has no left child. Y is spliced out of its position (its
right child X moves up), takes over Z's links and adopts Z's color, so
the black depth everywhere but on X's path is untouched.

The removed node keeps its identity: Z leaves the tree unlinked and
repainted like a fresh node, ownership reverts to the caller.
*/
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) {
	var x, xParent *rbNode[K, V]
	yColor := z.color

	switch {
	case /* r1 */ z.left.isNilLeaf() && z.right.isNilLeaf():
		xParent = z.parent
		tree.transplant(z, nil)
	case /* r2 */ z.left.isNilLeaf():
		x, xParent = z.right, z.parent
		tree.transplant(z, z.right)
	case /* r2 */ z.right.isNilLeaf():
		x, xParent = z.left, z.parent
		tree.transplant(z, z.left)
	default: /* r3 */
		y := z.right.minimum()
		yColor = y.color
		x, xParent = y.right, y
		if y.parent != z {
			xParent = y.parent
			tree.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		tree.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if /* black-depth deficiency */ yColor == Black && xParent != nil {
		tree.removeRebalance(x, xParent)
	} else if x != nil && x.isRoot() {
		x.color = Black
	}

	z.unlink()
	atomic.AddInt64(&tree.count, -1)
}

/*
X is the moved-up node carrying the black deficiency. It may be an
absent (nil) child position, in which case the recorded parent drives
the repair. The four sibling cases are mutually exclusive within one
iteration and the sibling is recomputed after every rotation.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the sibling child near to X, Sd the one far from X.

rm1: X's sibling S is red, so the parent P and both nephews must be
black. Rotate P towards X and swap the colors of P and S. X gains a
black sibling, one of rm2-rm4 follows.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: S is black with two black children. Repaint S red, which settles
the black depth below P; the deficiency moves up to P. A red P swallows
it when the loop exits and is painted black.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: S is black, near nephew Sc red, far nephew Sd black. Rotate S away
from X and swap the colors of S and Sc, which produces the rm4 shape.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm4: S is black, far nephew Sd red. S takes P's color, P and Sd turn
black, rotate P towards X. The deficiency is resolved, terminate.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x, parent *rbNode[K, V]) {
	for x != tree.root && x.isBlack() {
		dir, sibling := Left, parent.right
		if x != parent.left {
			dir, sibling = Right, parent.left
		}

		if /* rm1 */ sibling.isRed() {
			sibling.color = Black
			parent.color = Red
			switch dir {
			case Left:
				tree.leftRotate(parent)
				sibling = parent.right
			case Right:
				tree.rightRotate(parent)
				sibling = parent.left
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm1)")
			}
		}

		var sc, sd *rbNode[K, V]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm2)")
		}

		if /* rm2 */ sc.isBlack() && sd.isBlack() {
			sibling.color = Red
			x = parent
			parent = x.parent
			continue
		}

		if /* rm3 */ sd.isBlack() {
			sc.color = Black
			sibling.color = Red
			switch dir {
			case Left:
				tree.rightRotate(sibling)
				sibling = parent.right
				sd = sibling.right
			case Right:
				tree.leftRotate(sibling)
				sibling = parent.left
				sd = sibling.left
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm3)")
			}
		}

		/* rm4 */
		sibling.color = parent.color
		parent.color = Black
		sd.color = Black
		switch dir {
		case Left:
			tree.leftRotate(parent)
		case Right:
			tree.rightRotate(parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove rebalance violate (rm4)")
		}
		x = tree.root
	}

	if x != nil {
		x.color = Black
	}
}

// Remove detaches a node that currently belongs to this tree. The
// membership precondition is checked by a key-guided descent that must
// end on the very same node, which also rejects nodes of another tree.
// Ownership of the detached node reverts to the caller.
func (tree *rbTree[K, V]) Remove(node RBNode[K, V]) (RBNode[K, V], error) {
	if node == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	z, ok := node.(*rbNode[K, V])
	if !ok {
		return nil, infra.WrapErrorStack(ErrForeignNode)
	}
	if z == nil {
		return nil, infra.WrapErrorStack(ErrNilNode)
	}
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}

	aux := tree.root
	for !aux.isNilLeaf() && aux != z {
		if tree.keyCmp(z.key, aux.key) < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	if aux != z {
		return nil, infra.WrapErrorStack(ErrNotInTree)
	}

	tree.removeNode(z)
	return z, nil
}

// RemoveByKey removes the first node found by descent for the key.
func (tree *rbTree[K, V]) RemoveByKey(key K) (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}
	z := tree.searchNode(key)
	if z == nil {
		return nil, infra.WrapErrorStack(ErrNotInTree)
	}
	tree.removeNode(z)
	return z, nil
}

func (tree *rbTree[K, V]) RemoveMin() (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}
	_min := tree.root.minimum()
	if _min.isNilLeaf() {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}
	tree.removeNode(_min)
	return _min, nil
}

func (tree *rbTree[K, V]) RemoveMax() (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}
	_max := tree.root.maximum()
	if _max.isNilLeaf() {
		return nil, infra.WrapErrorStack(ErrEmptyTree)
	}
	tree.removeNode(_max)
	return _max, nil
}
