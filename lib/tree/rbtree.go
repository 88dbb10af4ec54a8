package tree

import (
	"sync/atomic"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

type rbNode[K infra.OrderedKey, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
}

// NewRBNode builds a fresh unlinked red node owned by the caller
// until Insert splices it into a tree.
func NewRBNode[K infra.OrderedKey, V any](key K, val V) RBNode[K, V] {
	return &rbNode[K, V]{
		key:   key,
		val:   val,
		color: Red,
	}
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) SetVal(v V) {
	node.val = v
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

// An absent child position is a nil pointer, never a materialized
// sentinel node.
func (node *rbNode[K, V]) isNilLeaf() bool {
	return node == nil
}

func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

// isBlack is the effective color query: an absent node counts as a
// black leaf.
func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K, V]) isLinked() bool {
	return node.parent != nil || node.left != nil || node.right != nil
}

func (node *rbNode[K, V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

// unlink returns the node to its freshly constructed state so that
// ownership can revert to the caller and the node stays reusable.
func (node *rbNode[K, V]) unlink() {
	node.parent = nil
	node.left = nil
	node.right = nil
	node.color = Red
}

type rbTree[K infra.OrderedKey, V any] struct {
	root   *rbNode[K, V]
	keyCmp infra.OrderedKeyComparator[K]
	logger xlog.XLogger
	count  int64
	isDesc bool
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil {
		// impossible run to here
		panic(infra.NewErrorStack("[rbtree] left rotate on nil node"))
	}
	y := x.right
	if y.isNilLeaf() {
		// No pivot, nothing to rotate.
		return
	}

	p, dir := x.parent, x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(X)    / \
	       S   R    ============>   Sc   X
		  / \                           / \
		Sc   Sd                       Sd   R
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil {
		// impossible run to here
		panic(infra.NewErrorStack("[rbtree] right rotate on nil node"))
	}
	y := x.left
	if y.isNilLeaf() {
		// No pivot, nothing to rotate.
		return
	}

	p, dir := x.parent, x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

// i1: Empty rbtree, insert directly, the rebalance paints the root black.
// Equal keys are routed into the right subtree, so duplicates are kept
// in insertion order relative to the in-order traversal.
func (tree *rbTree[K, V]) Insert(node RBNode[K, V]) error {
	if node == nil {
		return infra.WrapErrorStack(ErrNilNode)
	}
	z, ok := node.(*rbNode[K, V])
	if !ok {
		return infra.WrapErrorStack(ErrForeignNode)
	}
	if z == nil {
		return infra.WrapErrorStack(ErrNilNode)
	}
	// A sole root carries no links but is still owned by the tree.
	if z.isLinked() || z == tree.root {
		return infra.WrapErrorStack(ErrLinkedNode)
	}

	z.color = Red
	if /* i1 */ tree.root.isNilLeaf() {
		tree.root = z
	} else {
		var x, y *rbNode[K, V] = tree.root, nil
		res := int64(0)
		for !x.isNilLeaf() {
			y = x
			if /* less */ res = tree.keyCmp(z.key, x.key); res < 0 {
				x = x.left
			} else /* greater or equal, ties go right */ {
				x = x.right
			}
		}

		z.parent = y
		if res < 0 {
			y.left = z
		} else {
			y.right = z
		}
	}

	atomic.AddInt64(&tree.count, 1)
	tree.insertRebalance(z)
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainting G into red it may still be a red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im2: The parent P is red but the uncle U is black, X is the opposite
direction to P. Rotate P to the opposite direction, which turns the
pair into the im3 shape. (red-violation stays)

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im3: Uncle U is black and X is the same direction as parent P.
Rotate G towards the uncle side and swap the colors of P and G.
The subtree root is black afterwards, so the loop terminates.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	for x.parent.isRed() {
		// A red parent cannot be the root, hence the grandpa exists.
		if /* im1 */ x.uncle().isRed() {
			x.parent.color = Black
			x.uncle().color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		dir := x.Direction()
		if /* im2 */ dir != x.parent.Direction() {
			p := x.parent
			switch dir {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert rebalance violate (im2)")
			}
			x = p
		}

		gp := x.grandpa()
		x.parent.color = Black
		gp.color = Red
		switch /* im3 */ x.parent.Direction() {
		case Left:
			tree.rightRotate(gp)
		case Right:
			tree.leftRotate(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert rebalance violate (im3)")
		}
	}
	// At most two rotations happened above; forcing the root black
	// settles the remaining red-root case.
	tree.root.color = Black
}

type RBTreeOpt[K infra.OrderedKey, V any] func(*rbTree[K, V])

func WithRBTreeDesc[K infra.OrderedKey, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

func WithRBTreeLogger[K infra.OrderedKey, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if logger != nil {
			tree.logger = logger
		}
	}
}

func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	tree := &rbTree[K, V]{
		count:  0,
		isDesc: false,
		logger: xlog.NewNopXLogger(),
	}

	for _, o := range opts {
		o(tree)
	}

	if tree.isDesc {
		tree.keyCmp = infra.DescOrderedKeyComparator[K]()
	} else {
		tree.keyCmp = infra.AscOrderedKeyComparator[K]()
	}
	return tree
}
