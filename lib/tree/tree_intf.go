package tree

import (
	"errors"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// Contract violations. Every mutating entry point either restores
// the rbtree invariants completely or reports one of these without
// having touched the tree.
var (
	// ErrNilNode reports a nil node handed to an entry point.
	ErrNilNode = errors.New("[rbtree] nil node")
	// ErrLinkedNode reports an insert of a node that still carries
	// parent or child links.
	ErrLinkedNode = errors.New("[rbtree] node already linked")
	// ErrForeignNode reports a node that was not constructed through
	// NewRBNode.
	ErrForeignNode = errors.New("[rbtree] foreign node implementation")
	// ErrNotInTree reports a remove or navigation target that is not
	// reachable from the current root.
	ErrNotInTree = errors.New("[rbtree] node not in tree")
	// ErrEmptyTree reports a removal from an empty tree.
	ErrEmptyTree = errors.New("[rbtree] empty tree")
)

// RBNode is the read surface of one stored key and its structural
// role. Nodes are constructed by the caller through NewRBNode, spliced
// in by Insert and handed back by Remove.
type RBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	SetVal(v V)
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

type RBTree[K infra.OrderedKey, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	Insert(node RBNode[K, V]) error
	Remove(node RBNode[K, V]) (RBNode[K, V], error)
	RemoveByKey(key K) (RBNode[K, V], error)
	RemoveMin() (RBNode[K, V], error)
	RemoveMax() (RBNode[K, V], error)
	Minimum() RBNode[K, V]
	Maximum() RBNode[K, V]
	Successor(node RBNode[K, V]) (RBNode[K, V], error)
	Predecessor(node RBNode[K, V]) (RBNode[K, V], error)
	Search(key K) RBNode[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Release()
}
