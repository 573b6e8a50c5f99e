// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Item - a key must either implement the Compare function or the tree
// must be created with an explicit CompareFunc
type Item interface {
	Compare(interface{}) int // for left/right ordering of keys
}

// CompareFunc - comparison predicate for tree keys
// must return negative, zero or positive for a<b, a==b, a>b
// and must totally order all keys given to the tree
type CompareFunc func(a interface{}, b interface{}) int

// Tree - type to hold the root node of a tree and its node pool
type Tree struct {
	root  *Node
	pool  *pool
	cmp   CompareFunc
	count int
}

// New - create an empty tree with a fixed capacity
// keys must implement the Item interface
// panics if capacity is not at least one slot
func New(capacity int, strategy Strategy) *Tree {
	return NewFunc(capacity, itemCompare, strategy)
}

// NewFunc - create an empty tree using an explicit comparison predicate
func NewFunc(capacity int, cmp CompareFunc, strategy Strategy) *Tree {
	if capacity < 1 {
		panic("avl: capacity must be at least one slot")
	}
	if nil == cmp {
		panic("avl: nil comparison predicate")
	}
	return &Tree{
		root:  nil,
		pool:  newPool(capacity, strategy),
		cmp:   cmp,
		count: 0,
	}
}

// default comparison using the Item interface
func itemCompare(a interface{}, b interface{}) int {
	return a.(Item).Compare(b)
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// IsFull - true if no slot remains for a new key
func (tree *Tree) IsFull() bool {
	return !tree.pool.available()
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.count
}

// Capacity - the fixed slot count set at construction
func (tree *Tree) Capacity() int {
	return tree.pool.capacity
}

// Root - return the root node of the tree
func (tree *Tree) Root() *Node {
	return tree.root
}

// Destroy - release all live nodes then drop the pool storage
//
// the tree must not be used afterwards; live nodes are released
// before the pool is torn down so the pool is the single sink of
// every slot
func (tree *Tree) Destroy() {
	if nil == tree.pool {
		panic("avl: tree already destroyed")
	}
	releaseAll(tree.root, tree.pool)
	tree.root = nil
	tree.count = 0
	tree.pool.teardown()
	tree.pool = nil
}

// internal: post-order release of a subtree
func releaseAll(p *Node, pool *pool) {
	if nil == p {
		return
	}
	releaseAll(p.children[left], pool)
	releaseAll(p.children[right], pool)
	pool.release(p)
}

// Key - read the key from a node
func (p *Node) Key() interface{} {
	return p.key
}

// Value - read the value from a node
func (p *Node) Value() interface{} {
	return p.value
}

// Left - left child or nil
func (p *Node) Left() *Node {
	return p.children[left]
}

// Right - right child or nil
func (p *Node) Right() *Node {
	return p.children[right]
}

// Height - height of the subtree rooted at this node (leaf = 1)
func (p *Node) Height() int {
	return p.height
}
