// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Visitor - callback for traversal, return false to stop early
type Visitor func(key interface{}, value interface{}) bool

// Ascend - visit every key/value pair in ascending key order
//
// a fresh traversal starts on every call; the visitor must not modify
// the tree
func (tree *Tree) Ascend(visit Visitor) {
	ascend(tree.root, visit)
}

// internal: recursive left, self, right traversal
func ascend(p *Node, visit Visitor) bool {
	if nil == p {
		return true
	}
	if !ascend(p.children[left], visit) {
		return false
	}
	if !visit(p.key, p.value) {
		return false
	}
	return ascend(p.children[right], visit)
}

// First - return the node with the lowest key, nil if tree is empty
func (tree *Tree) First() *Node {
	if nil == tree.root {
		return nil
	}
	return leftmost(tree.root)
}

// Last - return the node with the highest key, nil if tree is empty
func (tree *Tree) Last() *Node {
	p := tree.root
	if nil == p {
		return nil
	}
	for nil != p.children[right] {
		p = p.children[right]
	}
	return p
}
