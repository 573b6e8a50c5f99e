// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Delete - remove a key from the tree
//
// returns the value that was attached to the key, or found false and
// no mutation if the key is absent
//
// a node with two children is not exchanged with its successor by
// copying: the successor (leftmost node of the right subtree) is
// spliced structurally into the removed position, taking the removed
// node's left subtree and the remainder of the right subtree; the
// removed slot goes back to the pool as soon as its children are
// captured
func (tree *Tree) Delete(key interface{}) (interface{}, bool) {
	root, previous, found := tree.delete(tree.root, key)
	if !found {
		return nil, false
	}
	tree.root = root
	tree.count -= 1
	return previous, true
}

// internal routine for delete
func (tree *Tree) delete(p *Node, key interface{}) (*Node, interface{}, bool) {
	if nil == p { // key not in tree
		return nil, nil, false
	}

	c := tree.cmp(key, p.key)
	if 0 != c {
		i := left
		if c > 0 {
			i = right
		}
		q, previous, found := tree.delete(p.children[i], key)
		if !found {
			return p, nil, false
		}
		p.children[i] = q
		return balance(p), previous, true
	}

	// found: unlink p
	previous := p.value
	l := p.children[left]
	r := p.children[right]
	tree.pool.release(p) // children captured, slot reusable now

	if nil == r {
		return l, previous, true
	}

	// splice the in-order successor into the removed position
	w := leftmost(r)
	w.children[right] = cutLeftmost(r)
	w.children[left] = l
	return balance(w), previous, true
}

// internal: lowest node in a sub-tree
func leftmost(p *Node) *Node {
	for nil != p.children[left] {
		p = p.children[left]
	}
	return p
}

// internal: detach the leftmost node from a subtree, rebalancing the
// path back up; returns the remaining subtree
func cutLeftmost(p *Node) *Node {
	if nil == p.children[left] {
		return p.children[right]
	}
	p.children[left] = cutLeftmost(p.children[left])
	return balance(p)
}
