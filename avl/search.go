// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Get - find the value attached to a key
//
// absence is a normal outcome signalled by found false, not an error
func (tree *Tree) Get(key interface{}) (interface{}, bool) {
	p := tree.search(tree.root, key)
	if nil == p {
		return nil, false
	}
	return p.value, true
}

// Search - find the node holding a key, nil if absent
func (tree *Tree) Search(key interface{}) *Node {
	return tree.search(tree.root, key)
}

// internal routine for search
func (tree *Tree) search(p *Node, key interface{}) *Node {
	if nil == p {
		return nil
	}
	switch c := tree.cmp(key, p.key); {
	case c < 0:
		return tree.search(p.children[left], key)
	case c > 0:
		return tree.search(p.children[right], key)
	default:
		return p
	}
}
