// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - add a key and value to the tree
//
// if an equivalent key is already present its value is overwritten in
// place and the old value returned with found true; the topology is
// unchanged in that case so no rebalancing occurs
//
// returns fault.ErrPoolCapacityExhausted when no slot is available;
// the tree is left exactly as it was, there is no partial insert
func (tree *Tree) Insert(key interface{}, value interface{}) (interface{}, bool, error) {
	root, previous, found, err := tree.insert(tree.root, key, value)
	if nil != err {
		return nil, false, err
	}
	tree.root = root
	if !found {
		tree.count += 1
	}
	return previous, found, nil
}

// internal routine for insert
func (tree *Tree) insert(p *Node, key interface{}, value interface{}) (*Node, interface{}, bool, error) {
	if nil == p { // reached a leaf position, make the new node
		node, err := tree.pool.acquire(key, value)
		if nil != err {
			return nil, nil, false, err
		}
		return node, nil, false, nil
	}

	c := tree.cmp(key, p.key)
	if 0 == c { // equivalent key: overwrite in place
		previous := p.value
		p.value = value
		return p, previous, true, nil
	}

	i := left
	if c > 0 {
		i = right
	}
	q, previous, found, err := tree.insert(p.children[i], key, value)
	if nil != err {
		return p, nil, false, err
	}
	p.children[i] = q
	if found {
		return p, previous, true, nil
	}
	return balance(p), previous, false, nil
}
