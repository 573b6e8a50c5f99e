// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
)

// CheckInvariants - verify the structural invariants, for tests
//
// checks search order, stored heights, the AVL balance condition, the
// live node count and the pool slot accounting; returns nil when the
// tree is consistent
func (tree *Tree) CheckInvariants() error {
	size, _, err := tree.checkSubtree(tree.root)
	if nil != err {
		return err
	}
	if size != tree.count {
		return fmt.Errorf("count: %d nodes found but count is %d", size, tree.count)
	}
	return tree.pool.checkAccounting(tree.count)
}

// internal: consistency check returning subtree size and height
func (tree *Tree) checkSubtree(p *Node) (int, int, error) {
	if nil == p {
		return 0, 0, nil
	}

	ls, lh, err := tree.checkSubtree(p.children[left])
	if nil != err {
		return 0, 0, err
	}
	rs, rh, err := tree.checkSubtree(p.children[right])
	if nil != err {
		return 0, 0, err
	}

	if l := p.children[left]; nil != l {
		if tree.cmp(rightmostKey(l), p.key) >= 0 {
			return 0, 0, fmt.Errorf("order: left subtree of %v is not strictly less", p.key)
		}
	}
	if r := p.children[right]; nil != r {
		if tree.cmp(leftmost(r).key, p.key) <= 0 {
			return 0, 0, fmt.Errorf("order: right subtree of %v is not strictly greater", p.key)
		}
	}

	h := lh
	if rh > h {
		h = rh
	}
	h += 1
	if p.height != h {
		return 0, 0, fmt.Errorf("height: node %v stores %d, actual %d", p.key, p.height, h)
	}
	if d := lh - rh; d < -1 || d > 1 {
		return 0, 0, fmt.Errorf("balance: node %v has factor %d", p.key, d)
	}
	if nil != p.nextFree {
		return 0, 0, fmt.Errorf("pool: live node %v carries a free list link", p.key)
	}
	return ls + rs + 1, h, nil
}

// internal: highest key in a sub-tree
func rightmostKey(p *Node) interface{} {
	for nil != p.children[right] {
		p = p.children[right]
	}
	return p.key
}
