// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// rotation and height balancing primitives
//
// the same code serves insert and delete: after any structural change
// below a node, balance recomputes its height and applies at most two
// rotations to restore the AVL condition

// height of a subtree, absent child counts as zero
func height(p *Node) int {
	if nil == p {
		return 0
	}
	return p.height
}

// recomputed height of a node from its children
func reheight(p *Node) int {
	l := height(p.children[left])
	r := height(p.children[right])
	if l > r {
		return l + 1
	}
	return r + 1
}

// balance factor: left height - right height
func bias(p *Node) int {
	return height(p.children[left]) - height(p.children[right])
}

// single rotation about the link from p to its j side child
//
// the j child q becomes the subtree root, p becomes q's i side child
// and q's former i side subtree is re-parented as p's j side subtree;
// only the two involved nodes change height
func rotate(p *Node, i int, j int) *Node {
	q := p.children[j]
	p.children[j] = q.children[i]
	q.children[i] = p
	p.height = reheight(p)
	q.height = reheight(q)
	return q
}

func rotateLeft(p *Node) *Node  { return rotate(p, left, right) }
func rotateRight(p *Node) *Node { return rotate(p, right, left) }

// restore the AVL condition at p after a change below it
//
// assumes both subtrees are themselves balanced and p is out of
// balance by at most two
func balance(p *Node) *Node {
	p.height = reheight(p)
	b := bias(p)
	if b > 1 {
		if bias(p.children[left]) < 0 {
			// left-right case, convert to left-left
			p.children[left] = rotateLeft(p.children[left])
		}
		return rotateRight(p)
	}
	if b < -1 {
		if bias(p.children[right]) > 0 {
			// right-left case, convert to right-right
			p.children[right] = rotateRight(p.children[right])
		}
		return rotateLeft(p)
	}
	return p
}
