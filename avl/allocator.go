// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"

	"github.com/bitmark-inc/container/fault"
)

// binary index into the child pair, so rotation logic can be written
// once and mirrored by swapping the indexes
const (
	left  = 0
	right = 1
)

// Node - a node in the tree
//
// the child links are an indexable pair: children[left] and
// children[right]; nextFree is only meaningful while the node is off
// the tree waiting on the pool free list
type Node struct {
	children [2]*Node    // left and right sub-trees
	nextFree *Node       // free list link, nil while node is live
	height   int         // 1 + max height of children, leaf = 1
	key      interface{} // key part for ordering
	value    interface{} // value part for data storage
}

// Strategy - slot reuse policy for a tree's node pool
type Strategy int

const (
	// FreeList - released slots are threaded onto an intrusive
	// list and reused by later insertions; the capacity bounds the
	// number of concurrently live nodes
	FreeList Strategy = iota

	// Bump - slots are handed out by advancing a cursor and are
	// never reissued; simpler bookkeeping and release is a pure
	// destructor, but capacity then bounds the total number of
	// distinct keys ever inserted, not the live count
	Bump
)

// all node storage for one tree
//
// the arena is allocated once and never grows; after construction no
// further general allocation is performed for nodes
type pool struct {
	arena    []Node
	freeList *Node // head of the reclaimed slot chain
	cursor   int   // next never-used slot
	inUse    int   // currently live nodes
	retired  int   // released and not reusable, always 0 under FreeList
	capacity int
	strategy Strategy
}

func newPool(capacity int, strategy Strategy) *pool {
	return &pool{
		arena:    make([]Node, capacity),
		capacity: capacity,
		strategy: strategy,
	}
}

// true if acquire would succeed
func (p *pool) available() bool {
	return nil != p.freeList || p.cursor < len(p.arena)
}

// hand out a slot constructed with key and value, O(1)
//
// returns fault.ErrPoolCapacityExhausted when no slot is available;
// this is a recoverable condition, callers size the capacity for the
// worst case live node count
func (p *pool) acquire(key interface{}, value interface{}) (*Node, error) {
	node := (*Node)(nil)
	if nil != p.freeList {
		node = p.freeList
		p.freeList = node.nextFree
		node.nextFree = nil
	} else if p.cursor < len(p.arena) {
		node = &p.arena[p.cursor]
		p.cursor += 1
	} else {
		return nil, fault.ErrPoolCapacityExhausted
	}
	node.key = key
	node.value = value
	node.height = 1
	p.inUse += 1
	return node, nil
}

// destroy a slot's content and, under the free list strategy, make it
// eligible for reuse, O(1)
func (p *pool) release(node *Node) {
	if p.inUse < 1 {
		panic("avl: pool corrupt")
	}
	node.children[left] = nil
	node.children[right] = nil
	node.key = nil
	node.value = nil
	node.height = 0
	p.inUse -= 1

	if FreeList == p.strategy {
		node.nextFree = p.freeList
		p.freeList = node
	} else {
		p.retired += 1
	}
}

// drop all storage; every live node must have been released first
func (p *pool) teardown() {
	if 0 != p.inUse {
		panic("avl: pool teardown with live nodes")
	}
	p.arena = nil
	p.freeList = nil
	p.cursor = 0
	p.retired = 0
}

// internal accounting check: every slot handed out is live, on the
// free list or retired, never two of these, never more than once
func (p *pool) checkAccounting(liveCount int) error {
	if p.inUse != liveCount {
		return fmt.Errorf("pool: %d slots in use but %d nodes live", p.inUse, liveCount)
	}
	freeCount := 0
	for node := p.freeList; nil != node; node = node.nextFree {
		freeCount += 1
		if freeCount > p.cursor {
			return fmt.Errorf("pool: free list loops")
		}
	}
	if FreeList == p.strategy && 0 != p.retired {
		return fmt.Errorf("pool: %d slots retired under free list reuse", p.retired)
	}
	if Bump == p.strategy && 0 != freeCount {
		return fmt.Errorf("pool: %d slots free listed under bump allocation", freeCount)
	}
	if freeCount+p.inUse+p.retired != p.cursor {
		return fmt.Errorf("pool: %d free + %d in use + %d retired ≠ %d handed out", freeCount, p.inUse, p.retired, p.cursor)
	}
	return nil
}
