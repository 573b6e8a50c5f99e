// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stack - a fixed capacity LIFO stack over a flat buffer
// allocated once at construction
//
// Note: not thread safe, callers must provide their own locking if
//       shared between go routines.
package stack

import (
	"github.com/bitmark-inc/container/fault"
)

// Stack - type to hold the buffer and the top cursor
type Stack struct {
	items []interface{}
	top   int
}

// New - create an empty stack with a fixed capacity
// panics if capacity is not at least one element
func New(capacity int) *Stack {
	if capacity < 1 {
		panic("stack: capacity must be at least one element")
	}
	return &Stack{
		items: make([]interface{}, capacity),
		top:   0,
	}
}

// IsEmpty - true if the stack holds no elements
func (s *Stack) IsEmpty() bool {
	return 0 == s.top
}

// IsFull - true if no room remains
func (s *Stack) IsFull() bool {
	return s.top >= len(s.items)
}

// Count - number of elements currently held
func (s *Stack) Count() int {
	return s.top
}

// Capacity - the fixed element count set at construction
func (s *Stack) Capacity() int {
	return len(s.items)
}

// Push - add an element on top
//
// returns fault.ErrStackOverflow when full; the stack is unchanged
func (s *Stack) Push(item interface{}) error {
	if s.IsFull() {
		return fault.ErrStackOverflow
	}
	s.items[s.top] = item
	s.top += 1
	return nil
}

// Pop - remove and return the top element
//
// an empty stack is a normal outcome signalled by found false
func (s *Stack) Pop() (interface{}, bool) {
	if s.IsEmpty() {
		return nil, false
	}
	s.top -= 1
	item := s.items[s.top]
	s.items[s.top] = nil // drop the reference
	return item, true
}
