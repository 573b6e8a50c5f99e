// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - a height balanced binary search tree whose nodes are
// drawn from a fixed size slot pool allocated once at construction
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// This version allows for data associated with key, which can be
// overwritten by an insert with the same key.  Delete splices the
// in-order successor into the removed position structurally, no key
// or value data is copied between nodes.
//
// The pool recycles released slots through an intrusive free list, or
// can be set to bump allocation where released slots are never reused
// and total insertions over the tree lifetime are limited to the pool
// capacity.
package avl
