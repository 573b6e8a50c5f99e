// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - a line oriented TCP session hub
//
// each accepted connection becomes a session; complete non-empty
// lines are broadcast to every active session, a bare newline is a
// heartbeat answered only when the sender's output queue is idle, and
// a session whose input or output stalls past the idle deadline is
// closed
//
// the hub keeps its session directory in a fixed capacity avl tree,
// so the maximum number of concurrent sessions is set once at
// initialisation and a full directory refuses further connections;
// the directory tree is guarded by a single writer/many reader lock
// since the tree itself is not thread safe
package session
