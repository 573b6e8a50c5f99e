// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/container/avl"
	"github.com/bitmark-inc/container/fault"
)

// how long a capacity-refused remote is remembered
const (
	refusalMemory  = 30 * time.Second
	refusalSweep   = time.Minute
	queueSize      = 16 // outgoing lines buffered per session
	messagesPerSec = 10
	messageBurst   = 20
)

// sessionId - ordering key for the session directory
type sessionId string

// Compare - key comparison for the avl tree
func (s sessionId) Compare(x interface{}) int {
	return strings.Compare(string(s), string(x.(sessionId)))
}

var globalData struct {
	sync.RWMutex
	log         *logger.L
	directory   *avl.Tree // sessionId → *session
	idleTimeout time.Duration
	refused     *gocache.Cache

	// set once during initialise
	initialised bool
}

// Initialise - set up the session hub
//
// maximumSessions fixes the directory capacity for the lifetime of
// the hub; idleTimeout applies to both the input and output side of
// every session
func Initialise(maximumSessions int, idleTimeout time.Duration) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("session")
	globalData.log.Info("starting…")

	globalData.directory = avl.New(maximumSessions, avl.FreeList)
	globalData.idleTimeout = idleTimeout
	globalData.refused = gocache.New(refusalMemory, refusalSweep)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - close every session and drop the directory
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	for _, s := range snapshot() {
		s.close("shutdown")
	}

	// wait for the session callbacks to drain out of the directory
	for i := 0; i < 100; i += 1 {
		if 0 == Count() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	globalData.Lock()
	globalData.directory.Destroy()
	globalData.directory = nil
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// SetIdleTimeout - change the idle deadline for sessions joining
// from now on
//
// already running sessions keep the deadline they started with
func SetIdleTimeout(idleTimeout time.Duration) {
	globalData.Lock()
	defer globalData.Unlock()
	if !globalData.initialised || idleTimeout <= 0 {
		return
	}
	if idleTimeout != globalData.idleTimeout {
		globalData.log.Infof("idle timeout now: %s", idleTimeout)
		globalData.idleTimeout = idleTimeout
	}
}

// Count - number of active sessions
func Count() int {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil == globalData.directory {
		return 0
	}
	return globalData.directory.Count()
}

// add a session to the directory
func join(s *session) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	// the id is random, regenerate on the rare collision
	for {
		if _, ok := globalData.directory.Get(s.id); !ok {
			break
		}
		s.id = newSessionId()
	}

	_, _, err := globalData.directory.Insert(s.id, s)
	if nil != err {
		if fault.IsErrCapacity(err) {
			return fault.ErrSessionLimitReached
		}
		return err
	}
	return nil
}

// remove a session from the directory
func leave(s *session) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}
	globalData.directory.Delete(s.id)
}

// all current sessions, in id order
//
// taken under the read lock and delivered to outside it, so a
// delivery that closes a slow session cannot deadlock against leave
func snapshot() []*session {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.directory {
		return nil
	}
	sessions := make([]*session, 0, globalData.directory.Count())
	globalData.directory.Ascend(func(key interface{}, value interface{}) bool {
		sessions = append(sessions, value.(*session))
		return true
	})
	return sessions
}

// broadcast - deliver a line to every session
func broadcast(line string) {
	for _, s := range snapshot() {
		s.deliver(line)
	}
}

// remember a capacity-refused remote for a short while
func rememberRefusal(remote string) {
	globalData.refused.Set(remote, struct{}{}, gocache.DefaultExpiration)
}

// true if this remote was refused recently
func recentlyRefused(remote string) bool {
	if nil == globalData.refused {
		return false
	}
	_, hit := globalData.refused.Get(remote)
	return hit
}
