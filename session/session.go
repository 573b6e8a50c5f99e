// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"bufio"
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/mr-tron/base58"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/container/fault"
)

// one connected client
//
// two deadline actors guard the session: an input timer armed while
// waiting for a complete line and an output timer armed while a write
// is in flight; either expiring closes the connection and cancels the
// outstanding operation
type session struct {
	id      sessionId
	conn    io.ReadWriteCloser
	remote  string
	log     *logger.L
	limiter *rate.Limiter
	out     chan string
	done    chan struct{}
	once    sync.Once
}

// random printable session token
func newSessionId() sessionId {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	fault.PanicIfError("session: random id", err)
	return sessionId(base58.Encode(b))
}

func newSession(conn io.ReadWriteCloser, remote string, log *logger.L) *session {
	return &session{
		id:      newSessionId(),
		conn:    conn,
		remote:  remote,
		log:     log,
		limiter: rate.NewLimiter(messagesPerSec, messageBurst),
		out:     make(chan string, queueSize),
		done:    make(chan struct{}),
	}
}

// run the input and output actors until the session ends
func (s *session) run(idleTimeout time.Duration) {

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(idleTimeout)
	}()

	s.readLoop(idleTimeout)
	s.close("disconnect")
	wg.Wait()
}

// input actor: read newline delimited messages
//
// a non-empty line is broadcast to all sessions; a bare newline is a
// heartbeat, answered only when nothing else is queued for the sender
func (s *session) readLoop(idleTimeout time.Duration) {

	idle := time.AfterFunc(idleTimeout, func() {
		s.close("input timeout")
	})
	defer idle.Stop()

	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		idle.Reset(idleTimeout)

		line := scanner.Text()
		if "" == line {
			// heartbeat
			if 0 == len(s.out) {
				s.deliver("\n")
			}
			continue
		}

		if !s.limiter.Allow() {
			s.log.Warnf("%s: rate limit exceeded, dropping message", s.id)
			continue
		}
		broadcast(line + "\n")
	}
	if err := scanner.Err(); nil != err {
		s.log.Debugf("%s: read ended: %s", s.id, err)
	}
}

// output actor: send queued lines, each under the output deadline
func (s *session) writeLoop(idleTimeout time.Duration) {

	for {
		select {
		case <-s.done:
			return
		case line := <-s.out:
			deadline := time.AfterFunc(idleTimeout, func() {
				s.close("output timeout")
			})
			_, err := io.WriteString(s.conn, line)
			deadline.Stop()
			if nil != err {
				s.log.Debugf("%s: write ended: %s", s.id, err)
				s.close("write failed")
				return
			}
		}
	}
}

// queue a line for this session
//
// never blocks: a session that cannot keep up with the traffic is
// closed rather than stalling the sender
func (s *session) deliver(line string) {
	select {
	case s.out <- line:
	case <-s.done:
	default:
		s.log.Warnf("%s: output queue full, closing", s.id)
		s.close("slow consumer")
	}
}

// shut down the connection, once
func (s *session) close(reason string) {
	s.once.Do(func() {
		s.log.Infof("%s: closing: %s", s.id, reason)
		close(s.done)
		s.conn.Close()
	})
}
