// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"io"
	"net"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/container/fault"
)

// ServerArgument - the argument passed to the callback
type ServerArgument struct {
	Log *logger.L
}

// Callback - handle one accepted connection
//
// runs for the life of the connection; refusing is silent for a
// remote that was already refused moments ago
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*ServerArgument)
	if nil == serverArgument {
		fault.Panic("session: nil serverArgument")
	}
	if nil == serverArgument.Log {
		fault.Panic("session: nil serverArgument.Log")
	}
	log := serverArgument.Log

	remote := remoteOf(conn)
	if recentlyRefused(remote) {
		log.Debugf("dropping recently refused remote: %s", remote)
		conn.Close()
		return
	}

	s := newSession(conn, remote, log)
	if err := join(s); nil != err {
		log.Warnf("refusing %s: %s", remote, err)
		rememberRefusal(remote)
		conn.Close()
		return
	}
	log.Infof("%s: joined from %s  active: %d", s.id, remote, Count())

	globalData.RLock()
	idleTimeout := globalData.idleTimeout
	globalData.RUnlock()

	s.run(idleTimeout)
	leave(s)
	log.Infof("%s: left  active: %d", s.id, Count())
}

// best effort remote address for logging and refusal tracking
func remoteOf(conn io.ReadWriteCloser) string {
	if nc, ok := conn.(net.Conn); ok {
		if addr := nc.RemoteAddr(); nil != addr {
			return addr.String()
		}
	}
	return "unknown"
}
