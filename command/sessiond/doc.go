// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Sessiond
//
// server daemon for line sessions
//
// accepts TLS connections, joins each one to the shared session hub
// and relays newline delimited messages between all connected clients
package main
