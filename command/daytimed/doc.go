// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Daytimed
//
// a small UDP daytime responder
//
// any received datagram is answered with the current time as a single
// text line; replies are rate limited so a reflection flood cannot
// amplify through this service
package main
