// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read Lua configuration files
//
// a configuration file is an executed Lua chunk whose final returned
// table is decoded into a Go structure; this allows computed values
// and local definitions inside the file
package configuration
