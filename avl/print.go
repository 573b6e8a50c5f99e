// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
)

// to control the print routine
type branch int

const (
	root  branch = iota
	lSide branch = iota
	rSide branch = iota
)

// Print - display an ASCII graphic representation of the tree
func (tree *Tree) Print(printData bool) int {
	return printTree(tree.root, "", root, printData)
}

// internal print - returns the maximum depth of the tree
func printTree(p *Node, prefix string, br branch, printData bool) int {
	if nil == p {
		return 0
	}
	rd := 0
	ld := 0
	if nil != p.children[right] {
		t := "       "
		if lSide == br {
			t = "|      "
		}
		rd = printTree(p.children[right], prefix+t, rSide, printData)
	}
	switch br {
	case root:
		fmt.Printf("%s|------+ ", prefix)
	case lSide:
		fmt.Printf("%s\\------+ ", prefix)
	case rSide:
		fmt.Printf("%s/------+ ", prefix)
	}
	if printData {
		fmt.Printf("%q → %q h:%d\n", p.key, p.value, p.height)
	} else {
		fmt.Printf("%q\n", p.key)
	}
	if nil != p.children[left] {
		t := "       "
		if rSide == br {
			t = "|      "
		}
		ld = printTree(p.children[left], prefix+t, lSide, printData)
	}
	if rd > ld {
		return 1 + rd
	}
	return 1 + ld
}
