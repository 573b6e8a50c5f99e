// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/bitmark-inc/container/avl"
	"github.com/bitmark-inc/container/fault"
)

type stringItem struct {
	s string
}

func (s stringItem) String() string {
	return s.s
}

func (s stringItem) Compare(x interface{}) int {
	return strings.Compare(s.s, x.(stringItem).s)
}

func TestListShort(t *testing.T) {
	addList := []stringItem{
		{"4201"}, {"1254"}, {"8608"}, {"1639"}, {"8950"},
		{"6740"},
	}
	doList(t, addList)
	doTraverse(t, addList)
}

// to make sure that lots of duplicates do not increment the node
// count incorrectly
func TestListDuplicates(t *testing.T) {
	addList := []stringItem{
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1247"},
		{"1250"}, {"1264"}, {"1258"}, {"1255"}, {"2247"},
		{"2004"}, {"2194"}, {"2644"}, {"2169"}, {"8133"},
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1247"},
		{"1250"}, {"1264"}, {"1258"}, {"1255"}, {"2247"},
		{"2247"}, {"2247"}, {"2247"}, {"2247"}, {"2247"},
	}
	doList(t, addList)
	doTraverse(t, addList)
}

func TestListLong(t *testing.T) {
	// deterministic pseudo-random key list with some repeats
	addList := make([]stringItem, 0, 220)
	n := uint32(12345)
	for i := 0; i < 220; i += 1 {
		n = n*1103515245 + 12345
		addList = append(addList, stringItem{fmt.Sprintf("%04d", n%10000)})
	}
	doList(t, addList)
	doTraverse(t, addList)
}

// insert all keys then delete a prefix, checking invariants at every
// split point
func doList(t *testing.T, addList []stringItem) {

	for i := 0; i < len(addList)+1; i += 1 {

		alreadyDeleted := make(map[stringItem]struct{})

		tree := avl.New(len(addList), avl.FreeList)
		for _, key := range addList {
			_, _, err := tree.Insert(key, "data:"+key.String())
			if nil != err {
				t.Fatalf("insert: %q returned error: %s", key, err)
			}
		}

		if err := tree.CheckInvariants(); nil != err {
			depth := tree.Print(true)
			t.Logf("depth: %d", depth)
			t.Fatalf("add: inconsistent tree: %s", err)
		}

	delete_items:
		for _, key := range addList[:i] {
			if _, ok := alreadyDeleted[key]; ok {
				continue delete_items
			}
			alreadyDeleted[key] = struct{}{}
			dv, found := tree.Delete(key)
			if !found {
				t.Fatalf("delete: %q not found", key)
			}
			ev := "data:" + key.String()
			if dv != ev {
				t.Fatalf("delete returned: %q  expected: %q", dv, ev)
			}
		}

		if err := tree.CheckInvariants(); nil != err {
			depth := tree.Print(true)
			t.Logf("depth: %d", depth)
			t.Fatalf("delete: inconsistent tree: %s", err)
		}

	delete_remainder:
		for _, key := range addList[i:] {
			if _, ok := alreadyDeleted[key]; ok {
				continue delete_remainder
			}
			alreadyDeleted[key] = struct{}{}
			dv, found := tree.Delete(key)
			if !found {
				t.Fatalf("delete: %q not found", key)
			}
			ev := "data:" + key.String()
			if dv != ev {
				t.Fatalf("delete returned: %q  expected: %q", dv, ev)
			}
		}
		if !tree.IsEmpty() {
			depth := tree.Print(true)
			t.Logf("depth: %d", depth)
			t.Fatal("remaining nodes")
		}
		tree.Destroy()
	}
}

// traverse the tree to check in-order iteration
func doTraverse(t *testing.T, addList []stringItem) {

	unique := make(map[string]struct{})
	tree := avl.New(len(addList), avl.FreeList)
	for _, key := range addList {
		unique[key.String()] = struct{}{}
		_, _, err := tree.Insert(key, "data:"+key.String())
		if nil != err {
			t.Fatalf("insert: %q returned error: %s", key, err)
		}
	}

	expected := make([]string, 0, len(unique))
	for key := range unique {
		expected = append(expected, key)
	}
	sort.Strings(expected)

	actual := make([]string, 0, len(expected))
	tree.Ascend(func(key interface{}, value interface{}) bool {
		k := key.(stringItem)
		ev := "data:" + k.String()
		if value != ev {
			t.Fatalf("traverse: value: %q  expected: %q", value, ev)
		}
		actual = append(actual, k.String())
		return true
	})

	if len(actual) != len(expected) {
		t.Fatalf("traverse count: actual: %d  expected: %d", len(actual), len(expected))
	}
	for i, k := range expected {
		if actual[i] != k {
			t.Fatalf("traverse item: actual: %q  expected: %q", actual[i], k)
		}
	}
	if len(actual) != tree.Count() {
		t.Fatalf("tree count: actual: %d  expected: %d", tree.Count(), len(actual))
	}

	if first := tree.First(); nil == first {
		t.Fatal("no first item")
	} else if first.Key().(stringItem).String() != expected[0] {
		t.Fatalf("first: actual: %q  expected: %q", first.Key(), expected[0])
	}
	if last := tree.Last(); nil == last {
		t.Fatal("no last item")
	} else if last.Key().(stringItem).String() != expected[len(expected)-1] {
		t.Fatalf("last: actual: %q  expected: %q", last.Key(), expected[len(expected)-1])
	}

	// early stop after three items
	n := 0
	tree.Ascend(func(key interface{}, value interface{}) bool {
		n += 1
		return n < 3
	})
	if len(expected) >= 3 && 3 != n {
		t.Fatalf("early stop: visited: %d  expected: 3", n)
	}
	tree.Destroy()
}

func makeKey() stringItem {

	b := make([]byte, 4)
	_, err := rand.Read(b)
	if nil != err {
		panic("rand failed")
	}
	n := int(binary.BigEndian.Uint32(b))
	return stringItem{fmt.Sprintf("%04d", n%10000)}
}

func TestRandomTree(t *testing.T) {

	randomTree(t, 2200, 2000)
	randomTree(t, 3400, 2760)
	randomTree(t, 5467, 1234)

	for i := 0; i < 5; i += 1 {
		randomTree(t, 2100, 2000)
	}
}

func randomTree(t *testing.T, total int, toDelete int) {

	if toDelete > total {
		t.Fatalf("failed: total: %d  < deletions: %d", total, toDelete)
	}

	tree := avl.New(total, avl.FreeList)
	defer tree.Destroy()
	d := make([]stringItem, toDelete)

	for i := 0; i < total; i += 1 {
		key := makeKey()
		if i < len(d) {
			d[i] = key
		}
		_, _, err := tree.Insert(key, "data:"+key.String())
		if nil != err {
			t.Fatalf("insert: %q returned error: %s", key, err)
		}
	}

	if err := tree.CheckInvariants(); nil != err {
		depth := tree.Print(true)
		t.Logf("depth: %d", depth)
		t.Fatalf("inconsistent tree: %s", err)
	}

	for _, key := range d {
		tree.Delete(key)
		if err := tree.CheckInvariants(); nil != err {
			depth := tree.Print(true)
			t.Logf("depth: %d", depth)
			t.Fatalf("inconsistent tree: %s", err)
		}
	}
}

// repeated fill and empty cycles must never report a spurious
// capacity error while the live count is below capacity
func TestCycleReuse(t *testing.T) {

	const capacity = 8
	tree := avl.New(capacity, avl.FreeList)
	defer tree.Destroy()

	for cycle := 0; cycle < 100; cycle += 1 {
		for i := 0; i < capacity; i += 1 {
			key := stringItem{fmt.Sprintf("%d-%d", cycle, i)}
			_, _, err := tree.Insert(key, i)
			if nil != err {
				t.Fatalf("cycle: %d insert: %d returned error: %s", cycle, i, err)
			}
		}
		if !tree.IsFull() {
			t.Fatalf("cycle: %d tree should be full", cycle)
		}
		_, _, err := tree.Insert(stringItem{"overflow"}, nil)
		if !fault.IsErrCapacity(err) {
			t.Fatalf("cycle: %d expected capacity error, got: %v", cycle, err)
		}
		for i := 0; i < capacity; i += 1 {
			key := stringItem{fmt.Sprintf("%d-%d", cycle, i)}
			if _, found := tree.Delete(key); !found {
				t.Fatalf("cycle: %d delete: %d not found", cycle, i)
			}
		}
		if !tree.IsEmpty() {
			t.Fatalf("cycle: %d tree should be empty", cycle)
		}
		if err := tree.CheckInvariants(); nil != err {
			t.Fatalf("cycle: %d inconsistent tree: %s", cycle, err)
		}
	}
}

// a tree built with an explicit predicate instead of the Item
// interface
func TestCompareFunc(t *testing.T) {

	tree := avl.NewFunc(10, func(a interface{}, b interface{}) int {
		return a.(int) - b.(int)
	}, avl.FreeList)
	defer tree.Destroy()

	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		_, _, err := tree.Insert(k, k*10)
		if nil != err {
			t.Fatalf("insert: %d returned error: %s", k, err)
		}
	}
	if err := tree.CheckInvariants(); nil != err {
		t.Fatalf("inconsistent tree: %s", err)
	}

	previous := -1
	tree.Ascend(func(key interface{}, value interface{}) bool {
		k := key.(int)
		if k <= previous {
			t.Fatalf("out of order: %d after %d", k, previous)
		}
		if value != k*10 {
			t.Fatalf("value: %v  expected: %d", value, k*10)
		}
		previous = k
		return true
	})
}
