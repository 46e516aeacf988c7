// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap_test

import (
	"fmt"

	"github.com/aristanetworks/cuckoomap"
)

func ExampleMap_Entries() {
	m := cuckoomap.NewOf(
		cuckoomap.KeyElem[string, string]{"Avenue", "AVE"},
		cuckoomap.KeyElem[string, string]{"Street", "ST"},
		cuckoomap.KeyElem[string, string]{"Court", "CT"},
	)

	for it := m.Entries(); it.Next(); {
		fmt.Printf("The abbreviation for %q is %q", it.Key(), it.Elem())
	}
}

func ExampleMap_All() {
	m := cuckoomap.NewOf(
		cuckoomap.KeyElem[string, int]{"one", 1},
		cuckoomap.KeyElem[string, int]{"two", 2},
	)

	for k, v := range m.All() {
		fmt.Println(k, v)
	}
}
