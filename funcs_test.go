// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap

import (
	"hash/maphash"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringFunc(t *testing.T) {
	m := NewOf(
		KeyElem[string, int]{"abc", 1},
		KeyElem[string, int]{"def", 2},
		KeyElem[string, int]{"ghi", 3},
	)
	s := StringFunc(m,
		func(k string) string { return k },
		strconv.Itoa)
	assert.Equal(t, "cuckoomap.Map[abc:1 def:2 ghi:3]", s)

	assert.Equal(t, "cuckoomap.Map[]", StringFunc[string, int](nil, nil, nil))
	assert.Equal(t, "cuckoomap.Map[]", StringFunc(New[string, int](),
		func(k string) string { return k },
		strconv.Itoa))
}

func TestEqual(t *testing.T) {
	m1 := NewOf(
		KeyElem[string, int]{"a", 1},
		KeyElem[string, int]{"b", 2},
		KeyElem[string, int]{"", 3},
	)
	// Same content, different insertion order and hence slot layout.
	m2 := NewOf(
		KeyElem[string, int]{"", 3},
		KeyElem[string, int]{"b", 2},
		KeyElem[string, int]{"a", 1},
	)
	assert.True(t, Equal(m1, m2))
	assert.True(t, Equal(m2, m1))

	m2.Set("b", 99)
	assert.False(t, Equal(m1, m2))

	m2.Set("b", 2)
	m2.Set("c", 4)
	assert.False(t, Equal(m1, m2), "differing sizes are unequal")

	assert.True(t, Equal[string, int](nil, nil))
	assert.False(t, Equal(m1, nil))
}

func TestEqualFunc(t *testing.T) {
	m1 := NewOf(KeyElem[int, []int]{1, []int{1, 2}})
	m2 := NewOf(KeyElem[int, []int]{1, []int{1, 2}})
	m3 := NewOf(KeyElem[int, []int]{1, []int{2, 1}})

	sliceEq := func(a, b []int) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	assert.True(t, EqualFunc(m1, m2, sliceEq))
	assert.False(t, EqualFunc(m1, m3, sliceEq))
}

func TestHash(t *testing.T) {
	seed := maphash.MakeSeed()
	m1 := NewOf(
		KeyElem[string, int]{"a", 1},
		KeyElem[string, int]{"b", 2},
	)
	m2 := NewOf(
		KeyElem[string, int]{"b", 2},
		KeyElem[string, int]{"a", 1},
	)
	assert.Equal(t, Hash(seed, m1), Hash(seed, m2),
		"equal maps hash equal regardless of slot order")

	m2.Set("b", 3)
	assert.NotEqual(t, Hash(seed, m1), Hash(seed, m2))
}

func TestContainsElem(t *testing.T) {
	m := stashedMap(t)

	assert.True(t, ContainsElem(m, 0), "zero-slot element is scanned")
	assert.True(t, ContainsElem(m, 50))
	assert.False(t, ContainsElem(m, 51))
	assert.True(t, ContainsElemFunc(m, func(e int) bool { return e > 70 }))

	assert.False(t, ContainsElem[int, int](nil, 1))
}

func TestFindKey(t *testing.T) {
	m := stashedMap(t)

	k, ok := FindKey(m, 30)
	require.True(t, ok)
	assert.Equal(t, 3, k)

	k, ok = FindKey(m, 0)
	require.True(t, ok)
	assert.Equal(t, 0, k)

	_, ok = FindKey(m, 31)
	assert.False(t, ok)

	k, ok = FindKeyFunc(m, func(e int) bool { return e >= 80 })
	require.True(t, ok)
	assert.Equal(t, 8, k)
}
