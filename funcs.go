// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap

import (
	"fmt"
	"hash/maphash"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts m to a string representation using K's and E's
// String functions.
func String[K interface {
	comparable
	fmt.Stringer
}, E fmt.Stringer](m *Map[K, E]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(elem E) string { return elem.String() },
	)
}

type strKE struct {
	k string
	e string
}

// StringFunc converts m to a string representation with the help of
// strK and strE functions to stringify m's keys and elems.
func StringFunc[K comparable, E any](m *Map[K, E],
	strK func(key K) string,
	strE func(elem E) string) string {
	if m == nil || m.Len() == 0 {
		return "cuckoomap.Map[]"
	}
	strs := make([]strKE, m.Len())
	s := 0
	i := 0
	for k, e := range m.All() {
		ke := &strs[i]
		ke.k = strK(k)
		ke.e = strE(e)
		s += len(ke.k) + len(ke.e)
		i++
	}
	slices.SortFunc(strs, func(a, b strKE) bool { return a.k < b.k })

	var b strings.Builder
	b.Grow(len("cuckoomap.Map[]") + // space for header and footer
		len(strs)*2 - 1 + // space for delimiters
		s) // space for keys and elems
	b.WriteString("cuckoomap.Map[")
	for i, ke := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(ke.k)
		b.WriteByte(':')
		b.WriteString(ke.e)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if the same set of keys and elems are in m1 and
// m2. Elements are compared using ==. Slot order is irrelevant.
func Equal[K comparable, E comparable](m1, m2 *Map[K, E]) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for k, e := range m1.All() {
		e2, ok := m2.Get(k)
		if !ok || e != e2 {
			return false
		}
	}
	return true
}

// EqualFunc returns true if the same set of keys and elems are in m1
// and m2. Elements are compared using eq.
func EqualFunc[K comparable, E any](m1, m2 *Map[K, E], eq func(E, E) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for k, e := range m1.All() {
		e2, ok := m2.Get(k)
		if !ok || !eq(e, e2) {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of m's live key/elem pairs.
// Maps that are Equal hash to the same value under the same seed.
func Hash[K, E comparable](seed maphash.Seed, m *Map[K, E]) uint64 {
	return HashFunc(m,
		func(k K) uint64 { return maphash.Comparable(seed, k) },
		func(e E) uint64 { return maphash.Comparable(seed, e) })
}

// HashFunc returns an order-independent hash of m's live key/elem
// pairs using the supplied key and elem hash functions.
func HashFunc[K comparable, E any](m *Map[K, E],
	hashK func(K) uint64, hashE func(E) uint64) uint64 {
	var sum uint64
	for k, e := range m.All() {
		sum += hashK(k) ^ hashE(e)
	}
	return sum
}

// ContainsElem reports whether elem is associated with any key in m.
// Elements are compared using ==, which is reference identity for
// pointer element types. This is a full scan of the table.
func ContainsElem[K comparable, E comparable](m *Map[K, E], elem E) bool {
	return ContainsElemFunc(m, func(e E) bool { return e == elem })
}

// ContainsElemFunc reports whether any element in m satisfies match.
func ContainsElemFunc[K comparable, E any](m *Map[K, E], match func(E) bool) bool {
	_, _, ok := findKey(m, match)
	return ok
}

// FindKey returns some key associated with elem, and true if one was
// found. If multiple keys map to elem it is unspecified which is
// returned.
func FindKey[K comparable, E comparable](m *Map[K, E], elem E) (K, bool) {
	return FindKeyFunc(m, func(e E) bool { return e == elem })
}

// FindKeyFunc returns some key whose element satisfies match, and true
// if one was found.
func FindKeyFunc[K comparable, E any](m *Map[K, E], match func(E) bool) (K, bool) {
	k, _, ok := findKey(m, match)
	return k, ok
}

func findKey[K comparable, E any](m *Map[K, E], match func(E) bool) (K, E, bool) {
	var zeroK K
	var zeroE E
	if m == nil || m.size == 0 {
		return zeroK, zeroE, false
	}
	if m.hasZero && match(m.zeroElem) {
		return zeroK, m.zeroElem, true
	}
	for i := 0; i < m.capacity+m.stashSize; i++ {
		if m.keys[i] != zeroK && match(m.elems[i]) {
			return m.keys[i], m.elems[i], true
		}
	}
	return zeroK, zeroE, false
}
