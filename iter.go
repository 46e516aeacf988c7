// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap

import "iter"

// AllocateIterators defeats iterator reuse: when true, Entries, Keys
// and Values return a freshly allocated iterator on every call instead
// of toggling between the Map's two cached instances. Required for
// nested iteration over the same map from a single call site.
var AllocateIterators bool

// Iteration cursor positions that are not real slot indexes. indexZero
// is the synthetic position of the zero-key sentinel, visited first.
const (
	indexNone = -2
	indexZero = -1
)

// mapIterator is the cursor shared by Entries, Keys and Values. It
// walks the main table in ascending slot order skipping empties, then
// the stash, with the zero-key sentinel surfaced before both.
type mapIterator[K comparable, E any] struct {
	m            *Map[K, E]
	nextIndex    int
	currentIndex int
	hasNext      bool
	valid        bool
}

// Reset rewinds the iterator to the beginning of the map.
func (it *mapIterator[K, E]) Reset() {
	it.currentIndex = indexNone
	it.nextIndex = indexZero
	if it.m == nil {
		it.hasNext = false
		return
	}
	if it.m.hasZero {
		it.hasNext = true
		return
	}
	it.findNextIndex()
}

func (it *mapIterator[K, E]) findNextIndex() {
	var zeroK K
	it.hasNext = false
	n := it.m.capacity + it.m.stashSize
	for it.nextIndex++; it.nextIndex < n; it.nextIndex++ {
		if it.m.keys[it.nextIndex] != zeroK {
			it.hasNext = true
			return
		}
	}
}

func (it *mapIterator[K, E]) advance() bool {
	if !it.valid {
		panic("nested iteration requires cuckoomap.AllocateIterators")
	}
	if !it.hasNext {
		return false
	}
	it.currentIndex = it.nextIndex
	it.findNextIndex()
	return true
}

// Remove deletes the element most recently returned by Next from the
// underlying map. It panics if Next has not been called, or if the
// element has already been removed.
//
// A removed main-table slot is cleared in place: slot identity is
// hash-determined, so no other entry can move into it. A removed stash
// slot is compacted and the cursor rewound so the entry moved into it
// is still visited.
func (it *mapIterator[K, E]) Remove() {
	if !it.valid {
		panic("nested iteration requires cuckoomap.AllocateIterators")
	}
	i := it.currentIndex
	if i < indexZero {
		panic("Remove called before Next")
	}
	m := it.m
	switch {
	case i == indexZero:
		var zeroE E
		m.zeroElem = zeroE
		m.hasZero = false
	case i >= m.capacity:
		m.removeStashIndex(i)
		it.nextIndex = i - 1
		it.findNextIndex()
	default:
		var zeroK K
		var zeroE E
		m.keys[i] = zeroK
		m.elems[i] = zeroE
	}
	it.currentIndex = indexNone
	m.size--
}

// Entries iterates over a Map's key/elem pairs.
type Entries[K comparable, E any] struct {
	mapIterator[K, E]
	ke KeyElem[K, E]
}

// Next moves the iterator to the next entry. Next returns false when
// the iterator is complete.
func (e *Entries[K, E]) Next() bool {
	if !e.advance() {
		var zero KeyElem[K, E]
		e.ke = zero
		return false
	}
	if e.currentIndex == indexZero {
		var zeroK K
		e.ke = KeyElem[K, E]{Key: zeroK, Elem: e.m.zeroElem}
	} else {
		e.ke = KeyElem[K, E]{Key: e.m.keys[e.currentIndex], Elem: e.m.elems[e.currentIndex]}
	}
	return true
}

// Key returns the key at the iterator's current position. This is only
// valid after a call to Next() that returns true.
func (e *Entries[K, E]) Key() K {
	return e.ke.Key
}

// Elem returns the element at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (e *Entries[K, E]) Elem() E {
	return e.ke.Elem
}

// Keys iterates over a Map's keys.
type Keys[K comparable, E any] struct {
	mapIterator[K, E]
	key K
}

// Next moves the iterator to the next key. Next returns false when the
// iterator is complete.
func (k *Keys[K, E]) Next() bool {
	if !k.advance() {
		var zeroK K
		k.key = zeroK
		return false
	}
	if k.currentIndex == indexZero {
		var zeroK K
		k.key = zeroK
	} else {
		k.key = k.m.keys[k.currentIndex]
	}
	return true
}

// Key returns the key at the iterator's current position. This is only
// valid after a call to Next() that returns true.
func (k *Keys[K, E]) Key() K {
	return k.key
}

// Values iterates over a Map's elements.
type Values[K comparable, E any] struct {
	mapIterator[K, E]
	elem E
}

// Next moves the iterator to the next element. Next returns false when
// the iterator is complete.
func (v *Values[K, E]) Next() bool {
	if !v.advance() {
		var zeroE E
		v.elem = zeroE
		return false
	}
	if v.currentIndex == indexZero {
		v.elem = v.m.zeroElem
	} else {
		v.elem = v.m.elems[v.currentIndex]
	}
	return true
}

// Elem returns the element at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (v *Values[K, E]) Elem() E {
	return v.elem
}

func newEntries[K comparable, E any](m *Map[K, E]) *Entries[K, E] {
	e := &Entries[K, E]{}
	e.m = m
	e.valid = true
	e.Reset()
	return e
}

func newKeys[K comparable, E any](m *Map[K, E]) *Keys[K, E] {
	k := &Keys[K, E]{}
	k.m = m
	k.valid = true
	k.Reset()
	return k
}

func newValues[K comparable, E any](m *Map[K, E]) *Values[K, E] {
	v := &Values[K, E]{}
	v.m = m
	v.valid = true
	v.Reset()
	return v
}

// Entries returns an iterator over m's key/elem pairs. Unless
// AllocateIterators is set, the same two iterator instances are reused
// in alternation: obtaining one invalidates the other, and using an
// invalidated iterator panics. This keeps sequential iteration free of
// per-call allocation; nested iteration needs AllocateIterators.
func (m *Map[K, E]) Entries() *Entries[K, E] {
	if m == nil || AllocateIterators {
		return newEntries(m)
	}
	if m.entries1 == nil {
		m.entries1 = newEntries(m)
		m.entries2 = newEntries(m)
	}
	if !m.entries1.valid {
		m.entries1.Reset()
		m.entries1.valid = true
		m.entries2.valid = false
		return m.entries1
	}
	m.entries2.Reset()
	m.entries2.valid = true
	m.entries1.valid = false
	return m.entries2
}

// Keys returns an iterator over m's keys, with the same reuse contract
// as Entries.
func (m *Map[K, E]) Keys() *Keys[K, E] {
	if m == nil || AllocateIterators {
		return newKeys(m)
	}
	if m.keys1 == nil {
		m.keys1 = newKeys(m)
		m.keys2 = newKeys(m)
	}
	if !m.keys1.valid {
		m.keys1.Reset()
		m.keys1.valid = true
		m.keys2.valid = false
		return m.keys1
	}
	m.keys2.Reset()
	m.keys2.valid = true
	m.keys1.valid = false
	return m.keys2
}

// Values returns an iterator over m's elements, with the same reuse
// contract as Entries.
func (m *Map[K, E]) Values() *Values[K, E] {
	if m == nil || AllocateIterators {
		return newValues(m)
	}
	if m.values1 == nil {
		m.values1 = newValues(m)
		m.values2 = newValues(m)
	}
	if !m.values1.valid {
		m.values1.Reset()
		m.values1.valid = true
		m.values2.valid = false
		return m.values1
	}
	m.values2.Reset()
	m.values2.valid = true
	m.values1.valid = false
	return m.values2
}

// All returns an iterator over key-value pairs from m. The underlying
// iterator is freshly allocated, so All does not participate in the
// reuse contract and is safe to nest.
func (m *Map[K, E]) All() iter.Seq2[K, E] {
	return func(yield func(K, E) bool) {
		for it := newEntries(m); it.Next(); {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}
