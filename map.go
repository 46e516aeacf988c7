// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cuckoomap provides the Map type, a hash table using three-way
// cuckoo hashing with a small overflow stash. Lookup, insertion and
// removal perform no heap allocation after the backing table is sized,
// which makes Map suitable for hot loops that cannot tolerate GC
// pressure.
//
// Keys are compared with ==. The zero value of the key type is a legal
// key: it is held in a dedicated slot outside the hashed region, so the
// full key domain is supported even though the zero value marks empty
// table slots internally.
//
// The following requirements are the user's responsibility to follow:
//   - A Map must be created with New, NewHint or NewOf.
//   - A Map is not safe for concurrent use.
//   - Keys must compare equal to themselves. Be careful around NaN
//     float key values: NaN != NaN, so such a key inserts a fresh
//     entry every time and can never be looked up or deleted. Go's
//     built-in map has special cases for handling this, but Map does
//     not.
//   - If a custom hash function is supplied it must be consistent with
//     ==: equal keys must produce equal hashes. For good performance it
//     should return uniformly distributed data across the entire 64
//     bits of the value.
package cuckoomap

// Collision resolution works as follows. Every key has three candidate
// buckets, all derived from one 64-bit hash: the first is the masked
// hash, the second and third multiply the hash by distinct large odd
// constants and fold the high bits down before masking. A lookup probes
// those three slots and then linearly scans the stash region appended
// past the main table.
//
// An insert that finds all three candidates occupied performs a bounded
// random walk of displacements: it swaps the incoming pair into one of
// the three slots picked at random, then tries to place the evicted
// pair in one of its own candidate buckets, repeating up to
// pushIterations times. A walk that fails to terminate within the bound
// parks the last evicted pair in the stash. Overflowing the stash
// doubles the table and rehashes, since that means the table is too
// small for its current hash distribution.
//
// Unlike a linear open-addressing table, removal clears the slot in
// place. Slot identity is hash-determined, not positional, so there is
// no gap to close. Only the stash is kept dense, by moving its last
// entry into a freed stash slot.

import (
	"hash/maphash"
	"math"
	"math/bits"

	"golang.org/x/exp/rand"
)

const (
	// Hard ceiling on the main table capacity. Past this the index
	// arithmetic for the stash region appended at capacity+stashSize
	// could overflow.
	maxCapacity = 1 << 30

	defaultCapacity   = 51
	defaultLoadFactor = 0.8

	// Multipliers for the second and third candidate bucket. Large, odd
	// and distinct so the three indices are pseudo-independent while
	// only one hash is computed per key.
	prime2 uint64 = 0xc2b2ae3d27d4eb4f
	prime3 uint64 = 0x165667b19e3779f9
)

// Map implements a hash table using three-way cuckoo hashing.
type Map[K comparable, E any] struct {
	size int // # live cells, including the zero-key slot

	// Parallel key/elem storage. Indexes [0, capacity) are the hashed
	// region, [capacity, capacity+stashSize) are the stash.
	keys  []K
	elems []E

	capacity  int
	stashSize int

	// The zero key lives outside the hashed region because the zero
	// value of K marks an empty table slot.
	zeroElem E
	hasZero  bool

	// Derived from capacity and loadFactor, recomputed together on
	// every capacity change.
	loadFactor     float64
	hashShift      uint
	mask           uint64
	threshold      int
	stashCapacity  int
	pushIterations int

	seed maphash.Seed
	hash func(maphash.Seed, K) uint64
	rng  *rand.Rand

	entries1, entries2 *Entries[K, E]
	keys1, keys2       *Keys[K, E]
	values1, values2   *Values[K, E]
}

// KeyElem contains a Key and Elem.
type KeyElem[K comparable, E any] struct {
	Key  K
	Elem E
}

// Option configures a Map created by New or NewHint.
type Option[K comparable, E any] func(*Map[K, E])

// WithHash overrides the default hash function. The hash function is
// passed the Map's [hash/maphash.Seed], which is meant to be used with
// functions in the [hash/maphash] package, though it can be ignored.
func WithHash[K comparable, E any](hash func(maphash.Seed, K) uint64) Option[K, E] {
	return func(m *Map[K, E]) {
		m.hash = hash
	}
}

// WithLoadFactor overrides the default load factor of 0.8. It must be
// greater than 0 and at most 1.
func WithLoadFactor[K comparable, E any](loadFactor float64) Option[K, E] {
	return func(m *Map[K, E]) {
		m.loadFactor = loadFactor
	}
}

// WithRand overrides the random source used to break ties during the
// eviction walk. Supplying a seeded source makes insertion behavior
// deterministic, which is useful in tests.
func WithRand[K comparable, E any](rng *rand.Rand) Option[K, E] {
	return func(m *Map[K, E]) {
		m.rng = rng
	}
}

// New instantiates a new Map with a small default capacity.
func New[K comparable, E any](opts ...Option[K, E]) *Map[K, E] {
	return NewHint[K, E](defaultCapacity, opts...)
}

// NewHint instantiates a new Map sized to hold hint elements without
// growing.
func NewHint[K comparable, E any](hint int, opts ...Option[K, E]) *Map[K, E] {
	m := &Map[K, E]{
		loadFactor: defaultLoadFactor,
		seed:       maphash.MakeSeed(),
		hash:       maphash.Comparable[K],
		rng:        defaultRand,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.loadFactor <= 0 || m.loadFactor > 1 {
		panic("load factor must be in (0, 1]")
	}
	m.allocate(computeCapacity(hint, m.loadFactor))
	return m
}

// NewOf instantiates a new Map initialized with the KeyElems passed.
func NewOf[K comparable, E any](kes ...KeyElem[K, E]) *Map[K, E] {
	m := NewHint[K, E](len(kes))
	for _, ke := range kes {
		m.Set(ke.Key, ke.Elem)
	}
	return m
}

// computeCapacity converts a requested element count into a
// power-of-two table capacity that holds that many elements below the
// growth threshold.
func computeCapacity(requested int, loadFactor float64) int {
	if requested < 0 {
		panic("capacity must not be negative")
	}
	// Reject before the float conversion: a huge request would
	// overflow the int conversion below and sign-flip past the
	// ceiling check.
	if float64(requested) > float64(maxCapacity)*loadFactor {
		panic("capacity is too large")
	}
	c := nextPowerOfTwo(int(math.Ceil(float64(requested) / loadFactor)))
	if c > maxCapacity {
		panic("capacity is too large")
	}
	return c
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

// allocate installs fresh backing storage for capacity and recomputes
// every capacity-derived constant. The caller is responsible for the
// live entries of any previous storage.
func (m *Map[K, E]) allocate(capacity int) {
	m.capacity = capacity
	m.mask = uint64(capacity - 1)
	m.hashShift = uint(64 - bits.TrailingZeros(uint(capacity)))
	m.threshold = int(float64(capacity) * m.loadFactor)
	m.stashCapacity = stashCapacityFor(capacity)
	m.pushIterations = pushIterationsFor(capacity)
	m.stashSize = 0
	m.keys = make([]K, capacity+m.stashCapacity)
	m.elems = make([]E, capacity+m.stashCapacity)
}

// stashCapacityFor is 2*ceil(log2(capacity)), at least 3.
func stashCapacityFor(capacity int) int {
	s := 2 * bits.Len(uint(capacity-1))
	if s < 3 {
		s = 3
	}
	return s
}

// pushIterationsFor bounds the eviction walk. The bound converts
// pathological collision chains into a stash insert instead of
// non-termination.
func pushIterationsFor(capacity int) int {
	p := int(math.Sqrt(float64(capacity))) / 8
	if q := min(capacity, 8); p < q {
		p = q
	}
	return p
}

func (m *Map[K, E]) index2(h uint64) int {
	h *= prime2
	return int((h ^ h>>m.hashShift) & m.mask)
}

func (m *Map[K, E]) index3(h uint64) int {
	h *= prime3
	return int((h ^ h>>m.hashShift) & m.mask)
}

// Len returns the count of occupied elements in m.
func (m *Map[K, E]) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Empty reports whether m holds no elements.
func (m *Map[K, E]) Empty() bool {
	return m.Len() == 0
}

// Get returns the element associated with key and true if that key is
// in the Map, otherwise it returns the zero value of E and false.
func (m *Map[K, E]) Get(key K) (E, bool) {
	var zeroE E
	if m == nil || m.size == 0 {
		return zeroE, false
	}
	var zeroK K
	if key == zeroK {
		if !m.hasZero {
			return zeroE, false
		}
		return m.zeroElem, true
	}
	h := m.hash(m.seed, key)
	if i := int(h & m.mask); m.keys[i] == key {
		return m.elems[i], true
	}
	if i := m.index2(h); m.keys[i] == key {
		return m.elems[i], true
	}
	if i := m.index3(h); m.keys[i] == key {
		return m.elems[i], true
	}
	if i := m.stashIndex(key); i >= 0 {
		return m.elems[i], true
	}
	return zeroE, false
}

// GetOrDefault returns the element associated with key, or def if the
// key is not in the Map.
func (m *Map[K, E]) GetOrDefault(key K, def E) E {
	if e, ok := m.Get(key); ok {
		return e
	}
	return def
}

// Contains reports whether key is in the Map.
func (m *Map[K, E]) Contains(key K) bool {
	if m == nil || m.size == 0 {
		return false
	}
	var zeroK K
	if key == zeroK {
		return m.hasZero
	}
	h := m.hash(m.seed, key)
	if m.keys[int(h&m.mask)] == key {
		return true
	}
	if m.keys[m.index2(h)] == key {
		return true
	}
	if m.keys[m.index3(h)] == key {
		return true
	}
	return m.stashIndex(key) >= 0
}

// stashIndex linearly scans the stash region for key. There is no
// hashing within the stash.
func (m *Map[K, E]) stashIndex(key K) int {
	for i := m.capacity; i < m.capacity+m.stashSize; i++ {
		if m.keys[i] == key {
			return i
		}
	}
	return -1
}

// Set associates key with elem in m, returning the element previously
// associated with key and true if there was one.
func (m *Map[K, E]) Set(key K, elem E) (E, bool) {
	if m == nil {
		panic("Set called on nil map")
	}
	var zeroK K
	var zeroE E
	if key == zeroK {
		prev, had := m.zeroElem, m.hasZero
		m.zeroElem = elem
		if !had {
			m.hasZero = true
			m.size++
			return zeroE, false
		}
		return prev, true
	}

	h := m.hash(m.seed, key)
	i1 := int(h & m.mask)
	key1 := m.keys[i1]
	if key1 == key {
		prev := m.elems[i1]
		m.elems[i1] = elem
		return prev, true
	}
	i2 := m.index2(h)
	key2 := m.keys[i2]
	if key2 == key {
		prev := m.elems[i2]
		m.elems[i2] = elem
		return prev, true
	}
	i3 := m.index3(h)
	key3 := m.keys[i3]
	if key3 == key {
		prev := m.elems[i3]
		m.elems[i3] = elem
		return prev, true
	}
	if i := m.stashIndex(key); i >= 0 {
		prev := m.elems[i]
		m.elems[i] = elem
		return prev, true
	}

	// New key. Occupy the first empty candidate bucket, trying index1
	// first for locality at low load.
	if key1 == zeroK {
		m.keys[i1] = key
		m.elems[i1] = elem
		m.inserted()
		return zeroE, false
	}
	if key2 == zeroK {
		m.keys[i2] = key
		m.elems[i2] = elem
		m.inserted()
		return zeroE, false
	}
	if key3 == zeroK {
		m.keys[i3] = key
		m.elems[i3] = elem
		m.inserted()
		return zeroE, false
	}

	m.push(key, elem, i1, key1, i2, key2, i3, key3)
	return zeroE, false
}

// setResize inserts a key known to be absent from the hashed region.
// Used while rehashing, where the duplicate-key search would be wasted
// work on keys that are already known distinct.
func (m *Map[K, E]) setResize(key K, elem E) {
	var zeroK K
	if key == zeroK {
		if !m.hasZero {
			m.hasZero = true
			m.size++
		}
		m.zeroElem = elem
		return
	}
	h := m.hash(m.seed, key)
	i1 := int(h & m.mask)
	key1 := m.keys[i1]
	if key1 == zeroK {
		m.keys[i1] = key
		m.elems[i1] = elem
		m.inserted()
		return
	}
	i2 := m.index2(h)
	key2 := m.keys[i2]
	if key2 == zeroK {
		m.keys[i2] = key
		m.elems[i2] = elem
		m.inserted()
		return
	}
	i3 := m.index3(h)
	key3 := m.keys[i3]
	if key3 == zeroK {
		m.keys[i3] = key
		m.elems[i3] = elem
		m.inserted()
		return
	}
	m.push(key, elem, i1, key1, i2, key2, i3, key3)
}

func (m *Map[K, E]) inserted() {
	m.size++
	if m.size >= m.threshold {
		m.resize(m.capacity << 1)
	}
}

// push performs the bounded random-walk eviction. All three candidates
// for the incoming pair are occupied: swap the pair into one of them at
// random, then try to place the evicted pair in one of its own
// candidate buckets, repeating up to pushIterations times. On
// exhaustion the last evicted pair goes to the stash.
func (m *Map[K, E]) push(insertKey K, insertElem E,
	i1 int, key1 K, i2 int, key2 K, i3 int, key3 K) {

	var zeroK K
	var evictedKey K
	var evictedElem E
	for i := 0; ; {
		switch m.rng.Intn(3) {
		case 0:
			evictedKey, evictedElem = key1, m.elems[i1]
			m.keys[i1], m.elems[i1] = insertKey, insertElem
		case 1:
			evictedKey, evictedElem = key2, m.elems[i2]
			m.keys[i2], m.elems[i2] = insertKey, insertElem
		default:
			evictedKey, evictedElem = key3, m.elems[i3]
			m.keys[i3], m.elems[i3] = insertKey, insertElem
		}

		h := m.hash(m.seed, evictedKey)
		i1 = int(h & m.mask)
		key1 = m.keys[i1]
		if key1 == zeroK {
			m.keys[i1] = evictedKey
			m.elems[i1] = evictedElem
			m.inserted()
			return
		}
		i2 = m.index2(h)
		key2 = m.keys[i2]
		if key2 == zeroK {
			m.keys[i2] = evictedKey
			m.elems[i2] = evictedElem
			m.inserted()
			return
		}
		i3 = m.index3(h)
		key3 = m.keys[i3]
		if key3 == zeroK {
			m.keys[i3] = evictedKey
			m.elems[i3] = evictedElem
			m.inserted()
			return
		}

		i++
		if i == m.pushIterations {
			break
		}
		insertKey, insertElem = evictedKey, evictedElem
	}
	m.putStash(evictedKey, evictedElem)
}

func (m *Map[K, E]) putStash(key K, elem E) {
	if m.stashSize == m.stashCapacity {
		// A full stash means the table is too small for its current
		// hash distribution. Grow and insert through the resize path.
		m.resize(m.capacity << 1)
		m.setResize(key, elem)
		return
	}
	i := m.capacity + m.stashSize
	m.keys[i] = key
	m.elems[i] = elem
	m.stashSize++
	m.size++
}

// Delete removes key from the Map, returning the element previously
// associated with it and true if there was one.
func (m *Map[K, E]) Delete(key K) (E, bool) {
	var zeroE E
	if m == nil || m.size == 0 {
		return zeroE, false
	}
	var zeroK K
	if key == zeroK {
		if !m.hasZero {
			return zeroE, false
		}
		prev := m.zeroElem
		m.zeroElem = zeroE
		m.hasZero = false
		m.size--
		return prev, true
	}
	h := m.hash(m.seed, key)
	if i := int(h & m.mask); m.keys[i] == key {
		return m.clearSlot(i), true
	}
	if i := m.index2(h); m.keys[i] == key {
		return m.clearSlot(i), true
	}
	if i := m.index3(h); m.keys[i] == key {
		return m.clearSlot(i), true
	}
	if i := m.stashIndex(key); i >= 0 {
		prev := m.elems[i]
		m.removeStashIndex(i)
		m.size--
		return prev, true
	}
	return zeroE, false
}

func (m *Map[K, E]) clearSlot(i int) E {
	var zeroK K
	var zeroE E
	prev := m.elems[i]
	// Clear key and elem in case they have pointers
	m.keys[i] = zeroK
	m.elems[i] = zeroE
	m.size--
	return prev
}

// removeStashIndex moves the last stash entry into the freed slot so
// the stash region stays dense. The caller adjusts size.
func (m *Map[K, E]) removeStashIndex(i int) {
	m.stashSize--
	last := m.capacity + m.stashSize
	var zeroK K
	var zeroE E
	if i < last {
		m.keys[i] = m.keys[last]
		m.elems[i] = m.elems[last]
	}
	m.keys[last] = zeroK
	m.elems[last] = zeroE
}

// EnsureCapacity grows the backing table, if necessary, so that
// additional more elements can be inserted without further growth.
func (m *Map[K, E]) EnsureCapacity(additional int) {
	if additional < 0 {
		panic("additional capacity must not be negative")
	}
	needed := m.size + additional
	if needed >= m.threshold {
		m.resize(computeCapacity(needed, m.loadFactor))
	}
}

// Shrink reduces the backing table to the smallest capacity that holds
// maximumCapacity elements, or the current size if that is larger.
// Useful after a map has grown far past its steady-state size.
func (m *Map[K, E]) Shrink(maximumCapacity int) {
	if maximumCapacity < 0 {
		panic("maximum capacity must not be negative")
	}
	if m.size > maximumCapacity {
		maximumCapacity = m.size
	}
	if c := computeCapacity(maximumCapacity, m.loadFactor); c < m.capacity {
		m.resize(c)
	}
}

// Clear deletes all keys from m, retaining the backing table.
func (m *Map[K, E]) Clear() {
	if m == nil || m.size == 0 {
		return
	}
	clear(m.keys)
	clear(m.elems)
	var zeroE E
	m.zeroElem = zeroE
	m.hasZero = false
	m.size = 0
	m.stashSize = 0
}

// ClearCap deletes all keys from m and shrinks the backing table if it
// has grown past what maximumCapacity elements require.
func (m *Map[K, E]) ClearCap(maximumCapacity int) {
	c := computeCapacity(maximumCapacity, m.loadFactor)
	if c >= m.capacity {
		m.Clear()
		return
	}
	var zeroE E
	m.zeroElem = zeroE
	m.hasZero = false
	m.size = 0
	m.allocate(c)
}

// resize replaces the backing table and reinserts every live entry.
// Reinsertion goes through setResize, which still exercises the
// eviction walk and may recursively grow again if the new table is
// unexpectedly dense.
func (m *Map[K, E]) resize(newCapacity int) {
	if newCapacity > maxCapacity {
		panic("capacity is too large")
	}
	oldEnd := m.capacity + m.stashSize
	oldKeys, oldElems := m.keys, m.elems

	m.allocate(newCapacity)
	m.size = 0
	if m.hasZero {
		m.size = 1
	}

	var zeroK K
	for i := 0; i < oldEnd; i++ {
		if k := oldKeys[i]; k != zeroK {
			m.setResize(k, oldElems[i])
		}
	}
}
