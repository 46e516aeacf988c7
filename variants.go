// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap

// The engine is generic over key and elem representations, so the
// traditional specializations are just aliases. An identity-keyed map
// needs no alias at all: == on a pointer key type is reference
// identity, so Map[*T, E] compares keys by identity already.

// Int32Map is a Map keyed by int32. The key 0 is fully supported; it
// occupies the zero-key sentinel slot rather than a hashed slot.
type Int32Map[E any] = Map[int32, E]

// Int64Map is a Map keyed by int64, with the same treatment of key 0.
type Int64Map[E any] = Map[int64, E]

// Float64Map is a Map holding unboxed float64 elements.
type Float64Map[K comparable] = Map[K, float64]
