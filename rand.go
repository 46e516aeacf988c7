// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cuckoomap

import (
	randv2 "math/rand/v2"

	"golang.org/x/exp/rand"
)

// defaultRand is the process-wide source backing eviction-walk
// tie-breaking for maps that don't supply their own via WithRand. It is
// not safe for use from multiple goroutines, matching the Map itself.
var defaultRand = rand.New(rand.NewSource(randv2.Uint64()))
