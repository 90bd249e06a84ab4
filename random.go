// Copyright 2026 The Netloc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package netloc

import (
	"math/rand"
	"sync"
	"time"
)

var (
	seededRandom = rand.New(rand.NewSource(time.Now().UnixNano()))
	// The golang rand generators are *not* intrinsically thread-safe.
	seededRandomLock sync.Mutex
)

// Random returns uniformly distributed integers in [0, n).
type Random interface {
	Intn(n int) int
}

// SeededRandom draws from a process wide generator seeded at start up.
type SeededRandom struct{}

// Intn implements Random.
func (SeededRandom) Intn(n int) (i int) {
	seededRandomLock.Lock()
	i = seededRandom.Intn(n)
	seededRandomLock.Unlock()
	return
}

// LockedRandom is a Random with its own generator, for reproducible picks.
type LockedRandom struct {
	mtx sync.Mutex
	rnd *rand.Rand
}

// NewLockedRandom returns a LockedRandom seeded with seed.
func NewLockedRandom(seed int64) *LockedRandom {
	return &LockedRandom{rnd: rand.New(rand.NewSource(seed))}
}

// Intn implements Random.
func (r *LockedRandom) Intn(n int) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.rnd.Intn(n)
}
