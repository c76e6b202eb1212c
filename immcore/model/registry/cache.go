/*
   Copyright 2025 Justin Hughey

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	stderrors "errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jthughey/immutables/immcore/errors"
	"github.com/jthughey/immutables/immcore/model/record"
)

// Key identifies one declaration site in a Cache. Keys are caller-chosen;
// the only requirement is that distinct declaration sites use distinct
// keys.
type Key string

// errNilType reports a factory that returned neither a type nor an error.
var errNilType = stderrors.New("factory returned a nil type")

// Cache memoizes canonical record.Type instances by declaration key,
// guaranteeing that exactly one Type identity is ever observable for a
// given key, even under concurrent first access.
//
// The cache publishes an immutable map snapshot read without locking; the
// fast path never blocks. On a miss, the caller's factory runs outside the
// critical section (so concurrent first-time callers may each build a
// candidate), and an exclusive re-check decides publication: the first
// published value wins and late-built candidates are discarded. This
// prevents two distinct Type identities from ever being associated with the
// same key.
//
// The cache never evicts. Declaration sites are assumed finite and bounded
// (one per type declaration, not per request), so the mapping is permanent
// for the life of the process.
//
// A Cache is an explicit, injectable component; construct one with NewCache
// and share it where canonical types are needed. The zero value is also
// ready for use.
type Cache struct {
	mu       sync.Mutex
	snapshot atomic.Value // map[Key]*record.Type, immutable once stored
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// load returns the current published snapshot, which may be nil before the
// first publication.
func (c *Cache) load() map[Key]*record.Type {
	m, _ := c.snapshot.Load().(map[Key]*record.Type)
	return m
}

// GetOrCreate returns the canonical Type for key, invoking factory to build
// it on first access.
//
// The fast path is a lock-free snapshot read. On a miss the factory runs
// without holding the cache lock; if another caller publishes the key in
// the meantime, the already-published Type wins and this caller's candidate
// is discarded. Every caller therefore observes the same Type identity for
// a given key.
//
// If the factory fails, the error is returned wrapped in a FactoryError,
// nothing is published, and the key remains eligible for a future retry. A
// factory returning a nil Type without an error is treated as a factory
// failure.
func (c *Cache) GetOrCreate(key Key, factory func() (*record.Type, error)) (*record.Type, error) {
	if t, ok := c.load()[key]; ok {
		return t, nil
	}

	candidate, err := factory()
	if err != nil {
		return nil, &errors.FactoryError{Key: string(key), Err: err}
	}
	if candidate == nil {
		return nil, &errors.FactoryError{Key: string(key), Err: errNilType}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.load()
	if t, ok := current[key]; ok {
		// A concurrent caller won the publication race; adopt its value.
		return t, nil
	}

	next := make(map[Key]*record.Type, len(current)+1)
	for k, t := range current {
		next[k] = t
	}
	next[key] = candidate
	c.snapshot.Store(next)
	return candidate, nil
}

// Get returns the canonical Type for key if one has been published. The
// read is lock-free.
func (c *Cache) Get(key Key) (*record.Type, bool) {
	t, ok := c.load()[key]
	return t, ok
}

// Len returns the number of published keys.
func (c *Cache) Len() int {
	return len(c.load())
}

// Keys returns the published keys in sorted order, for diagnostics. The
// returned slice is a fresh allocation over the current snapshot; keys
// published after the call are not reflected.
func (c *Cache) Keys() []Key {
	m := c.load()
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
