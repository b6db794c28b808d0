/*
   Copyright 2025 The DIRPX Authors.

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

package decorator

import (
	"context"
	"reflect"
	"strconv"
	"sync"

	"dirpx.dev/standin/apis"
	uhash "dirpx.dev/standin/utils/hash"
)

// Cache memoizes successful results keyed on the structural value of the
// arguments (see utils/hash). A hit returns the cached result without
// delegating. Once size entries are held, inserting evicts the entry that
// was inserted first (FIFO; hits do not refresh an entry).
//
// Failed calls are not cached. Arguments with no structural identity
// (containing funcs, chans or cycles) bypass the cache and always delegate.
// A size below 1 is treated as 1.
func Cache[A, R any](size int) apis.Decorator[apis.Callable[A, R]] {
	if size < 1 {
		size = 1
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "cache(" + strconv.Itoa(size) + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Cached[A, R]{
				layer: layer[A, R]{next: next},
				size:  size,
				index: make(map[uint64][]*cacheEntry[A, R]),
			}
		},
	}
}

type cacheEntry[A, R any] struct {
	key  uint64
	args A
	res  R
}

// CacheStats counts cache outcomes since the last clear.
type CacheStats struct {
	Hits      int
	Misses    int
	Bypassed  int
	Evictions int
}

// Cached is the layer produced by Cache.
type Cached[A, R any] struct {
	layer[A, R]
	size int

	mu    sync.Mutex
	order []*cacheEntry[A, R]
	index map[uint64][]*cacheEntry[A, R]
	stats CacheStats
}

// Call answers from the cache or delegates and stores the result.
func (c *Cached[A, R]) Call(ctx context.Context, args A) (R, error) {
	key, err := uhash.Of(args)
	if err != nil {
		c.mu.Lock()
		c.stats.Bypassed++
		c.mu.Unlock()
		return c.next.Call(ctx, args)
	}

	c.mu.Lock()
	if e := c.lookup(key, args); e != nil {
		c.stats.Hits++
		res := e.res
		c.mu.Unlock()
		return res, nil
	}
	c.stats.Misses++
	c.mu.Unlock()

	res, err := c.next.Call(ctx, args)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lookup(key, args) == nil {
		c.insert(&cacheEntry[A, R]{key: key, args: args, res: res})
	}
	return res, nil
}

// lookup finds the entry for args. Callers hold c.mu.
func (c *Cached[A, R]) lookup(key uint64, args A) *cacheEntry[A, R] {
	for _, e := range c.index[key] {
		if reflect.DeepEqual(e.args, args) {
			return e
		}
	}
	return nil
}

// insert appends e, evicting the oldest entry when full. Callers hold c.mu.
func (c *Cached[A, R]) insert(e *cacheEntry[A, R]) {
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.drop(oldest)
		c.stats.Evictions++
	}
	c.order = append(c.order, e)
	c.index[e.key] = append(c.index[e.key], e)
}

func (c *Cached[A, R]) drop(e *cacheEntry[A, R]) {
	bucket := c.index[e.key]
	for i, x := range bucket {
		if x == e {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.index, e.key)
		return
	}
	c.index[e.key] = bucket
}

// Len returns the number of cached entries.
func (c *Cached[A, R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Stats returns the cache counters.
func (c *Cached[A, R]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ClearCalls zeroes the counters and forwards down the chain. Cached
// entries are behavior and survive.
func (c *Cached[A, R]) ClearCalls() {
	c.mu.Lock()
	c.stats = CacheStats{}
	c.mu.Unlock()
	clearNext(c.next)
}

// Reset empties the cache, zeroes the counters and resets the chain.
func (c *Cached[A, R]) Reset() {
	c.mu.Lock()
	c.order = nil
	c.index = make(map[uint64][]*cacheEntry[A, R])
	c.stats = CacheStats{}
	c.mu.Unlock()
	resetNext(c.next)
}
