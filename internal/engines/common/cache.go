/*
Copyright 2025 The llm-d Authors

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

// Package common holds state shared by the optimization engines.
package common

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"

	utilcache "k8s.io/apimachinery/pkg/util/cache"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
	"github.com/llm-d/llm-d-unit-allocator/pkg/solver"
)

// Cache defaults.
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 10 * time.Minute
)

// ResultCache memoizes solver results by problem fingerprint. It is safe for
// concurrent use. A nil *ResultCache never hits.
//
// Cached results are shared between callers and must not be modified.
type ResultCache struct {
	entries *utilcache.LRUExpireCache
	ttl     time.Duration
}

// NewResultCache returns a cache holding up to size results for ttl each, or
// nil when size is not positive.
func NewResultCache(size int, ttl time.Duration) *ResultCache {
	return newResultCache(utilcache.NewLRUExpireCache(max(size, 1)), size, ttl)
}

func newResultCache(entries *utilcache.LRUExpireCache, size int, ttl time.Duration) *ResultCache {
	if size <= 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{entries: entries, ttl: ttl}
}

// Get returns the cached result for an equal problem.
func (c *ResultCache) Get(p *core.Problem) (*solver.Result, bool) {
	if c == nil || p == nil {
		return nil, false
	}
	v, ok := c.entries.Get(Fingerprint(p))
	if !ok {
		return nil, false
	}
	return v.(*solver.Result), true
}

// Set stores the result of p.
func (c *ResultCache) Set(p *core.Problem, r *solver.Result) {
	if c == nil || p == nil || r == nil {
		return
	}
	c.entries.Add(Fingerprint(p), r, c.ttl)
}

// Len returns the number of unexpired entries.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries.Keys())
}

// Fingerprint identifies a problem by every field that reaches the solution,
// category names included.
func Fingerprint(p *core.Problem) string {
	h := sha256.New()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}

	writeInt(p.TotalUnits)
	writeInt(p.CategoryCount)
	writeInt(p.MinPerCategory)
	if p.MaxPerCategory != nil {
		writeInt(1)
		writeInt(*p.MaxPerCategory)
	} else {
		writeInt(0)
	}

	writeInt(len(p.CategoryNames))
	for _, name := range p.CategoryNames {
		writeInt(len(name))
		_, _ = h.Write([]byte(name))
	}

	writeInt(len(p.Curves))
	for _, c := range p.Curves {
		writeInt(len(c))
		for _, v := range c {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
