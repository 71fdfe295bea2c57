package resolve

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheCapacity is the suggested memo cache size from the resolver
// design: bounded, not unbounded, since a long-running build host will see
// a large but not unbounded number of distinct requested-name sets.
const DefaultCacheCapacity = 10_000

// Resolver memoizes Resolve by requested-name set. Equality is by set
// contents, not request order. The cache is safe for concurrent use: the
// LRU itself is internally locked, and singleflight collapses concurrent
// calls for the same key onto one computation.
type Resolver struct {
	table Table
	cache *lru.Cache[string, *Resolution]
	group singleflight.Group
}

// NewResolver builds a Resolver over table with the given cache capacity
// (DefaultCacheCapacity if capacity <= 0).
func NewResolver(table Table, capacity int) (*Resolver, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	cache, err := lru.New[string, *Resolution](capacity)
	if err != nil {
		return nil, err
	}
	return &Resolver{table: table, cache: cache}, nil
}

// Resolve returns the memoized Resolution for requested, computing it if
// this is the first time this set has been seen. Collision errors are
// never cached -- they propagate to the caller on every call that
// reproduces them, per the error channel's checked-error contract.
func (r *Resolver) Resolve(requested []string) (*Resolution, error) {
	key := cacheKey(requested)
	if res, ok := r.cache.Get(key); ok {
		return res, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		res, err := resolve(r.table, requested)
		if err != nil {
			return nil, err
		}
		r.cache.Add(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resolution), nil
}

func cacheKey(requested []string) string {
	sorted := append([]string(nil), requested...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
