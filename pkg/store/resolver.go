package store

import (
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/utkarsh5026/gitcore/pkg/objects"
)

// DefaultResolverCacheSize bounds the number of memoised kinds.
const DefaultResolverCacheSize = 4096

// KindResolver resolves the kind of stored objects by reading their
// headers only. Results are kept in an LRU cache, and concurrent lookups of
// the same hash share one read. Stored objects never change, so cached
// kinds never go stale.
type KindResolver struct {
	store ObjectStore
	cache *lru.Cache
	group singleflight.Group
}

// NewKindResolver creates a resolver over store caching up to size kinds.
// A non-positive size selects DefaultResolverCacheSize.
func NewKindResolver(store ObjectStore, size int) (*KindResolver, error) {
	if size <= 0 {
		size = DefaultResolverCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &KindResolver{store: store, cache: cache}, nil
}

// ResolveKind implements tree.KindResolver.
func (r *KindResolver) ResolveKind(hash objects.ObjectHash) (objects.ObjectKind, error) {
	if v, ok := r.cache.Get(hash); ok {
		return v.(objects.ObjectKind), nil
	}

	v, err, _ := r.group.Do(hash.String(), func() (interface{}, error) {
		kind, _, err := r.store.ReadHeader(hash)
		if err != nil {
			return nil, err
		}
		r.cache.Add(hash, kind)
		return kind, nil
	})
	if err != nil {
		return "", err
	}
	return v.(objects.ObjectKind), nil
}

// Len returns the number of cached kinds.
func (r *KindResolver) Len() int {
	return r.cache.Len()
}
