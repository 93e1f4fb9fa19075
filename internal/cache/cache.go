package cache

import (
	"context"

	"github.com/ordermate/backend/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type repo interface {
	FindByPlaceID(ctx context.Context, placeID string) (*domain.Store, error)
	RecentPlaceIDs(ctx context.Context, limit int) ([]string, error)
}

// Cache fronts the store repository with an LRU keyed by place id. Only
// place-id resolutions go through here; numeric identifiers never touch
// storage at all.
type Cache struct {
	size int
	lru  *lru.Cache[string, domain.Store]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, domain.Store](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm preloads the most recently registered stores. Errors are ignored:
// a cold cache only costs extra repository reads.
func (c *Cache) Warm(ctx context.Context, repo repo) {
	if ids, err := repo.RecentPlaceIDs(ctx, c.size); err == nil {
		for _, id := range ids {
			if s, err := repo.FindByPlaceID(ctx, id); err == nil {
				c.Set(s)
			}
		}
	}
}

func (c *Cache) Get(placeID string) (*domain.Store, bool) {
	store, ok := c.lru.Get(placeID)
	return &store, ok
}

func (c *Cache) Set(store *domain.Store) {
	if store.PlaceID == "" {
		return
	}
	c.lru.Add(store.PlaceID, *store)
}
