package domain

import (
	"context"
)

type StoreRepository interface {
	// FindByPlaceID returns ErrNotFound when the place id is unknown.
	FindByPlaceID(ctx context.Context, placeID string) (*Store, error)
	// Insert assigns StoreID and returns ErrDuplicatePlaceID when another
	// row already owns the place id.
	Insert(ctx context.Context, store *Store) (*Store, error)
	GetByID(ctx context.Context, storeID int64) (*Store, error)
	RecentPlaceIDs(ctx context.Context, limit int) ([]string, error)
}

type StoreCache interface {
	Get(placeID string) (*Store, bool)
	Set(store *Store)
}
