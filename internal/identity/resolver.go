package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ordermate/backend/internal/domain"
	"github.com/ordermate/backend/internal/observability"
	"go.uber.org/zap"
)

//go:generate mockgen -source internal/identity/resolver.go -destination=internal/identity/resolver_mock_test.go -package=identity

type Storage interface {
	FindByPlaceID(ctx context.Context, placeID string) (*domain.Store, error)
	Insert(ctx context.Context, store *domain.Store) (*domain.Store, error)
}

type Cache interface {
	Get(placeID string) (*domain.Store, bool)
	Set(store *domain.Store)
}

// Resolver maps any supported identifier shape to a stable internal store
// id. Numeric identifiers resolve purely; place ids go through cache, then
// repository, then idempotent auto-registration. Concurrent first-time
// resolutions of one place id converge on a single row: the insert loser
// catches the unique-constraint signal and re-queries the winner.
type Resolver struct {
	storage Storage
	cache   Cache
	policy  PlaceIDPolicy
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewResolver(storage Storage, cache Cache, policy PlaceIDPolicy, logger *zap.Logger, metrics observability.Metrics) *Resolver {
	return &Resolver{
		storage: storage,
		cache:   cache,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
}

// ValidateFormat is the pure syntactic check; it never touches storage.
func (r *Resolver) ValidateFormat(id Identifier) bool {
	if id.IsPlace() {
		return r.policy.Valid(id.PlaceID)
	}
	return id.StoreID > 0
}

// StrictValidate adds the caller's auto-creation policy on top of the
// syntactic check: place ids are rejected outright when the caller forbids
// lazy registration, forcing an explicit prior resolution step.
func (r *Resolver) StrictValidate(id Identifier, allowAutoCreate bool) (bool, string) {
	switch {
	case !id.IsPlace():
		if id.StoreID <= 0 {
			return false, "store id must be positive"
		}
		return true, ""
	case !r.policy.Valid(id.PlaceID):
		return false, "malformed place id"
	case !allowAutoCreate:
		return false, "place id requires prior resolution"
	default:
		return true, ""
	}
}

func (r *Resolver) Resolve(ctx context.Context, id Identifier, displayName string) (int64, error) {
	storeID, _, err := r.ResolveWithStats(ctx, id, displayName)
	return storeID, err
}

func (r *Resolver) ResolveWithStats(ctx context.Context, id Identifier, displayName string) (int64, ResolveStats, error) {
	var st ResolveStats

	if !id.IsPlace() {
		if id.StoreID <= 0 {
			return 0, st, fmt.Errorf("%w: %d", domain.ErrInvalidIdentifier, id.StoreID)
		}
		st.Source = SourceIdentity
		return id.StoreID, st, nil
	}

	if !r.policy.Valid(id.PlaceID) {
		return 0, st, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, id.PlaceID)
	}

	tCacheStart := time.Now()
	if s, ok := r.cache.Get(id.PlaceID); ok {
		st.Source = SourceCache
		st.CacheMs = convertToMs(tCacheStart)
		r.metrics.IncCacheHit()
		r.metrics.ObserveResolve(string(st.Source), st.CacheMs, 0)
		return s.StoreID, st, nil
	}
	r.metrics.IncCacheMiss()
	st.CacheMs = convertToMs(tCacheStart)

	tDbStart := time.Now()
	s, err := r.storage.FindByPlaceID(ctx, id.PlaceID)
	if err == nil {
		st.Source = SourceDB
		st.DBMs = convertToMs(tDbStart)
		r.cache.Set(s)
		r.metrics.ObserveResolve(string(st.Source), st.CacheMs, st.DBMs)
		return s.StoreID, st, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, st, err
	}

	created, err := r.storage.Insert(ctx, &domain.Store{
		PlaceID:      id.PlaceID,
		DisplayName:  defaultStoreName(id.PlaceID, displayName),
		PartnerLevel: 0,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePlaceID) {
			// Lost the insert race; the winner's row must exist now.
			winner, qerr := r.storage.FindByPlaceID(ctx, id.PlaceID)
			if qerr != nil {
				return 0, st, fmt.Errorf("%w: read-repair for %q: %v", domain.ErrStoreCreationFailed, id.PlaceID, qerr)
			}
			st.Source = SourceDB
			st.DBMs = convertToMs(tDbStart)
			r.cache.Set(winner)
			r.metrics.ObserveResolve(string(st.Source), st.CacheMs, st.DBMs)
			return winner.StoreID, st, nil
		}
		return 0, st, fmt.Errorf("%w: %v", domain.ErrStoreCreationFailed, err)
	}

	st.Source = SourceCreated
	st.DBMs = convertToMs(tDbStart)
	r.cache.Set(created)
	r.metrics.ObserveResolve(string(st.Source), st.CacheMs, st.DBMs)
	r.logger.Info("store auto-registered",
		zap.String("place_id", id.PlaceID),
		zap.Int64("store_id", created.StoreID),
	)
	return created.StoreID, st, nil
}

// defaultStoreName prefers the caller-supplied display name and falls back
// to a name derived from the place id's leading characters.
func defaultStoreName(placeID, displayName string) string {
	if displayName != "" {
		return displayName
	}
	head := placeID
	if len(head) > 10 {
		head = head[:10]
	}
	return "store-" + head
}
