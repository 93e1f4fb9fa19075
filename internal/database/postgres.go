package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordermate/backend/internal/config"
	"github.com/ordermate/backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code the stores.place_id unique
// index raises on a duplicate insert.
const uniqueViolation = "23505"

type Repo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func New(pool *pgxpool.Pool, t config.Tables) *Repo { return &Repo{pool: pool, tables: t} }

func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		panic(err)
	}
	if err := pool.Ping(ctx); err != nil {
		panic(err)
	}
	return pool
}

func (r *Repo) qt() string { return fmt.Sprintf(`"%s"."%s"`, r.tables.Schema, r.tables.Store) }

func (r *Repo) FindByPlaceID(ctx context.Context, placeID string) (*domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT store_id, place_id, display_name, partner_level
		FROM %s WHERE place_id=$1
	`, r.qt()), placeID).Scan(
		&s.StoreID, &s.PlaceID, &s.DisplayName, &s.PartnerLevel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert writes a new store row and fills in the assigned store_id. A
// concurrent insert of the same place_id loses the unique-index race and
// comes back as domain.ErrDuplicatePlaceID; the resolver re-queries then.
func (r *Repo) Insert(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (place_id, display_name, partner_level)
		VALUES ($1,$2,$3)
		RETURNING store_id
	`, r.qt()),
		store.PlaceID, store.DisplayName, store.PartnerLevel,
	).Scan(&store.StoreID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlaceID, store.PlaceID)
		}
		return nil, err
	}
	return store, nil
}

func (r *Repo) GetByID(ctx context.Context, storeID int64) (*domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT store_id, place_id, display_name, partner_level
		FROM %s WHERE store_id=$1
	`, r.qt()), storeID).Scan(
		&s.StoreID, &s.PlaceID, &s.DisplayName, &s.PartnerLevel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) RecentPlaceIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT place_id FROM %s
		WHERE place_id <> ''
		ORDER BY store_id DESC
		LIMIT $1
	`, r.qt()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
