package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceOverride is a persisted admin adjustment layered over the
// built-in price list.
type PriceOverride struct {
	MaterialID string
	PriceUSD   float64
	PriceZWG   float64
	UpdatedAt  time.Time
}

// Repository persists catalog price overrides in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListOverrides returns all stored price overrides.
func (r *Repository) ListOverrides(ctx context.Context) ([]PriceOverride, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("catalog repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT material_id, price_usd, price_zwg, updated_at
FROM catalog_prices ORDER BY material_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	overrides := []PriceOverride{}
	for rows.Next() {
		var o PriceOverride
		if err := rows.Scan(&o.MaterialID, &o.PriceUSD, &o.PriceZWG, &o.UpdatedAt); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// GetOverride returns the stored override for one material.
func (r *Repository) GetOverride(ctx context.Context, materialID string) (PriceOverride, error) {
	var o PriceOverride
	err := r.pool.QueryRow(ctx, `SELECT material_id, price_usd, price_zwg, updated_at
FROM catalog_prices WHERE material_id=$1`, materialID).
		Scan(&o.MaterialID, &o.PriceUSD, &o.PriceZWG, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PriceOverride{}, ErrOverrideNotFound
	}
	return o, err
}

// UpsertOverride stores or replaces the override for a material.
func (r *Repository) UpsertOverride(ctx context.Context, o PriceOverride) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO catalog_prices (material_id, price_usd, price_zwg, updated_at)
VALUES ($1,$2,$3,NOW())
ON CONFLICT (material_id) DO UPDATE SET price_usd=EXCLUDED.price_usd, price_zwg=EXCLUDED.price_zwg, updated_at=NOW()`,
		o.MaterialID, o.PriceUSD, o.PriceZWG)
	return err
}

// ErrOverrideNotFound indicates no stored override for the material.
var ErrOverrideNotFound = errors.New("catalog price override not found")
