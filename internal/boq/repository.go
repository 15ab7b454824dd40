package boq

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boqworks/boqworks/internal/platform/db"
)

// ErrNotFound indicates a missing project, item or share.
var ErrNotFound = errors.New("record not found")

// Repository persists projects, items, reminders and share links.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	CreateProject(ctx context.Context, p Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, req ListProjectsRequest) ([]Project, int, error)
	TouchProject(ctx context.Context, id uuid.UUID) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	InsertItem(ctx context.Context, item Item) error
	UpdateItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, projectID, itemID uuid.UUID) error
	GetItem(ctx context.Context, projectID, itemID uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, projectID uuid.UUID) ([]Item, error)
	ReplaceItems(ctx context.Context, projectID uuid.UUID, items []Item) error
	ListItemsByMaterial(ctx context.Context, materialID string) ([]Item, error)
	UpdateItemPrices(ctx context.Context, itemID uuid.UUID, avgUSD, avgZWG, actUSD, actZWG float64) error

	CreateReminder(ctx context.Context, rem Reminder) (int64, error)
	ListDueReminders(ctx context.Context, before time.Time) ([]Reminder, error)
	MarkReminderDone(ctx context.Context, id int64) error

	CreateShare(ctx context.Context, link ShareLink) error
	GetShare(ctx context.Context, token string) (*ShareLink, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) CreateProject(ctx context.Context, p Project) error {
	_, err := r.db.Exec(ctx, `INSERT INTO projects (id, name, location_type, building_type, scope, include_labor, exchange_rate, catalog_version, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())`,
		p.ID, p.Name, p.LocationType, p.BuildingType, p.Scope, p.IncludeLabor, p.ExchangeRate, p.CatalogVersion)
	return err
}

func (r *repository) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := r.db.QueryRow(ctx, `SELECT id, name, location_type, building_type, scope, include_labor, exchange_rate, catalog_version, created_at, updated_at
FROM projects WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.LocationType, &p.BuildingType, &p.Scope, &p.IncludeLabor, &p.ExchangeRate, &p.CatalogVersion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Milestones = groupByStage(items)
	return &p, nil
}

func (r *repository) ListProjects(ctx context.Context, req ListProjectsRequest) ([]Project, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, location_type, building_type, scope, include_labor, exchange_rate, catalog_version, created_at, updated_at
FROM projects ORDER BY updated_at DESC, id LIMIT $1 OFFSET $2`, limit, req.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.LocationType, &p.BuildingType, &p.Scope, &p.IncludeLabor, &p.ExchangeRate, &p.CatalogVersion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *repository) TouchProject(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE projects SET updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const itemColumns = `id, project_id, stage, material_id, material_name, quantity, unit,
average_price_usd, average_price_zwg, unit_price_usd, unit_price_zwg,
description, category, calculated_quantity, is_overridden, notes, created_at, updated_at`

func (r *repository) InsertItem(ctx context.Context, item Item) error {
	_, err := r.db.Exec(ctx, `INSERT INTO boq_items (`+itemColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW(),NOW())`,
		item.ID, item.ProjectID, item.Stage, item.MaterialID, item.MaterialName, item.Quantity, item.Unit,
		item.AveragePriceUSD, item.AveragePriceZWG, item.ActualPriceUSD, item.ActualPriceZWG,
		item.Description, item.Category, item.CalculatedQuantity, item.IsOverridden, item.Notes)
	return err
}

func (r *repository) UpdateItem(ctx context.Context, item Item) error {
	tag, err := r.db.Exec(ctx, `UPDATE boq_items SET quantity=$3, unit_price_usd=$4, unit_price_zwg=$5,
average_price_usd=$6, average_price_zwg=$7, description=$8, is_overridden=$9, notes=$10, updated_at=NOW()
WHERE project_id=$1 AND id=$2`,
		item.ProjectID, item.ID, item.Quantity, item.ActualPriceUSD, item.ActualPriceZWG,
		item.AveragePriceUSD, item.AveragePriceZWG, item.Description, item.IsOverridden, item.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, projectID, itemID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM boq_items WHERE project_id=$1 AND id=$2`, projectID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetItem(ctx context.Context, projectID, itemID uuid.UUID) (*Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM boq_items WHERE project_id=$1 AND id=$2`, projectID, itemID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, projectID uuid.UUID) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM boq_items WHERE project_id=$1 ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *repository) ReplaceItems(ctx context.Context, projectID uuid.UUID, items []Item) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM boq_items WHERE project_id=$1`, projectID); err != nil {
		return err
	}
	for _, item := range items {
		item.ProjectID = projectID
		if err := r.InsertItem(ctx, item); err != nil {
			return err
		}
	}
	return r.TouchProject(ctx, projectID)
}

func (r *repository) ListItemsByMaterial(ctx context.Context, materialID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM boq_items WHERE material_id=$1 ORDER BY project_id, id`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *repository) UpdateItemPrices(ctx context.Context, itemID uuid.UUID, avgUSD, avgZWG, actUSD, actZWG float64) error {
	_, err := r.db.Exec(ctx, `UPDATE boq_items SET average_price_usd=$2, average_price_zwg=$3, unit_price_usd=$4, unit_price_zwg=$5, updated_at=NOW()
WHERE id=$1`, itemID, avgUSD, avgZWG, actUSD, actZWG)
	return err
}

func (r *repository) CreateReminder(ctx context.Context, rem Reminder) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO reminders (project_id, due_at, note, done, created_at)
VALUES ($1,$2,$3,false,NOW()) RETURNING id`, rem.ProjectID, rem.DueAt, rem.Note).Scan(&id)
	return id, err
}

func (r *repository) ListDueReminders(ctx context.Context, before time.Time) ([]Reminder, error) {
	rows, err := r.db.Query(ctx, `SELECT id, project_id, due_at, note, done, created_at
FROM reminders WHERE done=false AND due_at <= $1 ORDER BY due_at`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reminders := []Reminder{}
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.ProjectID, &rem.DueAt, &rem.Note, &rem.Done, &rem.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *repository) MarkReminderDone(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE reminders SET done=true WHERE id=$1`, id)
	return err
}

func (r *repository) CreateShare(ctx context.Context, link ShareLink) error {
	_, err := r.db.Exec(ctx, `INSERT INTO project_shares (token, project_id, created_at) VALUES ($1,$2,NOW())`,
		link.Token, link.ProjectID)
	return err
}

func (r *repository) GetShare(ctx context.Context, token string) (*ShareLink, error) {
	var link ShareLink
	err := r.db.QueryRow(ctx, `SELECT token, project_id, created_at FROM project_shares WHERE token=$1`, token).
		Scan(&link.Token, &link.ProjectID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.ProjectID, &item.Stage, &item.MaterialID, &item.MaterialName,
		&item.Quantity, &item.Unit, &item.AveragePriceUSD, &item.AveragePriceZWG,
		&item.ActualPriceUSD, &item.ActualPriceZWG, &item.Description, &item.Category,
		&item.CalculatedQuantity, &item.IsOverridden, &item.Notes, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func collectItems(rows pgx.Rows) ([]Item, error) {
	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// groupByStage buckets items into milestones in display order; stages
// without items still get an empty milestone so the builder view can
// render every tab.
func groupByStage(items []Item) []Milestone {
	byStage := map[Stage][]Item{}
	for _, item := range items {
		byStage[item.Stage] = append(byStage[item.Stage], item)
	}
	milestones := make([]Milestone, 0, len(StageOrder))
	for _, stage := range StageOrder {
		milestones = append(milestones, Milestone{Stage: stage, Items: byStage[stage]})
	}
	return milestones
}
