package boq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/boqworks/boqworks/internal/catalog"
	"github.com/boqworks/boqworks/internal/estimate"
	"github.com/boqworks/boqworks/internal/pricing"
	"github.com/boqworks/boqworks/internal/shared"
)

// Service orchestrates project lifecycle around the pure calculation
// packages: generation seeds items, edits go through the price
// reconciliation rules, and saves are serialized per project.
type Service struct {
	repo           Repository
	catalog        *catalog.Service
	signer         *ShareSigner
	locker         *redis.Client
	lockTTL        time.Duration
	exchangeRate   float64
	boundaryLength float64
	logger         *slog.Logger
}

// ServiceConfig collects Service dependencies.
type ServiceConfig struct {
	Repo    Repository
	Catalog *catalog.Service
	Signer  *ShareSigner
	Locker  *redis.Client
	LockTTL time.Duration
	// ExchangeRate is the fallback USD to ZWG multiplier.
	ExchangeRate float64
	// BoundaryLength, when set, overrides the built-in default boundary
	// wall perimeter for projects that do not specify one.
	BoundaryLength float64
	Logger         *slog.Logger
}

// NewService constructs Service. Locker may be nil; saves then run
// unserialized, which is acceptable for single-instance deployments.
func NewService(cfg ServiceConfig) *Service {
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &Service{
		repo:           cfg.Repo,
		catalog:        cfg.Catalog,
		signer:         cfg.Signer,
		locker:         cfg.Locker,
		lockTTL:        lockTTL,
		exchangeRate:   cfg.ExchangeRate,
		boundaryLength: cfg.BoundaryLength,
		logger:         cfg.Logger,
	}
}

// CreateProject seeds a project from the wizard configuration. The
// generator emits every relevant line including zero quantities; only
// non-zero lines populate milestones, since an empty line in the
// builder view carries no value to the user.
func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("create project: load catalog: %w", err)
	}

	cfg := req.Config
	cfg.Scope = estimate.Scope(normalizeScope(string(cfg.Scope)))
	if cfg.BoundaryLength <= 0 && s.boundaryLength > 0 {
		cfg.BoundaryLength = s.boundaryLength
	}
	generated := estimate.Generate(cfg, cat)

	project := Project{
		ID:             uuid.New(),
		Name:           req.Name,
		LocationType:   req.LocationType,
		BuildingType:   req.BuildingType,
		Scope:          string(cfg.Scope),
		IncludeLabor:   cfg.IncludeLabor,
		ExchangeRate:   s.exchangeRate,
		CatalogVersion: cat.Version(),
	}

	var items []Item
	for _, g := range generated {
		if g.Quantity <= 0 {
			continue
		}
		items = append(items, itemFromGenerated(project.ID, g))
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.CreateProject(ctx, project); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		for _, item := range items {
			if err := repo.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert item %s: %w", item.MaterialID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetProject(ctx, project.ID)
}

// itemFromGenerated copies a generated line into a mutable item. The
// fresh item starts with actual equal to average: no override yet.
func itemFromGenerated(projectID uuid.UUID, g estimate.Item) Item {
	qty := g.Quantity
	calc := g.Quantity
	note := g.Note
	return Item{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		Stage:              Stage(g.Stage),
		MaterialID:         g.MaterialID,
		MaterialName:       g.MaterialName,
		Quantity:           &qty,
		Unit:               g.Unit,
		AveragePriceUSD:    g.UnitPriceUSD,
		AveragePriceZWG:    g.UnitPriceZWG,
		ActualPriceUSD:     g.UnitPriceUSD,
		ActualPriceZWG:     g.UnitPriceZWG,
		Category:           string(g.Category),
		CalculatedQuantity: &calc,
		Notes:              &note,
	}
}

// Get returns a project with its milestones.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

// List returns projects ordered by last update.
func (s *Service) List(ctx context.Context, req ListProjectsRequest) ([]Project, int, error) {
	return s.repo.ListProjects(ctx, req)
}

// Delete removes a project and its items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProject(ctx, id)
}

// AddItem appends a manual line to a milestone. Prices start in sync
// with the current catalog; an unknown material id still produces a
// line, just without price data.
func (s *Service) AddItem(ctx context.Context, projectID uuid.UUID, req AddItemRequest) (*Item, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	item := Item{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Stage:       req.Stage,
		MaterialID:  req.MaterialID,
		Quantity:    clampQuantity(req.Quantity),
		Description: req.Description,
	}

	cat, err := s.catalog.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("add item: load catalog: %w", err)
	}
	if mat, ok := cat.Lookup(req.MaterialID); ok {
		item.MaterialName = mat.Name
		item.Unit = mat.Unit
		item.Category = string(mat.Category)
		item.AveragePriceUSD = mat.PriceUSD
		item.AveragePriceZWG = mat.PriceZWG
		item.ActualPriceUSD = mat.PriceUSD
		item.ActualPriceZWG = mat.PriceZWG
	} else {
		item.MaterialName = req.MaterialID
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	if err := s.repo.TouchProject(ctx, projectID); err != nil {
		s.logger.Warn("touch project", slog.Any("error", err))
	}
	return &item, nil
}

// UpdateItem applies quantity and price edits. A quantity that departs
// from the originally generated figure flags the item as overridden. A
// USD actual price entered without a ZWG counterpart gets one derived
// through the average-price ratio.
func (s *Service) UpdateItem(ctx context.Context, projectID, itemID uuid.UUID, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetItem(ctx, projectID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		item.Quantity = clampQuantity(req.Quantity)
		if item.CalculatedQuantity != nil && item.Quantity != nil && *item.Quantity != *item.CalculatedQuantity {
			item.IsOverridden = true
		}
	}
	if req.ActualPriceUSD != nil {
		usd := *req.ActualPriceUSD
		if usd < 0 {
			usd = 0
		}
		item.ActualPriceUSD = usd
		if req.ActualPriceZWG == nil {
			item.ActualPriceZWG = pricing.ScaledZWG(usd, item.AveragePriceUSD, item.AveragePriceZWG, s.exchangeRate)
		}
	}
	if req.ActualPriceZWG != nil {
		zwg := *req.ActualPriceZWG
		if zwg < 0 {
			zwg = 0
		}
		item.ActualPriceZWG = zwg
	}
	if req.Description != nil {
		item.Description = req.Description
	}

	if err := s.repo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if err := s.repo.TouchProject(ctx, projectID); err != nil {
		s.logger.Warn("touch project", slog.Any("error", err))
	}
	return item, nil
}

// DeleteItem removes a line from the project.
func (s *Service) DeleteItem(ctx context.Context, projectID, itemID uuid.UUID) error {
	return s.repo.DeleteItem(ctx, projectID, itemID)
}

// SaveItems replaces a project's full item set. Writes are serialized
// per project via a Redis lock so a debounced autosave and an explicit
// save cannot interleave and lose updates.
func (s *Service) SaveItems(ctx context.Context, projectID uuid.UUID, req SaveItemsRequest) error {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return err
	}

	unlock, err := s.acquireLock(ctx, projectID)
	if err != nil {
		return err
	}
	defer unlock()

	items := make([]Item, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ProjectID = projectID
		item.Quantity = clampQuantity(item.Quantity)
		items = append(items, item)
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.ReplaceItems(ctx, projectID, items)
	})
}

func (s *Service) acquireLock(ctx context.Context, projectID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	key := "boq:save:" + projectID.String()
	ok, err := s.locker.SetNX(ctx, key, "1", s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("save lock: %w", err)
	}
	if !ok {
		return nil, shared.ErrLocked
	}
	return func() {
		if err := s.locker.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			s.logger.Warn("release save lock", slog.Any("error", err))
		}
	}, nil
}

// RefreshMaterialPrices walks every stored line for a material after a
// catalog price change and applies the average-price update rule: the
// average always advances, the actual only follows when it was still
// in sync. Unknown or missing rows simply keep their last-known prices.
func (s *Service) RefreshMaterialPrices(ctx context.Context, materialID string, priceUSD, priceZWG float64) (int, error) {
	items, err := s.repo.ListItemsByMaterial(ctx, materialID)
	if err != nil {
		return 0, fmt.Errorf("refresh prices: list items: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	updated := 0
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		for _, item := range items {
			next := pricing.ApplyAverageUpdate(pricing.Prices{
				AverageUSD: item.AveragePriceUSD,
				AverageZWG: item.AveragePriceZWG,
				ActualUSD:  item.ActualPriceUSD,
				ActualZWG:  item.ActualPriceZWG,
			}, priceUSD, priceZWG, s.exchangeRate)
			if err := repo.UpdateItemPrices(ctx, item.ID, next.AverageUSD, next.AverageZWG, next.ActualUSD, next.ActualZWG); err != nil {
				return fmt.Errorf("update item %s: %w", item.ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Totals aggregates line, category, milestone and grand totals.
func (s *Service) Totals(ctx context.Context, projectID uuid.UUID) (Totals, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return Totals{}, err
	}
	return CalculateTotals(project.Milestones), nil
}

// CreateShare mints a signed read-only token for a project.
func (s *Service) CreateShare(ctx context.Context, projectID uuid.UUID) (*ShareLink, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	token, err := s.signer.Mint(projectID)
	if err != nil {
		return nil, err
	}
	link := ShareLink{Token: token, ProjectID: projectID}
	if err := s.repo.CreateShare(ctx, link); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return &link, nil
}

// ResolveShare verifies a token and returns the shared project.
func (s *Service) ResolveShare(ctx context.Context, token string) (*Project, error) {
	link, err := s.repo.GetShare(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.signer.Verify(token, link.ProjectID); err != nil {
		return nil, err
	}
	return s.repo.GetProject(ctx, link.ProjectID)
}

// CreateReminder schedules a follow-up on a project.
func (s *Service) CreateReminder(ctx context.Context, projectID uuid.UUID, req CreateReminderRequest) (*Reminder, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	rem := Reminder{ProjectID: projectID, DueAt: req.DueAt, Note: req.Note}
	id, err := s.repo.CreateReminder(ctx, rem)
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	rem.ID = id
	return &rem, nil
}

// DispatchDueReminders marks reminders due before now and reports them.
// The worker calls this on a schedule.
func (s *Service) DispatchDueReminders(ctx context.Context, now time.Time) ([]Reminder, error) {
	due, err := s.repo.ListDueReminders(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, rem := range due {
		if err := s.repo.MarkReminderDone(ctx, rem.ID); err != nil {
			return nil, fmt.Errorf("mark reminder %d: %w", rem.ID, err)
		}
	}
	return due, nil
}

// clampQuantity enforces the quantity invariant: nil stays nil,
// negatives clamp to zero.
func clampQuantity(q *float64) *float64 {
	if q == nil {
		return nil
	}
	v := *q
	if v < 0 {
		v = 0
	}
	return &v
}

func normalizeScope(scope string) string {
	switch estimate.Scope(scope) {
	case estimate.ScopeSubstructure, estimate.ScopeSuperstructure, estimate.ScopeRoofing,
		estimate.ScopeFinishing, estimate.ScopeExterior, estimate.ScopeFullHouse:
		return scope
	default:
		return string(estimate.ScopeFullHouse)
	}
}

// ErrProjectLocked is re-exported for handlers mapping lock contention.
var ErrProjectLocked = shared.ErrLocked
