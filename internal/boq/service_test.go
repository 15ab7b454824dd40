package boq

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/boqworks/boqworks/internal/catalog"
	"github.com/boqworks/boqworks/internal/estimate"
)

type memoryRepo struct {
	projects  map[uuid.UUID]Project
	items     map[uuid.UUID]Item
	reminders map[int64]Reminder
	shares    map[string]ShareLink
	nextRemID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		projects:  map[uuid.UUID]Project{},
		items:     map[uuid.UUID]Item{},
		reminders: map[int64]Reminder{},
		shares:    map[string]ShareLink{},
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) CreateProject(_ context.Context, p Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memoryRepo) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	items, _ := r.ListItems(ctx, id)
	p.Milestones = groupByStage(items)
	return &p, nil
}

func (r *memoryRepo) ListProjects(_ context.Context, _ ListProjectsRequest) ([]Project, int, error) {
	out := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryRepo) TouchProject(_ context.Context, id uuid.UUID) error {
	p, ok := r.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.projects[id] = p
	return nil
}

func (r *memoryRepo) DeleteProject(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	for itemID, item := range r.items {
		if item.ProjectID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *memoryRepo) InsertItem(_ context.Context, item Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) UpdateItem(_ context.Context, item Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) DeleteItem(_ context.Context, projectID, itemID uuid.UUID) error {
	item, ok := r.items[itemID]
	if !ok || item.ProjectID != projectID {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *memoryRepo) GetItem(_ context.Context, projectID, itemID uuid.UUID) (*Item, error) {
	item, ok := r.items[itemID]
	if !ok || item.ProjectID != projectID {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) ListItems(_ context.Context, projectID uuid.UUID) ([]Item, error) {
	out := []Item{}
	for _, item := range r.items {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepo) ReplaceItems(_ context.Context, projectID uuid.UUID, items []Item) error {
	for itemID, item := range r.items {
		if item.ProjectID == projectID {
			delete(r.items, itemID)
		}
	}
	for _, item := range items {
		item.ProjectID = projectID
		r.items[item.ID] = item
	}
	return nil
}

func (r *memoryRepo) ListItemsByMaterial(_ context.Context, materialID string) ([]Item, error) {
	out := []Item{}
	for _, item := range r.items {
		if item.MaterialID == materialID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepo) UpdateItemPrices(_ context.Context, itemID uuid.UUID, avgUSD, avgZWG, actUSD, actZWG float64) error {
	item, ok := r.items[itemID]
	if !ok {
		return ErrNotFound
	}
	item.AveragePriceUSD = avgUSD
	item.AveragePriceZWG = avgZWG
	item.ActualPriceUSD = actUSD
	item.ActualPriceZWG = actZWG
	r.items[itemID] = item
	return nil
}

func (r *memoryRepo) CreateReminder(_ context.Context, rem Reminder) (int64, error) {
	r.nextRemID++
	rem.ID = r.nextRemID
	r.reminders[rem.ID] = rem
	return rem.ID, nil
}

func (r *memoryRepo) ListDueReminders(_ context.Context, before time.Time) ([]Reminder, error) {
	out := []Reminder{}
	for _, rem := range r.reminders {
		if !rem.Done && !rem.DueAt.After(before) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *memoryRepo) MarkReminderDone(_ context.Context, id int64) error {
	rem, ok := r.reminders[id]
	if !ok {
		return ErrNotFound
	}
	rem.Done = true
	r.reminders[id] = rem
	return nil
}

func (r *memoryRepo) CreateShare(_ context.Context, link ShareLink) error {
	r.shares[link.Token] = link
	return nil
}

func (r *memoryRepo) GetShare(_ context.Context, token string) (*ShareLink, error) {
	link, ok := r.shares[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &link, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	logger := slog.Default()
	return NewService(ServiceConfig{
		Repo:         repo,
		Catalog:      catalog.NewService(catalog.Default(), nil, nil, 0, logger),
		Signer:       NewShareSigner("test-secret"),
		ExchangeRate: 26.5,
		Logger:       logger,
	})
}

func TestCreateProjectSeedsItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name:         "Hilltop House",
		LocationType: "rural",
		BuildingType: "3bed",
		Config: estimate.Config{
			FloorArea:    100,
			Scope:        estimate.ScopeFullHouse,
			IncludeLabor: true,
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, project.ID)
	require.Equal(t, "full_house", project.Scope)
	require.NotEmpty(t, project.CatalogVersion)
	require.Len(t, project.Milestones, len(StageOrder))

	var total int
	for _, ms := range project.Milestones {
		for _, item := range ms.Items {
			total++
			require.NotNil(t, item.Quantity)
			require.Greater(t, *item.Quantity, 0.0)
			require.Equal(t, item.AveragePriceUSD, item.ActualPriceUSD)
			require.Equal(t, item.AveragePriceZWG, item.ActualPriceZWG)
			require.NotNil(t, item.CalculatedQuantity)
			require.False(t, item.IsOverridden)
		}
	}
	require.Greater(t, total, 10)

	// Exterior is opt-in; full house must not populate it.
	for _, ms := range project.Milestones {
		if ms.Stage == StageExterior {
			require.Empty(t, ms.Items)
		}
	}
}

func TestCreateProjectFiltersZeroQuantities(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	// A room this small is all openings, so walling works out to zero.
	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name:         "Tiny",
		LocationType: "urban",
		BuildingType: "cottage",
		Config: estimate.Config{
			Scope: estimate.ScopeSuperstructure,
			Rooms: []estimate.Room{{Width: 0.5, Length: 0.5, Doors: 5, Windows: 5}},
		},
	})
	require.NoError(t, err)
	for _, ms := range project.Milestones {
		for _, item := range ms.Items {
			require.Greater(t, *item.Quantity, 0.0, "zero-quantity line %s leaked through", item.MaterialID)
		}
	}
}

func TestCreateProjectNormalizesInvalidScope(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name:         "X",
		LocationType: "urban",
		BuildingType: "3bed",
		Config:       estimate.Config{Scope: "whatever"},
	})
	require.NoError(t, err)
	require.Equal(t, "full_house", project.Scope)
}

func TestUpdateItemOverrideFlag(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)
	item := firstItem(t, project)

	newQty := *item.Quantity + 10
	updated, err := svc.UpdateItem(context.Background(), project.ID, item.ID, UpdateItemRequest{Quantity: &newQty})
	require.NoError(t, err)
	require.True(t, updated.IsOverridden)
	require.Equal(t, newQty, *updated.Quantity)

	// Setting it back to the calculated figure does not clear the flag.
	back := *item.CalculatedQuantity
	updated, err = svc.UpdateItem(context.Background(), project.ID, item.ID, UpdateItemRequest{Quantity: &back})
	require.NoError(t, err)
	require.True(t, updated.IsOverridden)
}

func TestUpdateItemDerivesZWGFromUSD(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)
	item := firstItem(t, project)
	require.Greater(t, item.AveragePriceUSD, 0.0)

	usd := item.AveragePriceUSD * 2
	updated, err := svc.UpdateItem(context.Background(), project.ID, item.ID, UpdateItemRequest{ActualPriceUSD: &usd})
	require.NoError(t, err)
	require.Equal(t, usd, updated.ActualPriceUSD)
	// ZWG follows the average-price ratio, which here doubles too.
	require.InDelta(t, item.AveragePriceZWG*2, updated.ActualPriceZWG, 1e-9)
}

func TestUpdateItemClampsNegativeQuantity(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)
	item := firstItem(t, project)

	neg := -5.0
	updated, err := svc.UpdateItem(context.Background(), project.ID, item.ID, UpdateItemRequest{Quantity: &neg})
	require.NoError(t, err)
	require.Zero(t, *updated.Quantity)
}

func TestRefreshMaterialPrices(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	projectID := uuid.New()
	require.NoError(t, repo.CreateProject(context.Background(), Project{ID: projectID, Name: "P"}))

	inSync := Item{ID: uuid.New(), ProjectID: projectID, MaterialID: "cement-325",
		AveragePriceUSD: 9.50, AveragePriceZWG: 251.75, ActualPriceUSD: 9.50, ActualPriceZWG: 251.75}
	overridden := Item{ID: uuid.New(), ProjectID: projectID, MaterialID: "cement-325",
		AveragePriceUSD: 9.50, AveragePriceZWG: 251.75, ActualPriceUSD: 8.00, ActualPriceZWG: 212.00}
	require.NoError(t, repo.InsertItem(context.Background(), inSync))
	require.NoError(t, repo.InsertItem(context.Background(), overridden))

	updated, err := svc.RefreshMaterialPrices(context.Background(), "cement-325", 10.00, 265.00)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	got := repo.items[inSync.ID]
	require.Equal(t, 10.00, got.AveragePriceUSD)
	require.Equal(t, 10.00, got.ActualPriceUSD)
	require.Equal(t, 265.00, got.ActualPriceZWG)

	got = repo.items[overridden.ID]
	require.Equal(t, 10.00, got.AveragePriceUSD, "average always advances")
	require.Equal(t, 8.00, got.ActualPriceUSD, "override survives")
	require.Equal(t, 212.00, got.ActualPriceZWG)
}

func TestRefreshMaterialPricesNoItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	updated, err := svc.RefreshMaterialPrices(context.Background(), "cement-325", 10, 265)
	require.NoError(t, err)
	require.Zero(t, updated)
}

func TestSaveItemsReplacesSet(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)

	qty := 12.0
	err = svc.SaveItems(context.Background(), project.ID, SaveItemsRequest{
		Items: []Item{{Stage: StageRoofing, MaterialID: "ibr-sheet", MaterialName: "IBR", Quantity: &qty}},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	var count int
	for _, ms := range got.Milestones {
		count += len(ms.Items)
	}
	require.Equal(t, 1, count)
}

func TestShareRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)

	link, err := svc.CreateShare(context.Background(), project.ID)
	require.NoError(t, err)
	require.NotEmpty(t, link.Token)

	shared, err := svc.ResolveShare(context.Background(), link.Token)
	require.NoError(t, err)
	require.Equal(t, project.ID, shared.ID)

	_, err = svc.ResolveShare(context.Background(), link.Token+"x")
	require.Error(t, err)
}

func TestDispatchDueReminders(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo)

	project, err := svc.CreateProject(context.Background(), CreateProjectRequest{
		Name: "P", LocationType: "urban", BuildingType: "3bed",
		Config: estimate.Config{Scope: estimate.ScopeSubstructure},
	})
	require.NoError(t, err)

	now := time.Now()
	_, err = svc.CreateReminder(context.Background(), project.ID, CreateReminderRequest{DueAt: now.Add(-time.Hour), Note: "order cement"})
	require.NoError(t, err)
	_, err = svc.CreateReminder(context.Background(), project.ID, CreateReminderRequest{DueAt: now.Add(time.Hour), Note: "not yet"})
	require.NoError(t, err)

	due, err := svc.DispatchDueReminders(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "order cement", due[0].Note)

	// Dispatched reminders do not come due again.
	due, err = svc.DispatchDueReminders(context.Background(), now)
	require.NoError(t, err)
	require.Empty(t, due)
}

func firstItem(t *testing.T, project *Project) Item {
	t.Helper()
	for _, ms := range project.Milestones {
		if len(ms.Items) > 0 {
			return ms.Items[0]
		}
	}
	t.Fatal("project has no items")
	return Item{}
}
