package estimate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boqworks/boqworks/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Default()
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{
		FloorArea:    120,
		RoomCount:    5,
		BrickType:    BrickCommon,
		CementType:   Cement325,
		Scope:        ScopeFullHouse,
		IncludeLabor: true,
	}
	cat := testCatalog(t)

	first := Generate(cfg, cat)
	second := Generate(cfg, cat)
	require.Equal(t, first, second)
}

func TestGenerateQuantitiesNeverNegative(t *testing.T) {
	configs := []Config{
		{Scope: ScopeSubstructure},
		{Scope: ScopeSuperstructure, FloorArea: 1},
		{Scope: ScopeRoofing, FloorArea: 5000},
		{Scope: ScopeFinishing, RoomCount: 50},
		{Scope: ScopeExterior, BoundaryLength: 2},
		{Scope: ScopeFullHouse, FloorArea: math.NaN(), WallHeight: math.Inf(1)},
	}
	cat := testCatalog(t)
	for _, cfg := range configs {
		for _, item := range Generate(cfg, cat) {
			require.GreaterOrEqual(t, item.Quantity, 0.0, "material %s", item.MaterialID)
			require.False(t, math.IsNaN(item.Quantity))
			require.False(t, math.IsInf(item.Quantity, 0))
		}
	}
}

func TestGenerateZeroAreaUsesDefault(t *testing.T) {
	cat := testCatalog(t)
	zero := Generate(Config{Scope: ScopeSubstructure}, cat)
	hundred := Generate(Config{Scope: ScopeSubstructure, FloorArea: DefaultFloorArea}, cat)
	require.Equal(t, hundred, zero)
}

func TestGenerateSubstructure(t *testing.T) {
	cat := testCatalog(t)
	items := Generate(Config{Scope: ScopeSubstructure, FloorArea: 100, CementType: Cement325}, cat)
	require.NotEmpty(t, items)

	byID := map[string]Item{}
	for _, item := range items {
		require.Equal(t, ScopeSubstructure, item.Stage)
		byID[item.MaterialID] = item
	}

	cement, ok := byID["cement-325"]
	require.True(t, ok)
	require.Greater(t, cement.Quantity, 0.0)
	require.Equal(t, "Cement 32.5N", cement.MaterialName)
	require.Equal(t, 9.50, cement.UnitPriceUSD)
	require.Contains(t, cement.Note, "bags/m³")

	sand, ok := byID["sand-pit"]
	require.True(t, ok)
	require.Greater(t, sand.Quantity, 0.0)

	hardcore, ok := byID["hardcore"]
	require.True(t, ok)
	// 100m² × 0.15m fill depth.
	require.InDelta(t, 15.0, hardcore.Quantity, 1e-9)
}

func TestGenerateCementGradeSelectsMaterial(t *testing.T) {
	cat := testCatalog(t)
	items := Generate(Config{Scope: ScopeSubstructure, CementType: Cement425}, cat)
	var found bool
	for _, item := range items {
		require.NotEqual(t, "cement-325", item.MaterialID)
		if item.MaterialID == "cement-425" {
			found = true
			// 42.5N yields more concrete per bag than 32.5N.
			items325 := Generate(Config{Scope: ScopeSubstructure, CementType: Cement325}, cat)
			for _, other := range items325 {
				if other.MaterialID == "cement-325" {
					require.Less(t, item.Quantity, other.Quantity)
				}
			}
		}
	}
	require.True(t, found)
}

func TestGenerateGeometryBeatsAreaHeuristic(t *testing.T) {
	cat := testCatalog(t)
	cfg := Config{
		Scope:      ScopeSuperstructure,
		FloorArea:  100,
		WallHeight: 2.7,
		Rooms: []Room{
			{Width: 4, Length: 5, Doors: 1, Windows: 2},
			{Width: 3, Length: 3, Doors: 1, Windows: 1},
		},
	}
	geom := Generate(cfg, cat)
	area := Generate(Config{Scope: ScopeSuperstructure, FloorArea: 100, WallHeight: 2.7}, cat)

	geomByID := map[string]Item{}
	for _, item := range geom {
		geomByID[item.MaterialID] = item
	}
	for _, item := range area {
		if item.MaterialID == "brick-common" {
			require.NotEqual(t, item.Quantity, geomByID["brick-common"].Quantity)
			require.Contains(t, geomByID["brick-common"].Note, "geometry")
			require.Contains(t, item.Note, "area")
		}
	}

	// Door and window counts come from the sketch, not the room count.
	require.InDelta(t, 2.0, geomByID["doorframe-steel"].Quantity, 1e-9)
	require.InDelta(t, 3.0, geomByID["window-steel"].Quantity, 1e-9)
}

func TestGenerateInvalidRoomsFallBackToArea(t *testing.T) {
	cat := testCatalog(t)
	cfg := Config{
		Scope:     ScopeSuperstructure,
		FloorArea: 100,
		Rooms:     []Room{{Width: 0, Length: 5}, {Width: -2, Length: 3}},
	}
	items := Generate(cfg, cat)
	plain := Generate(Config{Scope: ScopeSuperstructure, FloorArea: 100}, cat)
	require.Equal(t, plain, items)
}

func TestGenerateFullHouseStages(t *testing.T) {
	cat := testCatalog(t)
	items := Generate(Config{Scope: ScopeFullHouse, IncludeLabor: true}, cat)

	stages := map[Scope]bool{}
	for _, item := range items {
		stages[item.Stage] = true
	}
	require.True(t, stages[ScopeSubstructure])
	require.True(t, stages[ScopeSuperstructure])
	require.True(t, stages[ScopeRoofing])
	require.True(t, stages[ScopeFinishing])
	require.True(t, stages[StageLabor])
	// The boundary wall stays opt-in.
	require.False(t, stages[ScopeExterior])
}

func TestGenerateLaborOnlyWhenRequested(t *testing.T) {
	cat := testCatalog(t)
	without := Generate(Config{Scope: ScopeRoofing}, cat)
	for _, item := range without {
		require.NotEqual(t, StageLabor, item.Stage)
	}

	with := Generate(Config{Scope: ScopeRoofing, IncludeLabor: true}, cat)
	var laborLines int
	for _, item := range with {
		if item.Stage == StageLabor {
			laborLines++
		}
	}
	require.Equal(t, 5, laborLines)
}

func TestGenerateUnknownMaterialFailsSoft(t *testing.T) {
	cat := catalog.NewCatalog(nil)

	items := Generate(Config{Scope: ScopeSubstructure}, cat)
	require.NotEmpty(t, items)
	for _, item := range items {
		require.Equal(t, item.MaterialID, item.MaterialName)
		require.Zero(t, item.UnitPriceUSD)
		require.NotEmpty(t, item.Note)
	}
}

func TestGenerateNotesExplainFormula(t *testing.T) {
	cat := testCatalog(t)
	items := Generate(Config{Scope: ScopeSubstructure, FloorArea: 100}, cat)
	for _, item := range items {
		require.NotEmpty(t, item.Note, "material %s", item.MaterialID)
	}
	var sawArea bool
	for _, item := range items {
		if strings.Contains(item.Note, "100") {
			sawArea = true
		}
	}
	require.True(t, sawArea, "at least one note should cite the floor area")
}
