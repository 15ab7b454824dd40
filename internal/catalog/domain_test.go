package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCatalogDeduplicates(t *testing.T) {
	cat := NewCatalog([]Material{
		{ID: "a", Name: "First", PriceUSD: 1},
		{ID: "b", Name: "Other", PriceUSD: 2},
		{ID: "a", Name: "Replacement", PriceUSD: 3},
	})
	require.Equal(t, 2, cat.Len())

	m, ok := cat.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "Replacement", m.Name)
	require.Equal(t, 3.0, m.PriceUSD)
}

func TestLookupMissing(t *testing.T) {
	cat := NewCatalog(nil)
	_, ok := cat.Lookup("nope")
	require.False(t, ok)

	var nilCat *Catalog
	_, ok = nilCat.Lookup("nope")
	require.False(t, ok)
}

func TestMaterialsSorted(t *testing.T) {
	cat := NewCatalog([]Material{
		{ID: "z", Name: "Zinc", Category: CategorySteel},
		{ID: "a", Name: "Angle Iron", Category: CategorySteel},
		{ID: "b", Name: "Brick", Category: CategoryBricks},
	})
	out := cat.Materials()
	require.Len(t, out, 3)
	require.Equal(t, "Brick", out[0].Name)
	require.Equal(t, "Angle Iron", out[1].Name)
	require.Equal(t, "Zinc", out[2].Name)
}

func TestVersionIsPureReduction(t *testing.T) {
	older := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)

	a := NewCatalog([]Material{{ID: "a", UpdatedAt: older}, {ID: "b", UpdatedAt: newer}})
	b := NewCatalog([]Material{{ID: "b", UpdatedAt: newer}, {ID: "a", UpdatedAt: older}})

	require.Equal(t, "20250714080000", a.Version())
	require.Equal(t, a.Version(), b.Version(), "entry order must not matter")
}

func TestVersionEmptyCatalog(t *testing.T) {
	require.Equal(t, "00000000000000", NewCatalog(nil).Version())
	var nilCat *Catalog
	require.Equal(t, "00000000000000", nilCat.Version())
}

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	require.Greater(t, cat.Len(), 30)

	for _, id := range []string{"brick-common", "cement-325", "cement-425", "sand-river", "ibr-sheet", "labor-builder"} {
		m, ok := cat.Lookup(id)
		require.True(t, ok, "missing %s", id)
		require.Greater(t, m.PriceUSD, 0.0)
		require.Greater(t, m.PriceZWG, 0.0)
		require.NotEmpty(t, m.Unit)
	}
	require.NotEqual(t, "00000000000000", cat.Version())
}
