package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/boqworks/boqworks/internal/boq"
)

func testProject() *boq.Project {
	qty := func(v float64) *float64 { return &v }
	note := "100m² × 0.15m fill depth"
	return &boq.Project{
		ID:             uuid.New(),
		Name:           "Hilltop House",
		CatalogVersion: "20250714080000",
		Milestones: []boq.Milestone{
			{Stage: boq.StageSubstructure, Items: []boq.Item{
				{MaterialName: "Cement 32.5N", Category: "cement", Quantity: qty(10), Unit: "bag",
					AveragePriceUSD: 9.50, ActualPriceUSD: 9.50, ActualPriceZWG: 251.75, Notes: &note},
			}},
			{Stage: boq.StageRoofing, Items: []boq.Item{
				{MaterialName: "IBR Roof Sheet 0.4mm", Category: "roofing", Quantity: qty(4), Unit: "m",
					AveragePriceUSD: 5.80, ActualPriceUSD: 5.80, ActualPriceZWG: 153.70},
			}},
			{Stage: boq.StageExterior},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testProject()))

	out := buf.String()
	require.Contains(t, out, "\r\n", "csv export uses CRLF line endings")

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Equal(t, "Project,Hilltop House", lines[0])
	require.Equal(t, "Catalog Version,20250714080000", lines[1])

	require.Contains(t, out, "Milestone,Material,Category,Quantity,Unit")
	require.Contains(t, out, "substructure,Cement 32.5N,cement,10.00,bag")
	require.Contains(t, out, "roofing,IBR Roof Sheet 0.4mm,roofing,4.00,m")
	// 10 bags × 251.75 ZWG, formatted with a thousands separator.
	require.Contains(t, out, "\"2,517.50\"")
	require.Contains(t, out, "Grand Total")
	// 95.00 + 23.20 USD across the two milestones.
	require.Contains(t, out, "118.20")
	require.NotContains(t, out, "exterior,", "empty milestones add no rows")
}

func TestWriteCSVCategoryTotalsSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testProject()))

	out := buf.String()
	cementAt := strings.Index(out, "\r\ncement,")
	roofingAt := strings.Index(out, "\r\nroofing,,")
	require.Greater(t, cementAt, 0)
	require.Greater(t, roofingAt, cementAt, "categories appear alphabetically")
}
