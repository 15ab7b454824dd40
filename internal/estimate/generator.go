package estimate

import (
	"math"

	"github.com/boqworks/boqworks/internal/catalog"
)

// StageLabor is the milestone key for labor and service lines.
const StageLabor Scope = "labor"

// Generate produces one line per relevant material for the requested
// scope. Quantities are never negative; items whose quantity works out
// to zero are still returned so the note can explain why, and the
// caller filters them when populating a milestone. Missing or invalid
// optional inputs are substituted with defaults, never rejected.
//
// Two calls with the same config and catalog produce identical output.
func Generate(cfg Config, cat *catalog.Catalog) []Item {
	cfg = cfg.withDefaults()
	m := deriveMeasures(cfg)

	groups := rulesForScope(cfg)
	if cfg.IncludeLabor {
		groups = append(groups, stageRules{StageLabor, laborRules()})
	}

	var items []Item
	for _, g := range groups {
		for _, r := range g.rules {
			qty, note := r.quantity(cfg, m)
			if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
				qty = 0
			}

			item := Item{
				Stage:      g.stage,
				MaterialID: r.materialID,
				Quantity:   qty,
				Note:       note,
			}
			// Unknown material ids fail soft: the line still carries
			// its quantity and rationale, just without price data.
			if mat, ok := cat.Lookup(r.materialID); ok {
				item.MaterialName = mat.Name
				item.Category = mat.Category
				item.Unit = mat.Unit
				item.UnitPriceUSD = mat.PriceUSD
				item.UnitPriceZWG = mat.PriceZWG
			} else {
				item.MaterialName = r.materialID
			}
			items = append(items, item)
		}
	}
	return items
}
