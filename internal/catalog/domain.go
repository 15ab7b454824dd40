package catalog

import (
	"sort"
	"time"
)

// Category groups materials by construction trade.
type Category string

const (
	CategoryBricks     Category = "bricks"
	CategoryCement     Category = "cement"
	CategorySand       Category = "sand"
	CategoryAggregates Category = "aggregates"
	CategorySteel      Category = "steel"
	CategoryRoofing    Category = "roofing"
	CategoryTimber     Category = "timber"
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryFinishing  Category = "finishing"
	CategoryLabor      Category = "labor"
	CategoryServices   Category = "services"
)

// Material is a static reference entry with dual-currency pricing.
type Material struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  Category  `json:"category" db:"category"`
	Unit      string    `json:"unit" db:"unit"`
	PriceUSD  float64   `json:"price_usd" db:"price_usd"`
	PriceZWG  float64   `json:"price_zwg" db:"price_zwg"`
	Spec      string    `json:"spec,omitempty" db:"spec"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Catalog is an immutable, explicitly constructed material lookup.
// Callers receive it by injection; nothing in this package keeps
// process-wide mutable state.
type Catalog struct {
	entries map[string]Material
	ordered []Material
}

// NewCatalog builds a catalog from the given entries. Later duplicates
// of the same id replace earlier ones.
func NewCatalog(entries []Material) *Catalog {
	c := &Catalog{entries: make(map[string]Material, len(entries))}
	for _, m := range entries {
		if _, seen := c.entries[m.ID]; seen {
			for i := range c.ordered {
				if c.ordered[i].ID == m.ID {
					c.ordered[i] = m
					break
				}
			}
		} else {
			c.ordered = append(c.ordered, m)
		}
		c.entries[m.ID] = m
	}
	return c
}

// Lookup returns the material for the given id.
func (c *Catalog) Lookup(id string) (Material, bool) {
	if c == nil {
		return Material{}, false
	}
	m, ok := c.entries[id]
	return m, ok
}

// Materials returns all entries sorted by category then name.
func (c *Catalog) Materials() []Material {
	if c == nil {
		return nil
	}
	out := make([]Material, len(c.ordered))
	copy(out, c.ordered)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Version derives the price-list version from the newest entry timestamp.
// It is a pure reduction over the entries rather than cached process state,
// so two catalogs with the same data always agree.
func (c *Catalog) Version() string {
	if c == nil || len(c.ordered) == 0 {
		return "00000000000000"
	}
	var latest time.Time
	for _, m := range c.ordered {
		if m.UpdatedAt.After(latest) {
			latest = m.UpdatedAt
		}
	}
	return latest.UTC().Format("20060102150405")
}
