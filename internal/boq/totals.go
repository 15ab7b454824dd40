package boq

import "github.com/shopspring/decimal"

// LineTotal multiplies quantity by the actual unit price, rounded to
// cents. A nil quantity contributes nothing.
func LineTotal(item Item) (usd, zwg float64) {
	if item.Quantity == nil {
		return 0, 0
	}
	qty := decimal.NewFromFloat(*item.Quantity)
	u := qty.Mul(decimal.NewFromFloat(item.ActualPriceUSD)).Round(2)
	z := qty.Mul(decimal.NewFromFloat(item.ActualPriceZWG)).Round(2)
	usd, _ = u.Float64()
	zwg, _ = z.Float64()
	return usd, zwg
}

// Money is a dual-currency amount.
type Money struct {
	USD float64 `json:"usd"`
	ZWG float64 `json:"zwg"`
}

// Totals aggregates line totals at the levels the export layer needs,
// so PDF and CSV formatting can stay purely presentational.
type Totals struct {
	PerCategory  map[string]Money `json:"per_category"`
	PerMilestone map[Stage]Money  `json:"per_milestone"`
	Grand        Money            `json:"grand"`
}

// CalculateTotals sums quantity × actual price per item, grouped by
// category and milestone, using decimal accumulation to keep cents
// exact across long item lists.
func CalculateTotals(milestones []Milestone) Totals {
	type acc struct{ usd, zwg decimal.Decimal }
	byCategory := map[string]*acc{}
	byStage := map[Stage]*acc{}
	var grand acc

	for _, ms := range milestones {
		for _, item := range ms.Items {
			usd, zwg := LineTotal(item)
			du := decimal.NewFromFloat(usd)
			dz := decimal.NewFromFloat(zwg)

			cat := item.Category
			if cat == "" {
				cat = "uncategorised"
			}
			ca, ok := byCategory[cat]
			if !ok {
				ca = &acc{}
				byCategory[cat] = ca
			}
			ca.usd = ca.usd.Add(du)
			ca.zwg = ca.zwg.Add(dz)

			sa, ok := byStage[ms.Stage]
			if !ok {
				sa = &acc{}
				byStage[ms.Stage] = sa
			}
			sa.usd = sa.usd.Add(du)
			sa.zwg = sa.zwg.Add(dz)

			grand.usd = grand.usd.Add(du)
			grand.zwg = grand.zwg.Add(dz)
		}
	}

	out := Totals{
		PerCategory:  make(map[string]Money, len(byCategory)),
		PerMilestone: make(map[Stage]Money, len(byStage)),
	}
	for cat, a := range byCategory {
		u, _ := a.usd.Float64()
		z, _ := a.zwg.Float64()
		out.PerCategory[cat] = Money{USD: u, ZWG: z}
	}
	for stage, a := range byStage {
		u, _ := a.usd.Float64()
		z, _ := a.zwg.Float64()
		out.PerMilestone[stage] = Money{USD: u, ZWG: z}
	}
	gu, _ := grand.usd.Float64()
	gz, _ := grand.zwg.Float64()
	out.Grand = Money{USD: gu, ZWG: gz}
	return out
}
