// Package pricing reconciles catalog "average" prices with the
// "actual" prices a project is paying. Average tracks what the market
// charges today; actual tracks what this project pays, and the two may
// diverge. All functions are pure and total: defined for every numeric
// input including zero, returning nil sentinels instead of NaN or Inf.
package pricing

// Prices is the dual-track price state carried by a line item.
type Prices struct {
	AverageUSD float64 `json:"average_price_usd"`
	AverageZWG float64 `json:"average_price_zwg"`
	ActualUSD  float64 `json:"actual_price_usd"`
	ActualZWG  float64 `json:"actual_price_zwg"`
}

// Variance returns the signed difference between actual and average
// (positive means the project pays more than the market rate) and the
// percentage relative to the average. The percentage is nil when the
// average is not positive, so callers can render it as unknown rather
// than dividing by zero.
func Variance(averageUSD, actualUSD float64) (variance float64, pct *float64) {
	variance = actualUSD - averageUSD
	if averageUSD > 0 {
		p := variance / averageUSD * 100
		pct = &p
	}
	return variance, pct
}

// ApplyAverageUpdate returns the price state after a catalog refresh.
// The new average always replaces the old one. The actual price only
// follows when it was still in sync with the old average — a user who
// never overrode the price gets the refreshed market rate, while an
// explicit override survives the refresh untouched. Sync is detected
// against the pre-update state, before anything is replaced.
func ApplyAverageUpdate(p Prices, nextAverageUSD, nextAverageZWG, exchangeRate float64) Prices {
	usdInSync := p.ActualUSD == p.AverageUSD
	zwgInSync := p.ActualZWG == p.AverageZWG

	out := p
	out.AverageUSD = nextAverageUSD
	out.AverageZWG = nextAverageZWG

	if usdInSync {
		out.ActualUSD = nextAverageUSD
	}
	if zwgInSync {
		out.ActualZWG = nextAverageZWG
	} else if usdInSync && out.ActualZWG == 0 {
		// USD advanced and no ZWG override exists yet; derive one so
		// the two tracks do not drift apart.
		out.ActualZWG = ScaledZWG(out.ActualUSD, nextAverageUSD, nextAverageZWG, exchangeRate)
	}
	return out
}

// ScaledZWG derives a ZWG actual price from a USD actual price. When
// the average carries a usable USD to ZWG ratio, the actual is scaled
// by that same ratio so a material's two currency tracks stay
// internally consistent; only when the average USD price is zero does
// the live exchange rate apply.
func ScaledZWG(actualUSD, averageUSD, averageZWG, exchangeRate float64) float64 {
	if averageUSD > 0 {
		return actualUSD * (averageZWG / averageUSD)
	}
	return actualUSD * exchangeRate
}
