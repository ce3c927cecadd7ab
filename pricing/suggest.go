// Package pricing holds the pure price arithmetic used before and during
// a trading day: suggested sale prices and the economics of one sale.
package pricing

import (
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

// SuggestedPrice is the sale price that covers the commission and leaves
// targetPct of net profit over cost:
//
//	cost x (1 + (commissionPct + targetPct)/100)
func SuggestedPrice(cost, commissionPct, targetPct decimal.Decimal) decimal.Decimal {
	margin := commissionPct.Add(targetPct)
	return cost.Mul(decimal.NewFromInt(1).Add(margin.Div(market.Hundred)))
}

// EstimatedNetProfitPct approximates the net margin of selling at price:
// the gross markup over cost minus the commission rate. Zero cost yields 0.
func EstimatedNetProfitPct(cost, price, commissionPct decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return market.Pct(price.Sub(cost), cost).Sub(commissionPct)
}
