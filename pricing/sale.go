package pricing

import (
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

// Breakdown is the full economics of selling Quantity units whose cost
// basis is CostBasis at UnitPrice.
type Breakdown struct {
	Quantity      decimal.Decimal
	CostBasis     decimal.Decimal
	UnitPrice     decimal.Decimal
	CommissionPct decimal.Decimal

	CostTotal   decimal.Decimal
	Revenue     decimal.Decimal
	Commission  decimal.Decimal
	NetCash     decimal.Decimal
	GrossProfit decimal.Decimal
	NetProfit   decimal.Decimal
	RoiPct      decimal.Decimal
}

// Sale computes a Breakdown. Nothing is rounded.
func Sale(quantity, costBasis, unitPrice, commissionPct decimal.Decimal) Breakdown {
	b := Breakdown{
		Quantity:      quantity,
		CostBasis:     costBasis,
		UnitPrice:     unitPrice,
		CommissionPct: commissionPct,
	}
	b.CostTotal = quantity.Mul(costBasis)
	b.Revenue = quantity.Mul(unitPrice)
	b.Commission = market.OfPct(b.Revenue, commissionPct)
	b.NetCash = b.Revenue.Sub(b.Commission)
	b.GrossProfit = b.Revenue.Sub(b.CostTotal)
	b.NetProfit = b.GrossProfit.Sub(b.Commission)
	b.RoiPct = market.Pct(b.NetProfit, b.CostTotal)
	return b
}

func (b Breakdown) IsLoss() bool {
	return b.NetProfit.IsNegative()
}
