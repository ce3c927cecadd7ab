package risk

import (
	"github.com/shopspring/decimal"
)

type Policy struct {
	// Commission charged on every sale, in percent of revenue (0.35 = 0.35%)
	CommissionPct decimal.Decimal
	// Net profit the operator aims for when publishing a price, in percent
	TargetProfitPct decimal.Decimal

	// Sale-count limits per operating day
	MinSalesPerDay int // 3
	MaxSalesPerDay int // 5
}

func DefaultPolicy() Policy {
	return Policy{
		CommissionPct:   decimal.RequireFromString("0.35"),
		TargetProfitPct: decimal.RequireFromString("2.0"),
		MinSalesPerDay:  3,
		MaxSalesPerDay:  5,
	}
}
