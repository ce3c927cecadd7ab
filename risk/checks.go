package risk

import (
	"fmt"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

const (
	CodeSaleLimit      = "SALE_LIMIT"
	CodeLossAtPrice    = "LOSS_AT_PRICE"
	CodeBelowTarget    = "BELOW_TARGET"
	CodeNoSales        = "NO_SALES"
	CodeBelowMinSales  = "BELOW_MIN_SALES"
	CodeEmptyVault     = "EMPTY_VAULT"
	CodePastPlannedEnd = "PAST_PLANNED_END"
)

type Violation struct {
	Code string
	Msg  string
}

func (v Violation) String() string { return v.Code + ": " + v.Msg }

// Decision is the outcome of a check. Violations block the operation,
// warnings are reported and the operation goes ahead.
type Decision struct {
	Allowed    bool
	Violations []Violation
	Warnings   []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func (d *Decision) warn(code, msg string) {
	d.Warnings = append(d.Warnings, Violation{Code: code, Msg: msg})
}

// Err returns the first violation as an error, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed || len(d.Violations) == 0 {
		return nil
	}
	return fmt.Errorf("%s", d.Violations[0].Msg)
}

// EvaluateSale checks one more sale against the day's count and warns when
// the computed net profit is a loss.
func EvaluateSale(p Policy, salesToday int, netProfit decimal.Decimal) Decision {
	d := Decision{Allowed: true}

	if p.MaxSalesPerDay > 0 && salesToday >= p.MaxSalesPerDay {
		d.add(CodeSaleLimit,
			fmt.Sprintf("day already has %d sales, max %d", salesToday, p.MaxSalesPerDay))
	}
	if netProfit.IsNegative() {
		d.warn(CodeLossAtPrice,
			fmt.Sprintf("sale loses %s after commission", netProfit.Neg().StringFixedBank(4)))
	}
	return d
}

// EvaluatePrice warns about a published price whose estimated net margin
// is negative or below the target.
func EvaluatePrice(p Policy, estimatedNetPct decimal.Decimal) Decision {
	d := Decision{Allowed: true}

	switch {
	case estimatedNetPct.IsNegative():
		d.warn(CodeLossAtPrice,
			fmt.Sprintf("estimated net margin %s is a loss", market.FormatPct(estimatedNetPct)))
	case estimatedNetPct.LessThan(p.TargetProfitPct):
		d.warn(CodeBelowTarget,
			fmt.Sprintf("estimated net margin %s below target %s",
				market.FormatPct(estimatedNetPct), market.FormatPct(p.TargetProfitPct)))
	}
	return d
}

// EvaluateDayClose warns about days closed with few or no sales.
func EvaluateDayClose(p Policy, salesToday int) Decision {
	d := Decision{Allowed: true}

	switch {
	case salesToday == 0:
		d.warn(CodeNoSales, "day closed without sales")
	case salesToday < p.MinSalesPerDay:
		d.warn(CodeBelowMinSales,
			fmt.Sprintf("day closed with %d sales, min %d", salesToday, p.MinSalesPerDay))
	}
	return d
}
