// journal/records.go
package journal

import (
	"time"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

type CycleState string

const (
	CycleActive CycleState = "activo"
	CycleClosed CycleState = "cerrado"
)

// CanTransition reports whether a cycle may move from s to next. The only
// edge is active -> closed.
func (s CycleState) CanTransition(next CycleState) bool {
	return s == CycleActive && next == CycleClosed
}

type DayState string

const (
	DayOpen   DayState = "abierto"
	DayClosed DayState = "cerrado"
)

func (s DayState) CanTransition(next DayState) bool {
	return s == DayOpen && next == DayClosed
}

type Cycle struct {
	ID                int64
	StartDate         time.Time
	PlannedDays       int
	InitialInvestment decimal.Decimal
	State             CycleState
	ClosedAt          *time.Time

	// Filled in when the cycle is closed.
	DaysOperated   int
	TotalNetProfit decimal.Decimal
	FinalCapital   decimal.Decimal
	ROIPct         decimal.Decimal
}

func (c Cycle) Active() bool { return c.State == CycleActive }

// PlannedEnd is the start date plus the planned number of days.
func (c Cycle) PlannedEnd() time.Time {
	return c.StartDate.AddDate(0, 0, c.PlannedDays)
}

// DaysElapsed counts calendar days (UTC) between the start date and now.
func (c Cycle) DaysElapsed(now time.Time) int {
	start, today := date(c.StartDate), date(now)
	if today.Before(start) {
		return 0
	}
	return int(today.Sub(start) / (24 * time.Hour))
}

func date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c Cycle) DaysRemaining(now time.Time) int {
	return max(c.PlannedDays-c.DaysElapsed(now), 0)
}

// Complete reports whether the planned duration has been reached.
func (c Cycle) Complete(now time.Time) bool {
	return c.DaysElapsed(now) >= c.PlannedDays
}

type Day struct {
	ID             int64
	CycleID        int64
	Number         int
	OpenedAt       time.Time
	ClosedAt       *time.Time
	State          DayState
	CapitalInitial decimal.Decimal
	CapitalFinal   decimal.Decimal
	CashReceived   decimal.Decimal
	Commissions    decimal.Decimal
	GrossProfit    decimal.Decimal
	NetProfit      decimal.Decimal
	SaleCount      int

	// Asset and Price are set once the operator publishes the day's price.
	Asset string
	Price decimal.NullDecimal
}

func (d Day) Open() bool { return d.State == DayOpen }

func (d Day) HasPrice() bool { return d.Price.Valid }

// ROIPct is the day's net profit over its opening capital.
func (d Day) ROIPct() decimal.Decimal {
	return market.Pct(d.NetProfit, d.CapitalInitial)
}

// Sale is one executed sale. Rows are append-only.
type Sale struct {
	ID            int64
	Ref           string
	DayID         int64
	Asset         string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	CostBasis     decimal.Decimal
	CostTotal     decimal.Decimal
	Revenue       decimal.Decimal
	CommissionPct decimal.Decimal
	Commission    decimal.Decimal
	NetCash       decimal.Decimal
	GrossProfit   decimal.Decimal
	NetProfit     decimal.Decimal
	CreatedAt     time.Time
}

func (s Sale) ROIPct() decimal.Decimal {
	return market.Pct(s.NetProfit, s.CostTotal)
}

// CashEntry is one signed movement of a cycle's cash pool. Sales add
// their net cash, reinvestments withdraw.
type CashEntry struct {
	ID        int64
	Ref       string
	CycleID   int64
	DayID     *int64
	Amount    decimal.Decimal
	Concept   string
	CreatedAt time.Time
}

type PurchaseOrigin string

const (
	OriginFunding      PurchaseOrigin = "fondeo"
	OriginReinvestment PurchaseOrigin = "reinversion"
	OriginTransfer     PurchaseOrigin = "transferencia"
)

// Purchase records every addition to a vault position.
type Purchase struct {
	ID         int64
	Ref        string
	CycleID    int64
	Asset      string
	Quantity   decimal.Decimal
	FiatAmount decimal.Decimal
	Rate       decimal.Decimal
	Origin     PurchaseOrigin
	CreatedAt  time.Time
}

type Asset struct {
	ID       int64
	Symbol   string
	Name     string
	Kind     market.AssetKind
	Decimals int32
}

// dec is the stored form of a decimal.
func dec(d decimal.Decimal) string {
	return market.Round(d).String()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
