package engine

import (
	"context"
	"fmt"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/rustyeddy/arbitrage/pkg/id"
	"github.com/rustyeddy/arbitrage/pricing"
	"github.com/rustyeddy/arbitrage/risk"
	"github.com/shopspring/decimal"
)

type SellRequest struct {
	DayID    int64
	Quantity decimal.Decimal

	// Optional. Asset and UnitPrice default to the day's published values
	// and must match them when given. CommissionPct defaults to the policy.
	Asset         string
	UnitPrice     *decimal.Decimal
	CommissionPct *decimal.Decimal
}

type SaleResult struct {
	Sale      journal.Sale
	Breakdown pricing.Breakdown
	Position  ledger.Position
	CashPool  ledger.CashPool
	SalesLeft int
	Warnings  []risk.Violation
}

// Sell sells quantity units of the day's asset at the published price.
// The vault, the cash pool, the day's counter and the sale record are
// written in one transaction.
func (e *Engine) Sell(ctx context.Context, req SellRequest) (SaleResult, error) {
	var res SaleResult
	now := e.now().UTC()

	err := e.update(ctx, "sell", func(tx *journal.Tx) error {
		d, err := tx.Day(ctx, req.DayID)
		if err != nil {
			return err
		}
		if !d.Open() {
			return fmt.Errorf("%w: day %d", ErrDayClosed, d.Number)
		}
		if !d.HasPrice() {
			return fmt.Errorf("%w: day %d", ErrNoPriceSet, d.Number)
		}
		price := d.Price.Decimal
		if req.UnitPrice != nil && !req.UnitPrice.Equal(price) {
			return fmt.Errorf("%w: %s, published %s", ErrPriceMismatch, req.UnitPrice, price)
		}
		if req.Asset != "" && market.NormalizeSymbol(req.Asset) != d.Asset {
			return fmt.Errorf("%w: %s, priced %s", ErrAssetMismatch, req.Asset, d.Asset)
		}
		commissionPct := e.policy.CommissionPct
		if req.CommissionPct != nil {
			commissionPct = *req.CommissionPct
		}
		if commissionPct.IsNegative() || commissionPct.GreaterThanOrEqual(market.Hundred) {
			return fmt.Errorf("%w: commission %s%%", ErrInvalidAmount, commissionPct)
		}

		pos, err := loadPosition(ctx, tx, d.CycleID, d.Asset)
		if err != nil {
			return err
		}
		b := pricing.Sale(req.Quantity, pos.AvgCost, price, commissionPct)

		decision := risk.EvaluateSale(e.policy, d.SaleCount, b.NetProfit)
		if !decision.Allowed {
			return fmt.Errorf("%w: %v", ErrRateLimitExceeded, decision.Err())
		}

		l := ledger.New(pos)
		if res.Position, err = l.RecordSale(d.CycleID, d.Asset, req.Quantity); err != nil {
			return err
		}
		pool, err := loadCashPool(ctx, tx, d.CycleID)
		if err != nil {
			return err
		}
		res.CashPool = pool
		if b.NetCash.IsPositive() {
			if res.CashPool, err = pool.Deposit(b.NetCash); err != nil {
				return err
			}
		}

		sale := journal.Sale{
			Ref:           id.NewAt(now),
			DayID:         d.ID,
			Asset:         d.Asset,
			Quantity:      b.Quantity,
			UnitPrice:     b.UnitPrice,
			CostBasis:     b.CostBasis,
			CostTotal:     b.CostTotal,
			Revenue:       b.Revenue,
			CommissionPct: b.CommissionPct,
			Commission:    b.Commission,
			NetCash:       b.NetCash,
			GrossProfit:   b.GrossProfit,
			NetProfit:     b.NetProfit,
			CreatedAt:     now,
		}
		if err := tx.SavePosition(ctx, res.Position); err != nil {
			return err
		}
		if b.NetCash.IsPositive() {
			entry := journal.CashEntry{
				CycleID:   d.CycleID,
				DayID:     &d.ID,
				Amount:    b.NetCash,
				Concept:   "sale " + sale.Ref,
				CreatedAt: now,
			}
			if err := tx.InsertCashEntry(ctx, &entry); err != nil {
				return err
			}
		}
		if err := tx.IncSaleCount(ctx, d.ID); err != nil {
			return err
		}
		if err := tx.InsertSale(ctx, &sale); err != nil {
			return err
		}

		res.Sale = sale
		res.Breakdown = b
		res.SalesLeft = max(e.policy.MaxSalesPerDay-d.SaleCount-1, 0)
		res.Warnings = decision.Warnings
		return nil
	})
	if err != nil {
		return SaleResult{}, err
	}

	e.log.Info().
		Int64("day", res.Sale.DayID).
		Str("asset", res.Sale.Asset).
		Str("qty", res.Sale.Quantity.String()).
		Str("price", res.Sale.UnitPrice.String()).
		Str("net_profit", res.Sale.NetProfit.String()).
		Str("ref", res.Sale.Ref).
		Msg("sale recorded")
	e.warn(res.Warnings)
	e.emit(Event{
		Action:  "sale",
		CycleID: res.Position.CycleID,
		DayID:   res.Sale.DayID,
		Fields: map[string]string{
			"ref":        res.Sale.Ref,
			"asset":      res.Sale.Asset,
			"quantity":   market.Round(res.Sale.Quantity).String(),
			"unit_price": market.Round(res.Sale.UnitPrice).String(),
			"net_cash":   market.Round(res.Sale.NetCash).String(),
			"net_profit": market.Round(res.Sale.NetProfit).String(),
		},
	})
	return res, nil
}
