package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/rustyeddy/arbitrage/pricing"
	"github.com/rustyeddy/arbitrage/risk"
	"github.com/shopspring/decimal"
)

// DayResult is a day after an operation plus any non-blocking warnings.
type DayResult struct {
	Day      journal.Day
	Warnings []risk.Violation
}

// OpenDay opens the next operating day of a cycle. The opening capital is
// the value of the cycle's vault.
func (e *Engine) OpenDay(ctx context.Context, cycleID int64) (DayResult, error) {
	var res DayResult
	now := e.now().UTC()

	err := e.update(ctx, "open day", func(tx *journal.Tx) error {
		c, err := tx.Cycle(ctx, cycleID)
		if err != nil {
			return err
		}
		if !c.Active() {
			return fmt.Errorf("%w: cycle %d", ErrCycleAlreadyClosed, c.ID)
		}
		d, open, err := openDay(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: day %d", ErrDayAlreadyOpen, d.Number)
		}

		l, err := loadLedger(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		res.Day = journal.Day{
			CycleID:        c.ID,
			OpenedAt:       now,
			CapitalInitial: l.TotalValue(c.ID),
		}
		if c.Complete(now) {
			res.Warnings = append(res.Warnings, risk.Violation{
				Code: risk.CodePastPlannedEnd,
				Msg:  fmt.Sprintf("cycle %d passed its planned %d days; extend or close it", c.ID, c.PlannedDays),
			})
		}
		return tx.InsertDay(ctx, &res.Day)
	})
	if err != nil {
		return DayResult{}, err
	}

	e.log.Info().
		Int64("cycle", res.Day.CycleID).
		Int("day", res.Day.Number).
		Str("capital", res.Day.CapitalInitial.String()).
		Msg("day opened")
	e.warn(res.Warnings)
	e.emit(Event{
		Action:  "day.open",
		CycleID: res.Day.CycleID,
		DayID:   res.Day.ID,
		Fields: map[string]string{
			"number":          strconv.Itoa(res.Day.Number),
			"capital_initial": market.Round(res.Day.CapitalInitial).String(),
		},
	})
	return res, nil
}

// PriceResult is the outcome of publishing a day's price.
type PriceResult struct {
	Day             journal.Day
	CostBasis       decimal.Decimal
	EstimatedNetPct decimal.Decimal
	Warnings        []risk.Violation
}

// SetPrice publishes the price asset is sold at for the rest of the day.
// It may be changed until the first sale.
func (e *Engine) SetPrice(ctx context.Context, dayID int64, asset string, price decimal.Decimal) (PriceResult, error) {
	var res PriceResult

	err := e.update(ctx, "set price", func(tx *journal.Tx) error {
		d, err := tx.Day(ctx, dayID)
		if err != nil {
			return err
		}
		if !d.Open() {
			return fmt.Errorf("%w: day %d", ErrDayClosed, d.Number)
		}
		if d.SaleCount > 0 {
			return fmt.Errorf("%w: day %d has %d sales", ErrPriceLocked, d.Number, d.SaleCount)
		}
		if err := positive("price", price); err != nil {
			return err
		}
		if asset, err = knownAsset(ctx, tx, asset); err != nil {
			return err
		}

		pos, err := loadPosition(ctx, tx, d.CycleID, asset)
		if err != nil {
			return err
		}
		if pos.IsEmpty() {
			res.Warnings = append(res.Warnings, risk.Violation{
				Code: risk.CodeEmptyVault,
				Msg:  fmt.Sprintf("cycle %d holds no %s", d.CycleID, asset),
			})
		} else {
			res.CostBasis = pos.AvgCost
			res.EstimatedNetPct = pricing.EstimatedNetProfitPct(pos.AvgCost, price, e.policy.CommissionPct)
			res.Warnings = append(res.Warnings, risk.EvaluatePrice(e.policy, res.EstimatedNetPct).Warnings...)
		}

		if err := tx.SetDayPrice(ctx, d.ID, asset, price); err != nil {
			return err
		}
		d.Asset = asset
		d.Price = decimal.NewNullDecimal(price)
		res.Day = d
		return nil
	})
	if err != nil {
		return PriceResult{}, err
	}

	e.log.Info().
		Int64("day", res.Day.ID).
		Str("asset", res.Day.Asset).
		Str("price", price.String()).
		Str("est_net_pct", res.EstimatedNetPct.StringFixedBank(4)).
		Msg("price published")
	e.warn(res.Warnings)
	e.emit(Event{
		Action:  "day.price",
		CycleID: res.Day.CycleID,
		DayID:   res.Day.ID,
		Fields:  map[string]string{"asset": res.Day.Asset, "price": market.Round(price).String()},
	})
	return res, nil
}

// CloseDay aggregates the day's sales and closes it for good.
func (e *Engine) CloseDay(ctx context.Context, dayID int64) (DayResult, error) {
	var res DayResult
	now := e.now().UTC()

	err := e.update(ctx, "close day", func(tx *journal.Tx) error {
		d, err := tx.Day(ctx, dayID)
		if err != nil {
			return err
		}
		if !d.State.CanTransition(journal.DayClosed) {
			return fmt.Errorf("%w: day %d", ErrDayAlreadyClosed, d.Number)
		}

		sales, err := tx.Sales(ctx, d.ID)
		if err != nil {
			return err
		}
		d.SaleCount = len(sales)
		d.CashReceived, d.Commissions, d.GrossProfit, d.NetProfit =
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
		for _, s := range sales {
			d.CashReceived = d.CashReceived.Add(s.NetCash)
			d.Commissions = d.Commissions.Add(s.Commission)
			d.GrossProfit = d.GrossProfit.Add(s.GrossProfit)
			d.NetProfit = d.NetProfit.Add(s.NetProfit)
		}

		l, err := loadLedger(ctx, tx, d.CycleID)
		if err != nil {
			return err
		}
		pool, err := loadCashPool(ctx, tx, d.CycleID)
		if err != nil {
			return err
		}
		d.CapitalFinal = l.TotalValue(d.CycleID).Add(pool.Amount)

		if err := tx.CloseDay(ctx, d, now); err != nil {
			return err
		}
		d.State = journal.DayClosed
		d.ClosedAt = &now
		res.Day = d
		res.Warnings = risk.EvaluateDayClose(e.policy, d.SaleCount).Warnings
		return nil
	})
	if err != nil {
		return DayResult{}, err
	}

	e.log.Info().
		Int64("cycle", res.Day.CycleID).
		Int("day", res.Day.Number).
		Int("sales", res.Day.SaleCount).
		Str("net_profit", res.Day.NetProfit.String()).
		Msg("day closed")
	e.warn(res.Warnings)
	e.emit(Event{
		Action:  "day.close",
		CycleID: res.Day.CycleID,
		DayID:   res.Day.ID,
		Fields: map[string]string{
			"sales":         strconv.Itoa(res.Day.SaleCount),
			"net_profit":    market.Round(res.Day.NetProfit).String(),
			"capital_final": market.Round(res.Day.CapitalFinal).String(),
		},
	})
	return res, nil
}

func (e *Engine) warn(ws []risk.Violation) {
	for _, w := range ws {
		e.log.Warn().Str("code", w.Code).Msg(w.Msg)
	}
}
