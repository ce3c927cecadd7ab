package engine

import (
	"context"
	"fmt"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

type ReinvestResult struct {
	// Reinvested is false when the pool was empty and nothing happened.
	Reinvested bool
	Amount     decimal.Decimal
	Quantity   decimal.Decimal
	Rate       decimal.Decimal
	Position   ledger.Position
	CashPool   ledger.CashPool
}

// Reinvest buys asset at rate with the whole cash pool of a cycle. The
// bought units are merged into the vault at weighted-average cost and the
// pool is left at zero.
func (e *Engine) Reinvest(ctx context.Context, cycleID int64, asset string, rate decimal.Decimal) (ReinvestResult, error) {
	res := ReinvestResult{Rate: rate}
	now := e.now().UTC()

	err := e.update(ctx, "reinvest", func(tx *journal.Tx) error {
		if err := positive("rate", rate); err != nil {
			return err
		}
		c, err := tx.Cycle(ctx, cycleID)
		if err != nil {
			return err
		}
		if !c.Active() {
			return fmt.Errorf("%w: cycle %d", ErrCycleAlreadyClosed, c.ID)
		}
		if asset, err = knownAsset(ctx, tx, asset); err != nil {
			return err
		}

		pool, err := loadCashPool(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		res.CashPool = pool
		if !pool.Amount.IsPositive() {
			res.Position, err = loadPosition(ctx, tx, c.ID, asset)
			return err
		}

		pos, err := loadPosition(ctx, tx, c.ID, asset)
		if err != nil {
			return err
		}
		var amount decimal.Decimal
		res.CashPool, amount = pool.Drain()
		quantity := amount.Div(rate)
		if res.Position, err = ledger.New(pos).RecordPurchase(c.ID, asset, quantity, rate); err != nil {
			return err
		}

		if err := tx.SavePosition(ctx, res.Position); err != nil {
			return err
		}
		entry := journal.CashEntry{
			CycleID:   c.ID,
			Amount:    amount.Neg(),
			Concept:   "reinvest " + asset,
			CreatedAt: now,
		}
		if err := tx.InsertCashEntry(ctx, &entry); err != nil {
			return err
		}
		purchase := journal.Purchase{
			CycleID:    c.ID,
			Asset:      asset,
			Quantity:   quantity,
			FiatAmount: amount,
			Rate:       rate,
			Origin:     journal.OriginReinvestment,
			CreatedAt:  now,
		}
		if err := tx.InsertPurchase(ctx, &purchase); err != nil {
			return err
		}

		res.Reinvested = true
		res.Amount = amount
		res.Quantity = quantity
		return nil
	})
	if err != nil {
		return ReinvestResult{}, err
	}
	if !res.Reinvested {
		e.log.Info().Int64("cycle", cycleID).Msg("cash pool empty, nothing to reinvest")
		return res, nil
	}

	e.log.Info().
		Int64("cycle", res.Position.CycleID).
		Str("asset", res.Position.Asset).
		Str("amount", res.Amount.String()).
		Str("qty", res.Quantity.String()).
		Str("avg_cost", res.Position.AvgCost.String()).
		Msg("cash reinvested")
	e.emit(Event{
		Action:  "reinvest",
		CycleID: res.Position.CycleID,
		Fields: map[string]string{
			"asset":    res.Position.Asset,
			"amount":   market.Round(res.Amount).String(),
			"quantity": market.Round(res.Quantity).String(),
			"rate":     market.Round(rate).String(),
		},
	})
	return res, nil
}
