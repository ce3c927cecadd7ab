package engine

import (
	"context"
	"fmt"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/pricing"
	"github.com/shopspring/decimal"
)

type Suggestion struct {
	CycleID         int64
	Asset           string
	Quantity        decimal.Decimal
	CostBasis       decimal.Decimal
	CommissionPct   decimal.Decimal
	TargetPct       decimal.Decimal
	Price           decimal.Decimal
	EstimatedNetPct decimal.Decimal
}

// Suggest computes the price that covers commission and the target
// profit for the cycle's current cost basis of asset. Nothing is written.
func (e *Engine) Suggest(ctx context.Context, cycleID int64, asset string) (Suggestion, error) {
	s := Suggestion{
		CycleID:       cycleID,
		CommissionPct: e.policy.CommissionPct,
		TargetPct:     e.policy.TargetProfitPct,
	}

	err := e.view(ctx, "suggest", func(tx *journal.Tx) error {
		if _, err := tx.Cycle(ctx, cycleID); err != nil {
			return err
		}
		var err error
		if s.Asset, err = knownAsset(ctx, tx, asset); err != nil {
			return err
		}
		pos, err := loadPosition(ctx, tx, cycleID, s.Asset)
		if err != nil {
			return err
		}
		if pos.IsEmpty() {
			return fmt.Errorf("%w: cycle %d holds no %s", ErrInsufficientBalance, cycleID, s.Asset)
		}
		s.Quantity = pos.Quantity
		s.CostBasis = pos.AvgCost
		return nil
	})
	if err != nil {
		return Suggestion{}, err
	}

	s.Price = pricing.SuggestedPrice(s.CostBasis, s.CommissionPct, s.TargetPct)
	s.EstimatedNetPct = pricing.EstimatedNetProfitPct(s.CostBasis, s.Price, s.CommissionPct)
	return s, nil
}
