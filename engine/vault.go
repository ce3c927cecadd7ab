package engine

import (
	"context"
	"strconv"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

// FundRequest buys Amount worth of Asset at Rate fiat per unit into the
// active cycle's vault.
type FundRequest struct {
	Asset  string
	Amount decimal.Decimal
	Rate   decimal.Decimal
}

type FundResult struct {
	Purchase journal.Purchase
	Position ledger.Position
}

func (e *Engine) Fund(ctx context.Context, req FundRequest) (FundResult, error) {
	var res FundResult
	now := e.now().UTC()

	err := e.update(ctx, "fund", func(tx *journal.Tx) error {
		if err := positive("amount", req.Amount); err != nil {
			return err
		}
		if err := positive("rate", req.Rate); err != nil {
			return err
		}
		c, err := activeCycle(ctx, tx)
		if err != nil {
			return err
		}
		asset, err := knownAsset(ctx, tx, req.Asset)
		if err != nil {
			return err
		}

		pos, err := loadPosition(ctx, tx, c.ID, asset)
		if err != nil {
			return err
		}
		quantity := req.Amount.Div(req.Rate)
		if res.Position, err = ledger.New(pos).RecordPurchase(c.ID, asset, quantity, req.Rate); err != nil {
			return err
		}
		if err := tx.SavePosition(ctx, res.Position); err != nil {
			return err
		}

		res.Purchase = journal.Purchase{
			CycleID:    c.ID,
			Asset:      asset,
			Quantity:   quantity,
			FiatAmount: req.Amount,
			Rate:       req.Rate,
			Origin:     journal.OriginFunding,
			CreatedAt:  now,
		}
		return tx.InsertPurchase(ctx, &res.Purchase)
	})
	if err != nil {
		return FundResult{}, err
	}

	e.log.Info().
		Int64("cycle", res.Position.CycleID).
		Str("asset", res.Position.Asset).
		Str("qty", res.Purchase.Quantity.String()).
		Str("avg_cost", res.Position.AvgCost.String()).
		Msg("vault funded")
	e.emit(Event{
		Action:  "vault.fund",
		CycleID: res.Position.CycleID,
		Fields: map[string]string{
			"ref":      res.Purchase.Ref,
			"asset":    res.Position.Asset,
			"amount":   market.Round(req.Amount).String(),
			"quantity": market.Round(res.Purchase.Quantity).String(),
			"rate":     market.Round(req.Rate).String(),
		},
	})
	return res, nil
}

// TransferRequest moves Quantity units of Asset from an earlier cycle's
// vault into the active cycle.
type TransferRequest struct {
	FromCycle int64
	Asset     string
	Quantity  decimal.Decimal
}

type TransferResult struct {
	From     ledger.Position
	To       ledger.Position
	Purchase journal.Purchase
}

// Transfer carries the source's average cost into the destination, where
// it is merged with what is already held.
func (e *Engine) Transfer(ctx context.Context, req TransferRequest) (TransferResult, error) {
	var res TransferResult
	now := e.now().UTC()

	err := e.update(ctx, "transfer", func(tx *journal.Tx) error {
		dst, err := activeCycle(ctx, tx)
		if err != nil {
			return err
		}
		if _, err := tx.Cycle(ctx, req.FromCycle); err != nil {
			return err
		}
		asset, err := knownAsset(ctx, tx, req.Asset)
		if err != nil {
			return err
		}

		src, err := loadPosition(ctx, tx, req.FromCycle, asset)
		if err != nil {
			return err
		}
		to, err := loadPosition(ctx, tx, dst.ID, asset)
		if err != nil {
			return err
		}
		l := ledger.New(src, to)
		if res.From, res.To, err = l.Transfer(req.FromCycle, dst.ID, asset, req.Quantity); err != nil {
			return err
		}

		if err := tx.SavePosition(ctx, res.From); err != nil {
			return err
		}
		if err := tx.SavePosition(ctx, res.To); err != nil {
			return err
		}
		res.Purchase = journal.Purchase{
			CycleID:    dst.ID,
			Asset:      asset,
			Quantity:   req.Quantity,
			FiatAmount: req.Quantity.Mul(src.AvgCost),
			Rate:       src.AvgCost,
			Origin:     journal.OriginTransfer,
			CreatedAt:  now,
		}
		return tx.InsertPurchase(ctx, &res.Purchase)
	})
	if err != nil {
		return TransferResult{}, err
	}

	e.log.Info().
		Int64("from", res.From.CycleID).
		Int64("to", res.To.CycleID).
		Str("asset", res.To.Asset).
		Str("qty", req.Quantity.String()).
		Msg("vault transfer")
	e.emit(Event{
		Action:  "vault.transfer",
		CycleID: res.To.CycleID,
		Fields: map[string]string{
			"ref":        res.Purchase.Ref,
			"from_cycle": strconv.FormatInt(res.From.CycleID, 10),
			"asset":      res.To.Asset,
			"quantity":   market.Round(req.Quantity).String(),
			"cost":       market.Round(res.Purchase.Rate).String(),
		},
	})
	return res, nil
}
