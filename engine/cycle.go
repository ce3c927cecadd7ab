package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
)

type CreateCycleRequest struct {
	PlannedDays int
	// AllowEmpty creates the cycle even when no vault holds capital.
	AllowEmpty bool
}

// CreateCycle starts a new cycle. Its initial investment is the value of
// every vault at the moment of creation.
func (e *Engine) CreateCycle(ctx context.Context, req CreateCycleRequest) (journal.Cycle, error) {
	var c journal.Cycle

	err := e.update(ctx, "create cycle", func(tx *journal.Tx) error {
		if req.PlannedDays <= 0 {
			return fmt.Errorf("%w: planned days %d must be positive", ErrInvalidAmount, req.PlannedDays)
		}
		active, err := tx.ActiveCycle(ctx)
		if err == nil {
			return fmt.Errorf("%w: cycle %d", ErrCycleAlreadyActive, active.ID)
		}
		if !journal.IsNotFound(err) {
			return err
		}

		l, err := loadLedger(ctx, tx)
		if err != nil {
			return err
		}
		initial := l.TotalValueAll()
		if initial.IsZero() && !req.AllowEmpty {
			return ErrNoCapital
		}

		c = journal.Cycle{
			StartDate:         e.now().UTC(),
			PlannedDays:       req.PlannedDays,
			InitialInvestment: initial,
		}
		return tx.InsertCycle(ctx, &c)
	})
	if err != nil {
		return journal.Cycle{}, err
	}

	e.log.Info().
		Int64("cycle", c.ID).
		Int("planned_days", c.PlannedDays).
		Str("initial", c.InitialInvestment.String()).
		Msg("cycle created")
	e.emit(Event{
		Action:  "cycle.create",
		CycleID: c.ID,
		Fields: map[string]string{
			"planned_days":       strconv.Itoa(c.PlannedDays),
			"initial_investment": market.Round(c.InitialInvestment).String(),
		},
	})
	return c, nil
}

// ExtendCycle adds extra planned days to an active cycle.
func (e *Engine) ExtendCycle(ctx context.Context, cycleID int64, extra int) (journal.Cycle, error) {
	var c journal.Cycle

	err := e.update(ctx, "extend cycle", func(tx *journal.Tx) error {
		if extra <= 0 {
			return fmt.Errorf("%w: extra days %d must be positive", ErrInvalidAmount, extra)
		}
		var err error
		if c, err = tx.Cycle(ctx, cycleID); err != nil {
			return err
		}
		if !c.Active() {
			return fmt.Errorf("%w: cycle %d", ErrCycleAlreadyClosed, c.ID)
		}
		c.PlannedDays += extra
		return tx.SetPlannedDays(ctx, c.ID, c.PlannedDays)
	})
	if err != nil {
		return journal.Cycle{}, err
	}

	e.log.Info().Int64("cycle", c.ID).Int("planned_days", c.PlannedDays).Msg("cycle extended")
	e.emit(Event{
		Action:  "cycle.extend",
		CycleID: c.ID,
		Fields:  map[string]string{"extra_days": strconv.Itoa(extra), "planned_days": strconv.Itoa(c.PlannedDays)},
	})
	return c, nil
}

// CloseCycle aggregates the closed days of a cycle and closes it. An open
// day always blocks closing. Before the planned duration is reached the
// cycle only closes when force is set.
func (e *Engine) CloseCycle(ctx context.Context, cycleID int64, force bool) (journal.Cycle, error) {
	var c journal.Cycle
	now := e.now().UTC()

	err := e.update(ctx, "close cycle", func(tx *journal.Tx) error {
		var err error
		if c, err = tx.Cycle(ctx, cycleID); err != nil {
			return err
		}
		if !c.State.CanTransition(journal.CycleClosed) {
			return fmt.Errorf("%w: cycle %d", ErrCycleAlreadyClosed, c.ID)
		}
		d, open, err := openDay(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: day %d", ErrOpenDayExists, d.Number)
		}
		if !force && !c.Complete(now) {
			return fmt.Errorf("%w: %d of %d days elapsed", ErrCycleIncomplete, c.DaysElapsed(now), c.PlannedDays)
		}

		days, err := tx.Days(ctx, c.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		operated := 0
		for _, d := range days {
			if d.State == journal.DayClosed {
				total = total.Add(d.NetProfit)
				operated++
			}
		}

		l, err := loadLedger(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		pool, err := loadCashPool(ctx, tx, c.ID)
		if err != nil {
			return err
		}

		c.DaysOperated = operated
		c.TotalNetProfit = total
		c.FinalCapital = l.TotalValue(c.ID).Add(pool.Amount)
		c.ROIPct = market.Pct(total, c.InitialInvestment)
		if err := tx.CloseCycle(ctx, c, now); err != nil {
			return err
		}
		c.State = journal.CycleClosed
		c.ClosedAt = &now
		return nil
	})
	if err != nil {
		return journal.Cycle{}, err
	}

	e.log.Info().
		Int64("cycle", c.ID).
		Int("days_operated", c.DaysOperated).
		Str("net_profit", c.TotalNetProfit.String()).
		Str("roi_pct", c.ROIPct.StringFixedBank(4)).
		Bool("forced", force).
		Msg("cycle closed")
	e.emit(Event{
		Action:  "cycle.close",
		CycleID: c.ID,
		Fields: map[string]string{
			"days_operated": strconv.Itoa(c.DaysOperated),
			"net_profit":    market.Round(c.TotalNetProfit).String(),
			"final_capital": market.Round(c.FinalCapital).String(),
			"roi_pct":       market.Round(c.ROIPct).String(),
			"forced":        strconv.FormatBool(force),
		},
	})
	return c, nil
}
