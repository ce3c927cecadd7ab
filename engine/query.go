package engine

import (
	"context"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/shopspring/decimal"
)

// CycleStatus is a read-only snapshot of a cycle.
type CycleStatus struct {
	Cycle         journal.Cycle
	OpenDay       *journal.Day
	Positions     []ledger.Position
	CashPool      ledger.CashPool
	VaultValue    decimal.Decimal
	Capital       decimal.Decimal // vault value plus cash pool
	DaysElapsed   int
	DaysRemaining int
	NetProfit     decimal.Decimal // closed days so far
	Sales         int
}

// Status reports on the active cycle.
func (e *Engine) Status(ctx context.Context) (CycleStatus, error) {
	var st CycleStatus
	err := e.view(ctx, "status", func(tx *journal.Tx) error {
		c, err := activeCycle(ctx, tx)
		if err != nil {
			return err
		}
		st, err = e.cycleStatus(ctx, tx, c)
		return err
	})
	return st, err
}

// CycleStatus reports on any cycle.
func (e *Engine) CycleStatus(ctx context.Context, cycleID int64) (CycleStatus, error) {
	var st CycleStatus
	err := e.view(ctx, "cycle status", func(tx *journal.Tx) error {
		c, err := tx.Cycle(ctx, cycleID)
		if err != nil {
			return err
		}
		st, err = e.cycleStatus(ctx, tx, c)
		return err
	})
	return st, err
}

func (e *Engine) cycleStatus(ctx context.Context, tx *journal.Tx, c journal.Cycle) (CycleStatus, error) {
	st := CycleStatus{Cycle: c}
	now := e.now()
	if c.Active() {
		st.DaysElapsed = c.DaysElapsed(now)
		st.DaysRemaining = c.DaysRemaining(now)
	} else if c.ClosedAt != nil {
		st.DaysElapsed = c.DaysElapsed(*c.ClosedAt)
	}

	l, err := loadLedger(ctx, tx, c.ID)
	if err != nil {
		return st, err
	}
	if st.CashPool, err = loadCashPool(ctx, tx, c.ID); err != nil {
		return st, err
	}
	st.Positions = l.Positions(c.ID, false)
	st.VaultValue = l.TotalValue(c.ID)
	st.Capital = st.VaultValue.Add(st.CashPool.Amount)

	days, err := tx.Days(ctx, c.ID)
	if err != nil {
		return st, err
	}
	for i := range days {
		d := days[i]
		st.Sales += d.SaleCount
		if d.Open() {
			st.OpenDay = &d
			continue
		}
		st.NetProfit = st.NetProfit.Add(d.NetProfit)
	}
	return st, nil
}

// ActiveCycle returns the active cycle or ErrNoActiveCycle.
func (e *Engine) ActiveCycle(ctx context.Context) (c journal.Cycle, err error) {
	err = e.view(ctx, "active cycle", func(tx *journal.Tx) error {
		c, err = activeCycle(ctx, tx)
		return err
	})
	return c, err
}

func (e *Engine) Cycles(ctx context.Context) (cycles []journal.Cycle, err error) {
	err = e.view(ctx, "list cycles", func(tx *journal.Tx) error {
		cycles, err = tx.Cycles(ctx)
		return err
	})
	return cycles, err
}

func (e *Engine) Day(ctx context.Context, dayID int64) (d journal.Day, err error) {
	err = e.view(ctx, "get day", func(tx *journal.Tx) error {
		d, err = tx.Day(ctx, dayID)
		return err
	})
	return d, err
}

// CurrentDay returns the open day of the active cycle.
func (e *Engine) CurrentDay(ctx context.Context) (d journal.Day, err error) {
	err = e.view(ctx, "current day", func(tx *journal.Tx) error {
		c, err := activeCycle(ctx, tx)
		if err != nil {
			return err
		}
		d, err = tx.OpenDay(ctx, c.ID)
		return err
	})
	return d, err
}

func (e *Engine) Days(ctx context.Context, cycleID int64) (days []journal.Day, err error) {
	err = e.view(ctx, "list days", func(tx *journal.Tx) error {
		days, err = tx.Days(ctx, cycleID)
		return err
	})
	return days, err
}

// Positions lists the non-empty holdings of a cycle's vault.
func (e *Engine) Positions(ctx context.Context, cycleID int64) (ps []ledger.Position, err error) {
	err = e.view(ctx, "positions", func(tx *journal.Tx) error {
		l, err := loadLedger(ctx, tx, cycleID)
		if err != nil {
			return err
		}
		ps = l.Positions(cycleID, false)
		return nil
	})
	return ps, err
}

func (e *Engine) CashPool(ctx context.Context, cycleID int64) (pool ledger.CashPool, err error) {
	err = e.view(ctx, "cash pool", func(tx *journal.Tx) error {
		pool, err = loadCashPool(ctx, tx, cycleID)
		return err
	})
	return pool, err
}

func (e *Engine) DaySales(ctx context.Context, dayID int64) (sales []journal.Sale, err error) {
	err = e.view(ctx, "day sales", func(tx *journal.Tx) error {
		sales, err = tx.Sales(ctx, dayID)
		return err
	})
	return sales, err
}

// Sales lists the sales of one cycle, or of every cycle when cycleID is 0.
func (e *Engine) Sales(ctx context.Context, cycleID int64) (sales []journal.Sale, err error) {
	err = e.view(ctx, "sales", func(tx *journal.Tx) error {
		if cycleID == 0 {
			sales, err = tx.AllSales(ctx)
		} else {
			sales, err = tx.CycleSales(ctx, cycleID)
		}
		return err
	})
	return sales, err
}

func (e *Engine) Purchases(ctx context.Context, cycleID int64) (ps []journal.Purchase, err error) {
	err = e.view(ctx, "purchases", func(tx *journal.Tx) error {
		ps, err = tx.Purchases(ctx, cycleID)
		return err
	})
	return ps, err
}

func (e *Engine) Stats(ctx context.Context) (st journal.Stats, err error) {
	err = e.view(ctx, "stats", func(tx *journal.Tx) error {
		st, err = tx.Stats(ctx)
		return err
	})
	return st, err
}
