package journal

import (
	"context"
	"database/sql"

	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/pkg/id"
	"github.com/shopspring/decimal"
)

// InsertCashEntry appends a signed movement to a cycle's cash pool.
func (tx *Tx) InsertCashEntry(ctx context.Context, e *CashEntry) error {
	if e.Ref == "" {
		e.Ref = id.New()
	}
	var day any
	if e.DayID != nil {
		day = *e.DayID
	}
	res, err := tx.q.ExecContext(ctx, `
		INSERT INTO efectivo_banco (ref, ciclo_id, dia_id, monto, concepto, fecha)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Ref, e.CycleID, day, dec(e.Amount), e.Concept, e.CreatedAt.UTC(),
	)
	if err != nil {
		return persist("insert cash entry", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return persist("insert cash entry", err)
	}
	return nil
}

func scanCashEntry(s scanner) (CashEntry, error) {
	var (
		e   CashEntry
		day sql.NullInt64
	)
	err := s.Scan(&e.ID, &e.Ref, &e.CycleID, &day, &e.Amount, &e.Concept, &e.CreatedAt)
	if day.Valid {
		v := day.Int64
		e.DayID = &v
	}
	return e, err
}

// CashEntries lists the cash movements of a cycle, oldest first.
func (tx *Tx) CashEntries(ctx context.Context, cycleID int64) ([]CashEntry, error) {
	return queryAll(ctx, tx.q, "list cash entries", scanCashEntry, `
		SELECT id, ref, ciclo_id, dia_id, monto, concepto, fecha
		FROM efectivo_banco WHERE ciclo_id = ? ORDER BY id`, cycleID)
}

// CashPool sums the cash entries of a cycle. Amounts are stored as exact
// decimal text so the sum is done here rather than in SQL.
func (tx *Tx) CashPool(ctx context.Context, cycleID int64) (ledger.CashPool, error) {
	entries, err := tx.CashEntries(ctx, cycleID)
	if err != nil {
		return ledger.CashPool{}, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return ledger.CashPool{CycleID: cycleID, Amount: total}, nil
}
