package journal

import (
	"context"
	"database/sql"
	"time"
)

const cycleColumns = `id, fecha_inicio, dias_planificados, inversion_inicial, estado,
	fecha_cierre, dias_operados, ganancia_total, capital_final, roi_total`

func scanCycle(s scanner) (Cycle, error) {
	var (
		c      Cycle
		state  string
		closed sql.NullTime
	)
	err := s.Scan(
		&c.ID,
		&c.StartDate,
		&c.PlannedDays,
		&c.InitialInvestment,
		&state,
		&closed,
		&c.DaysOperated,
		&c.TotalNetProfit,
		&c.FinalCapital,
		&c.ROIPct,
	)
	if err != nil {
		return Cycle{}, err
	}
	c.State = CycleState(state)
	if closed.Valid {
		t := closed.Time
		c.ClosedAt = &t
	}
	return c, nil
}

// InsertCycle stores a new active cycle and sets c.ID.
func (tx *Tx) InsertCycle(ctx context.Context, c *Cycle) error {
	res, err := tx.q.ExecContext(ctx, `
		INSERT INTO ciclos (fecha_inicio, dias_planificados, inversion_inicial, estado)
		VALUES (?, ?, ?, ?)`,
		c.StartDate.UTC(), c.PlannedDays, dec(c.InitialInvestment), string(CycleActive),
	)
	if err != nil {
		return persist("insert cycle", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return persist("insert cycle", err)
	}
	c.State = CycleActive
	return nil
}

func (tx *Tx) Cycle(ctx context.Context, id int64) (Cycle, error) {
	row := tx.q.QueryRowContext(ctx, `SELECT `+cycleColumns+` FROM ciclos WHERE id = ?`, id)
	c, err := scanCycle(row)
	if err != nil {
		return Cycle{}, persist("get cycle", err)
	}
	return c, nil
}

// ActiveCycle returns the active cycle, ErrNotFound when there is none.
func (tx *Tx) ActiveCycle(ctx context.Context) (Cycle, error) {
	row := tx.q.QueryRowContext(ctx, `
		SELECT `+cycleColumns+` FROM ciclos
		WHERE estado = ?
		ORDER BY id DESC LIMIT 1`, string(CycleActive))
	c, err := scanCycle(row)
	if err != nil {
		return Cycle{}, persist("active cycle", err)
	}
	return c, nil
}

// Cycles lists every cycle, newest first.
func (tx *Tx) Cycles(ctx context.Context) ([]Cycle, error) {
	return queryAll(ctx, tx.q, "list cycles", scanCycle,
		`SELECT `+cycleColumns+` FROM ciclos ORDER BY id DESC`)
}

func (tx *Tx) SetPlannedDays(ctx context.Context, id int64, days int) error {
	_, err := tx.q.ExecContext(ctx,
		`UPDATE ciclos SET dias_planificados = ? WHERE id = ? AND estado = ?`,
		days, id, string(CycleActive))
	return persist("extend cycle", err)
}

// CloseCycle writes the final figures of c and marks it closed.
func (tx *Tx) CloseCycle(ctx context.Context, c Cycle, at time.Time) error {
	_, err := tx.q.ExecContext(ctx, `
		UPDATE ciclos SET
			estado = ?,
			fecha_cierre = ?,
			dias_operados = ?,
			ganancia_total = ?,
			capital_final = ?,
			roi_total = ?
		WHERE id = ? AND estado = ?`,
		string(CycleClosed), at.UTC(), c.DaysOperated,
		dec(c.TotalNetProfit), dec(c.FinalCapital), dec(c.ROIPct),
		c.ID, string(CycleActive),
	)
	return persist("close cycle", err)
}
