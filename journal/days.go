package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const dayColumns = `d.id, d.ciclo_id, d.numero_dia, d.fecha, d.fecha_cierre, d.estado,
	d.capital_inicial, d.capital_final, d.efectivo_recibido, d.comisiones_pagadas,
	d.ganancia_bruta, d.ganancia_neta, d.num_ventas, c.simbolo, d.precio_publicado`

const dayFrom = ` FROM dias d LEFT JOIN criptomonedas c ON c.id = d.cripto_operada_id`

func scanDay(s scanner) (Day, error) {
	var (
		d      Day
		state  string
		closed sql.NullTime
		asset  sql.NullString
	)
	err := s.Scan(
		&d.ID,
		&d.CycleID,
		&d.Number,
		&d.OpenedAt,
		&closed,
		&state,
		&d.CapitalInitial,
		&d.CapitalFinal,
		&d.CashReceived,
		&d.Commissions,
		&d.GrossProfit,
		&d.NetProfit,
		&d.SaleCount,
		&asset,
		&d.Price,
	)
	if err != nil {
		return Day{}, err
	}
	d.State = DayState(state)
	d.Asset = asset.String
	if closed.Valid {
		t := closed.Time
		d.ClosedAt = &t
	}
	return d, nil
}

// InsertDay stores an open day with the next sequence number of its
// cycle. d.ID and d.Number are set.
func (tx *Tx) InsertDay(ctx context.Context, d *Day) error {
	var last int
	err := tx.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(numero_dia), 0) FROM dias WHERE ciclo_id = ?`, d.CycleID,
	).Scan(&last)
	if err != nil {
		return persist("next day number", err)
	}
	d.Number = last + 1

	res, err := tx.q.ExecContext(ctx, `
		INSERT INTO dias (ciclo_id, numero_dia, fecha, capital_inicial, estado)
		VALUES (?, ?, ?, ?, ?)`,
		d.CycleID, d.Number, d.OpenedAt.UTC(), dec(d.CapitalInitial), string(DayOpen),
	)
	if err != nil {
		return persist("insert day", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return persist("insert day", err)
	}
	d.State = DayOpen
	return nil
}

func (tx *Tx) Day(ctx context.Context, id int64) (Day, error) {
	row := tx.q.QueryRowContext(ctx, `SELECT `+dayColumns+dayFrom+` WHERE d.id = ?`, id)
	d, err := scanDay(row)
	if err != nil {
		return Day{}, persist("get day", err)
	}
	return d, nil
}

// OpenDay returns the open day of a cycle, ErrNotFound when there is none.
func (tx *Tx) OpenDay(ctx context.Context, cycleID int64) (Day, error) {
	row := tx.q.QueryRowContext(ctx,
		`SELECT `+dayColumns+dayFrom+` WHERE d.ciclo_id = ? AND d.estado = ?`,
		cycleID, string(DayOpen))
	d, err := scanDay(row)
	if err != nil {
		return Day{}, persist("open day", err)
	}
	return d, nil
}

// Days lists the days of a cycle in sequence order.
func (tx *Tx) Days(ctx context.Context, cycleID int64) ([]Day, error) {
	return queryAll(ctx, tx.q, "list days", scanDay,
		`SELECT `+dayColumns+dayFrom+` WHERE d.ciclo_id = ? ORDER BY d.numero_dia`, cycleID)
}

// SetDayPrice publishes the price the day sells asset at.
func (tx *Tx) SetDayPrice(ctx context.Context, dayID int64, asset string, price decimal.Decimal) error {
	assetID, err := tx.AssetID(ctx, asset)
	if err != nil {
		return err
	}
	_, err = tx.q.ExecContext(ctx,
		`UPDATE dias SET cripto_operada_id = ?, precio_publicado = ? WHERE id = ? AND estado = ?`,
		assetID, dec(price), dayID, string(DayOpen))
	return persist("set day price", err)
}

// IncSaleCount bumps the sale counter of an open day.
func (tx *Tx) IncSaleCount(ctx context.Context, dayID int64) error {
	_, err := tx.q.ExecContext(ctx,
		`UPDATE dias SET num_ventas = num_ventas + 1 WHERE id = ? AND estado = ?`,
		dayID, string(DayOpen))
	return persist("count sale", err)
}

// CloseDay writes the aggregated figures of d and marks it closed.
func (tx *Tx) CloseDay(ctx context.Context, d Day, at time.Time) error {
	_, err := tx.q.ExecContext(ctx, `
		UPDATE dias SET
			estado = ?,
			fecha_cierre = ?,
			capital_final = ?,
			efectivo_recibido = ?,
			comisiones_pagadas = ?,
			ganancia_bruta = ?,
			ganancia_neta = ?,
			num_ventas = ?
		WHERE id = ? AND estado = ?`,
		string(DayClosed), at.UTC(),
		dec(d.CapitalFinal), dec(d.CashReceived), dec(d.Commissions),
		dec(d.GrossProfit), dec(d.NetProfit), d.SaleCount,
		d.ID, string(DayOpen),
	)
	return persist("close day", err)
}
