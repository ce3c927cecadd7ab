package journal

import (
	"context"

	"github.com/rustyeddy/arbitrage/pkg/id"
)

const saleColumns = `v.id, v.ref, v.dia_id, c.simbolo, v.cantidad, v.precio_unitario,
	v.costo_unitario, v.costo_total, v.monto_venta, v.comision_pct, v.comision,
	v.efectivo_recibido, v.ganancia_bruta, v.ganancia_neta, v.fecha`

const saleFrom = ` FROM ventas v JOIN criptomonedas c ON c.id = v.cripto_id`

func scanSale(s scanner) (Sale, error) {
	var v Sale
	err := s.Scan(
		&v.ID,
		&v.Ref,
		&v.DayID,
		&v.Asset,
		&v.Quantity,
		&v.UnitPrice,
		&v.CostBasis,
		&v.CostTotal,
		&v.Revenue,
		&v.CommissionPct,
		&v.Commission,
		&v.NetCash,
		&v.GrossProfit,
		&v.NetProfit,
		&v.CreatedAt,
	)
	return v, err
}

// InsertSale appends a sale. s.ID and, when empty, s.Ref are set.
func (tx *Tx) InsertSale(ctx context.Context, s *Sale) error {
	assetID, err := tx.AssetID(ctx, s.Asset)
	if err != nil {
		return err
	}
	if s.Ref == "" {
		s.Ref = id.New()
	}
	res, err := tx.q.ExecContext(ctx, `
		INSERT INTO ventas
		(ref, dia_id, cripto_id, cantidad, precio_unitario, costo_unitario, costo_total,
		 monto_venta, comision_pct, comision, efectivo_recibido, ganancia_bruta, ganancia_neta, fecha)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Ref, s.DayID, assetID,
		dec(s.Quantity), dec(s.UnitPrice), dec(s.CostBasis), dec(s.CostTotal),
		dec(s.Revenue), dec(s.CommissionPct), dec(s.Commission), dec(s.NetCash),
		dec(s.GrossProfit), dec(s.NetProfit), s.CreatedAt.UTC(),
	)
	if err != nil {
		return persist("insert sale", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return persist("insert sale", err)
	}
	return nil
}

// Sales lists the sales of a day in execution order.
func (tx *Tx) Sales(ctx context.Context, dayID int64) ([]Sale, error) {
	return queryAll(ctx, tx.q, "list sales", scanSale,
		`SELECT `+saleColumns+saleFrom+` WHERE v.dia_id = ? ORDER BY v.id`, dayID)
}

// CycleSales lists every sale of a cycle in execution order.
func (tx *Tx) CycleSales(ctx context.Context, cycleID int64) ([]Sale, error) {
	return queryAll(ctx, tx.q, "list cycle sales", scanSale,
		`SELECT `+saleColumns+saleFrom+`
		JOIN dias d ON d.id = v.dia_id
		WHERE d.ciclo_id = ? ORDER BY v.id`, cycleID)
}

// AllSales lists every sale ever made.
func (tx *Tx) AllSales(ctx context.Context) ([]Sale, error) {
	return queryAll(ctx, tx.q, "list all sales", scanSale,
		`SELECT `+saleColumns+saleFrom+` ORDER BY v.id`)
}
