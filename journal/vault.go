package journal

import (
	"context"
	"strings"

	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/rustyeddy/arbitrage/pkg/id"
)

func scanAsset(s scanner) (Asset, error) {
	var (
		a    Asset
		kind string
	)
	if err := s.Scan(&a.ID, &a.Symbol, &a.Name, &kind, &a.Decimals); err != nil {
		return Asset{}, err
	}
	a.Kind = market.AssetKind(kind)
	return a, nil
}

// Assets lists the asset catalog ordered by symbol.
func (tx *Tx) Assets(ctx context.Context) ([]Asset, error) {
	return queryAll(ctx, tx.q, "list assets", scanAsset,
		`SELECT id, simbolo, nombre, tipo, decimales FROM criptomonedas ORDER BY simbolo`)
}

// AssetID resolves a symbol; ErrNotFound for unknown assets.
func (tx *Tx) AssetID(ctx context.Context, symbol string) (int64, error) {
	var aid int64
	err := tx.q.QueryRowContext(ctx,
		`SELECT id FROM criptomonedas WHERE simbolo = ?`, strings.ToUpper(symbol),
	).Scan(&aid)
	if err != nil {
		return 0, persist("asset "+symbol, err)
	}
	return aid, nil
}

func scanPosition(s scanner) (ledger.Position, error) {
	var p ledger.Position
	err := s.Scan(&p.CycleID, &p.Asset, &p.Quantity, &p.AvgCost)
	return p, err
}

const positionQuery = `
	SELECT b.ciclo_id, c.simbolo, b.cantidad, b.precio_promedio
	FROM boveda_ciclo b JOIN criptomonedas c ON c.id = b.cripto_id`

// Position returns the vault holding of (cycle, asset). A zero position is
// returned when the asset was never held.
func (tx *Tx) Position(ctx context.Context, cycleID int64, asset string) (ledger.Position, error) {
	row := tx.q.QueryRowContext(ctx,
		positionQuery+` WHERE b.ciclo_id = ? AND c.simbolo = ?`, cycleID, asset)
	p, err := scanPosition(row)
	if err != nil {
		err = persist("get position", err)
		if IsNotFound(err) {
			return ledger.Position{CycleID: cycleID, Asset: asset}, nil
		}
		return ledger.Position{}, err
	}
	return p, nil
}

// Positions lists the vault of one cycle, including emptied holdings.
func (tx *Tx) Positions(ctx context.Context, cycleID int64) ([]ledger.Position, error) {
	return queryAll(ctx, tx.q, "list positions", scanPosition,
		positionQuery+` WHERE b.ciclo_id = ? ORDER BY c.simbolo`, cycleID)
}

// AllPositions lists the vaults of every cycle.
func (tx *Tx) AllPositions(ctx context.Context) ([]ledger.Position, error) {
	return queryAll(ctx, tx.q, "list positions", scanPosition,
		positionQuery+` ORDER BY b.ciclo_id, c.simbolo`)
}

// Ledger loads the positions of the given cycles, or of every cycle when
// none is named.
func (tx *Tx) Ledger(ctx context.Context, cycles ...int64) (*ledger.Ledger, error) {
	if len(cycles) == 0 {
		all, err := tx.AllPositions(ctx)
		if err != nil {
			return nil, err
		}
		return ledger.New(all...), nil
	}
	var out []ledger.Position
	for _, c := range cycles {
		ps, err := tx.Positions(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return ledger.New(out...), nil
}

// SavePosition upserts a vault holding.
func (tx *Tx) SavePosition(ctx context.Context, p ledger.Position) error {
	assetID, err := tx.AssetID(ctx, p.Asset)
	if err != nil {
		return err
	}
	_, err = tx.q.ExecContext(ctx, `
		INSERT INTO boveda_ciclo (ciclo_id, cripto_id, cantidad, precio_promedio)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (ciclo_id, cripto_id) DO UPDATE SET
			cantidad = excluded.cantidad,
			precio_promedio = excluded.precio_promedio`,
		p.CycleID, assetID, dec(p.Quantity), dec(p.AvgCost),
	)
	return persist("save position", err)
}

// InsertPurchase appends to the purchase history. p.ID and, when empty,
// p.Ref are set.
func (tx *Tx) InsertPurchase(ctx context.Context, p *Purchase) error {
	assetID, err := tx.AssetID(ctx, p.Asset)
	if err != nil {
		return err
	}
	if p.Ref == "" {
		p.Ref = id.New()
	}
	res, err := tx.q.ExecContext(ctx, `
		INSERT INTO compras (ref, ciclo_id, cripto_id, cantidad, monto_usd, tasa, origen, fecha)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Ref, p.CycleID, assetID, dec(p.Quantity), dec(p.FiatAmount), dec(p.Rate),
		string(p.Origin), p.CreatedAt.UTC(),
	)
	if err != nil {
		return persist("insert purchase", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return persist("insert purchase", err)
	}
	return nil
}

func scanPurchase(s scanner) (Purchase, error) {
	var (
		p      Purchase
		origin string
	)
	err := s.Scan(&p.ID, &p.Ref, &p.CycleID, &p.Asset, &p.Quantity, &p.FiatAmount,
		&p.Rate, &origin, &p.CreatedAt)
	p.Origin = PurchaseOrigin(origin)
	return p, err
}

// Purchases lists the purchase history of a cycle, oldest first.
func (tx *Tx) Purchases(ctx context.Context, cycleID int64) ([]Purchase, error) {
	return queryAll(ctx, tx.q, "list purchases", scanPurchase, `
		SELECT p.id, p.ref, p.ciclo_id, c.simbolo, p.cantidad, p.monto_usd, p.tasa, p.origen, p.fecha
		FROM compras p JOIN criptomonedas c ON c.id = p.cripto_id
		WHERE p.ciclo_id = ?
		ORDER BY p.id`, cycleID)
}
