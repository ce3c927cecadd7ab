// Package ledger keeps per-cycle asset positions at weighted-average cost
// and the per-cycle pool of realized cash. It performs no I/O.
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type key struct {
	cycle int64
	asset string
}

type Ledger struct {
	positions map[key]Position
}

// New builds a ledger from already stored positions.
func New(positions ...Position) *Ledger {
	l := &Ledger{positions: make(map[key]Position, len(positions))}
	for _, p := range positions {
		l.positions[key{p.CycleID, p.Asset}] = p
	}
	return l
}

// Position returns the holding for (cycle, asset); a zero position when
// nothing was ever bought.
func (l *Ledger) Position(cycle int64, asset string) Position {
	if p, ok := l.positions[key{cycle, asset}]; ok {
		return p
	}
	return Position{CycleID: cycle, Asset: asset}
}

func (l *Ledger) RecordPurchase(cycle int64, asset string, quantity, unitCost decimal.Decimal) (Position, error) {
	p, err := l.Position(cycle, asset).Purchase(quantity, unitCost)
	if err != nil {
		return p, err
	}
	l.positions[key{cycle, asset}] = p
	return p, nil
}

func (l *Ledger) RecordSale(cycle int64, asset string, quantity decimal.Decimal) (Position, error) {
	p, err := l.Position(cycle, asset).Sale(quantity)
	if err != nil {
		return p, err
	}
	l.positions[key{cycle, asset}] = p
	return p, nil
}

// Transfer moves quantity of asset from one cycle to another. The units
// keep the source's average cost and are merged into the destination.
func (l *Ledger) Transfer(from, to int64, asset string, quantity decimal.Decimal) (src, dst Position, err error) {
	if from == to {
		return l.Position(from, asset), l.Position(to, asset),
			fmt.Errorf("%w: transfer source and destination are both cycle %d", ErrInvalidAmount, from)
	}
	src = l.Position(from, asset)
	cost := src.AvgCost
	if src, err = src.Sale(quantity); err != nil {
		return src, l.Position(to, asset), err
	}
	if dst, err = l.Position(to, asset).Purchase(quantity, cost); err != nil {
		return l.Position(from, asset), dst, err
	}
	l.positions[key{from, asset}] = src
	l.positions[key{to, asset}] = dst
	return src, dst, nil
}

func (l *Ledger) Value(cycle int64, asset string) decimal.Decimal {
	return l.Position(cycle, asset).Value()
}

func (l *Ledger) TotalValue(cycle int64) decimal.Decimal {
	total := decimal.Zero
	for k, p := range l.positions {
		if k.cycle == cycle && p.Quantity.IsPositive() {
			total = total.Add(p.Value())
		}
	}
	return total
}

// TotalValueAll sums every position with a positive quantity, across all
// cycles.
func (l *Ledger) TotalValueAll() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.positions {
		if p.Quantity.IsPositive() {
			total = total.Add(p.Value())
		}
	}
	return total
}

// Positions lists the holdings of a cycle ordered by asset. Empty
// positions are included when all is true.
func (l *Ledger) Positions(cycle int64, all bool) []Position {
	var out []Position
	for k, p := range l.positions {
		if k.cycle != cycle {
			continue
		}
		if !all && p.IsEmpty() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// Check runs Position.Check over every holding.
func (l *Ledger) Check() error {
	for _, p := range l.positions {
		if err := p.Check(); err != nil {
			return err
		}
	}
	return nil
}
