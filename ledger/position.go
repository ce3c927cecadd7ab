package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Position is the holding of one asset inside one cycle, valued at its
// weighted-average cost.
type Position struct {
	CycleID  int64
	Asset    string
	Quantity decimal.Decimal
	AvgCost  decimal.Decimal
}

// Value is Quantity x AvgCost.
func (p Position) Value() decimal.Decimal {
	return p.Quantity.Mul(p.AvgCost)
}

func (p Position) IsEmpty() bool {
	return !p.Quantity.IsPositive()
}

// Purchase returns the position after adding quantity units bought at
// unitCost each. The average cost is recomputed as the quantity weighted
// mean of the old and new units.
func (p Position) Purchase(quantity, unitCost decimal.Decimal) (Position, error) {
	if !quantity.IsPositive() {
		return p, fmt.Errorf("%w: quantity %s must be positive", ErrInvalidAmount, quantity)
	}
	if !unitCost.IsPositive() {
		return p, fmt.Errorf("%w: unit cost %s must be positive", ErrInvalidAmount, unitCost)
	}

	newQty := p.Quantity.Add(quantity)
	if p.Quantity.IsZero() {
		p.AvgCost = unitCost
	} else {
		p.AvgCost = p.Quantity.Mul(p.AvgCost).Add(quantity.Mul(unitCost)).Div(newQty)
	}
	p.Quantity = newQty
	return p, nil
}

// Sale returns the position after removing quantity units. The average
// cost of the remaining units is unchanged.
func (p Position) Sale(quantity decimal.Decimal) (Position, error) {
	if !quantity.IsPositive() {
		return p, fmt.Errorf("%w: quantity %s must be positive", ErrInvalidAmount, quantity)
	}
	if quantity.GreaterThan(p.Quantity) {
		return p, fmt.Errorf("%w: %s %s requested, %s available",
			ErrInsufficientBalance, quantity, p.Asset, p.Quantity)
	}
	p.Quantity = p.Quantity.Sub(quantity)
	return p, nil
}

// Check verifies the stored invariants of a position.
func (p Position) Check() error {
	if p.Quantity.IsNegative() {
		return &InvariantError{What: fmt.Sprintf("quantity of %s in cycle %d", p.Asset, p.CycleID), Value: p.Quantity}
	}
	if p.AvgCost.IsNegative() {
		return &InvariantError{What: fmt.Sprintf("average cost of %s in cycle %d", p.Asset, p.CycleID), Value: p.AvgCost}
	}
	return nil
}
