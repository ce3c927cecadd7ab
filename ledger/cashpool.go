package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CashPool holds net sale proceeds of a cycle that were not reinvested yet.
type CashPool struct {
	CycleID int64
	Amount  decimal.Decimal
}

func (c CashPool) Deposit(amount decimal.Decimal) (CashPool, error) {
	if !amount.IsPositive() {
		return c, fmt.Errorf("%w: deposit %s must be positive", ErrInvalidAmount, amount)
	}
	c.Amount = c.Amount.Add(amount)
	return c, nil
}

func (c CashPool) Withdraw(amount decimal.Decimal) (CashPool, error) {
	if !amount.IsPositive() {
		return c, fmt.Errorf("%w: withdrawal %s must be positive", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(c.Amount) {
		return c, fmt.Errorf("%w: %s requested, %s in pool", ErrInsufficientBalance, amount, c.Amount)
	}
	c.Amount = c.Amount.Sub(amount)
	return c, nil
}

// Drain empties the pool and returns what it held.
func (c CashPool) Drain() (CashPool, decimal.Decimal) {
	amount := c.Amount
	c.Amount = decimal.Zero
	return c, amount
}

func (c CashPool) Check() error {
	if c.Amount.IsNegative() {
		return &InvariantError{What: fmt.Sprintf("cash pool of cycle %d", c.CycleID), Value: c.Amount}
	}
	return nil
}
