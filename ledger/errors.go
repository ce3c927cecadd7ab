package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount reports a non-positive quantity, price or amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance reports a withdrawal larger than the holding.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InvariantError reports state that must never exist, such as a negative
// quantity read back from the store. It is a defect, not an input error.
type InvariantError struct {
	What  string
	Value decimal.Decimal
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s is %s", e.What, e.Value)
}
