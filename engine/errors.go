package engine

import (
	"errors"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
)

// Input and state errors. None of them leave anything written.
var (
	ErrInvalidAmount       = ledger.ErrInvalidAmount
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
	ErrNotFound            = journal.ErrNotFound

	ErrNoPriceSet        = errors.New("no price published for the day")
	ErrDayAlreadyOpen    = errors.New("cycle already has an open day")
	ErrDayAlreadyClosed  = errors.New("day already closed")
	ErrDayClosed         = ErrDayAlreadyClosed
	ErrRateLimitExceeded = errors.New("daily sale limit reached")
	ErrPriceLocked       = errors.New("price cannot change after the first sale")
	ErrPriceMismatch     = errors.New("unit price differs from the published price")
	ErrAssetMismatch     = errors.New("asset differs from the one priced for the day")
	ErrUnknownAsset      = errors.New("unknown asset")

	ErrOpenDayExists      = errors.New("cycle has an open day")
	ErrCycleAlreadyClosed = errors.New("cycle already closed")
	ErrCycleAlreadyActive = errors.New("another cycle is active")
	ErrNoActiveCycle      = errors.New("no active cycle")
	ErrNoCapital          = errors.New("vaults hold no capital")
	ErrCycleIncomplete    = errors.New("cycle has not reached its planned duration")
)

type (
	PersistenceError = journal.PersistenceError
	InvariantError   = ledger.InvariantError
)
