// Package engine runs the operations of an arbitrage cycle: funding and
// transferring vault capital, opening and closing days, pricing, selling
// and reinvesting. Every mutation is one store transaction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/arbitrage/journal"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/rustyeddy/arbitrage/pkg/id"
	"github.com/rustyeddy/arbitrage/risk"
	"github.com/shopspring/decimal"
)

// Event describes one committed mutation.
type Event struct {
	ID      string
	Time    time.Time
	Action  string
	CycleID int64
	DayID   int64
	Fields  map[string]string
}

// AuditSink receives an Event after every committed mutation. Record must
// not block; a panicking sink is recovered and logged.
type AuditSink interface {
	Record(Event)
}

type Engine struct {
	store    *journal.Store
	policy   risk.Policy
	currency string
	log      zerolog.Logger
	audit    AuditSink
	now      func() time.Time
}

type Option func(*Engine)

func WithPolicy(p risk.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithCurrency(code string) Option {
	return func(e *Engine) { e.currency = code }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithAudit(a AuditSink) Option {
	return func(e *Engine) { e.audit = a }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store *journal.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		policy:   risk.DefaultPolicy(),
		currency: market.DefaultCurrency,
		log:      zerolog.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Policy() risk.Policy { return e.policy }

func (e *Engine) Currency() string { return e.currency }

func (e *Engine) update(ctx context.Context, op string, fn func(*journal.Tx) error) error {
	if err := e.store.Update(ctx, fn); err != nil {
		return e.fail(op, err)
	}
	return nil
}

func (e *Engine) view(ctx context.Context, op string, fn func(*journal.Tx) error) error {
	if err := e.store.View(ctx, fn); err != nil {
		return e.fail(op, err)
	}
	return nil
}

func (e *Engine) fail(op string, err error) error {
	var (
		ie *InvariantError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &ie):
		e.log.Error().Err(err).Str("op", op).Msg("ledger invariant violated")
	case errors.As(err, &pe):
		e.log.Error().Err(err).Str("op", op).Msg("store failure, rolled back")
	default:
		e.log.Debug().Err(err).Str("op", op).Msg("rejected")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (e *Engine) emit(ev Event) {
	if e.audit == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Str("action", ev.Action).Msg("audit sink panicked")
		}
	}()
	if ev.Time.IsZero() {
		ev.Time = e.now().UTC()
	}
	ev.ID = id.NewAt(ev.Time)
	e.audit.Record(ev)
}

// loadLedger reads the positions of the given cycles (every cycle when
// none is named) and verifies them.
func loadLedger(ctx context.Context, tx *journal.Tx, cycles ...int64) (*ledger.Ledger, error) {
	l, err := tx.Ledger(ctx, cycles...)
	if err != nil {
		return nil, err
	}
	if err := l.Check(); err != nil {
		return nil, err
	}
	return l, nil
}

func loadPosition(ctx context.Context, tx *journal.Tx, cycleID int64, asset string) (ledger.Position, error) {
	p, err := tx.Position(ctx, cycleID, asset)
	if err != nil {
		return p, err
	}
	return p, p.Check()
}

func loadCashPool(ctx context.Context, tx *journal.Tx, cycleID int64) (ledger.CashPool, error) {
	pool, err := tx.CashPool(ctx, cycleID)
	if err != nil {
		return pool, err
	}
	return pool, pool.Check()
}

// activeCycle maps a missing active cycle to ErrNoActiveCycle.
func activeCycle(ctx context.Context, tx *journal.Tx) (journal.Cycle, error) {
	c, err := tx.ActiveCycle(ctx)
	if journal.IsNotFound(err) {
		return c, ErrNoActiveCycle
	}
	return c, err
}

// openDay returns the open day of a cycle, if there is one.
func openDay(ctx context.Context, tx *journal.Tx, cycleID int64) (journal.Day, bool, error) {
	d, err := tx.OpenDay(ctx, cycleID)
	if journal.IsNotFound(err) {
		return d, false, nil
	}
	if err != nil {
		return d, false, err
	}
	return d, true, nil
}

// knownAsset normalizes symbol and checks it against the catalog.
func knownAsset(ctx context.Context, tx *journal.Tx, symbol string) (string, error) {
	symbol = market.NormalizeSymbol(symbol)
	if _, err := tx.AssetID(ctx, symbol); err != nil {
		if journal.IsNotFound(err) {
			return symbol, fmt.Errorf("%w: %q", ErrUnknownAsset, symbol)
		}
		return symbol, err
	}
	return symbol, nil
}

func positive(what string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s %s must be positive", ErrInvalidAmount, what, v)
	}
	return nil
}
