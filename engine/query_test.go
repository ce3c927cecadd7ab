package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	h := newHarness(t)
	c := h.funded(t, "USDT", "100", "1")

	s, err := h.Suggest(h.ctx, c.ID, "usdt")
	require.NoError(t, err)
	assert.Equal(t, "USDT", s.Asset)
	assertDecimal(t, "1.0235", s.Price)
	assertDecimal(t, "2", s.EstimatedNetPct)
	assertDecimal(t, "100", s.Quantity)

	_, err = h.Suggest(h.ctx, c.ID, "BTC")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	_, err = h.Suggest(h.ctx, c.ID, "NOPE")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	_, err := h.Status(h.ctx)
	assert.ErrorIs(t, err, ErrNoActiveCycle)

	c := h.funded(t, "USDT", "1000", "1")
	day := h.pricedDay(t, c.ID, "USDT", "1.05")
	_, err = h.Sell(h.ctx, SellRequest{DayID: day.ID, Quantity: d("100")})
	require.NoError(t, err)
	h.clock.Advance(4*24*time.Hour + time.Hour)

	st, err := h.Status(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, c.ID, st.Cycle.ID)
	require.NotNil(t, st.OpenDay)
	assert.Equal(t, day.ID, st.OpenDay.ID)
	assert.Equal(t, 4, st.DaysElapsed)
	assert.Equal(t, 11, st.DaysRemaining)
	assertDecimal(t, "900", st.VaultValue)
	assertDecimal(t, "104.6325", st.CashPool.Amount)
	assertDecimal(t, "1004.6325", st.Capital)
	assert.Equal(t, 1, st.Sales)
	require.Len(t, st.Positions, 1)
}

// Reading twice must give the same answer and write nothing.
func TestReadsHaveNoSideEffects(t *testing.T) {
	h := newHarness(t)
	c := h.funded(t, "USDT", "1000", "1")
	day := h.pricedDay(t, c.ID, "USDT", "1.05")
	_, err := h.Sell(h.ctx, SellRequest{DayID: day.ID, Quantity: d("100")})
	require.NoError(t, err)

	events := len(h.audit.Actions())

	read := func() []any {
		st, err := h.Status(h.ctx)
		require.NoError(t, err)
		s, err := h.Suggest(h.ctx, c.ID, "USDT")
		require.NoError(t, err)
		sales, err := h.Sales(h.ctx, c.ID)
		require.NoError(t, err)
		all, err := h.Sales(h.ctx, 0)
		require.NoError(t, err)
		days, err := h.Days(h.ctx, c.ID)
		require.NoError(t, err)
		stats, err := h.Stats(h.ctx)
		require.NoError(t, err)
		cycles, err := h.Cycles(h.ctx)
		require.NoError(t, err)
		return []any{st, s, sales, all, days, stats, cycles}
	}

	first := read()
	second := read()
	assert.Equal(t, first, second)
	assert.Equal(t, events, len(h.audit.Actions()))
}
