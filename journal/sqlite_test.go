package journal

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/arbitrage/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func insertCycle(t *testing.T, s *Store) Cycle {
	t.Helper()
	c := Cycle{StartDate: t0, PlannedDays: 15, InitialInvestment: d("1000")}
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error {
		return tx.InsertCycle(context.Background(), &c)
	}))
	return c
}

func TestSchemaCreated(t *testing.T) {
	t.Parallel()

	_, path := newTestStore(t)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	for _, table := range []string{"criptomonedas", "ciclos", "dias", "boveda_ciclo", "ventas", "efectivo_banco", "compras"} {
		assert.True(t, found[table], table)
	}
}

func TestAssetsSeededOnce(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	// reopening must not duplicate the catalog
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		assets, err := tx.Assets(ctx)
		require.NoError(t, err)
		assert.Len(t, assets, 6)
		assert.Equal(t, "BNB", assets[0].Symbol)

		_, err = tx.AssetID(ctx, "usdt")
		assert.NoError(t, err)

		_, err = tx.AssetID(ctx, "DOGE")
		assert.True(t, IsNotFound(err))
		return nil
	}))
}

func TestCycleRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)
	assert.NotZero(t, c.ID)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := tx.ActiveCycle(ctx)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, CycleActive, got.State)
		assert.True(t, got.StartDate.Equal(t0))
		assert.Equal(t, 15, got.PlannedDays)
		assertDecimal(t, "1000", got.InitialInvestment)
		assert.Nil(t, got.ClosedAt)
		return nil
	}))

	closedAt := t0.AddDate(0, 0, 16)
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SetPlannedDays(ctx, c.ID, 20))
		c.DaysOperated = 2
		c.TotalNetProfit = d("12.5")
		c.FinalCapital = d("1012.5")
		c.ROIPct = d("1.25")
		return tx.CloseCycle(ctx, c, closedAt)
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		got, err := tx.Cycle(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, CycleClosed, got.State)
		assert.Equal(t, 20, got.PlannedDays)
		require.NotNil(t, got.ClosedAt)
		assert.True(t, got.ClosedAt.Equal(closedAt))
		assertDecimal(t, "1012.5", got.FinalCapital)

		_, err = tx.ActiveCycle(ctx)
		assert.True(t, IsNotFound(err))
		return nil
	}))
}

func TestOnlyOneActiveCycle(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	insertCycle(t, s)

	ctx := context.Background()
	err := s.Update(ctx, func(tx *Tx) error {
		c := Cycle{StartDate: t0, PlannedDays: 5, InitialInvestment: decimal.Zero}
		return tx.InsertCycle(ctx, &c)
	})
	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
}

func TestDaySequenceAndSingleOpenDay(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)

	day := Day{CycleID: c.ID, OpenedAt: t0, CapitalInitial: d("1000")}
	require.NoError(t, s.Update(ctx, func(tx *Tx) error { return tx.InsertDay(ctx, &day) }))
	assert.Equal(t, 1, day.Number)

	// a second open day violates the partial unique index
	err := s.Update(ctx, func(tx *Tx) error {
		other := Day{CycleID: c.ID, OpenedAt: t0, CapitalInitial: d("1000")}
		return tx.InsertDay(ctx, &other)
	})
	assert.Error(t, err)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SetDayPrice(ctx, day.ID, "USDT", d("1.0235")))
		require.NoError(t, tx.IncSaleCount(ctx, day.ID))
		day.SaleCount = 1
		day.CapitalFinal = d("1004.63")
		day.NetProfit = d("4.63")
		return tx.CloseDay(ctx, day, t0.Add(8*time.Hour))
	}))

	next := Day{CycleID: c.ID, OpenedAt: t0.AddDate(0, 0, 1), CapitalInitial: d("1004.63")}
	require.NoError(t, s.Update(ctx, func(tx *Tx) error { return tx.InsertDay(ctx, &next) }))
	assert.Equal(t, 2, next.Number)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		days, err := tx.Days(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, days, 2)

		first := days[0]
		assert.Equal(t, DayClosed, first.State)
		assert.Equal(t, "USDT", first.Asset)
		require.True(t, first.HasPrice())
		assertDecimal(t, "1.0235", first.Price.Decimal)
		assert.Equal(t, 1, first.SaleCount)
		assertDecimal(t, "4.63", first.NetProfit)

		open, err := tx.OpenDay(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, next.ID, open.ID)
		assert.False(t, open.HasPrice())
		assert.Empty(t, open.Asset)
		return nil
	}))
}

func TestPositionUpsert(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		p, err := tx.Position(ctx, c.ID, "USDT")
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
		return nil
	}))

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SavePosition(ctx, ledger.Position{CycleID: c.ID, Asset: "USDT", Quantity: d("100"), AvgCost: d("1")}))
		return tx.SavePosition(ctx, ledger.Position{CycleID: c.ID, Asset: "USDT", Quantity: d("200"), AvgCost: d("1.05")})
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		ps, err := tx.Positions(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assertDecimal(t, "200", ps[0].Quantity)
		assertDecimal(t, "1.05", ps[0].AvgCost)

		l, err := tx.Ledger(ctx)
		require.NoError(t, err)
		assertDecimal(t, "210", l.TotalValueAll())
		return nil
	}))
}

func TestStoredDecimalsAreRounded(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)

	third := d("1").Div(d("3"))
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.SavePosition(ctx, ledger.Position{CycleID: c.ID, Asset: "BTC", Quantity: d("1"), AvgCost: third})
	}))
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		p, err := tx.Position(ctx, c.ID, "BTC")
		require.NoError(t, err)
		assert.Equal(t, "0.333333333333", p.AvgCost.String())
		return nil
	}))
}

func TestCashPoolIsSumOfEntries(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		for _, amt := range []string{"104.6325", "52.31625", "-156.94875"} {
			e := CashEntry{CycleID: c.ID, Amount: d(amt), Concept: "test", CreatedAt: t0}
			require.NoError(t, tx.InsertCashEntry(ctx, &e))
			assert.NotEmpty(t, e.Ref)
		}
		return nil
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		pool, err := tx.CashPool(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, pool.Amount.IsZero(), pool.Amount.String())

		entries, err := tx.CashEntries(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Nil(t, entries[0].DayID)
		return nil
	}))
}

func TestSalesAndPurchases(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)
	day := Day{CycleID: c.ID, OpenedAt: t0, CapitalInitial: d("100")}

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.InsertDay(ctx, &day))

		p := Purchase{CycleID: c.ID, Asset: "USDT", Quantity: d("100"), FiatAmount: d("100"),
			Rate: d("1"), Origin: OriginFunding, CreatedAt: t0}
		require.NoError(t, tx.InsertPurchase(ctx, &p))

		v := Sale{DayID: day.ID, Asset: "USDT", Quantity: d("100"), UnitPrice: d("1.05"),
			CostBasis: d("1"), CostTotal: d("100"), Revenue: d("105"), CommissionPct: d("0.35"),
			Commission: d("0.3675"), NetCash: d("104.6325"), GrossProfit: d("5"),
			NetProfit: d("4.6325"), CreatedAt: t0.Add(time.Hour)}
		return tx.InsertSale(ctx, &v)
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		sales, err := tx.Sales(ctx, day.ID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "USDT", sales[0].Asset)
		assertDecimal(t, "0.3675", sales[0].Commission)
		assertDecimal(t, "4.6325", sales[0].ROIPct())
		assert.Len(t, sales[0].Ref, 26)

		bycycle, err := tx.CycleSales(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, sales, bycycle)

		ps, err := tx.Purchases(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, OriginFunding, ps[0].Origin)

		st, err := tx.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, st.Cycles)
		assert.Equal(t, 1, st.ActiveCycles)
		assert.Equal(t, 1, st.Sales)
		assertDecimal(t, "105", st.Volume)
		assertDecimal(t, "1000", st.TotalInvestment)
		return nil
	}))
}

func TestUpdateRollsBackOnError(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	c := insertCycle(t, s)

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SavePosition(ctx, ledger.Position{CycleID: c.ID, Asset: "USDT", Quantity: d("5"), AvgCost: d("1")}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		ps, err := tx.Positions(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, ps)
		return nil
	}))
}

func TestCycleDates(t *testing.T) {
	c := Cycle{StartDate: t0, PlannedDays: 15}

	assert.Equal(t, t0.AddDate(0, 0, 15), c.PlannedEnd())
	assert.Equal(t, 0, c.DaysElapsed(t0.Add(-time.Hour)))
	assert.Equal(t, 3, c.DaysElapsed(t0.Add(3*24*time.Hour+time.Hour)))
	assert.Equal(t, 12, c.DaysRemaining(t0.AddDate(0, 0, 3)))
	assert.Equal(t, 0, c.DaysRemaining(t0.AddDate(0, 0, 30)))
	assert.False(t, c.Complete(t0.AddDate(0, 0, 14)))
	assert.True(t, c.Complete(t0.AddDate(0, 0, 15)))
}

func TestCycleDaysFollowCalendar(t *testing.T) {
	late := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	c := Cycle{StartDate: late, PlannedDays: 1}

	assert.Equal(t, 0, c.DaysElapsed(late.Add(30*time.Minute)))
	next := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, c.DaysElapsed(next))
	assert.Equal(t, 0, c.DaysRemaining(next))
	assert.True(t, c.Complete(next))
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, CycleActive.CanTransition(CycleClosed))
	assert.False(t, CycleClosed.CanTransition(CycleActive))
	assert.False(t, CycleClosed.CanTransition(CycleClosed))
	assert.True(t, DayOpen.CanTransition(DayClosed))
	assert.False(t, DayClosed.CanTransition(DayOpen))
}
