package journal

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stats summarizes every cycle in the store.
type Stats struct {
	Cycles          int
	ActiveCycles    int
	ClosedCycles    int
	TotalInvestment decimal.Decimal // sum of initial investments
	TotalNetProfit  decimal.Decimal // closed cycles only
	AvgROIPct       decimal.Decimal // closed cycles only
	Sales           int
	Volume          decimal.Decimal // sum of sale revenue
}

func (tx *Tx) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	cycles, err := tx.Cycles(ctx)
	if err != nil {
		return st, err
	}
	roiSum := decimal.Zero
	for _, c := range cycles {
		st.Cycles++
		st.TotalInvestment = st.TotalInvestment.Add(c.InitialInvestment)
		switch c.State {
		case CycleActive:
			st.ActiveCycles++
		case CycleClosed:
			st.ClosedCycles++
			st.TotalNetProfit = st.TotalNetProfit.Add(c.TotalNetProfit)
			roiSum = roiSum.Add(c.ROIPct)
		}
	}
	if st.ClosedCycles > 0 {
		st.AvgROIPct = roiSum.Div(decimal.NewFromInt(int64(st.ClosedCycles)))
	}

	sales, err := tx.AllSales(ctx)
	if err != nil {
		return st, err
	}
	for _, s := range sales {
		st.Sales++
		st.Volume = st.Volume.Add(s.Revenue)
	}
	return st, nil
}
