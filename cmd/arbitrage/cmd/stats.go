package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize every cycle in the ledger",
	Args:  cobra.NoArgs,
	RunE:  run(runStats),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(ctx context.Context, a *app, args []string) error {
	st, err := a.engine.Stats(ctx)
	if err != nil {
		return err
	}
	a.printf("Cycles:           %d (%d active, %d closed)\n", st.Cycles, st.ActiveCycles, st.ClosedCycles)
	a.printf("Total invested:   %s\n", a.cash(st.TotalInvestment))
	a.printf("Total net profit: %s\n", a.cash(st.TotalNetProfit))
	a.printf("Average ROI:      %s\n", market.FormatPct(st.AvgROIPct))
	a.printf("Sales:            %d for %s\n", st.Sales, a.cash(st.Volume))
	return nil
}
