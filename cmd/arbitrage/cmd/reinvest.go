package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var reinvestCmd = &cobra.Command{
	Use:   "reinvest <asset> <rate>",
	Short: "Buy back into the vault with the cycle's cash pool",
	Long: `Spend the whole cash pool of a cycle on asset at rate (fiat per unit).
The units are merged into the vault at weighted-average cost.

Examples:
  arbitrage reinvest USDT 1.01`,
	Args: cobra.ExactArgs(2),
	RunE: run(runReinvest),
}

var reinvestCycle int64

func init() {
	rootCmd.AddCommand(reinvestCmd)
	reinvestCmd.Flags().Int64Var(&reinvestCycle, "cycle", 0, "cycle id (default: the active cycle)")
}

func runReinvest(ctx context.Context, a *app, args []string) error {
	rate, err := parseAmount("rate", args[1])
	if err != nil {
		return err
	}
	id, err := a.cycleOrActive(ctx, reinvestCycle)
	if err != nil {
		return err
	}

	res, err := a.engine.Reinvest(ctx, id, args[0], rate)
	if err != nil {
		return err
	}
	if !res.Reinvested {
		a.printf("Cash pool is empty; nothing to reinvest.\n")
		return nil
	}
	p := res.Position
	a.printf("✓ Reinvested %s into %s @ %s\n", a.cash(res.Amount), market.FormatUnits(res.Quantity, p.Asset), market.FormatPrice(res.Rate))
	a.printf("  Vault: %s @ %s\n", market.FormatUnits(p.Quantity, p.Asset), market.FormatPrice(p.AvgCost))
	a.printf("  Cash pool: %s\n", a.cash(res.CashPool.Amount))
	return nil
}
