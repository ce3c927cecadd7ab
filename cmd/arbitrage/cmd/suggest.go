package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <asset>",
	Short: "Suggest a sale price for an asset",
	Long: `Compute the price that covers the commission and the target profit
over the asset's average cost in the cycle's vault.

Examples:
  arbitrage suggest USDT
  arbitrage suggest BTC --cycle 2`,
	Args: cobra.ExactArgs(1),
	RunE: run(runSuggest),
}

var suggestCycle int64

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().Int64Var(&suggestCycle, "cycle", 0, "cycle id (default: the active cycle)")
}

func runSuggest(ctx context.Context, a *app, args []string) error {
	id, err := a.cycleOrActive(ctx, suggestCycle)
	if err != nil {
		return err
	}
	s, err := a.engine.Suggest(ctx, id, args[0])
	if err != nil {
		return err
	}
	a.printf("%s on hand: %s at cost %s\n", s.Asset, market.FormatUnits(s.Quantity, s.Asset), market.FormatPrice(s.CostBasis))
	a.printf("  Commission %s + target %s\n", market.FormatPct(s.CommissionPct), market.FormatPct(s.TargetPct))
	a.printf("  Suggested price: %s (estimated net %s)\n", market.FormatPrice(s.Price), market.FormatPct(s.EstimatedNetPct))
	return nil
}
