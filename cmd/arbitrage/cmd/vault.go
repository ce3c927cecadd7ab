package cmd

import (
	"context"
	"time"

	"github.com/rustyeddy/arbitrage/engine"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Inspect and fund the crypto vault",
	Long: `The vault holds each cycle's crypto positions at weighted-average cost.

Examples:
  arbitrage vault show
  arbitrage vault fund USDT 1000 1.00
  arbitrage vault transfer 1 USDT 500`,
}

var vaultShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a cycle's positions, cash pool and purchases",
	Args:  cobra.NoArgs,
	RunE:  run(runVaultShow),
}

var vaultFundCmd = &cobra.Command{
	Use:   "fund <asset> <amount> <rate>",
	Short: "Buy amount worth of asset at rate into the active cycle",
	Args:  cobra.ExactArgs(3),
	RunE:  run(runVaultFund),
}

var vaultTransferCmd = &cobra.Command{
	Use:   "transfer <from-cycle> <asset> <quantity>",
	Short: "Move units from an earlier cycle into the active one",
	Args:  cobra.ExactArgs(3),
	RunE:  run(runVaultTransfer),
}

var vaultCycle int64

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultShowCmd, vaultFundCmd, vaultTransferCmd)
	vaultShowCmd.Flags().Int64Var(&vaultCycle, "cycle", 0, "cycle id (default: the active cycle)")
}

func runVaultShow(ctx context.Context, a *app, args []string) error {
	id, err := a.cycleOrActive(ctx, vaultCycle)
	if err != nil {
		return err
	}
	positions, err := a.engine.Positions(ctx, id)
	if err != nil {
		return err
	}
	pool, err := a.engine.CashPool(ctx, id)
	if err != nil {
		return err
	}
	purchases, err := a.engine.Purchases(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Vault of cycle %d\n", id)
	if len(positions) == 0 {
		a.printf("  (empty)\n")
	}
	for _, p := range positions {
		a.printf("  %-5s %20s  avg %s  value %s\n",
			p.Asset, market.FormatUnits(p.Quantity, p.Asset), market.FormatPrice(p.AvgCost), a.cash(p.Value()))
	}
	a.printf("Cash pool: %s\n", a.cash(pool.Amount))
	if len(purchases) > 0 {
		a.printf("Purchases:\n")
	}
	for _, p := range purchases {
		a.printf("  %s  %-13s %s for %s @ %s\n",
			p.CreatedAt.Local().Format(time.DateTime), p.Origin,
			market.FormatUnits(p.Quantity, p.Asset), a.cash(p.FiatAmount), market.FormatPrice(p.Rate))
	}
	return nil
}

func runVaultFund(ctx context.Context, a *app, args []string) error {
	amount, err := parseAmount("amount", args[1])
	if err != nil {
		return err
	}
	rate, err := parseAmount("rate", args[2])
	if err != nil {
		return err
	}

	res, err := a.engine.Fund(ctx, engine.FundRequest{Asset: args[0], Amount: amount, Rate: rate})
	if err != nil {
		return err
	}
	p := res.Position
	a.printf("✓ Bought %s for %s\n", market.FormatUnits(res.Purchase.Quantity, p.Asset), a.cash(res.Purchase.FiatAmount))
	a.printf("  Vault: %s @ %s\n", market.FormatUnits(p.Quantity, p.Asset), market.FormatPrice(p.AvgCost))
	return nil
}

func runVaultTransfer(ctx context.Context, a *app, args []string) error {
	from, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty, err := parseAmount("quantity", args[2])
	if err != nil {
		return err
	}

	res, err := a.engine.Transfer(ctx, engine.TransferRequest{FromCycle: from, Asset: args[1], Quantity: qty})
	if err != nil {
		return err
	}
	a.printf("✓ Moved %s from cycle %d to cycle %d\n",
		market.FormatUnits(res.Purchase.Quantity, res.Purchase.Asset), res.From.CycleID, res.To.CycleID)
	a.printf("  Left in cycle %d: %s\n", res.From.CycleID, market.FormatUnits(res.From.Quantity, res.From.Asset))
	a.printf("  Now in cycle %d:  %s @ %s\n", res.To.CycleID, market.FormatUnits(res.To.Quantity, res.To.Asset), market.FormatPrice(res.To.AvgCost))
	return nil
}
