package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/engine"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sellCmd = &cobra.Command{
	Use:   "sell <quantity>",
	Short: "Record a sale at the day's published price",
	Long: `Sell units of the day's asset out of the active cycle's vault. The
net cash goes to the cycle's cash pool.

Examples:
  arbitrage sell 100
  arbitrage sell 250.5 --commission 0.25
  arbitrage sell 100 --price 1.0235 --asset USDT`,
	Args: cobra.ExactArgs(1),
	RunE: run(runSell),
}

var (
	sellDay        int64
	sellAsset      string
	sellPrice      string
	sellCommission string
)

func init() {
	rootCmd.AddCommand(sellCmd)

	sellCmd.Flags().Int64Var(&sellDay, "day", 0, "day id (default: the open day)")
	sellCmd.Flags().StringVar(&sellAsset, "asset", "", "asset sold; must match the day's")
	sellCmd.Flags().StringVar(&sellPrice, "price", "", "unit price; must match the day's")
	sellCmd.Flags().StringVar(&sellCommission, "commission", "", "commission percent (default from config)")
}

func optionalAmount(what, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseAmount(what, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func runSell(ctx context.Context, a *app, args []string) error {
	qty, err := parseAmount("quantity", args[0])
	if err != nil {
		return err
	}
	req := engine.SellRequest{Quantity: qty, Asset: sellAsset}
	if req.UnitPrice, err = optionalAmount("price", sellPrice); err != nil {
		return err
	}
	if req.CommissionPct, err = optionalAmount("commission", sellCommission); err != nil {
		return err
	}
	if req.DayID, err = a.dayOrCurrent(ctx, sellDay); err != nil {
		return err
	}

	res, err := a.engine.Sell(ctx, req)
	if err != nil {
		return err
	}
	b := res.Breakdown
	s := res.Sale
	a.printf("✓ Sold %s @ %s (%s)\n", market.FormatUnits(s.Quantity, s.Asset), market.FormatPrice(s.UnitPrice), s.Ref)
	a.printf("  Revenue:    %s\n", a.cash(b.Revenue))
	a.printf("  Commission: %s (%s)\n", a.cash(b.Commission), market.FormatPct(b.CommissionPct))
	a.printf("  Net cash:   %s\n", a.cash(b.NetCash))
	a.printf("  Net profit: %s (%s)\n", a.cash(b.NetProfit), market.FormatPct(b.RoiPct))
	a.printf("  Vault:      %s @ %s\n", market.FormatUnits(res.Position.Quantity, res.Position.Asset), market.FormatPrice(res.Position.AvgCost))
	a.printf("  Cash pool:  %s\n", a.cash(res.CashPool.Amount))
	a.printf("  Sales left today: %d\n", res.SalesLeft)
	a.warnings(res.Warnings)
	return nil
}
