package cmd

import (
	"context"
	"time"

	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Open, price and close operating days",
	Long: `An operating day belongs to the active cycle. Open it, publish the
price the day's asset is sold at, record sales and close it to compute
the day's results.

Examples:
  arbitrage day open
  arbitrage day price USDT 1.0235
  arbitrage day status
  arbitrage day close`,
}

var dayOpenCmd = &cobra.Command{
	Use:   "open [cycle-id]",
	Short: "Open the next day of the active cycle",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run(runDayOpen),
}

var dayPriceCmd = &cobra.Command{
	Use:   "price <asset> <price>",
	Short: "Publish the day's sale price",
	Args:  cobra.ExactArgs(2),
	RunE:  run(runDayPrice),
}

var dayCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the open day",
	Args:  cobra.NoArgs,
	RunE:  run(runDayClose),
}

var dayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open day, or the one given with --day",
	Args:  cobra.NoArgs,
	RunE:  run(runDayStatus),
}

var dayID int64

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.AddCommand(dayOpenCmd, dayPriceCmd, dayCloseCmd, dayStatusCmd)

	for _, c := range []*cobra.Command{dayPriceCmd, dayCloseCmd, dayStatusCmd} {
		c.Flags().Int64Var(&dayID, "day", 0, "day id (default: the open day)")
	}
}

func runDayOpen(ctx context.Context, a *app, args []string) error {
	var id int64
	if len(args) == 1 {
		var err error
		if id, err = parseID(args[0]); err != nil {
			return err
		}
	}
	id, err := a.cycleOrActive(ctx, id)
	if err != nil {
		return err
	}

	res, err := a.engine.OpenDay(ctx, id)
	if err != nil {
		return err
	}
	d := res.Day
	a.printf("✓ Day %d opened (id %d, cycle %d)\n", d.Number, d.ID, d.CycleID)
	a.printf("  Opening capital: %s\n", a.cash(d.CapitalInitial))
	a.warnings(res.Warnings)
	return nil
}

func runDayPrice(ctx context.Context, a *app, args []string) error {
	price, err := parseAmount("price", args[1])
	if err != nil {
		return err
	}
	id, err := a.dayOrCurrent(ctx, dayID)
	if err != nil {
		return err
	}

	res, err := a.engine.SetPrice(ctx, id, args[0], price)
	if err != nil {
		return err
	}
	a.printf("✓ Day %d price: %s %s\n", res.Day.Number, res.Day.Asset, market.FormatPrice(res.Day.Price.Decimal))
	a.printf("  Cost basis: %s  Estimated net: %s\n", market.FormatPrice(res.CostBasis), market.FormatPct(res.EstimatedNetPct))
	a.warnings(res.Warnings)
	return nil
}

func runDayClose(ctx context.Context, a *app, args []string) error {
	id, err := a.dayOrCurrent(ctx, dayID)
	if err != nil {
		return err
	}

	res, err := a.engine.CloseDay(ctx, id)
	if err != nil {
		return err
	}
	d := res.Day
	a.printf("✓ Day %d closed\n", d.Number)
	a.printf("  Sales:         %d\n", d.SaleCount)
	a.printf("  Cash received: %s\n", a.cash(d.CashReceived))
	a.printf("  Commissions:   %s\n", a.cash(d.Commissions))
	a.printf("  Gross profit:  %s\n", a.cash(d.GrossProfit))
	a.printf("  Net profit:    %s (%s)\n", a.cash(d.NetProfit), market.FormatPct(d.ROIPct()))
	a.printf("  Capital:       %s -> %s\n", a.cash(d.CapitalInitial), a.cash(d.CapitalFinal))
	a.warnings(res.Warnings)
	return nil
}

func runDayStatus(ctx context.Context, a *app, args []string) error {
	id, err := a.dayOrCurrent(ctx, dayID)
	if err != nil {
		return err
	}
	d, err := a.engine.Day(ctx, id)
	if err != nil {
		return err
	}
	sales, err := a.engine.DaySales(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Day %d (id %d, cycle %d) [%s]\n", d.Number, d.ID, d.CycleID, d.State)
	a.printf("  Opened:  %s\n", d.OpenedAt.Local().Format(time.DateTime))
	if d.HasPrice() {
		a.printf("  Price:   %s %s\n", d.Asset, market.FormatPrice(d.Price.Decimal))
	} else {
		a.printf("  Price:   not set\n")
	}
	limit := a.engine.Policy().MaxSalesPerDay
	a.printf("  Sales:   %d of %d\n", d.SaleCount, limit)
	for _, s := range sales {
		a.printf("    %s  %s @ %s  net %s\n",
			s.CreatedAt.Local().Format(time.TimeOnly), market.FormatUnits(s.Quantity, s.Asset),
			market.FormatPrice(s.UnitPrice), a.cash(s.NetProfit))
	}
	return nil
}
