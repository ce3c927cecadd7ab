package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/arbitrage/engine"
	"github.com/rustyeddy/arbitrage/market"
	"github.com/spf13/cobra"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Create, extend, close and inspect cycles",
	Long: `A cycle is a planned run of operating days. Only one cycle is active
at a time; its initial investment is the value of every vault when it
is created.

Examples:
  arbitrage cycle create --days 15
  arbitrage cycle status
  arbitrage cycle extend 3 5
  arbitrage cycle close`,
}

var cycleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new cycle",
	Args:  cobra.NoArgs,
	RunE:  run(runCycleCreate),
}

var cycleExtendCmd = &cobra.Command{
	Use:   "extend <cycle-id> <days>",
	Short: "Add planned days to the active cycle",
	Args:  cobra.ExactArgs(2),
	RunE:  run(runCycleExtend),
}

var cycleCloseCmd = &cobra.Command{
	Use:   "close [cycle-id]",
	Short: "Close a cycle and compute its results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run(runCycleClose),
}

var cycleStatusCmd = &cobra.Command{
	Use:   "status [cycle-id]",
	Short: "Show the active cycle, or the one given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run(runCycleStatus),
}

var cycleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every cycle",
	Args:  cobra.NoArgs,
	RunE:  run(runCycleList),
}

var (
	cycleDays       int
	cycleAllowEmpty bool
	cycleForce      bool
)

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.AddCommand(cycleCreateCmd, cycleExtendCmd, cycleCloseCmd, cycleStatusCmd, cycleListCmd)

	cycleCreateCmd.Flags().IntVar(&cycleDays, "days", 0, "planned days (default from config)")
	cycleCreateCmd.Flags().BoolVar(&cycleAllowEmpty, "allow-empty", false, "create the cycle even if no vault holds capital")
	cycleCloseCmd.Flags().BoolVar(&cycleForce, "force", false, "close before the planned duration without asking")
}

func runCycleCreate(ctx context.Context, a *app, args []string) error {
	req := engine.CreateCycleRequest{
		PlannedDays: cycleDays,
		AllowEmpty:  cycleAllowEmpty,
	}
	if req.PlannedDays == 0 {
		req.PlannedDays = a.cfg.Trading.DefaultCycleDays
	}

	c, err := a.engine.CreateCycle(ctx, req)
	if errors.Is(err, engine.ErrNoCapital) && a.confirm("No vault holds capital. Create the cycle anyway?") {
		req.AllowEmpty = true
		c, err = a.engine.CreateCycle(ctx, req)
	}
	if err != nil {
		return err
	}

	a.printf("✓ Cycle %d created\n", c.ID)
	a.printf("  Planned: %d days (until %s)\n", c.PlannedDays, c.PlannedEnd().Local().Format(time.DateOnly))
	a.printf("  Initial investment: %s\n", a.cash(c.InitialInvestment))
	return nil
}

func runCycleExtend(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	extra, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}

	c, err := a.engine.ExtendCycle(ctx, id, extra)
	if err != nil {
		return err
	}
	a.printf("✓ Cycle %d now runs %d days (until %s)\n", c.ID, c.PlannedDays, c.PlannedEnd().Local().Format(time.DateOnly))
	return nil
}

func runCycleClose(ctx context.Context, a *app, args []string) error {
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

	c, err := a.engine.CloseCycle(ctx, id, cycleForce)
	if errors.Is(err, engine.ErrCycleIncomplete) {
		a.printf("%v\n", err)
		if !a.confirm("Close the cycle early?") {
			return nil
		}
		c, err = a.engine.CloseCycle(ctx, id, true)
	}
	if err != nil {
		return err
	}

	a.printf("✓ Cycle %d closed\n", c.ID)
	a.printf("  Days operated: %d of %d\n", c.DaysOperated, c.PlannedDays)
	a.printf("  Initial investment: %s\n", a.cash(c.InitialInvestment))
	a.printf("  Net profit:         %s\n", a.cash(c.TotalNetProfit))
	a.printf("  Final capital:      %s\n", a.cash(c.FinalCapital))
	a.printf("  ROI:                %s\n", market.FormatPct(c.ROIPct))
	return nil
}

func runCycleStatus(ctx context.Context, a *app, args []string) error {
	var (
		st  engine.CycleStatus
		err error
	)
	if len(args) == 1 {
		var id int64
		if id, err = parseID(args[0]); err != nil {
			return err
		}
		st, err = a.engine.CycleStatus(ctx, id)
	} else {
		st, err = a.engine.Status(ctx)
	}
	if err != nil {
		return err
	}

	c := st.Cycle
	a.printf("Cycle %d [%s]\n", c.ID, c.State)
	a.printf("  Started:   %s\n", c.StartDate.Local().Format(time.DateTime))
	a.printf("  Progress:  day %d of %d (%d remaining)\n", st.DaysElapsed, c.PlannedDays, st.DaysRemaining)
	a.printf("  Invested:  %s\n", a.cash(c.InitialInvestment))
	a.printf("  Vault:     %s\n", a.cash(st.VaultValue))
	a.printf("  Cash pool: %s\n", a.cash(st.CashPool.Amount))
	a.printf("  Capital:   %s\n", a.cash(st.Capital))
	a.printf("  Net profit (closed days): %s  Sales: %d\n", a.cash(st.NetProfit), st.Sales)
	for _, p := range st.Positions {
		a.printf("    %-5s %s @ %s\n", p.Asset, market.FormatUnits(p.Quantity, p.Asset), market.FormatPrice(p.AvgCost))
	}
	if st.OpenDay != nil {
		a.printf("  Open day:  #%d (id %d, %d sales)\n", st.OpenDay.Number, st.OpenDay.ID, st.OpenDay.SaleCount)
	}
	return nil
}

func runCycleList(ctx context.Context, a *app, args []string) error {
	cycles, err := a.engine.Cycles(ctx)
	if err != nil {
		return err
	}
	if len(cycles) == 0 {
		a.printf("No cycles yet.\n")
		return nil
	}
	a.printf("%-4s %-8s %-10s %5s %14s %14s %8s\n", "ID", "STATE", "START", "DAYS", "INVESTED", "NET PROFIT", "ROI")
	for _, c := range cycles {
		a.printf("%-4d %-8s %-10s %5d %14s %14s %8s\n",
			c.ID, c.State, c.StartDate.Local().Format(time.DateOnly), c.PlannedDays,
			a.cash(c.InitialInvestment), a.cash(c.TotalNetProfit), market.FormatPct(c.ROIPct))
	}
	return nil
}
