package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print org-mode reports of days and cycles",
	Long: `Print org-mode reports suitable for pasting into a trading journal.

Examples:
  arbitrage report day 12
  arbitrage report cycle > cycle.org`,
}

var reportDayCmd = &cobra.Command{
	Use:   "day <day-id>",
	Short: "Report one day and its sales",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runReportDay),
}

var reportCycleCmd = &cobra.Command{
	Use:   "cycle [cycle-id]",
	Short: "Report a cycle day by day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run(runReportCycle),
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportDayCmd, reportCycleCmd)
}

func runReportDay(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
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
	a.printf("%s", journal.FormatDayOrg(d, sales, a.cfg.Trading.Currency))
	return nil
}

func runReportCycle(ctx context.Context, a *app, args []string) error {
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
	st, err := a.engine.CycleStatus(ctx, id)
	if err != nil {
		return err
	}
	days, err := a.engine.Days(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s", journal.FormatCycleOrg(st.Cycle, days, a.cfg.Trading.Currency))
	return nil
}
