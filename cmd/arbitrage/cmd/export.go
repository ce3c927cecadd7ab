package cmd

import (
	"context"

	"github.com/rustyeddy/arbitrage/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sales and days as CSV",
	Long: `Export ledger history as CSV, to stdout or a file.

Examples:
  arbitrage export sales -o sales.csv
  arbitrage export sales --cycle 2
  arbitrage export cycle 2 -o cycle2.csv`,
}

var exportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Export every sale, or those of one cycle",
	Args:  cobra.NoArgs,
	RunE:  run(runExportSales),
}

var exportCycleCmd = &cobra.Command{
	Use:   "cycle <cycle-id>",
	Short: "Export the days of a cycle",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runExportCycle),
}

var (
	exportCycle  int64
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportSalesCmd, exportCycleCmd)

	exportSalesCmd.Flags().Int64Var(&exportCycle, "cycle", 0, "only this cycle (default: all)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
}

func runExportSales(ctx context.Context, a *app, args []string) error {
	sales, err := a.engine.Sales(ctx, exportCycle)
	if err != nil {
		return err
	}
	w, err := a.outputFile(exportOutput)
	if err != nil {
		return err
	}
	if err := journal.ExportSalesCSV(w, sales); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func runExportCycle(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	days, err := a.engine.Days(ctx, id)
	if err != nil {
		return err
	}
	w, err := a.outputFile(exportOutput)
	if err != nil {
		return err
	}
	if err := journal.ExportCycleCSV(w, days); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
