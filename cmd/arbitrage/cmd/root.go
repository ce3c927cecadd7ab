package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbitrage",
	Short: "Capital ledger for manual crypto arbitrage",
	Long: `Arbitrage keeps the books of a manual crypto arbitrage operation.

Capital is bought into a vault, sold piecemeal over operating days
grouped into cycles, and optionally reinvested. At every step it tracks:
  - Weighted-average cost of every asset held
  - Realized profit net of commission, per sale, day and cycle
  - Cash received but not yet reinvested
  - The daily sale limit

Everything is stored in a local SQLite database.`,
	SilenceUsage: true,
}

var (
	cfgFile string
	dbPath  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON; defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides config)")
}
