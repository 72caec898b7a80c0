package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "A simulated stock trading account ledger",
	Long: `Papertrade is a simulated trading account ledger written in Go.

It provides tools for:
  - Running scripted trading sessions from a config file
  - Tracking cash, holdings and a chronological transaction log
  - Valuing the portfolio against a pluggable price oracle
  - Recording transactions and balances to CSV or SQLite journals
  - Profit/loss reporting net of lifetime deposits

Complete documentation is available at https://github.com/rustyeddy/papertrade`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
