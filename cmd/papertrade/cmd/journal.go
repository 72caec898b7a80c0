package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrade/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journal data",
	Long: `Query and display journal records from a SQLite database.

Subcommands:
  history   - List the recorded transactions for an account
  balances  - List the recorded balance snapshots for an account

Examples:
  papertrade journal history ACC-1
  papertrade journal balances ACC-1 --db ./ledger.db`,
}

var journalHistoryCmd = &cobra.Command{
	Use:   "history <account-id>",
	Short: "List the recorded transactions for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalHistory,
}

var journalBalancesCmd = &cobra.Command{
	Use:   "balances <account-id>",
	Short: "List the recorded balance snapshots for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalBalances,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalHistoryCmd)
	journalCmd.AddCommand(journalBalancesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./papertrade.sqlite", "path to SQLite journal DB")
}

func runJournalHistory(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTransactions(args[0])
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}

	for _, rec := range recs {
		switch rec.Kind {
		case "BUY", "SELL":
			fmt.Printf("%4d  %-10s  $%-12s %5d %s @ $%s  %s\n",
				rec.TxID, rec.Kind, rec.Amount, rec.Quantity, rec.Symbol, rec.PricePerShare,
				rec.Time.Format("2006-01-02 15:04:05"))
		default:
			fmt.Printf("%4d  %-10s  $%-12s  %s\n",
				rec.TxID, rec.Kind, rec.Amount, rec.Time.Format("2006-01-02 15:04:05"))
		}
	}
	fmt.Printf("%d transactions\n", len(recs))
	return nil
}

func runJournalBalances(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	snaps, err := j.ListBalances(args[0])
	if err != nil {
		return fmt.Errorf("query balances: %w", err)
	}

	for _, snap := range snaps {
		fmt.Printf("%s  cash $%-12s deposited $%s\n",
			snap.Time.Format("2006-01-02 15:04:05"), snap.Cash, snap.TotalDeposited)
	}
	fmt.Printf("%d snapshots\n", len(snaps))
	return nil
}
