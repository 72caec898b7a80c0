package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrade/ledger"
	"github.com/rustyeddy/papertrade/pkg/id"
	"github.com/rustyeddy/papertrade/pricing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an example trading session",
	Long: `Run a small example session against the built-in price fixture
(AAPL $150, GOOGL $2800, TSLA $700).

Shows the basic workflow of:
  1. Creating an account and depositing cash
  2. Buying and selling shares at oracle prices
  3. Valuing the portfolio and reporting profit/loss
  4. Handling rejected operations without state changes`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	acct := ledger.New(id.New(), pricing.Fixture())

	fmt.Printf("Account: %s\n\n", acct.ID())

	fmt.Println("Deposit $1000")
	if err := acct.Deposit(decimal.NewFromInt(1000)); err != nil {
		return err
	}

	fmt.Println("Buy 2 AAPL at $150")
	if err := acct.BuyShares("AAPL", 2); err != nil {
		return err
	}

	fmt.Println("Sell 1 AAPL at $150")
	if err := acct.SellShares("AAPL", 1); err != nil {
		return err
	}

	// Rejected operations leave the account untouched.
	fmt.Println("Withdraw $5000 (expected to fail)")
	if err := acct.Withdraw(decimal.NewFromInt(5000)); err != nil {
		fmt.Printf("  rejected: %v\n", err)
	}

	fmt.Println("Buy 1 MSFT (expected to fail)")
	if err := acct.BuyShares("MSFT", 1); err != nil {
		fmt.Printf("  rejected: %v\n", err)
	}

	fmt.Println()
	return report(acct)
}
