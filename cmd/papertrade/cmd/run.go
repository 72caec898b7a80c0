package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrade/config"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/ledger"
	"github.com/rustyeddy/papertrade/pkg/id"
	"github.com/rustyeddy/papertrade/pricing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted trading session from a config file",
	Long: `Run a scripted trading session using settings from a configuration file.

The config file specifies the account's opening deposit, the oracle's
price table, journal settings, and the session steps to execute
(deposit, withdraw, buy, sell and set_price).

Example:
  papertrade run -f examples/configs/basic.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(cfg.Prices))
	for sym, price := range cfg.Prices {
		prices[sym] = decimal.NewFromFloat(price)
	}
	oracle, err := pricing.NewStatic(prices)
	if err != nil {
		return fmt.Errorf("build oracle: %w", err)
	}

	accountID := cfg.Account.ID
	if accountID == "" {
		accountID = id.New()
	}

	var opts []ledger.Option
	switch cfg.Journal.Type {
	case "csv":
		j, err := journal.NewCSV(cfg.Journal.TransactionsFile, cfg.Journal.BalancesFile)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer j.Close()
		opts = append(opts, ledger.WithJournal(j))
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer j.Close()
		opts = append(opts, ledger.WithJournal(j))
	}

	acct := ledger.New(accountID, oracle, opts...)

	fmt.Printf("Running session with config: %s\n", runConfigPath)
	fmt.Printf("  Account: %s\n\n", accountID)

	if cfg.Account.OpeningDeposit > 0 {
		amount := decimal.NewFromFloat(cfg.Account.OpeningDeposit)
		if err := acct.Deposit(amount); err != nil {
			return fmt.Errorf("opening deposit: %w", err)
		}
		fmt.Printf("Opening deposit: $%s\n", amount)
	}

	for i, step := range cfg.Session {
		if err := runStep(acct, oracle, step); err != nil {
			return fmt.Errorf("session step %d (%s): %w", i, step.Op, err)
		}
	}

	fmt.Println()
	if err := report(acct); err != nil {
		return err
	}

	switch cfg.Journal.Type {
	case "csv":
		fmt.Printf("\nJournal saved to:\n  - %s\n  - %s\n", cfg.Journal.TransactionsFile, cfg.Journal.BalancesFile)
	case "sqlite":
		fmt.Printf("\nJournal saved to: %s\n", cfg.Journal.DBPath)
	}
	return nil
}

func runStep(acct *ledger.Account, oracle *pricing.Static, step config.Step) error {
	switch step.Op {
	case config.OpDeposit:
		amount := decimal.NewFromFloat(step.Amount)
		fmt.Printf("Deposit $%s\n", amount)
		return acct.Deposit(amount)
	case config.OpWithdraw:
		amount := decimal.NewFromFloat(step.Amount)
		fmt.Printf("Withdraw $%s\n", amount)
		return acct.Withdraw(amount)
	case config.OpBuy:
		fmt.Printf("Buy %d %s\n", step.Quantity, step.Symbol)
		return acct.BuyShares(step.Symbol, step.Quantity)
	case config.OpSell:
		fmt.Printf("Sell %d %s\n", step.Quantity, step.Symbol)
		return acct.SellShares(step.Symbol, step.Quantity)
	case config.OpSetPrice:
		price := decimal.NewFromFloat(step.Price)
		fmt.Printf("Set price %s = $%s\n", step.Symbol, price)
		return oracle.Set(step.Symbol, price)
	default:
		return fmt.Errorf("unknown op: %q", step.Op)
	}
}

func report(acct *ledger.Account) error {
	value, err := acct.PortfolioValue()
	if err != nil {
		return fmt.Errorf("portfolio value: %w", err)
	}
	pl, err := acct.ProfitOrLoss()
	if err != nil {
		return fmt.Errorf("profit or loss: %w", err)
	}

	fmt.Printf("Final Results:\n")
	fmt.Printf("  Cash Balance: $%s\n", acct.CashBalance())
	fmt.Printf("  Total Deposited: $%s\n", acct.TotalDeposited())
	for sym, qty := range acct.Holdings() {
		fmt.Printf("  Holding: %d %s\n", qty, sym)
	}
	fmt.Printf("  Portfolio Value: $%s\n", value)
	fmt.Printf("  Profit/Loss: $%s\n", pl)
	fmt.Printf("  Transactions: %d\n", len(acct.History()))
	return nil
}
