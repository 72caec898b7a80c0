package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a complete scripted trading session
type Config struct {
	Account AccountConfig      `json:"account" yaml:"account"`
	Prices  map[string]float64 `json:"prices" yaml:"prices"`
	Journal JournalConfig      `json:"journal" yaml:"journal"`
	Session []Step             `json:"session" yaml:"session"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID             string  `json:"id,omitempty" yaml:"id,omitempty"`
	OpeningDeposit float64 `json:"opening_deposit,omitempty" yaml:"opening_deposit,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type             string `json:"type,omitempty" yaml:"type,omitempty"` // "csv", "sqlite" or "" for none
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	BalancesFile     string `json:"balances_file,omitempty" yaml:"balances_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Step is one scripted session operation. Op selects which of the
// other fields apply: amount for deposit/withdraw, symbol+quantity
// for buy/sell, symbol+price for set_price.
type Step struct {
	Op       string  `json:"op" yaml:"op"`
	Amount   float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	Symbol   string  `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Quantity int64   `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Price    float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

// Ops accepted in a session script.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpBuy      = "buy"
	OpSell     = "sell"
	OpSetPrice = "set_price"
)

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.OpeningDeposit < 0 {
		return fmt.Errorf("account.opening_deposit must not be negative")
	}
	if len(c.Prices) == 0 {
		return fmt.Errorf("at least one symbol price is required")
	}
	for sym, price := range c.Prices {
		if price <= 0 {
			return fmt.Errorf("price for %s must be positive", sym)
		}
	}
	for i, step := range c.Session {
		if err := step.validate(); err != nil {
			return fmt.Errorf("session step %d: %w", i, err)
		}
	}
	switch c.Journal.Type {
	case "":
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.BalancesFile == "" {
			return fmt.Errorf("journal transactions_file and balances_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpDeposit, OpWithdraw:
		if s.Amount <= 0 {
			return fmt.Errorf("%s amount must be positive", s.Op)
		}
	case OpBuy, OpSell:
		if s.Symbol == "" {
			return fmt.Errorf("%s symbol is required", s.Op)
		}
		if s.Quantity <= 0 {
			return fmt.Errorf("%s quantity must be positive", s.Op)
		}
	case OpSetPrice:
		if s.Symbol == "" {
			return fmt.Errorf("set_price symbol is required")
		}
		if s.Price <= 0 {
			return fmt.Errorf("set_price price must be positive")
		}
	default:
		return fmt.Errorf("unknown op: %q", s.Op)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "SIM-001",
			OpeningDeposit: 10000,
		},
		Prices: map[string]float64{
			"AAPL":  150.00,
			"GOOGL": 2800.00,
			"TSLA":  700.00,
		},
		Journal: JournalConfig{
			Type:             "csv",
			TransactionsFile: "./transactions.csv",
			BalancesFile:     "./balances.csv",
		},
		Session: []Step{
			{Op: OpBuy, Symbol: "AAPL", Quantity: 10},
			{Op: OpSetPrice, Symbol: "AAPL", Price: 165.00},
			{Op: OpSell, Symbol: "AAPL", Quantity: 10},
		},
	}
}
