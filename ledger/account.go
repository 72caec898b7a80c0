package ledger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/pricing"
	"github.com/shopspring/decimal"
)

// Account is a single simulated trading account: free cash, share
// holdings, and an append-only transaction history. All mutation
// goes through its operations, each of which either commits fully or
// leaves the account untouched.
//
// An Account is not safe for concurrent use; callers that share one
// across goroutines must serialize access themselves.
type Account struct {
	id        string
	oracle    pricing.Oracle
	journal   journal.Journal
	cash      decimal.Decimal
	deposited decimal.Decimal
	holdings  map[string]int64
	records   []Record
	nextID    uint64
}

type Option func(*Account)

// WithJournal attaches a journal that receives every committed
// transaction and a balance snapshot after each one. Journal write
// failures are reported to the caller but never roll back the
// account.
func WithJournal(j journal.Journal) Option {
	return func(a *Account) { a.journal = j }
}

// New creates an account with zero cash, no holdings and an empty
// history. The oracle is consulted for buy, sell and valuation
// pricing.
func New(id string, oracle pricing.Oracle, opts ...Option) *Account {
	a := &Account{
		id:       id,
		oracle:   oracle,
		holdings: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Account) ID() string { return a.id }

// CashBalance returns the free cash in the account. It is never
// negative.
func (a *Account) CashBalance() decimal.Decimal { return a.cash }

// TotalDeposited returns the lifetime sum of successful deposits.
// Withdrawals do not reduce it.
func (a *Account) TotalDeposited() decimal.Decimal { return a.deposited }

// Deposit adds cash to the account and records a DEPOSIT transaction.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount)
	}

	a.cash = a.cash.Add(amount)
	a.deposited = a.deposited.Add(amount)
	return a.append(Deposit{recordMeta: a.nextMeta(), Amount: amount})
}

// Withdraw removes cash from the account and records a WITHDRAWAL
// transaction. The lifetime deposit total is untouched, so
// withdrawals never dilute ProfitOrLoss.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(a.cash) {
		return fmt.Errorf("%w: withdrawal of %s exceeds balance %s", ErrInsufficientFunds, amount, a.cash)
	}

	a.cash = a.cash.Sub(amount)
	return a.append(Withdrawal{recordMeta: a.nextMeta(), Amount: amount})
}

// BuyShares purchases quantity shares of symbol at the oracle's
// current price and records a BUY transaction carrying that price.
func (a *Account) BuyShares(symbol string, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: buy of %d shares", ErrInvalidQuantity, quantity)
	}

	symbol = strings.ToUpper(symbol)
	price, err := a.oracle.Price(symbol)
	if err != nil {
		return fmt.Errorf("buy %s: %w", symbol, err)
	}

	cost := price.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(a.cash) {
		return fmt.Errorf("%w: buy of %d %s costs %s, balance %s",
			ErrInsufficientFunds, quantity, symbol, cost, a.cash)
	}

	a.cash = a.cash.Sub(cost)
	a.holdings[symbol] += quantity
	return a.append(Buy{
		recordMeta:    a.nextMeta(),
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		Cost:          cost,
	})
}

// SellShares sells quantity shares of symbol at the oracle's current
// price and records a SELL transaction. The holdings check runs
// before the price lookup, so selling a symbol never held reports
// insufficient shares even if the symbol is also unpriceable.
func (a *Account) SellShares(symbol string, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: sell of %d shares", ErrInvalidQuantity, quantity)
	}

	symbol = strings.ToUpper(symbol)
	held := a.holdings[symbol]
	if held < quantity {
		return fmt.Errorf("%w: sell of %d %s, %d held", ErrInsufficientShares, quantity, symbol, held)
	}

	price, err := a.oracle.Price(symbol)
	if err != nil {
		return fmt.Errorf("sell %s: %w", symbol, err)
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))
	a.cash = a.cash.Add(proceeds)
	if held == quantity {
		delete(a.holdings, symbol)
	} else {
		a.holdings[symbol] = held - quantity
	}
	return a.append(Sell{
		recordMeta:    a.nextMeta(),
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		Proceeds:      proceeds,
	})
}

// PortfolioValue returns cash plus the market value of every holding
// at fresh oracle prices. If any held symbol cannot be priced the
// valuation fails rather than understate exposure.
func (a *Account) PortfolioValue() (decimal.Decimal, error) {
	total := a.cash
	for symbol, quantity := range a.holdings {
		price, err := a.oracle.Price(symbol)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("value %s: %w", symbol, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(quantity)))
	}
	return total, nil
}

// ProfitOrLoss returns the portfolio value minus lifetime deposits:
// trading and holding performance net of all capital contributed,
// independent of withdrawals.
func (a *Account) ProfitOrLoss() (decimal.Decimal, error) {
	value, err := a.PortfolioValue()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value.Sub(a.deposited), nil
}

// Holdings returns a copy of the holdings map. Every entry is
// strictly positive; symbols with no shares are absent.
func (a *Account) Holdings() map[string]int64 {
	return maps.Clone(a.holdings)
}

// History returns a copy of the transaction records in append order.
func (a *Account) History() []Record {
	return slices.Clone(a.records)
}

func (a *Account) nextMeta() recordMeta {
	a.nextID++
	return recordMeta{id: a.nextID, at: time.Now()}
}

// append commits the record to the history and forwards it to the
// journal, if one is attached. The record is already part of the
// account state when a journal error is returned.
func (a *Account) append(rec Record) error {
	a.records = append(a.records, rec)

	if a.journal == nil {
		return nil
	}

	flat := journal.TransactionRecord{
		AccountID: a.id,
		TxID:      rec.ID(),
		Kind:      string(rec.Kind()),
		Amount:    rec.CashAmount(),
		Time:      rec.Time(),
	}
	switch r := rec.(type) {
	case Buy:
		flat.Symbol = r.Symbol
		flat.Quantity = r.Quantity
		flat.PricePerShare = r.PricePerShare
	case Sell:
		flat.Symbol = r.Symbol
		flat.Quantity = r.Quantity
		flat.PricePerShare = r.PricePerShare
	}

	if err := a.journal.RecordTransaction(flat); err != nil {
		return fmt.Errorf("journal transaction: %w", err)
	}
	if err := a.journal.RecordBalance(journal.BalanceSnapshot{
		AccountID:      a.id,
		Time:           rec.Time(),
		Cash:           a.cash,
		TotalDeposited: a.deposited,
	}); err != nil {
		return fmt.Errorf("journal balance: %w", err)
	}
	return nil
}
