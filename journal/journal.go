package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the flat, sink-friendly form of a ledger
// transaction. Symbol, Quantity and PricePerShare are only set for
// buys and sells.
type TransactionRecord struct {
	AccountID     string
	TxID          uint64
	Kind          string
	Amount        decimal.Decimal
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	Time          time.Time
}

// BalanceSnapshot captures the account's cash position after a
// committed transaction.
type BalanceSnapshot struct {
	AccountID      string
	Time           time.Time
	Cash           decimal.Decimal
	TotalDeposited decimal.Decimal
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	RecordBalance(BalanceSnapshot) error
	Close() error
}
