package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a transaction record.
type Kind string

const (
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindBuy        Kind = "BUY"
	KindSell       Kind = "SELL"
)

// Record is one immutable entry in an account's transaction history.
// Each kind has its own concrete type carrying only the fields that
// apply to it; cash amounts are unsigned magnitudes with the
// direction implied by the kind.
type Record interface {
	ID() uint64
	Time() time.Time
	Kind() Kind
	CashAmount() decimal.Decimal
}

// recordMeta holds the fields common to every record. The id is
// sequential per account, and the timestamp is assigned by the
// ledger at append time.
type recordMeta struct {
	id uint64
	at time.Time
}

func (m recordMeta) ID() uint64      { return m.id }
func (m recordMeta) Time() time.Time { return m.at }

// Deposit records cash added to the account.
type Deposit struct {
	recordMeta
	Amount decimal.Decimal
}

func (Deposit) Kind() Kind                    { return KindDeposit }
func (d Deposit) CashAmount() decimal.Decimal { return d.Amount }

// Withdrawal records cash removed from the account.
type Withdrawal struct {
	recordMeta
	Amount decimal.Decimal
}

func (Withdrawal) Kind() Kind                    { return KindWithdrawal }
func (w Withdrawal) CashAmount() decimal.Decimal { return w.Amount }

// Buy records a share purchase at the price the oracle quoted when
// the order was placed. The price never changes afterwards.
type Buy struct {
	recordMeta
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	Cost          decimal.Decimal
}

func (Buy) Kind() Kind                    { return KindBuy }
func (b Buy) CashAmount() decimal.Decimal { return b.Cost }

// Sell records a share sale at the price the oracle quoted when the
// order was placed.
type Sell struct {
	recordMeta
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	Proceeds      decimal.Decimal
}

func (Sell) Kind() Kind                    { return KindSell }
func (s Sell) CashAmount() decimal.Decimal { return s.Proceeds }
