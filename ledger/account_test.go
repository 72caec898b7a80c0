package ledger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// stubOracle is a mutable price table so tests can move or delist a
// symbol mid-scenario.
type stubOracle struct {
	prices map[string]decimal.Decimal
}

func (o *stubOracle) Price(symbol string) (decimal.Decimal, error) {
	p, ok := o.prices[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", pricing.ErrUnknownSymbol, symbol)
	}
	return p, nil
}

type testJournal struct {
	transactions []journal.TransactionRecord
	balances     []journal.BalanceSnapshot
	failNext     bool
	closed       bool
}

func (j *testJournal) RecordTransaction(rec journal.TransactionRecord) error {
	if j.failNext {
		return fmt.Errorf("sink unavailable")
	}
	j.transactions = append(j.transactions, rec)
	return nil
}

func (j *testJournal) RecordBalance(rec journal.BalanceSnapshot) error {
	j.balances = append(j.balances, rec)
	return nil
}

func (j *testJournal) Close() error {
	j.closed = true
	return nil
}

func newFunded(t *testing.T, cash int64) *Account {
	t.Helper()
	a := New("ACC-1", pricing.Fixture())
	require.NoError(t, a.Deposit(dec(cash)))
	return a
}

func TestNewAccountEmpty(t *testing.T) {
	t.Parallel()

	a := New("ACC-1", pricing.Fixture())

	assert.Equal(t, "ACC-1", a.ID())
	assert.True(t, a.CashBalance().IsZero())
	assert.True(t, a.TotalDeposited().IsZero())
	assert.Empty(t, a.Holdings())
	assert.Empty(t, a.History())
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	a := New("ACC-1", pricing.Fixture())
	require.NoError(t, a.Deposit(dec(1000)))

	assert.True(t, a.CashBalance().Equal(dec(1000)))
	assert.True(t, a.TotalDeposited().Equal(dec(1000)))

	hist := a.History()
	require.Len(t, hist, 1)
	assert.Equal(t, KindDeposit, hist[0].Kind())
	assert.Equal(t, uint64(1), hist[0].ID())
	assert.True(t, hist[0].CashAmount().Equal(dec(1000)))
}

func TestDepositInvalidAmount(t *testing.T) {
	t.Parallel()

	a := New("ACC-1", pricing.Fixture())

	assert.ErrorIs(t, a.Deposit(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, a.Deposit(dec(-5)), ErrInvalidAmount)

	assert.True(t, a.CashBalance().IsZero())
	assert.Empty(t, a.History())
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.Withdraw(dec(300)))

	assert.True(t, a.CashBalance().Equal(dec(700)))
	// withdrawals never reduce the lifetime deposit total
	assert.True(t, a.TotalDeposited().Equal(dec(1000)))

	hist := a.History()
	require.Len(t, hist, 2)
	assert.Equal(t, KindWithdrawal, hist[1].Kind())
}

func TestWithdrawInvalidAmount(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)

	assert.ErrorIs(t, a.Withdraw(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(dec(-1)), ErrInvalidAmount)
	assert.True(t, a.CashBalance().Equal(dec(1000)))
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 100)

	err := a.Withdraw(dec(101))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.True(t, a.CashBalance().Equal(dec(100)))
	assert.Len(t, a.History(), 1)
}

func TestDepositWithdrawInverse(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	before := a.CashBalance()
	plBefore, err := a.ProfitOrLoss()
	require.NoError(t, err)

	require.NoError(t, a.Deposit(dec(250)))
	require.NoError(t, a.Withdraw(dec(250)))

	assert.True(t, a.CashBalance().Equal(before))
	// total deposited grew, so P/L moved down by exactly the deposit
	assert.True(t, a.TotalDeposited().Equal(dec(1250)))

	plAfter, err := a.ProfitOrLoss()
	require.NoError(t, err)
	assert.True(t, plAfter.Equal(plBefore.Sub(dec(250))))
}

func TestBuyShares(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))

	assert.True(t, a.CashBalance().Equal(dec(700)))
	assert.Equal(t, map[string]int64{"AAPL": 2}, a.Holdings())

	hist := a.History()
	require.Len(t, hist, 2)
	buy, ok := hist[1].(Buy)
	require.True(t, ok)
	assert.Equal(t, "AAPL", buy.Symbol)
	assert.Equal(t, int64(2), buy.Quantity)
	assert.True(t, buy.PricePerShare.Equal(dec(150)))
	assert.True(t, buy.Cost.Equal(dec(300)))
}

func TestBuySharesNormalizesSymbol(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("aapl", 1))

	assert.Equal(t, map[string]int64{"AAPL": 1}, a.Holdings())
}

func TestBuySharesInvalidQuantity(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)

	assert.ErrorIs(t, a.BuyShares("AAPL", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, a.BuyShares("AAPL", -3), ErrInvalidQuantity)
	assert.Empty(t, a.Holdings())
	assert.Len(t, a.History(), 1)
}

func TestBuySharesUnknownSymbol(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)

	err := a.BuyShares("NOPE", 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownSymbol)

	assert.True(t, a.CashBalance().Equal(dec(1000)))
	assert.Empty(t, a.Holdings())
	assert.Len(t, a.History(), 1)
}

func TestBuySharesInsufficientFunds(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 100)

	err := a.BuyShares("AAPL", 1) // costs 150
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.True(t, a.CashBalance().Equal(dec(100)))
	assert.Empty(t, a.Holdings())
	assert.Len(t, a.History(), 1)
}

func TestSellShares(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))
	require.NoError(t, a.SellShares("AAPL", 1))

	assert.True(t, a.CashBalance().Equal(dec(850)))
	assert.Equal(t, map[string]int64{"AAPL": 1}, a.Holdings())

	hist := a.History()
	require.Len(t, hist, 3)
	sell, ok := hist[2].(Sell)
	require.True(t, ok)
	assert.Equal(t, "AAPL", sell.Symbol)
	assert.True(t, sell.Proceeds.Equal(dec(150)))
}

func TestSellSharesRemovesEmptyHolding(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))
	require.NoError(t, a.SellShares("aapl", 2))

	_, held := a.Holdings()["AAPL"]
	assert.False(t, held)
	assert.Empty(t, a.Holdings())
	assert.True(t, a.CashBalance().Equal(dec(1000)))
}

func TestSellSharesInvalidQuantity(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))

	assert.ErrorIs(t, a.SellShares("AAPL", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, a.SellShares("AAPL", -1), ErrInvalidQuantity)
	assert.Equal(t, map[string]int64{"AAPL": 2}, a.Holdings())
}

func TestSellSharesNeverHeld(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)

	err := a.SellShares("TSLA", 1)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	assert.True(t, a.CashBalance().Equal(dec(1000)))
	assert.Len(t, a.History(), 1)
}

func TestSellSharesMoreThanHeld(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))

	err := a.SellShares("AAPL", 3)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	assert.True(t, a.CashBalance().Equal(dec(700)))
	assert.Equal(t, map[string]int64{"AAPL": 2}, a.Holdings())
}

func TestSellSharesDelistedSymbol(t *testing.T) {
	t.Parallel()

	oracle := &stubOracle{prices: map[string]decimal.Decimal{"AAPL": dec(150)}}
	a := New("ACC-1", oracle)
	require.NoError(t, a.Deposit(dec(1000)))
	require.NoError(t, a.BuyShares("AAPL", 2))

	// symbol held but no longer priceable: detectable failure, no mutation
	delete(oracle.prices, "AAPL")

	err := a.SellShares("AAPL", 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownSymbol)

	assert.True(t, a.CashBalance().Equal(dec(700)))
	assert.Equal(t, map[string]int64{"AAPL": 2}, a.Holdings())
	assert.Len(t, a.History(), 2)
}

func TestPortfolioValueAndProfitOrLoss(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))
	require.NoError(t, a.SellShares("AAPL", 1))

	value, err := a.PortfolioValue()
	require.NoError(t, err)
	assert.True(t, value.Equal(dec(1000)), "850 cash + 1x150 AAPL")

	pl, err := a.ProfitOrLoss()
	require.NoError(t, err)
	assert.True(t, pl.IsZero())
}

func TestPortfolioValueFailsOnUnpriceableHolding(t *testing.T) {
	t.Parallel()

	oracle := &stubOracle{prices: map[string]decimal.Decimal{
		"AAPL": dec(150),
		"TSLA": dec(700),
	}}
	a := New("ACC-1", oracle)
	require.NoError(t, a.Deposit(dec(2000)))
	require.NoError(t, a.BuyShares("AAPL", 2))
	require.NoError(t, a.BuyShares("TSLA", 1))

	delete(oracle.prices, "TSLA")

	// never silently omit a position from the valuation
	_, err := a.PortfolioValue()
	assert.ErrorIs(t, err, pricing.ErrUnknownSymbol)

	_, err = a.ProfitOrLoss()
	assert.ErrorIs(t, err, pricing.ErrUnknownSymbol)
}

func TestBuySellRoundTrip(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	cashBefore := a.CashBalance()

	require.NoError(t, a.BuyShares("AAPL", 3))
	require.NoError(t, a.SellShares("AAPL", 3))

	assert.True(t, a.CashBalance().Equal(cashBefore))
	assert.Empty(t, a.Holdings())
}

func TestBuySellRoundTripWithPriceMove(t *testing.T) {
	t.Parallel()

	oracle := &stubOracle{prices: map[string]decimal.Decimal{"AAPL": dec(150)}}
	a := New("ACC-1", oracle)
	require.NoError(t, a.Deposit(dec(1000)))

	require.NoError(t, a.BuyShares("AAPL", 3))
	oracle.prices["AAPL"] = dec(160)
	require.NoError(t, a.SellShares("AAPL", 3))

	// round trip breaks by exactly delta x quantity
	assert.True(t, a.CashBalance().Equal(dec(1030)))

	pl, err := a.ProfitOrLoss()
	require.NoError(t, err)
	assert.True(t, pl.Equal(dec(30)))
}

func TestHistoryMatchesSuccessfulCalls(t *testing.T) {
	t.Parallel()

	a := New("ACC-1", pricing.Fixture())

	require.NoError(t, a.Deposit(dec(1000)))
	assert.Error(t, a.Withdraw(dec(5000)))
	require.NoError(t, a.BuyShares("AAPL", 2))
	assert.Error(t, a.BuyShares("NOPE", 1))
	assert.Error(t, a.SellShares("GOOGL", 1))
	require.NoError(t, a.SellShares("AAPL", 1))

	hist := a.History()
	require.Len(t, hist, 3)

	// record ids are sequential from 1, even across failed calls
	for i, rec := range hist {
		assert.Equal(t, uint64(i+1), rec.ID())
	}
	assert.Equal(t, []Kind{KindDeposit, KindBuy, KindSell},
		[]Kind{hist[0].Kind(), hist[1].Kind(), hist[2].Kind()})
}

func TestRecordTimestampsNonDecreasing(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 1))
	require.NoError(t, a.SellShares("AAPL", 1))

	hist := a.History()
	for i := 1; i < len(hist); i++ {
		assert.False(t, hist[i].Time().Before(hist[i-1].Time()))
	}
}

func TestHoldingsSnapshotIsolated(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.BuyShares("AAPL", 2))

	snap := a.Holdings()
	snap["AAPL"] = 99
	snap["TSLA"] = 1

	assert.Equal(t, map[string]int64{"AAPL": 2}, a.Holdings())
}

func TestHistoryCopyIsolated(t *testing.T) {
	t.Parallel()

	a := newFunded(t, 1000)
	require.NoError(t, a.Withdraw(dec(100)))

	hist := a.History()
	hist[0] = hist[1]

	assert.Equal(t, KindDeposit, a.History()[0].Kind())
}

func TestIndependentAccountsIndependentIDs(t *testing.T) {
	t.Parallel()

	a := New("ACC-1", pricing.Fixture())
	b := New("ACC-2", pricing.Fixture())

	require.NoError(t, a.Deposit(dec(10)))
	require.NoError(t, a.Deposit(dec(10)))
	require.NoError(t, b.Deposit(dec(10)))

	// id sequences are per account, not process-wide
	assert.Equal(t, uint64(2), a.History()[1].ID())
	assert.Equal(t, uint64(1), b.History()[0].ID())
}

func TestJournalForwarding(t *testing.T) {
	t.Parallel()

	j := &testJournal{}
	a := New("ACC-1", pricing.Fixture(), WithJournal(j))

	require.NoError(t, a.Deposit(dec(1000)))
	require.NoError(t, a.BuyShares("AAPL", 2))
	assert.Error(t, a.Withdraw(dec(5000))) // failed call, nothing journaled

	require.Len(t, j.transactions, 2)
	require.Len(t, j.balances, 2)

	assert.Equal(t, "DEPOSIT", j.transactions[0].Kind)
	assert.True(t, j.transactions[0].Amount.Equal(dec(1000)))
	assert.Empty(t, j.transactions[0].Symbol)

	assert.Equal(t, "BUY", j.transactions[1].Kind)
	assert.Equal(t, "AAPL", j.transactions[1].Symbol)
	assert.Equal(t, int64(2), j.transactions[1].Quantity)
	assert.True(t, j.transactions[1].PricePerShare.Equal(dec(150)))

	assert.True(t, j.balances[1].Cash.Equal(dec(700)))
	assert.True(t, j.balances[1].TotalDeposited.Equal(dec(1000)))
}

func TestJournalErrorDoesNotRollBack(t *testing.T) {
	t.Parallel()

	j := &testJournal{failNext: true}
	a := New("ACC-1", pricing.Fixture(), WithJournal(j))

	err := a.Deposit(dec(1000))
	assert.Error(t, err)

	// the deposit itself committed; only the sink write failed
	assert.True(t, a.CashBalance().Equal(dec(1000)))
	assert.Len(t, a.History(), 1)
}
