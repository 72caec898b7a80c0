package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(t TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(account_id, tx_id, kind, amount, symbol, quantity, price_per_share, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.AccountID, t.TxID, t.Kind, t.Amount.String(),
		t.Symbol, t.Quantity, t.PricePerShare.String(), t.Time,
	)
	return err
}

func (j *SQLite) RecordBalance(b BalanceSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO balances
		(account_id, time, cash, total_deposited)
		VALUES (?, ?, ?, ?)`,
		b.AccountID, b.Time, b.Cash.String(), b.TotalDeposited.String(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
