package journal

import (
	"github.com/shopspring/decimal"
)

// ListTransactions returns every recorded transaction for an account
// in id order.
func (j *SQLite) ListTransactions(accountID string) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT account_id, tx_id, kind, amount, symbol, quantity, price_per_share, time
		FROM transactions
		WHERE account_id = ?
		ORDER BY tx_id ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		var amount, price string
		if err := rows.Scan(
			&rec.AccountID,
			&rec.TxID,
			&rec.Kind,
			&amount,
			&rec.Symbol,
			&rec.Quantity,
			&price,
			&rec.Time,
		); err != nil {
			return nil, err
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if rec.PricePerShare, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBalances returns the balance snapshots for an account in
// insertion order.
func (j *SQLite) ListBalances(accountID string) ([]BalanceSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT account_id, time, cash, total_deposited
		FROM balances
		WHERE account_id = ?
		ORDER BY rowid ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceSnapshot
	for rows.Next() {
		var rec BalanceSnapshot
		var cash, deposited string
		if err := rows.Scan(&rec.AccountID, &rec.Time, &cash, &deposited); err != nil {
			return nil, err
		}
		if rec.Cash, err = decimal.NewFromString(cash); err != nil {
			return nil, err
		}
		if rec.TotalDeposited, err = decimal.NewFromString(deposited); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
