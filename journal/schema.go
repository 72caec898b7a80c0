// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	account_id TEXT NOT NULL,
	tx_id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	amount TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price_per_share TEXT NOT NULL,
	time DATETIME NOT NULL,
	PRIMARY KEY (account_id, tx_id)
);

CREATE TABLE IF NOT EXISTS balances (
	account_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash TEXT NOT NULL,
	total_deposited TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_balances_time ON balances(time);
`
