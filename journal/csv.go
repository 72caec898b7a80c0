// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	transactions *csv.Writer
	balances     *csv.Writer
	tf, bf       *os.File
}

func NewCSV(transactionsPath, balancesPath string) (*CSV, error) {
	tf, err := os.Create(transactionsPath)
	if err != nil {
		return nil, err
	}
	bf, err := os.Create(balancesPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	bw := csv.NewWriter(bf)

	if err := tw.Write([]string{"account_id", "tx_id", "kind", "amount", "symbol", "quantity", "price_per_share", "time"}); err != nil {
		return nil, err
	}
	if err := bw.Write([]string{"account_id", "time", "cash", "total_deposited"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	bw.Flush()
	if err := bw.Error(); err != nil {
		return nil, err
	}

	return &CSV{tw, bw, tf, bf}, nil
}

func (j *CSV) RecordTransaction(t TransactionRecord) error {
	err := j.transactions.Write([]string{
		t.AccountID,
		strconv.FormatUint(t.TxID, 10),
		t.Kind,
		t.Amount.String(),
		t.Symbol,
		strconv.FormatInt(t.Quantity, 10),
		t.PricePerShare.String(),
		t.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.transactions.Flush()
	return j.transactions.Error()
}

func (j *CSV) RecordBalance(b BalanceSnapshot) error {
	err := j.balances.Write([]string{
		b.AccountID,
		b.Time.Format(time.RFC3339),
		b.Cash.String(),
		b.TotalDeposited.String(),
	})
	if err != nil {
		return err
	}

	j.balances.Flush()
	return j.balances.Error()
}

func (j *CSV) Close() error {
	j.transactions.Flush()
	if err := j.transactions.Error(); err != nil {
		return err
	}
	j.balances.Flush()
	if err := j.balances.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	if err := j.bf.Close(); err != nil {
		return err
	}
	return nil
}
