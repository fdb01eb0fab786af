// Package balance computes running balances and totals over transaction sets.
package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Columns holds the debit and credit running-balance columns for one account.
// Both slices have one cell per transaction; the side that does not match the
// account's normal balance is all blank.
type Columns struct {
	Debit  []Cell `json:"debit_balance"`
	Credit []Cell `json:"credit_balance"`
}

// Last returns the final cell of each column, or Blank for an empty column.
func (c Columns) Last() (debit, credit Cell) {
	if n := len(c.Debit); n > 0 {
		debit = c.Debit[n-1]
	}
	if n := len(c.Credit); n > 0 {
		credit = c.Credit[n-1]
	}
	return debit, credit
}

// CumulativeBalance returns the running balance of transactions belonging to a
// single account, in the order given. The normal balance is taken from the
// first transaction's account. Debit-normal accounts get the signed running
// sum; credit-normal accounts get the absolute value of the running sum.
func CumulativeBalance(txs []model.Transaction) Columns {
	return cumulative(txs, true)
}

// NetCumulativeBalance is CumulativeBalance without the absolute value on the
// credit side, so credit-normal accounts show their signed net position.
func NetCumulativeBalance(txs []model.Transaction) Columns {
	return cumulative(txs, false)
}

func cumulative(txs []model.Transaction, absCredit bool) Columns {
	cols := Columns{
		Debit:  make([]Cell, len(txs)),
		Credit: make([]Cell, len(txs)),
	}
	if len(txs) == 0 {
		return cols
	}

	side := txs[0].Account.Normalize().NormalBalance
	running := decimal.Zero
	for i, tx := range txs {
		running = running.Add(tx.Amount)
		switch side {
		case model.NormalBalanceDebit:
			cols.Debit[i] = Amount(running)
		case model.NormalBalanceCredit:
			if absCredit {
				cols.Credit[i] = Amount(running.Abs())
			} else {
				cols.Credit[i] = Amount(running)
			}
		}
	}
	return cols
}

// TransactionTotal returns the signed sum of the transactions' amounts.
func TransactionTotal(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// Split returns the sum of positive amounts and the sum of the absolute values
// of negative amounts.
func Split(txs []model.Transaction) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.IsDebit():
			debit = debit.Add(tx.Amount)
		case tx.IsCredit():
			credit = credit.Add(tx.Amount.Abs())
		}
	}
	return debit, credit
}

// AccountGroupBalance sums TransactionTotal over every transaction of every
// given account within the period.
func AccountGroupBalance(ctx context.Context, q ledger.Querier, accounts []model.Account, p ledger.Period) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, acct := range accounts {
		txs, err := q.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: acct.Name, Period: p})
		if err != nil {
			return decimal.Zero, fmt.Errorf("querying transactions for %s: %w", acct.Name, err)
		}
		total = total.Add(TransactionTotal(txs))
	}
	return total, nil
}
