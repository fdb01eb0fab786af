package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one line of a journal entry against a single account.
// Positive amounts are debits, negative amounts are credits, whatever the
// account's normal balance.
type Transaction struct {
	ID             int64           `json:"id"`
	JournalEntryID int64           `json:"journal_entry_id"`
	Date           time.Time       `json:"date"` // date of the owning journal entry
	Description    string          `json:"description"`
	Account        Account         `json:"account"`
	Amount         decimal.Decimal `json:"amount"`
}

// IsDebit reports whether the transaction records a debit.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsPositive()
}

// IsCredit reports whether the transaction records a credit.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsNegative()
}

// TaxRate is a named percentage rate. Reports never read it.
type TaxRate struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

func (r TaxRate) String() string {
	return r.Name + " " + r.Rate.String() + "%"
}
