package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one balanced accounting event. The signed amounts of its
// transactions are expected to sum to zero.
type JournalEntry struct {
	ID           int64         `json:"id"`
	Description  string        `json:"description"`
	Date         time.Time     `json:"date"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// Total returns the signed sum of the entry's transaction amounts.
func (e JournalEntry) Total() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range e.Transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// Balanced reports whether the entry's transactions sum to zero.
func (e JournalEntry) Balanced() bool {
	return e.Total().IsZero()
}
