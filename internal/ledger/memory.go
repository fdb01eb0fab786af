package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cleared-dev/tally/internal/model"
)

// Memory is an in-memory Querier. Reads are safe for concurrent use with each
// other and with Add.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
	entries  []model.JournalEntry
	nextTx   int64
}

// NewMemory creates a Memory ledger over the given chart of accounts.
func NewMemory(accounts []model.Account) *Memory {
	m := &Memory{accounts: make(map[string]model.Account, len(accounts))}
	for i, a := range accounts {
		a = a.Normalize()
		if a.ID == 0 {
			a.ID = int64(i + 1)
		}
		m.accounts[a.Name] = a
	}
	return m
}

// Add records a journal entry. Transactions reference accounts by name; the
// account must exist. Blank transaction descriptions take the entry's.
// Returns the assigned entry ID.
func (m *Memory) Add(entry model.JournalEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = int64(len(m.entries) + 1)
	txs := make([]model.Transaction, 0, len(entry.Transactions))
	for i, tx := range entry.Transactions {
		acct, ok := m.accounts[tx.Account.Name]
		if !ok {
			return 0, fmt.Errorf("transaction %d: unknown account %q", i+1, tx.Account.Name)
		}
		m.nextTx++
		tx.ID = m.nextTx
		tx.JournalEntryID = entry.ID
		tx.Date = entry.Date
		tx.Account = acct
		if tx.Description == "" {
			tx.Description = entry.Description
		}
		txs = append(txs, tx)
	}
	entry.Transactions = txs
	m.entries = append(m.entries, entry)
	return entry.ID, nil
}

// QueryTransactions implements Querier.
func (m *Memory) QueryTransactions(_ context.Context, q TransactionQuery) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.Transaction
	for _, e := range m.entries {
		for _, tx := range e.Transactions {
			if q.Matches(tx) {
				result = append(result, tx)
			}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.JournalEntryID != b.JournalEntryID {
			return a.JournalEntryID < b.JournalEntryID
		}
		return a.ID < b.ID
	})
	return result, nil
}

// QueryAccounts implements Querier.
func (m *Memory) QueryAccounts(_ context.Context, q AccountQuery) ([]model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.Account
	for _, a := range m.accounts {
		if q.Matches(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
