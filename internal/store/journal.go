package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

var _ ledger.Querier = (*Store)(nil)

// AddJournalEntry stores a journal entry and its transactions atomically.
// Transactions reference accounts by name. Zero-amount transactions are
// dropped, and blank descriptions take the entry's. Balancing is not checked
// here. Returns the entry ID.
func (s *Store) AddJournalEntry(ctx context.Context, entry model.JournalEntry) (int64, error) {
	var entryID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO journal_entries (description, entry_date) VALUES (?, ?)`,
			entry.Description, entry.Date.Format(ledger.DateFormat))
		if err != nil {
			return fmt.Errorf("inserting journal entry: %w", err)
		}
		entryID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading journal entry id: %w", err)
		}

		for i, t := range entry.Transactions {
			if t.Amount.IsZero() {
				continue
			}

			var accountID int64
			err := tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE name = ?`, t.Account.Name).Scan(&accountID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("transaction %d: account %q: %w", i+1, t.Account.Name, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("transaction %d: looking up account %q: %w", i+1, t.Account.Name, err)
			}

			desc := t.Description
			if desc == "" {
				desc = entry.Description
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transactions (journal_entry_id, account_id, description, amount) VALUES (?, ?, ?, ?)`,
				entryID, accountID, desc, t.Amount.String()); err != nil {
				return fmt.Errorf("transaction %d: inserting: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return entryID, nil
}

// QueryTransactions implements ledger.Querier.
func (s *Store) QueryTransactions(ctx context.Context, q ledger.TransactionQuery) ([]model.Transaction, error) {
	var where []string
	var args []any
	if q.AccountName != "" {
		where = append(where, `a.name = ?`)
		args = append(args, q.AccountName)
	}
	if q.AccountType != "" {
		where = append(where, `a.account_type = ?`)
		args = append(args, string(q.AccountType))
	}
	if q.Period.Bounded() {
		where = append(where, `je.entry_date BETWEEN ? AND ?`)
		args = append(args, q.Period.Start.Format(ledger.DateFormat), q.Period.End.Format(ledger.DateFormat))
	}

	query := `
		SELECT t.id, t.journal_entry_id, je.entry_date, t.description, t.amount,
		       a.id, a.name, a.account_type, a.normal_balance, a.reference_code
		FROM transactions t
		JOIN journal_entries je ON je.id = t.journal_entry_id
		JOIN accounts a ON a.id = t.account_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY je.entry_date, je.id, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var entryDate, amount, accountType, normal string
		if err := rows.Scan(&t.ID, &t.JournalEntryID, &entryDate, &t.Description, &amount,
			&t.Account.ID, &t.Account.Name, &accountType, &normal, &t.Account.ReferenceCode); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		t.Date, err = time.Parse(ledger.DateFormat, entryDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: parsing date %q: %w", t.ID, entryDate, err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: parsing amount %q: %w", t.ID, amount, err)
		}
		t.Account.Type = model.AccountType(accountType)
		t.Account.NormalBalance = model.NormalBalance(normal)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return result, nil
}

// JournalEntries returns the journal entries dated within p, with their
// transactions, ordered by date and then ID.
func (s *Store) JournalEntries(ctx context.Context, p ledger.Period) ([]model.JournalEntry, error) {
	query := `SELECT id, description, entry_date FROM journal_entries`
	var args []any
	if p.Bounded() {
		query += ` WHERE entry_date BETWEEN ? AND ?`
		args = append(args, p.Start.Format(ledger.DateFormat), p.End.Format(ledger.DateFormat))
	}
	query += ` ORDER BY entry_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	index := make(map[int64]int)
	for rows.Next() {
		var e model.JournalEntry
		var entryDate string
		if err := rows.Scan(&e.ID, &e.Description, &entryDate); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Date, err = time.Parse(ledger.DateFormat, entryDate)
		if err != nil {
			return nil, fmt.Errorf("journal entry %d: parsing date %q: %w", e.ID, entryDate, err)
		}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}

	txs, err := s.QueryTransactions(ctx, ledger.TransactionQuery{Period: p})
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if i, ok := index[tx.JournalEntryID]; ok {
			entries[i].Transactions = append(entries[i].Transactions, tx)
		}
	}
	return entries, nil
}
