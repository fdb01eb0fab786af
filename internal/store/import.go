package store

import (
	"context"
	"fmt"

	"github.com/cleared-dev/tally/internal/model"
)

// ImportResult counts what Import wrote.
type ImportResult struct {
	Accounts int
	Entries  int
}

// Import upserts a chart of accounts and then appends journal entries.
// Entries are written one at a time; a failure stops the import and reports
// how far it got.
func (s *Store) Import(ctx context.Context, accounts []model.Account, entries []model.JournalEntry) (ImportResult, error) {
	var res ImportResult
	for _, acct := range accounts {
		if _, err := s.UpsertAccount(ctx, acct); err != nil {
			return res, err
		}
		res.Accounts++
	}
	for i, entry := range entries {
		if _, err := s.AddJournalEntry(ctx, entry); err != nil {
			return res, fmt.Errorf("entry %d (%s): %w", i+1, entry.Description, err)
		}
		res.Entries++
	}
	return res, nil
}
