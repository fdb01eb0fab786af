package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// UpsertAccount inserts an account, or updates the account with the same name.
// A blank normal balance is derived from the account type. Returns the account ID.
func (s *Store) UpsertAccount(ctx context.Context, acct model.Account) (int64, error) {
	acct = acct.Normalize()
	if acct.Name == "" {
		return 0, fmt.Errorf("account name is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, account_type, normal_balance, reference_code)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			account_type = excluded.account_type,
			normal_balance = excluded.normal_balance,
			reference_code = excluded.reference_code,
			updated_at = CURRENT_TIMESTAMP
	`, acct.Name, string(acct.Type), string(acct.NormalBalance), acct.ReferenceCode)
	if err != nil {
		return 0, fmt.Errorf("upserting account %s: %w", acct.Name, err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM accounts WHERE name = ?`, acct.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("reading account id for %s: %w", acct.Name, err)
	}
	return id, nil
}

// QueryAccounts implements ledger.Querier.
func (s *Store) QueryAccounts(ctx context.Context, q ledger.AccountQuery) ([]model.Account, error) {
	query := `SELECT id, name, account_type, normal_balance, reference_code FROM accounts`
	var args []any
	switch {
	case q.By == ledger.ByType:
		query += ` WHERE account_type = ?`
		args = append(args, string(q.Type))
	case !q.All:
		query += ` WHERE name = ?`
		args = append(args, q.Name)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var result []model.Account
	for rows.Next() {
		var a model.Account
		var accountType, normal string
		if err := rows.Scan(&a.ID, &a.Name, &accountType, &normal, &a.ReferenceCode); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(accountType)
		a.NormalBalance = model.NormalBalance(normal)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return result, nil
}
