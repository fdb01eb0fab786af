// Package ledger defines the read-only query interface the report layer
// consumes, and an in-memory implementation of it.
package ledger

import (
	"context"

	"github.com/cleared-dev/tally/internal/model"
)

// Querier is the read side of a ledger store. Implementations must be safe for
// concurrent use.
type Querier interface {
	// QueryTransactions returns matching transactions ordered by entry date,
	// then journal entry ID, then transaction ID.
	QueryTransactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error)
	// QueryAccounts returns matching accounts ordered by name.
	QueryAccounts(ctx context.Context, q AccountQuery) ([]model.Account, error)
}

// TransactionQuery filters transactions. Empty fields match anything.
type TransactionQuery struct {
	AccountName string
	AccountType model.AccountType
	Period      Period
}

// Matches reports whether tx satisfies the query.
func (q TransactionQuery) Matches(tx model.Transaction) bool {
	if q.AccountName != "" && tx.Account.Name != q.AccountName {
		return false
	}
	if q.AccountType != "" && tx.Account.Type != q.AccountType {
		return false
	}
	return q.Period.Contains(tx.Date)
}

// AccountLookup selects how accounts are looked up.
type AccountLookup string

const (
	ByName AccountLookup = "name"
	ByType AccountLookup = "type"
)

// AccountQuery filters accounts: every account, a single account by name, or
// all accounts of one type.
type AccountQuery struct {
	By   AccountLookup
	All  bool
	Name string
	Type model.AccountType
}

// AllAccounts queries every account.
func AllAccounts() AccountQuery {
	return AccountQuery{By: ByName, All: true}
}

// AccountNamed queries the single account with the given name.
func AccountNamed(name string) AccountQuery {
	return AccountQuery{By: ByName, Name: name}
}

// AccountsOfType queries all accounts of type t.
func AccountsOfType(t model.AccountType) AccountQuery {
	return AccountQuery{By: ByType, Type: t}
}

// Matches reports whether acct satisfies the query.
func (q AccountQuery) Matches(acct model.Account) bool {
	switch q.By {
	case ByType:
		return acct.Type == q.Type
	default:
		return q.All || acct.Name == q.Name
	}
}
