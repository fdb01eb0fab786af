package model

import (
	"fmt"
	"strings"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset        AccountType = "Asset"
	AccountTypeLiability    AccountType = "Liability"
	AccountTypeEquity       AccountType = "Equity"
	AccountTypeContraEquity AccountType = "Contra Equity"
	AccountTypeRevenue      AccountType = "Revenue"
	AccountTypeExpense      AccountType = "Expense"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeContraEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType matches s against the known account types, ignoring case
// and surrounding whitespace.
func ParseAccountType(s string) (AccountType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AccountTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// NormalBalance is the side on which increases to an account are recorded.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "Debit"
	NormalBalanceCredit NormalBalance = "Credit"
)

// ParseNormalBalance matches s against Debit/Credit, ignoring case.
// An empty string parses to the empty NormalBalance.
func ParseNormalBalance(s string) (NormalBalance, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", nil
	case strings.EqualFold(s, string(NormalBalanceDebit)):
		return NormalBalanceDebit, nil
	case strings.EqualFold(s, string(NormalBalanceCredit)):
		return NormalBalanceCredit, nil
	}
	return "", fmt.Errorf("unknown normal balance %q", s)
}

// DefaultNormalBalance returns Debit for asset and expense accounts and Credit
// for everything else.
func DefaultNormalBalance(t AccountType) NormalBalance {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalBalanceDebit
	default:
		return NormalBalanceCredit
	}
}

// Account represents a row in the chart of accounts.
type Account struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Type          AccountType   `json:"account_type"`
	NormalBalance NormalBalance `json:"normal_balance"`
	ReferenceCode int           `json:"reference_code"`
}

// Normalize fills in a missing normal balance from the account type.
// An explicitly set normal balance is kept.
func (a Account) Normalize() Account {
	if a.NormalBalance == "" {
		a.NormalBalance = DefaultNormalBalance(a.Type)
	}
	return a
}

func (a Account) String() string {
	return fmt.Sprintf("(%s) %d %s", a.Type, a.ReferenceCode, a.Name)
}
