package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNormalBalance(t *testing.T) {
	tests := []struct {
		accountType AccountType
		want        NormalBalance
	}{
		{AccountTypeAsset, NormalBalanceDebit},
		{AccountTypeExpense, NormalBalanceDebit},
		{AccountTypeLiability, NormalBalanceCredit},
		{AccountTypeEquity, NormalBalanceCredit},
		{AccountTypeContraEquity, NormalBalanceCredit},
		{AccountTypeRevenue, NormalBalanceCredit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultNormalBalance(tt.accountType), "DefaultNormalBalance(%q)", tt.accountType)
	}
}

func TestNormalizeKeepsOverride(t *testing.T) {
	derived := Account{Name: "Cash", Type: AccountTypeAsset}.Normalize()
	assert.Equal(t, NormalBalanceDebit, derived.NormalBalance)

	// Cash Dividends is equity-typed but carries a debit balance.
	override := Account{Name: "Cash Dividends", Type: AccountTypeEquity, NormalBalance: NormalBalanceDebit}.Normalize()
	assert.Equal(t, NormalBalanceDebit, override.NormalBalance)
}

func TestParseAccountType(t *testing.T) {
	got, err := ParseAccountType(" contra equity ")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeContraEquity, got)

	got, err = ParseAccountType("EXPENSE")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeExpense, got)

	_, err = ParseAccountType("Expenses")
	assert.Error(t, err)
}

func TestParseNormalBalance(t *testing.T) {
	got, err := ParseNormalBalance("")
	require.NoError(t, err)
	assert.Equal(t, NormalBalance(""), got)

	got, err = ParseNormalBalance("credit")
	require.NoError(t, err)
	assert.Equal(t, NormalBalanceCredit, got)

	_, err = ParseNormalBalance("both")
	assert.Error(t, err)
}

func TestAccountString(t *testing.T) {
	acct := Account{Name: "Cash", Type: AccountTypeAsset, ReferenceCode: 101}
	assert.Equal(t, "(Asset) 101 Cash", acct.String())
}

func TestJournalEntryBalanced(t *testing.T) {
	entry := JournalEntry{Transactions: []Transaction{
		{Amount: decimal.RequireFromString("500")},
		{Amount: decimal.RequireFromString("-500")},
	}}
	assert.True(t, entry.Balanced())

	entry.Transactions = append(entry.Transactions, Transaction{Amount: decimal.RequireFromString("0.01")})
	assert.False(t, entry.Balanced())
	assert.Equal(t, "0.01", entry.Total().String())
}

func TestTransactionSide(t *testing.T) {
	debit := Transaction{Amount: decimal.NewFromInt(5)}
	credit := Transaction{Amount: decimal.NewFromInt(-5)}
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())
}
