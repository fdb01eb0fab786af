package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(account, amount string) model.Transaction {
	return model.Transaction{Account: model.Account{Name: account}, Amount: decimal.RequireFromString(amount)}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    Period
		wantErr bool
	}{
		{name: "both absent", want: All},
		{name: "both present", start: "2024-01-01", end: "2024-01-31", want: Between(date(2024, 1, 1), date(2024, 1, 31))},
		{name: "start only", start: "2024-02-01", wantErr: true},
		{name: "end only", end: "2024-02-01", wantErr: true},
		{name: "both malformed", start: "yesterday", end: "02/01/2024", want: All},
		{name: "malformed start with valid end", start: "nope", end: "2024-02-01", wantErr: true},
		{name: "whitespace only", start: "  ", end: "", want: All},
		{name: "year one start", start: "0001-01-01", end: "2024-01-31", want: Between(time.Time{}, date(2024, 1, 31))},
		{name: "year one both", start: "0001-01-01", end: "0001-01-01", want: Between(time.Time{}, time.Time{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.start, tt.end)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPeriodTruncatesTime(t *testing.T) {
	start := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	end := time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC)
	p, err := NewPeriod(&start, &end)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), p.Start)
	assert.True(t, p.Contains(time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)))
}

func TestPeriodContainsInclusive(t *testing.T) {
	p := Between(date(2024, 1, 1), date(2024, 1, 31))
	assert.True(t, p.Contains(date(2024, 1, 1)))
	assert.True(t, p.Contains(date(2024, 1, 31)))
	assert.False(t, p.Contains(date(2023, 12, 31)))
	assert.False(t, p.Contains(date(2024, 2, 1)))
	assert.True(t, All.Contains(date(1999, 1, 1)))
	assert.Equal(t, "2024-01-01 to 2024-01-31", p.String())
	assert.Equal(t, "all dates", All.String())
}

func TestPeriodYearOneBoundStillFilters(t *testing.T) {
	p, err := ParsePeriod("0001-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, p.Bounded())
	assert.True(t, p.Contains(date(2024, 1, 31)))
	assert.False(t, p.Contains(date(2030, 1, 1)))
	assert.Equal(t, "0001-01-01 to 2024-01-31", p.String())

	m := newTestMemory(t)
	txs, err := m.QueryTransactions(context.Background(), TransactionQuery{Period: p})
	require.NoError(t, err)
	assert.Len(t, txs, 2, "only the January entry")
	for _, tx := range txs {
		assert.Equal(t, "Consulting", tx.Description)
	}
}

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory([]model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 101},
		{Name: "Revenue", Type: model.AccountTypeRevenue, ReferenceCode: 401},
		{Name: "Rent", Type: model.AccountTypeExpense, ReferenceCode: 501},
	})
	_, err := m.Add(model.JournalEntry{
		Description:  "Rent for February",
		Date:         date(2024, 2, 1),
		Transactions: []model.Transaction{tx("Rent", "200"), tx("Cash", "-200")},
	})
	require.NoError(t, err)
	_, err = m.Add(model.JournalEntry{
		Description:  "Consulting",
		Date:         date(2024, 1, 1),
		Transactions: []model.Transaction{tx("Cash", "500"), tx("Revenue", "-500")},
	})
	require.NoError(t, err)
	return m
}

func TestMemoryQueryTransactions(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	cash, err := m.QueryTransactions(ctx, TransactionQuery{AccountName: "Cash"})
	require.NoError(t, err)
	require.Len(t, cash, 2)
	// Ordered by entry date, not insertion order.
	assert.Equal(t, "500", cash[0].Amount.String())
	assert.Equal(t, "-200", cash[1].Amount.String())
	assert.Equal(t, model.NormalBalanceDebit, cash[0].Account.NormalBalance)
	assert.Equal(t, "Consulting", cash[0].Description)

	jan, err := m.QueryTransactions(ctx, TransactionQuery{Period: Between(date(2024, 1, 1), date(2024, 1, 31))})
	require.NoError(t, err)
	assert.Len(t, jan, 2)

	expenses, err := m.QueryTransactions(ctx, TransactionQuery{AccountType: model.AccountTypeExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Rent", expenses[0].Account.Name)

	none, err := m.QueryTransactions(ctx, TransactionQuery{AccountName: "Nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryQueryAccounts(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	all, err := m.QueryAccounts(ctx, AllAccounts())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Cash", "Rent", "Revenue"}, []string{all[0].Name, all[1].Name, all[2].Name})

	single, err := m.QueryAccounts(ctx, AccountNamed("Revenue"))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, model.NormalBalanceCredit, single[0].NormalBalance)

	byType, err := m.QueryAccounts(ctx, AccountsOfType(model.AccountTypeExpense))
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Rent", byType[0].Name)

	missing, err := m.QueryAccounts(ctx, AccountNamed("Cash Dividends"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMemoryAddUnknownAccount(t *testing.T) {
	m := NewMemory(nil)
	_, err := m.Add(model.JournalEntry{Transactions: []model.Transaction{tx("Cash", "1")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown account "Cash"`)
}
