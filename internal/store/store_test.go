package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(account, amount string) model.Transaction {
	return model.Transaction{Account: model.Account{Name: account}, Amount: dec(amount)}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.Import(ctx,
		[]model.Account{
			{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 101},
			{Name: "Service Revenue", Type: model.AccountTypeRevenue, ReferenceCode: 400},
			{Name: "Rent Expense", Type: model.AccountTypeExpense, ReferenceCode: 729},
		},
		[]model.JournalEntry{
			{Description: "Rent", Date: date(2024, 2, 1), Transactions: []model.Transaction{line("Rent Expense", "200.00"), line("Cash", "-200.00")}},
			{Description: "Consulting", Date: date(2024, 1, 1), Transactions: []model.Transaction{line("Cash", "500.00"), line("Service Revenue", "-500.00")}},
		})
	require.NoError(t, err)
}

func TestOpenCreatesDirectoryAndSchema(t *testing.T) {
	s := openTestStore(t)
	assert.FileExists(t, s.Path())

	accts, err := s.QueryAccounts(context.Background(), ledger.AllAccounts())
	require.NoError(t, err)
	assert.Empty(t, accts)
}

func TestUpsertAccount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertAccount(ctx, model.Account{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 100})
	require.NoError(t, err)

	id2, err := s.UpsertAccount(ctx, model.Account{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 101})
	require.NoError(t, err)
	assert.Equal(t, id, id2, "same name updates in place")

	got, err := s.QueryAccounts(ctx, ledger.AccountNamed("Cash"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 101, got[0].ReferenceCode)
	assert.Equal(t, model.NormalBalanceDebit, got[0].NormalBalance)

	_, err = s.UpsertAccount(ctx, model.Account{Type: model.AccountTypeAsset})
	assert.Error(t, err)
}

func TestQueryAccounts(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	all, err := s.QueryAccounts(ctx, ledger.AllAccounts())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cash", all[0].Name)
	assert.Equal(t, "Service Revenue", all[2].Name)

	revenue, err := s.QueryAccounts(ctx, ledger.AccountsOfType(model.AccountTypeRevenue))
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, model.NormalBalanceCredit, revenue[0].NormalBalance)

	missing, err := s.QueryAccounts(ctx, ledger.AccountNamed("Cash Dividends"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestQueryTransactions(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	cash, err := s.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: "Cash"})
	require.NoError(t, err)
	require.Len(t, cash, 2)
	assert.True(t, cash[0].Date.Equal(date(2024, 1, 1)), "ordered by entry date")
	assert.True(t, cash[0].Amount.Equal(dec("500")))
	assert.True(t, cash[1].Amount.Equal(dec("-200")))
	assert.Equal(t, "Consulting", cash[0].Description)
	assert.Equal(t, model.NormalBalanceDebit, cash[0].Account.NormalBalance)
	assert.Equal(t, model.AccountTypeAsset, cash[0].Account.Type)

	feb, err := s.QueryTransactions(ctx, ledger.TransactionQuery{Period: ledger.Between(date(2024, 2, 1), date(2024, 2, 29))})
	require.NoError(t, err)
	assert.Len(t, feb, 2)

	throughJan, err := s.QueryTransactions(ctx, ledger.TransactionQuery{Period: ledger.Between(time.Time{}, date(2024, 1, 31))})
	require.NoError(t, err)
	assert.Len(t, throughJan, 2, "a year-one start still filters")

	expenses, err := s.QueryTransactions(ctx, ledger.TransactionQuery{AccountType: model.AccountTypeExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Rent Expense", expenses[0].Account.Name)

	all, err := s.QueryTransactions(ctx, ledger.TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAddJournalEntry_UnknownAccountRollsBack(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	_, err := s.AddJournalEntry(ctx, model.JournalEntry{
		Description:  "Bad",
		Date:         date(2024, 3, 1),
		Transactions: []model.Transaction{line("Cash", "10"), line("Petty Cash", "-10")},
	})
	require.ErrorIs(t, err, ErrNotFound)

	all, err := s.QueryTransactions(ctx, ledger.TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4, "nothing from the failed entry is kept")
}

func TestAddJournalEntry_DropsZeroAmounts(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	id, err := s.AddJournalEntry(ctx, model.JournalEntry{
		Description:  "Adjust",
		Date:         date(2024, 3, 1),
		Transactions: []model.Transaction{line("Cash", "0"), line("Rent Expense", "0.00")},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	march, err := s.QueryTransactions(ctx, ledger.TransactionQuery{Period: ledger.Between(date(2024, 3, 1), date(2024, 3, 31))})
	require.NoError(t, err)
	assert.Empty(t, march)
}

func TestTaxRates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	vat, err := s.UpsertTaxRate(ctx, model.TaxRate{Name: "VAT", Rate: dec("20.00")})
	require.NoError(t, err)
	_, err = s.UpsertTaxRate(ctx, model.TaxRate{Name: "GST", Rate: dec("7.25")})
	require.NoError(t, err)

	again, err := s.UpsertTaxRate(ctx, model.TaxRate{Name: "VAT", Rate: dec("21")})
	require.NoError(t, err)
	assert.Equal(t, vat, again, "same name updates in place")

	rates, err := s.TaxRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "GST", rates[0].Name)
	assert.Equal(t, "GST 7.25%", rates[0].String())
	assert.True(t, rates[1].Rate.Equal(dec("21")))

	_, err = s.UpsertTaxRate(ctx, model.TaxRate{Name: "  ", Rate: dec("1")})
	assert.Error(t, err)
}

func TestMatchesMemory(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	mem := ledger.NewMemory([]model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 101},
		{Name: "Service Revenue", Type: model.AccountTypeRevenue, ReferenceCode: 400},
		{Name: "Rent Expense", Type: model.AccountTypeExpense, ReferenceCode: 729},
	})
	_, err := mem.Add(model.JournalEntry{Description: "Rent", Date: date(2024, 2, 1), Transactions: []model.Transaction{line("Rent Expense", "200.00"), line("Cash", "-200.00")}})
	require.NoError(t, err)
	_, err = mem.Add(model.JournalEntry{Description: "Consulting", Date: date(2024, 1, 1), Transactions: []model.Transaction{line("Cash", "500.00"), line("Service Revenue", "-500.00")}})
	require.NoError(t, err)

	for _, name := range []string{"Cash", "Service Revenue", "Rent Expense"} {
		fromStore, err := s.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: name})
		require.NoError(t, err)
		fromMem, err := mem.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: name})
		require.NoError(t, err)
		require.Len(t, fromStore, len(fromMem), name)
		for i := range fromStore {
			assert.True(t, fromStore[i].Amount.Equal(fromMem[i].Amount), "%s row %d", name, i)
			assert.True(t, fromStore[i].Date.Equal(fromMem[i].Date), "%s row %d", name, i)
		}
	}
}

func TestJournalEntries(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	entries, err := s.JournalEntries(ctx, ledger.All)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Consulting", entries[0].Description, "ordered by date")
	require.Len(t, entries[0].Transactions, 2)
	assert.True(t, entries[0].Balanced())
	assert.Equal(t, "Rent", entries[1].Description)

	feb, err := s.JournalEntries(ctx, ledger.Between(date(2024, 2, 1), date(2024, 2, 29)))
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "Rent", feb[0].Description)
}
