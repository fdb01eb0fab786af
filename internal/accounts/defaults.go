package accounts

import "github.com/cleared-dev/tally/internal/model"

// Names of accounts the retained earnings statement reads directly.
const (
	CashDividends    = "Cash Dividends"
	RetainedEarnings = "Retained Earnings"
)

// DefaultChart returns the default chart of accounts for a corporation.
func DefaultChart() []model.Account {
	chart := []model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset, ReferenceCode: 101},
		{Name: "Accounts Receivable", Type: model.AccountTypeAsset, ReferenceCode: 112},
		{Name: "Supplies", Type: model.AccountTypeAsset, ReferenceCode: 126},
		{Name: "Equipment", Type: model.AccountTypeAsset, ReferenceCode: 157},
		{Name: "Accounts Payable", Type: model.AccountTypeLiability, ReferenceCode: 201},
		{Name: "Unearned Revenue", Type: model.AccountTypeLiability, ReferenceCode: 209},
		{Name: "Common Stock", Type: model.AccountTypeEquity, ReferenceCode: 311},
		{Name: RetainedEarnings, Type: model.AccountTypeEquity, ReferenceCode: 320},
		// Dividends reduce equity and carry a debit balance.
		{Name: CashDividends, Type: model.AccountTypeContraEquity, NormalBalance: model.NormalBalanceDebit, ReferenceCode: 332},
		{Name: "Service Revenue", Type: model.AccountTypeRevenue, ReferenceCode: 400},
		{Name: "Rent Expense", Type: model.AccountTypeExpense, ReferenceCode: 729},
		{Name: "Salaries Expense", Type: model.AccountTypeExpense, ReferenceCode: 726},
		{Name: "Utilities Expense", Type: model.AccountTypeExpense, ReferenceCode: 732},
	}
	for i := range chart {
		chart[i] = chart[i].Normalize()
	}
	return chart
}
