package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/balance"
	"github.com/cleared-dev/tally/internal/model"
)

// TrialBalanceRow holds one account's debit and credit totals.
type TrialBalanceRow struct {
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit_total"`
	Credit      decimal.Decimal `json:"credit_total"`
}

// TrialBalance lists every account with activity in the period.
type TrialBalance struct {
	Accounts    []TrialBalanceRow `json:"accounts"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// Balanced reports whether total debits equal total credits.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// AccountBalance is the running balance of a single account.
type AccountBalance struct {
	AccountName  string              `json:"account_name"`
	Transactions []model.Transaction `json:"transactions"`
	Balance      balance.Columns     `json:"balance"`
	TotalDebit   balance.Cell        `json:"total_debit"`
	TotalCredit  balance.Cell        `json:"total_credit"`
}

// IncomeStatement reports revenue and expense totals as magnitudes.
type IncomeStatement struct {
	RevenueAccounts []model.Account `json:"revenue_accounts"`
	ExpenseAccounts []model.Account `json:"expense_accounts"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	NetIncome       decimal.Decimal `json:"net_income"`
}

// RetainedEarningsStatement rolls beginning retained earnings forward by net
// income less dividends. Every figure is credit-positive, unlike the ledger's
// debit-positive amounts.
type RetainedEarningsStatement struct {
	BeginningRetainedEarnings decimal.Decimal `json:"beginning_retained_earnings"`
	NetIncome                 decimal.Decimal `json:"net_income"`
	CashDividends             decimal.Decimal `json:"cash_dividends"`
	IncreasedRetainedEarnings decimal.Decimal `json:"increased_retained_earnings"`
	EndingRetainedEarnings    decimal.Decimal `json:"ending_retained_earnings"`
	// MissingAccounts names referenced accounts with no record; each
	// contributed zero.
	MissingAccounts []string `json:"missing_accounts,omitempty"`
}

// BalanceSheet reports signed group totals for assets, liabilities, and equity.
type BalanceSheet struct {
	AssetAccounts             []model.Account `json:"asset_accounts"`
	LiabilityAccounts         []model.Account `json:"liability_accounts"`
	EquityAccounts            []model.Account `json:"equity_accounts"`
	TotalAssets               decimal.Decimal `json:"total_assets"`
	TotalLiabilities          decimal.Decimal `json:"total_liabilities"`
	TotalEquity               decimal.Decimal `json:"total_equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
}

// Balances reports whether assets equal liabilities plus equity in magnitude.
// Nothing enforces it; a ledger without closing entries usually fails it.
func (bs BalanceSheet) Balances() bool {
	return bs.TotalAssets.Abs().Equal(bs.TotalLiabilitiesAndEquity.Abs())
}
