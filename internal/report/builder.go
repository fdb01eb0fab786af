// Package report builds financial reports from a ledger.Querier: the trial
// balance, per-account running balances, the income statement, the retained
// earnings statement, and the balance sheet.
//
// Every report is a read-only computation over the ledger at call time.
// Callers validate date ranges with ledger.ParsePeriod or ledger.NewPeriod
// before calling in.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/balance"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// ErrUnknownAccount marks a named account that a report reads but the ledger
// does not have. Reports substitute zero and log it instead of failing.
var ErrUnknownAccount = errors.New("unknown account")

// NamedAccounts are the accounts the retained earnings statement reads by name.
type NamedAccounts struct {
	CashDividends    string
	RetainedEarnings string
}

// DefaultNamedAccounts returns the standard account names.
func DefaultNamedAccounts() NamedAccounts {
	return NamedAccounts{
		CashDividends:    accounts.CashDividends,
		RetainedEarnings: accounts.RetainedEarnings,
	}
}

// Builder computes reports. It holds no per-request state and is safe for
// concurrent use when its Querier is.
type Builder struct {
	q     ledger.Querier
	log   *zap.Logger
	names NamedAccounts
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for substitution warnings.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithNamedAccounts overrides the account names read by the retained earnings
// statement. Empty fields keep their defaults.
func WithNamedAccounts(n NamedAccounts) Option {
	return func(b *Builder) {
		if n.CashDividends != "" {
			b.names.CashDividends = n.CashDividends
		}
		if n.RetainedEarnings != "" {
			b.names.RetainedEarnings = n.RetainedEarnings
		}
	}
}

// NewBuilder creates a Builder over q.
func NewBuilder(q ledger.Querier, opts ...Option) *Builder {
	b := &Builder{q: q, log: zap.NewNop(), names: DefaultNamedAccounts()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TrialBalance totals debits and credits per account for every account with
// at least one transaction in p, ordered by account name.
func (b *Builder) TrialBalance(ctx context.Context, p ledger.Period) (TrialBalance, error) {
	txs, err := b.q.QueryTransactions(ctx, ledger.TransactionQuery{Period: p})
	if err != nil {
		return TrialBalance{}, fmt.Errorf("trial balance: %w", err)
	}

	byAccount := make(map[string][]model.Transaction)
	for _, tx := range txs {
		byAccount[tx.Account.Name] = append(byAccount[tx.Account.Name], tx)
	}
	names := make([]string, 0, len(byAccount))
	for name := range byAccount {
		names = append(names, name)
	}
	sort.Strings(names)

	tb := TrialBalance{
		Accounts:    make([]TrialBalanceRow, 0, len(names)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, name := range names {
		debit, credit := balance.Split(byAccount[name])
		tb.Accounts = append(tb.Accounts, TrialBalanceRow{AccountName: name, Debit: debit, Credit: credit})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}
	return tb, nil
}

// AccountBalance returns the running balance of one account over p. It returns
// nil, not an error, when no transactions match, including when the account
// does not exist.
func (b *Builder) AccountBalance(ctx context.Context, accountName string, p ledger.Period) (*AccountBalance, error) {
	txs, err := b.q.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: accountName, Period: p})
	if err != nil {
		return nil, fmt.Errorf("account balance for %s: %w", accountName, err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	cols := balance.CumulativeBalance(txs)
	debit, credit := cols.Last()
	return &AccountBalance{
		AccountName:  accountName,
		Transactions: txs,
		Balance:      cols,
		TotalDebit:   debit,
		TotalCredit:  credit,
	}, nil
}

// IncomeStatement totals revenue and expense accounts over p.
func (b *Builder) IncomeStatement(ctx context.Context, p ledger.Period) (IncomeStatement, error) {
	revenue, err := b.accountsOfType(ctx, model.AccountTypeRevenue)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("income statement: %w", err)
	}
	expense, err := b.accountsOfType(ctx, model.AccountTypeExpense)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("income statement: %w", err)
	}

	totalRevenue, totalExpense, err := b.incomeTotals(ctx, revenue, expense, p)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("income statement: %w", err)
	}

	return IncomeStatement{
		RevenueAccounts: revenue,
		ExpenseAccounts: expense,
		TotalRevenue:    totalRevenue,
		TotalExpense:    totalExpense,
		NetIncome:       NetIncome(totalRevenue, totalExpense),
	}, nil
}

// NetIncome is |revenue| - |expense|. Revenue and expense group balances carry
// opposite signs under the debit-positive convention, so only magnitudes are
// compared.
func NetIncome(revenue, expense decimal.Decimal) decimal.Decimal {
	return revenue.Abs().Sub(expense.Abs())
}

// RetainedEarningsStatement rolls retained earnings forward. Net income and
// dividends cover the whole ledger; the beginning balance is the earliest
// retained earnings transaction within p. Like net income, the beginning
// balance is stated credit-positive: a -1000 credit to Retained Earnings
// begins at 1000 and a debit deficit begins negative.
func (b *Builder) RetainedEarningsStatement(ctx context.Context, p ledger.Period) (RetainedEarningsStatement, error) {
	var stmt RetainedEarningsStatement

	revenue, err := b.accountsOfType(ctx, model.AccountTypeRevenue)
	if err != nil {
		return stmt, fmt.Errorf("retained earnings statement: %w", err)
	}
	expense, err := b.accountsOfType(ctx, model.AccountTypeExpense)
	if err != nil {
		return stmt, fmt.Errorf("retained earnings statement: %w", err)
	}
	totalRevenue, totalExpense, err := b.incomeTotals(ctx, revenue, expense, ledger.All)
	if err != nil {
		return stmt, fmt.Errorf("retained earnings statement: %w", err)
	}
	stmt.NetIncome = NetIncome(totalRevenue, totalExpense)

	dividends, err := b.namedTransactions(ctx, b.names.CashDividends, ledger.All, &stmt.MissingAccounts)
	if err != nil {
		return RetainedEarningsStatement{}, fmt.Errorf("retained earnings statement: %w", err)
	}
	stmt.CashDividends = balance.TransactionTotal(dividends)
	stmt.IncreasedRetainedEarnings = stmt.NetIncome.Sub(stmt.CashDividends)

	retained, err := b.namedTransactions(ctx, b.names.RetainedEarnings, p, &stmt.MissingAccounts)
	if err != nil {
		return RetainedEarningsStatement{}, fmt.Errorf("retained earnings statement: %w", err)
	}
	stmt.BeginningRetainedEarnings = decimal.Zero
	if len(retained) > 0 {
		stmt.BeginningRetainedEarnings = retained[0].Amount.Neg()
	}
	stmt.EndingRetainedEarnings = stmt.BeginningRetainedEarnings.Add(stmt.IncreasedRetainedEarnings)

	return stmt, nil
}

// BalanceSheet totals asset, liability, and equity accounts over p. Totals
// keep their ledger sign: credit-normal groups are usually negative.
func (b *Builder) BalanceSheet(ctx context.Context, p ledger.Period) (BalanceSheet, error) {
	var bs BalanceSheet
	groups := []struct {
		accountType model.AccountType
		accounts    *[]model.Account
		total       *decimal.Decimal
	}{
		{model.AccountTypeAsset, &bs.AssetAccounts, &bs.TotalAssets},
		{model.AccountTypeLiability, &bs.LiabilityAccounts, &bs.TotalLiabilities},
		{model.AccountTypeEquity, &bs.EquityAccounts, &bs.TotalEquity},
	}
	for _, g := range groups {
		accts, err := b.accountsOfType(ctx, g.accountType)
		if err != nil {
			return BalanceSheet{}, fmt.Errorf("balance sheet: %w", err)
		}
		total, err := balance.AccountGroupBalance(ctx, b.q, accts, p)
		if err != nil {
			return BalanceSheet{}, fmt.Errorf("balance sheet: %w", err)
		}
		*g.accounts = accts
		*g.total = total
	}
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	return bs, nil
}

func (b *Builder) accountsOfType(ctx context.Context, t model.AccountType) ([]model.Account, error) {
	accts, err := b.q.QueryAccounts(ctx, ledger.AccountsOfType(t))
	if err != nil {
		return nil, fmt.Errorf("querying %s accounts: %w", t, err)
	}
	if accts == nil {
		accts = []model.Account{}
	}
	return accts, nil
}

// incomeTotals returns the revenue and expense group balances as magnitudes.
func (b *Builder) incomeTotals(ctx context.Context, revenue, expense []model.Account, p ledger.Period) (decimal.Decimal, decimal.Decimal, error) {
	rev, err := balance.AccountGroupBalance(ctx, b.q, revenue, p)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	exp, err := balance.AccountGroupBalance(ctx, b.q, expense, p)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return rev.Abs(), exp.Abs(), nil
}

// namedTransactions returns the transactions of a named account over p. A
// missing account yields no transactions, is logged, and is appended to missing.
func (b *Builder) namedTransactions(ctx context.Context, name string, p ledger.Period, missing *[]string) ([]model.Transaction, error) {
	accts, err := b.q.QueryAccounts(ctx, ledger.AccountNamed(name))
	if err != nil {
		return nil, fmt.Errorf("looking up account %s: %w", name, err)
	}
	if len(accts) == 0 {
		b.log.Warn("substituting zero for missing account",
			zap.String("account", name),
			zap.Error(fmt.Errorf("%w: %s", ErrUnknownAccount, name)))
		*missing = append(*missing, name)
		return nil, nil
	}

	txs, err := b.q.QueryTransactions(ctx, ledger.TransactionQuery{AccountName: name, Period: p})
	if err != nil {
		return nil, fmt.Errorf("querying transactions for %s: %w", name, err)
	}
	return txs, nil
}
