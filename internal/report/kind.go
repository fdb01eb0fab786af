package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleared-dev/tally/internal/ledger"
)

// Kind names one of the period statements.
type Kind string

const (
	KindIncomeStatement  Kind = "Income Statement"
	KindRetainedEarnings Kind = "Retained Earnings Statement"
	KindBalanceSheet     Kind = "Balance Sheet"
)

// Kinds lists the statements in presentation order.
var Kinds = []Kind{KindIncomeStatement, KindRetainedEarnings, KindBalanceSheet}

// Slug returns the URL and CLI form of the kind, e.g. "income-statement".
func (k Kind) Slug() string {
	switch k {
	case KindRetainedEarnings:
		return "retained-earnings"
	default:
		return strings.ToLower(strings.ReplaceAll(string(k), " ", "-"))
	}
}

// ParseKind accepts a statement's title ("Balance Sheet") or slug ("balance-sheet").
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, k.Slug()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report %q", s)
}

// Statement builds the statement of the given kind.
func (b *Builder) Statement(ctx context.Context, k Kind, p ledger.Period) (any, error) {
	switch k {
	case KindIncomeStatement:
		return b.IncomeStatement(ctx, p)
	case KindRetainedEarnings:
		return b.RetainedEarningsStatement(ctx, p)
	case KindBalanceSheet:
		return b.BalanceSheet(ctx, p)
	}
	return nil, fmt.Errorf("unknown report %q", k)
}
