package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/balance"
	"github.com/cleared-dev/tally/internal/ledger"
)

// FormatAmount renders d with two decimals and thousands separators,
// e.g. -12,345.60.
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func formatCell(c balance.Cell) string {
	if c.IsBlank() {
		return ""
	}
	return FormatAmount(c.Value)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// WriteTrialBalance writes tb as a text table.
func WriteTrialBalance(w io.Writer, tb TrialBalance, p ledger.Period) error {
	fmt.Fprintf(w, "Trial Balance (%s)\n\n", p)
	tw := newTable(w)
	fmt.Fprintln(tw, "Account\tDebit\tCredit\t")
	for _, row := range tb.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.AccountName, FormatAmount(row.Debit), FormatAmount(row.Credit))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t\n", FormatAmount(tb.TotalDebit), FormatAmount(tb.TotalCredit))
	if err := tw.Flush(); err != nil {
		return err
	}
	if !tb.Balanced() {
		_, err := fmt.Fprintln(w, "\nwarning: debits and credits do not balance")
		return err
	}
	return nil
}

// WriteAccountBalance writes the running balance of one account. A nil ab
// prints a no-activity line.
func WriteAccountBalance(w io.Writer, ab *AccountBalance, p ledger.Period) error {
	if ab == nil {
		_, err := fmt.Fprintf(w, "No transactions (%s)\n", p)
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n\n", ab.AccountName, p)
	tw := newTable(w)
	fmt.Fprintln(tw, "Date\tDescription\tAmount\tDebit Balance\tCredit Balance\t")
	for i, tx := range ab.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			tx.Date.Format(ledger.DateFormat), tx.Description, FormatAmount(tx.Amount),
			formatCell(ab.Balance.Debit[i]), formatCell(ab.Balance.Credit[i]))
	}
	fmt.Fprintf(tw, "Total\t\t\t%s\t%s\t\n", formatCell(ab.TotalDebit), formatCell(ab.TotalCredit))
	return tw.Flush()
}

// WriteIncomeStatement writes is as a text table.
func WriteIncomeStatement(w io.Writer, is IncomeStatement, p ledger.Period) error {
	fmt.Fprintf(w, "%s (%s)\n\n", KindIncomeStatement, p)
	tw := newTable(w)
	fmt.Fprintf(tw, "Revenue accounts\t%d\t\n", len(is.RevenueAccounts))
	fmt.Fprintf(tw, "Expense accounts\t%d\t\n", len(is.ExpenseAccounts))
	fmt.Fprintf(tw, "Total revenue\t%s\t\n", FormatAmount(is.TotalRevenue))
	fmt.Fprintf(tw, "Total expense\t%s\t\n", FormatAmount(is.TotalExpense))
	fmt.Fprintf(tw, "Net income\t%s\t\n", FormatAmount(is.NetIncome))
	return tw.Flush()
}

// WriteRetainedEarningsStatement writes stmt as a text table.
func WriteRetainedEarningsStatement(w io.Writer, stmt RetainedEarningsStatement, p ledger.Period) error {
	fmt.Fprintf(w, "%s (%s)\n\n", KindRetainedEarnings, p)
	tw := newTable(w)
	fmt.Fprintf(tw, "Beginning retained earnings\t%s\t\n", FormatAmount(stmt.BeginningRetainedEarnings))
	fmt.Fprintf(tw, "Net income\t%s\t\n", FormatAmount(stmt.NetIncome))
	fmt.Fprintf(tw, "Cash dividends\t%s\t\n", FormatAmount(stmt.CashDividends))
	fmt.Fprintf(tw, "Increase in retained earnings\t%s\t\n", FormatAmount(stmt.IncreasedRetainedEarnings))
	fmt.Fprintf(tw, "Ending retained earnings\t%s\t\n", FormatAmount(stmt.EndingRetainedEarnings))
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, name := range stmt.MissingAccounts {
		if _, err := fmt.Fprintf(w, "\nwarning: account %q not found, counted as zero", name); err != nil {
			return err
		}
	}
	if len(stmt.MissingAccounts) > 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// WriteBalanceSheet writes bs as a text table.
func WriteBalanceSheet(w io.Writer, bs BalanceSheet, p ledger.Period) error {
	fmt.Fprintf(w, "%s (%s)\n\n", KindBalanceSheet, p)
	tw := newTable(w)
	fmt.Fprintf(tw, "Total assets\t%s\t\n", FormatAmount(bs.TotalAssets))
	fmt.Fprintf(tw, "Total liabilities\t%s\t\n", FormatAmount(bs.TotalLiabilities))
	fmt.Fprintf(tw, "Total equity\t%s\t\n", FormatAmount(bs.TotalEquity))
	fmt.Fprintf(tw, "Total liabilities and equity\t%s\t\n", FormatAmount(bs.TotalLiabilitiesAndEquity))
	if err := tw.Flush(); err != nil {
		return err
	}
	if !bs.Balances() {
		_, err := fmt.Fprintln(w, "\nwarning: assets do not equal liabilities and equity")
		return err
	}
	return nil
}

// WriteStatement writes any value returned by Builder.Statement.
func WriteStatement(w io.Writer, v any, p ledger.Period) error {
	switch s := v.(type) {
	case IncomeStatement:
		return WriteIncomeStatement(w, s, p)
	case RetainedEarningsStatement:
		return WriteRetainedEarningsStatement(w, s, p)
	case BalanceSheet:
		return WriteBalanceSheet(w, s, p)
	}
	return fmt.Errorf("no text form for %T", v)
}
