package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryRef    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryRef, e.Description)
}

// AccountChecker tests whether an account name exists in the chart of accounts.
type AccountChecker interface {
	Exists(name string) bool
}

// ValidateLines enforces the import invariants on a set of journal lines.
// Zero-amount lines are ignored, matching how Entries drops them.
func ValidateLines(lines []Line, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	groups := make(map[string][]Line)
	var groupOrder []string
	for _, line := range lines {
		if _, seen := groups[line.EntryRef]; !seen {
			groupOrder = append(groupOrder, line.EntryRef)
		}
		groups[line.EntryRef] = append(groups[line.EntryRef], line)
	}

	for _, ref := range groupOrder {
		group := groups[ref]

		// Invariant 1: entry balances (signed amounts sum to zero).
		total := decimal.Zero
		for _, line := range group {
			total = total.Add(line.Amount)
		}
		if !total.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryRef:    ref,
				Description: fmt.Sprintf("amounts sum to %s, want 0.00", total.StringFixed(2)),
			})
		}

		// Invariant 2: one date and description per entry.
		first := group[0]
		for _, line := range group[1:] {
			if !line.Date.Equal(first.Date) {
				got, want := line.Date.Format(ledger.DateFormat), first.Date.Format(ledger.DateFormat)
				errs = append(errs, ValidationError{
					Invariant:   2,
					EntryRef:    ref,
					Description: fmt.Sprintf("date %s differs from entry date %s", got, want),
				})
			}
			if line.Description != first.Description {
				errs = append(errs, ValidationError{
					Invariant:   2,
					EntryRef:    ref,
					Description: fmt.Sprintf("description %q differs from entry description %q", line.Description, first.Description),
				})
			}
		}

		// Invariant 6: a dated ref like 2024-01-001 names the entry's month.
		if year, month, _, err := ParseEntryRef(ref); err == nil {
			if year != first.Date.Year() || time.Month(month) != first.Date.Month() {
				errs = append(errs, ValidationError{
					Invariant:   6,
					EntryRef:    ref,
					Description: fmt.Sprintf("entry dated %s is filed under %04d-%02d", first.Date.Format(ledger.DateFormat), year, month),
				})
			}
		}
	}

	hundred := decimal.NewFromInt(100)
	for _, line := range lines {
		if line.Amount.IsZero() {
			continue
		}

		// Invariant 3: valid account references.
		if !accounts.Exists(line.Account) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryRef:    line.EntryRef,
				Description: fmt.Sprintf("unknown account %q", line.Account),
			})
		}

		// Invariant 4: exact decimals, no more than 2 decimal places.
		if scaled := line.Amount.Mul(hundred); !scaled.Equal(scaled.Truncate(0)) {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryRef:    line.EntryRef,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", line.Amount),
			})
		}
	}

	// Invariant 5: every entry has a reference.
	if _, ok := groups[""]; ok {
		errs = append(errs, ValidationError{
			Invariant:   5,
			EntryRef:    "",
			Description: "line has an empty entry_ref",
		})
	}

	return errs
}
