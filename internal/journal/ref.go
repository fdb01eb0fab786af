package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/tally/internal/model"
)

// FormatEntryRef returns an entry ref like "2024-01-001" for the seq'th entry
// dated in the month of date.
func FormatEntryRef(date time.Time, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", date.Year(), int(date.Month()), seq)
}

// ParseEntryRef parses "2024-01-001" into year, month, seq.
func ParseEntryRef(ref string) (year, month, seq int, err error) {
	parts := strings.SplitN(ref, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ref format: %q", ref)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ref %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ref %q", ref)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ref %q: %w", ref, err)
	}

	return year, month, seq, nil
}

// Lines flattens journal entries into journal.csv lines. Entries get refs
// numbered per month in the order given. A transaction description that
// differs from its entry's becomes the memo.
func Lines(entries []model.JournalEntry) []Line {
	seqs := make(map[string]int)
	var lines []Line
	for _, e := range entries {
		month := e.Date.Format("2006-01")
		seqs[month]++
		ref := FormatEntryRef(e.Date, seqs[month])

		for _, tx := range e.Transactions {
			memo := tx.Description
			if memo == e.Description {
				memo = ""
			}
			lines = append(lines, Line{
				EntryRef:    ref,
				Date:        e.Date,
				Description: e.Description,
				Account:     tx.Account.Name,
				Amount:      tx.Amount,
				Memo:        memo,
			})
		}
	}
	return lines
}
