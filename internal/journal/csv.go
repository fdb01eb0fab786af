package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_ref,date,description,account,amount,memo"

const (
	numFields = 6
	colRef    = 0
	colDate   = 1
	colDesc   = 2
	colAcct   = 3
	colAmount = 4
	colMemo   = 5
)

// Line is a single row in journal.csv: one transaction of a journal entry.
// Rows sharing an EntryRef form one entry.
type Line struct {
	EntryRef    string
	Date        time.Time
	Description string // entry description
	Account     string
	Amount      decimal.Decimal // positive = debit, negative = credit
	Memo        string          // transaction description; defaults to Description
}

// ReadLines reads all lines from a journal.csv reader.
func ReadLines(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var lines []Line
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal.csv writer (including header).
func WriteLines(w io.Writer, lines []Line) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row.
func MarshalLine(line Line) []string {
	row := make([]string, numFields)
	row[colRef] = line.EntryRef
	row[colDate] = line.Date.Format(ledger.DateFormat)
	row[colDesc] = line.Description
	row[colAcct] = line.Account
	row[colAmount] = line.Amount.StringFixed(2)
	row[colMemo] = line.Memo
	return row
}

// UnmarshalLine converts a CSV row to a Line.
func UnmarshalLine(record []string) (Line, error) {
	if len(record) != numFields {
		return Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(ledger.DateFormat, record[colDate])
	if err != nil {
		return Line{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Line{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Line{
		EntryRef:    record[colRef],
		Date:        date,
		Description: record[colDesc],
		Account:     record[colAcct],
		Amount:      amount,
		Memo:        record[colMemo],
	}, nil
}

// Entries groups lines into journal entries in order of first appearance.
// Lines with a zero amount or no account are dropped; an entry left with no
// transactions is dropped too.
func Entries(lines []Line) []model.JournalEntry {
	var refs []string
	byRef := make(map[string]*model.JournalEntry)
	for _, line := range lines {
		e, ok := byRef[line.EntryRef]
		if !ok {
			e = &model.JournalEntry{Description: line.Description, Date: line.Date}
			byRef[line.EntryRef] = e
			refs = append(refs, line.EntryRef)
		}
		if line.Amount.IsZero() || strings.TrimSpace(line.Account) == "" {
			continue
		}
		desc := line.Memo
		if desc == "" {
			desc = line.Description
		}
		e.Transactions = append(e.Transactions, model.Transaction{
			Date:        line.Date,
			Description: desc,
			Account:     model.Account{Name: line.Account},
			Amount:      line.Amount,
		})
	}

	entries := make([]model.JournalEntry, 0, len(refs))
	for _, ref := range refs {
		if e := byRef[ref]; len(e.Transactions) > 0 {
			entries = append(entries, *e)
		}
	}
	return entries
}
