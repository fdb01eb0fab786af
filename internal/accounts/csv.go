package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "name,account_type,normal_balance,reference_code"

const (
	numFields    = 4
	colName      = 0
	colType      = 1
	colNormal    = 2
	colReference = 3
)

// ReadAccounts reads chart-of-accounts.csv. A blank normal_balance column is
// derived from the account type.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	seen := make(map[string]bool)
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if seen[acct.Name] {
			return nil, fmt.Errorf("row %d: duplicate account name %q", i+2, acct.Name)
		}
		seen[acct.Name] = true
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colNormal] = string(acct.NormalBalance)
	row[colReference] = strconv.Itoa(acct.ReferenceCode)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return model.Account{}, fmt.Errorf("account name is empty")
	}

	accountType, err := model.ParseAccountType(record[colType])
	if err != nil {
		return model.Account{}, err
	}

	normal, err := model.ParseNormalBalance(record[colNormal])
	if err != nil {
		return model.Account{}, err
	}

	ref, err := strconv.Atoi(strings.TrimSpace(record[colReference]))
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing reference_code %q: %w", record[colReference], err)
	}

	return model.Account{
		Name:          name,
		Type:          accountType,
		NormalBalance: normal,
		ReferenceCode: ref,
	}.Normalize(), nil
}
