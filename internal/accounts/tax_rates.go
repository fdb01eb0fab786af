package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// TaxRateHeader is the CSV header for a tax rates file.
const TaxRateHeader = "name,rate"

// ReadTaxRates reads a tax rates CSV. Rates are percentages, e.g. 7.25.
func ReadTaxRates(r io.Reader) ([]model.TaxRate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tax rates CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rates []model.TaxRate
	seen := make(map[string]bool)
	for i, rec := range records[1:] {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("row %d: tax rate name is empty", i+2)
		}
		if seen[name] {
			return nil, fmt.Errorf("row %d: duplicate tax rate %q", i+2, name)
		}
		seen[name] = true

		rate, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing rate %q: %w", i+2, rec[1], err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("row %d: rate %s is negative", i+2, rate)
		}
		rates = append(rates, model.TaxRate{Name: name, Rate: rate})
	}
	return rates, nil
}

// LoadTaxRates reads a tax rates CSV from path.
func LoadTaxRates(path string) ([]model.TaxRate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tax rates: %w", err)
	}
	defer f.Close()
	return ReadTaxRates(f)
}
