package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// UpsertTaxRate inserts a tax rate or updates the rate of the one with the
// same name, and returns its ID.
func (s *Store) UpsertTaxRate(ctx context.Context, rate model.TaxRate) (int64, error) {
	name := strings.TrimSpace(rate.Name)
	if name == "" {
		return 0, fmt.Errorf("tax rate name is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_rates (name, rate) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET rate = excluded.rate
	`, name, rate.Rate.String())
	if err != nil {
		return 0, fmt.Errorf("upserting tax rate %s: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM tax_rates WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("reading tax rate id for %s: %w", name, err)
	}
	return id, nil
}

// TaxRates returns all tax rates ordered by name.
func (s *Store) TaxRates(ctx context.Context) ([]model.TaxRate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, rate FROM tax_rates ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying tax rates: %w", err)
	}
	defer rows.Close()

	var result []model.TaxRate
	for rows.Next() {
		var r model.TaxRate
		var rate string
		if err := rows.Scan(&r.ID, &r.Name, &rate); err != nil {
			return nil, fmt.Errorf("scanning tax rate: %w", err)
		}
		if r.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("tax rate %d: parsing rate %q: %w", r.ID, rate, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
