package accounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTaxRates(t *testing.T) {
	in := TaxRateHeader + "\nVAT, 20\nGST,7.25\n"
	got, err := ReadTaxRates(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "VAT", got[0].Name)
	assert.True(t, got[0].Rate.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "GST 7.25%", got[1].String())
}

func TestReadTaxRatesRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want string
	}{
		{"empty name", ",5", "name is empty"},
		{"bad rate", "VAT,twenty", "parsing rate"},
		{"negative rate", "VAT,-1", "is negative"},
		{"duplicate", "VAT,20\nVAT,21", "duplicate tax rate"},
		{"wrong field count", "VAT", "reading tax rates CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTaxRates(strings.NewReader(TaxRateHeader + "\n" + tt.rows + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadTaxRatesMissing(t *testing.T) {
	_, err := LoadTaxRates(filepath.Join(t.TempDir(), "tax-rates.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
