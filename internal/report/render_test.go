package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/ledger"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"1234.5", "1,234.50"},
		{"-1234567.891", "-1,234,567.89"},
		{"100000", "100,000.00"},
		{"-0.5", "-0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(dec(tt.in)), tt.in)
	}
}

func TestWriteTrialBalance(t *testing.T) {
	b := NewBuilder(sampleLedger(t))
	tb, err := b.TrialBalance(context.Background(), ledger.All)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalance(&buf, tb, ledger.All))
	out := buf.String()
	assert.Contains(t, out, "Trial Balance (all dates)")
	assert.Contains(t, out, "14,000.00")
	assert.Contains(t, out, "18,900.00")
	assert.NotContains(t, out, "warning")
}

func TestWriteAccountBalance(t *testing.T) {
	b := NewBuilder(sampleLedger(t))
	p := period(t, "2024-01-01", "2024-01-31")
	ab, err := b.AccountBalance(context.Background(), "Rent Expense", p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAccountBalance(&buf, ab, p))
	assert.Contains(t, buf.String(), "Rent Expense (2024-01-01 to 2024-01-31)")
	assert.Contains(t, buf.String(), "January rent")

	buf.Reset()
	require.NoError(t, WriteAccountBalance(&buf, nil, p))
	assert.Contains(t, buf.String(), "No transactions")
}

func TestWriteStatement(t *testing.T) {
	b := NewBuilder(cashRevenueLedger(t))
	ctx := context.Background()

	for _, k := range Kinds {
		v, err := b.Statement(ctx, k, ledger.All)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteStatement(&buf, v, ledger.All))
		assert.Contains(t, buf.String(), string(k))
	}

	stmt, err := b.RetainedEarningsStatement(ctx, ledger.All)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteRetainedEarningsStatement(&buf, stmt, ledger.All))
	assert.Contains(t, buf.String(), `account "Cash Dividends" not found`)

	assert.Error(t, WriteStatement(&buf, 42, ledger.All))
}

func TestWriteBalanceSheet(t *testing.T) {
	b := NewBuilder(sampleLedger(t))
	bs, err := b.BalanceSheet(context.Background(), ledger.All)
	require.NoError(t, err)
	require.False(t, bs.Balances())

	var buf bytes.Buffer
	require.NoError(t, WriteBalanceSheet(&buf, bs, ledger.All))
	assert.Contains(t, buf.String(), "13,400.00")
	assert.Contains(t, buf.String(), "warning: assets do not equal liabilities and equity")

	buf.Reset()
	even := BalanceSheet{TotalAssets: dec("500"), TotalEquity: dec("-500"), TotalLiabilitiesAndEquity: dec("-500")}
	require.NoError(t, WriteBalanceSheet(&buf, even, ledger.All))
	assert.NotContains(t, buf.String(), "warning")
}
