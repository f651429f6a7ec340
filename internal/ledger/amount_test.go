package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "2000", want: 200000},
		{in: "$ 1.500", want: 150000},
		{in: "1,500", want: 150000},
		{in: "1.234,50", want: 123450},
		{in: "1,234.5", want: 123450},
		{in: "12.99", want: 1299},
		{in: ",75", want: 75},
		{in: "  $300  ", want: 30000},
		{in: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "   ", "abc", "$", "-5", "-1.500",
		"99999999999999999999",
		"92233720368547758",
		"1000000000001",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ledger.ParseAmount(in)
			assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
		})
	}
}

func TestParseAmount_Max(t *testing.T) {
	got, err := ledger.ParseAmount("1000000000000")
	require.NoError(t, err)
	assert.Equal(t, ledger.MaxAmount, got)
}

func TestDecimalToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1e3", want: 100000},
		{in: "1.500", want: 150},
		{in: "250.5", want: 25050},
		{in: "0.005", want: 1},
		{in: "1e20", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ledger.DecimalToCents(decimal.RequireFromString(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", ledger.FormatAmount(0))
	assert.Equal(t, "12.50", ledger.FormatAmount(1250))
	assert.Equal(t, "1500.00", ledger.FormatAmount(150000))
	assert.Equal(t, "-3.05", ledger.FormatAmount(-305))
}
