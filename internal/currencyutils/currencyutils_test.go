package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Simple decimal", "123.45", "123.45", false},
		{"Integer", "100", "100", false},
		{"Thousands separator", "1,234.56", "1234.56", false},
		{"Millions", "1,234,567.00", "1234567", false},
		{"With spaces", "  12.30  ", "12.3", false},
		{"Negative", "-5.00", "-5", false},
		{"Empty", "", "", true},
		{"Only separators", " , ", "", true},
		{"Malformed decimal", "123.45.67", "", true},
		{"Non-numeric", "abc", "", true},
		{"Currency symbol", "$12.00", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank(","))
	assert.False(t, IsBlank("0"))
	assert.False(t, IsBlank("abc"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-1234.50", FormatAmount(decimal.RequireFromString("-1234.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "2500.00", FormatAmount(decimal.NewFromInt(2500)))
	assert.Equal(t, "0.13", FormatAmount(decimal.RequireFromString("0.125")))
}
