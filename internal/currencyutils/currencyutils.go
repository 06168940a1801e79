// Package currencyutils parses and formats statement amounts.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimals written to CSV output.
const DisplayPlaces = 2

// StandardizeAmount strips surrounding blanks and comma thousands
// separators, so "1,234.50" becomes "1234.50". Anything else is left for
// ParseAmount to reject.
func StandardizeAmount(amountStr string) string {
	return strings.TrimSpace(strings.ReplaceAll(amountStr, ",", ""))
}

// IsBlank reports whether amountStr holds no amount at all.
func IsBlank(amountStr string) bool {
	return StandardizeAmount(amountStr) == ""
}

// ParseAmount parses an exported amount such as "1,234.50" or "12".
// A blank string is an error; check IsBlank first when blank means absent.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// FormatAmount renders amount with DisplayPlaces decimals and no
// thousands separators, e.g. "-1234.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(DisplayPlaces)
}
