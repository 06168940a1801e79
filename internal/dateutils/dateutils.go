// Package dateutils parses and formats the calendar dates found in bank
// statement exports.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutUS        = "01/02/2006"
	DateLayoutUSShort   = "01/02/06"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "02-Jan-2006"
)

// StatementFormats are the layouts accepted for a statement's
// Transaction Date column. Numeric dates are always read month-first,
// regardless of locale.
var StatementFormats = []string{
	DateLayoutUS,
	"1/2/2006",
	DateLayoutUSShort,
	"1/2/06",
	"01-02-2006",
	DateLayoutISO,
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	DateLayoutWithMonth,
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	DateLayoutFull,
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate tries each of StatementFormats in order and returns the parsed
// calendar date (midnight UTC) together with the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return TruncateToDate(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseStatementDate is ParseDate without the detected layout.
func ParseStatementDate(dateStr string) (time.Time, error) {
	t, _, err := ParseDate(dateStr)
	return t, err
}

// TruncateToDate drops the time of day and location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats date with layout, defaulting to DateLayoutISO.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims the value and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
