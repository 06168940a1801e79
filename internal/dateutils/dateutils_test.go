package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"US format", "01/15/2023", true, 2023, time.January, 15, DateLayoutUS},
		{"US format is month-first", "03/04/2023", true, 2023, time.March, 4, DateLayoutUS},
		{"Unpadded US format", "3/4/2023", true, 2023, time.March, 4, "1/2/2006"},
		{"Two-digit year", "12/31/22", true, 2022, time.December, 31, DateLayoutUSShort},
		{"Dash-separated month-first", "07-04-2023", true, 2023, time.July, 4, "01-02-2006"},
		{"ISO format", "2023-01-15", true, 2023, time.January, 15, DateLayoutISO},
		{"Slashed ISO", "2023/01/15", true, 2023, time.January, 15, "2006/01/02"},
		{"Day month name", "15 Jan 2023", true, 2023, time.January, 15, "02 Jan 2006"},
		{"With month name", "15-Jan-2023", true, 2023, time.January, 15, DateLayoutWithMonth},
		{"Month name first", "Jan 15, 2023", true, 2023, time.January, 15, "Jan 2, 2006"},
		{"Full month name", "January 15, 2023", true, 2023, time.January, 15, "January 2, 2006"},
		{"Full timestamp", "2023-01-15 10:30:45", true, 2023, time.January, 15, DateLayoutFull},
		{"Surrounding whitespace", "  01/15/2023 ", true, 2023, time.January, 15, DateLayoutUS},
		{"Day-first is rejected", "15/01/2023", false, 0, 0, 0, ""},
		{"European dots", "15.01.2023", false, 0, 0, 0, ""},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Invalid format", "not a date", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if tc.expectedOk {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
				assert.Equal(t, tc.expectedFmt, format)
				assert.Equal(t, 0, date.Hour())
				assert.Equal(t, time.UTC, date.Location())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseStatementDate(t *testing.T) {
	got, err := ParseStatementDate("02/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestFormatDate(t *testing.T) {
	testDate := time.Date(2023, time.January, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		layout   string
		expected string
	}{
		{"Default ISO layout", "", "2023-01-15"},
		{"Explicit ISO layout", DateLayoutISO, "2023-01-15"},
		{"US layout", DateLayoutUS, "01/15/2023"},
		{"Full layout", DateLayoutFull, "2023-01-15 10:30:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDate(testDate, tc.layout))
		})
	}
	assert.Equal(t, "2023-01-15", ToISODate(testDate))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "Jan 15, 2023", CleanDateString("  Jan   15,\t2023  "))
	assert.Equal(t, "", CleanDateString("   "))
}
