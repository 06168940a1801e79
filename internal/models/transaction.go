// Package models holds the data types shared across the application.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bank-statementer/statementer/internal/currencyutils"
	"github.com/bank-statementer/statementer/internal/dateutils"
)

// Transaction is one statement line. Transactions live for a single request
// and are never persisted.
type Transaction struct {
	ID          int             // 0-based row index in the uploaded statement
	Date        time.Time       // calendar date, time of day is always zero
	Type        string          // bank reference code, as exported
	Description string          // space-joined reference fields, lower-cased
	Amount      decimal.Decimal // negative for debits, positive for credits
	Category    string          // empty until categorized

	// Client values that did not parse, echoed back unchanged.
	rawDate   string
	rawAmount json.RawMessage
}

// IsDebit reports whether money left the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// transactionJSON is the wire shape consumed by the frontend: a plain
// YYYY-MM-DD date and a numeric amount.
type transactionJSON struct {
	ID          int             `json:"id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
}

// MarshalJSON implements json.Marshaler.
func (t Transaction) MarshalJSON() ([]byte, error) {
	date := t.rawDate
	if !t.Date.IsZero() {
		date = t.Date.Format(DateLayout)
	}
	amount := t.rawAmount
	if amount == nil {
		amount = json.RawMessage(t.Amount.String())
	}
	return json.Marshal(transactionJSON{
		ID:          t.ID,
		Date:        date,
		Type:        t.Type,
		Description: t.Description,
		Amount:      amount,
		Category:    t.Category,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Only the description matters
// for categorization, so a date or amount that does not parse is left zero
// and kept verbatim for MarshalJSON instead of failing the whole batch.
// Dates are read with dateutils.StatementFormats; string amounts may carry
// thousands separators.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Transaction
	out.ID = raw.ID
	out.Type = raw.Type
	out.Description = raw.Description
	out.Category = raw.Category

	if raw.Date != "" {
		if d, err := dateutils.ParseStatementDate(raw.Date); err == nil {
			out.Date = d
		} else {
			out.rawDate = raw.Date
		}
	}

	if len(raw.Amount) > 0 && string(raw.Amount) != "null" {
		if amount, ok := parseAmount(raw.Amount); ok {
			out.Amount = amount
		} else {
			out.rawAmount = append(json.RawMessage(nil), raw.Amount...)
		}
	}

	*t = out
	return nil
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		amount, err := currencyutils.ParseAmount(s)
		return amount, err == nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(n.String())
	return amount, err == nil
}
