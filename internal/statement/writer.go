package statement

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/bank-statementer/statementer/internal/currencyutils"
	"github.com/bank-statementer/statementer/internal/dateutils"
	"github.com/bank-statementer/statementer/internal/models"
)

// outputRow is the CSV shape written by the categorize command.
type outputRow struct {
	ID          int    `csv:"id"`
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
}

// WriteCSV writes transactions to w, one row each, with a header line.
// delimiter defaults to a comma when zero.
func WriteCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if delimiter == 0 {
		delimiter = ','
	}

	rows := make([]outputRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = outputRow{
			ID:          tx.ID,
			Date:        dateutils.ToISODate(tx.Date),
			Type:        tx.Type,
			Description: tx.Description,
			Amount:      currencyutils.FormatAmount(tx.Amount),
			Category:    tx.Category,
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
