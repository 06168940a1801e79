// Package statement turns bank statement CSV exports into transactions.
package statement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/bank-statementer/statementer/internal/currencyutils"
	"github.com/bank-statementer/statementer/internal/dateutils"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/parsererror"
)

// Column names of a statement export.
const (
	ColumnTransactionDate = "Transaction Date"
	ColumnReference       = "Reference"
	ColumnDebitAmount     = "Debit Amount"
	ColumnCreditAmount    = "Credit Amount"
	ColumnRef1            = "Transaction Ref1"
	ColumnRef2            = "Transaction Ref2"
	ColumnRef3            = "Transaction Ref3"
)

// ExpectedFormat describes the accepted input in error messages.
const ExpectedFormat = "CSV with columns Transaction Date, Reference, Debit Amount, Credit Amount, Transaction Ref1-3"

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{ColumnTransactionDate, ColumnDebitAmount, ColumnCreditAmount}

// statementRow maps one CSV line. Every cell is read as text; conversion
// happens in toTransaction so a bad cell skips the row instead of failing
// the whole file.
type statementRow struct {
	TransactionDate string `csv:"Transaction Date"`
	Reference       string `csv:"Reference"`
	DebitAmount     string `csv:"Debit Amount"`
	CreditAmount    string `csv:"Credit Amount"`
	Ref1            string `csv:"Transaction Ref1"`
	Ref2            string `csv:"Transaction Ref2"`
	Ref3            string `csv:"Transaction Ref3"`
}

// Parser converts statement CSVs. It holds no per-call state.
type Parser struct {
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewParser returns a Parser. Both arguments may be nil.
func NewParser(logger logging.Logger, m *metrics.Metrics) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{logger: logger, metrics: m}
}

// ParseFile parses the statement at path.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()
	return p.Parse(ctx, f, path)
}

// Parse reads a statement from r. source names the input in errors and
// logs. Transactions come back in input order; each ID is the row's
// 0-based position among the data rows, so skipped rows leave gaps.
// Only file-level problems are returned as errors; a row with a blank or
// unparseable amount or date is logged and left out.
func (p *Parser) Parse(ctx context.Context, r io.Reader, source string) ([]models.Transaction, error) {
	logger := p.logger.WithField(logging.FieldFile, source)

	tbl, err := readTable(r)
	if err != nil {
		msg := "unreadable CSV"
		if errors.Is(err, errEmptyStatement) {
			msg = "empty file"
		}
		return nil, &parsererror.InvalidFormatError{
			Source:         source,
			ExpectedFormat: ExpectedFormat,
			Msg:            msg,
			Err:            err,
		}
	}
	if missing := tbl.missingColumns(RequiredColumns); len(missing) > 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:         source,
			ExpectedFormat: ExpectedFormat,
			Msg:            "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	for i := 0; i < tbl.dropped; i++ {
		p.metrics.SkipRow(SkipWideRecord)
	}
	if tbl.dropped > 0 {
		logger.Debug("Dropped records wider than the header", logging.F(logging.FieldSkipped, tbl.dropped))
	}

	var rows []statementRow
	if len(tbl.records) > 0 {
		if err := gocsv.UnmarshalCSV(tbl.reader(), &rows); err != nil {
			return nil, &parsererror.InvalidFormatError{
				Source:         source,
				ExpectedFormat: ExpectedFormat,
				Msg:            "undecodable rows",
				Err:            err,
			}
		}
	}

	transactions := make([]models.Transaction, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tx, reason, err := toTransaction(i, row)
		if reason != "" {
			skipped++
			p.metrics.SkipRow(reason)
			entry := logger.WithFields(
				logging.F(logging.FieldRow, i),
				logging.F(logging.FieldReason, reason))
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Debug("Skipping statement row")
			continue
		}
		transactions = append(transactions, tx)
	}

	p.metrics.ParsedRows(len(transactions))
	logger.Info("Parsed statement",
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldSkipped, skipped+tbl.dropped))
	return transactions, nil
}

// toTransaction converts one row. A non-empty reason means the row must
// be skipped; err then carries the detail when there is one.
func toTransaction(id int, row statementRow) (models.Transaction, string, error) {
	if currencyutils.IsBlank(row.DebitAmount) && currencyutils.IsBlank(row.CreditAmount) {
		return models.Transaction{}, SkipBlankAmount, nil
	}

	var amount decimal.Decimal
	if !currencyutils.IsBlank(row.DebitAmount) {
		d, err := currencyutils.ParseAmount(row.DebitAmount)
		if err != nil {
			return models.Transaction{}, SkipBadAmount, &parsererror.ParseError{Row: id, Field: ColumnDebitAmount, Value: row.DebitAmount, Err: err}
		}
		amount = d.Neg()
	} else {
		c, err := currencyutils.ParseAmount(row.CreditAmount)
		if err != nil {
			return models.Transaction{}, SkipBadAmount, &parsererror.ParseError{Row: id, Field: ColumnCreditAmount, Value: row.CreditAmount, Err: err}
		}
		amount = c
	}

	date, err := dateutils.ParseStatementDate(row.TransactionDate)
	if err != nil {
		return models.Transaction{}, SkipBadDate, &parsererror.ParseError{Row: id, Field: ColumnTransactionDate, Value: row.TransactionDate, Err: err}
	}

	return models.Transaction{
		ID:          id,
		Date:        date,
		Type:        row.Reference,
		Description: joinReferences(row.Ref1, row.Ref2, row.Ref3),
		Amount:      amount,
	}, "", nil
}

// joinReferences space-joins the non-blank reference fields, lower-cased.
func joinReferences(refs ...string) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			parts = append(parts, ref)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
