// Package categorize handles offline statement categorization
package categorize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bank-statementer/statementer/cmd/root"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/statement"
	"github.com/bank-statementer/statementer/internal/validation"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var (
	input  string
	output string
	format string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize transactions in a statement CSV file",
	Long: `Categorize transactions in a statement CSV file against the tag store,
the same way POST /transactions does, and write the result as JSON or CSV.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Statement CSV file")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Output format: json or csv")
	_ = Cmd.MarkFlagRequired("input")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := validation.IsValidInputFile(input); err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(format, FormatJSON, FormatCSV); err != nil {
		return err
	}
	f := strings.ToLower(format)

	c, err := root.GetContainer(ctx)
	if err != nil {
		return err
	}

	txs, err := c.GetParser().ParseFile(ctx, input)
	if err != nil {
		return err
	}
	txs, err = c.GetCategorizer().CategorizeTransactions(ctx, txs)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := write(w, txs, f, c.GetConfig().DelimiterRune()); err != nil {
		return err
	}

	uncategorized := 0
	for _, tx := range txs {
		if tx.Category == models.CategoryUncategorized {
			uncategorized++
		}
	}
	root.Log.Info("Categorized statement",
		logging.F(logging.FieldFile, input),
		logging.F(logging.FieldCount, len(txs)),
		logging.F("uncategorized", uncategorized))
	return nil
}

func write(w io.Writer, txs []models.Transaction, format string, delimiter rune) error {
	if format == FormatCSV {
		return statement.WriteCSV(w, txs, delimiter)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txs); err != nil {
		return fmt.Errorf("error encoding transactions: %w", err)
	}
	return nil
}
