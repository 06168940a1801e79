package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeStatement(t *testing.T) string {
	t.Helper()
	content := "Transaction Date,Reference,Debit Amount,Credit Amount,Transaction Ref1,Transaction Ref2,Transaction Ref3\n" +
		"01/15/2024,POS,12.40,,NTUC FAIRPRICE,#123,SINGAPORE\n" +
		"01/16/2024,ICT,,3000.00,SALARY,ACME,\n"
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
