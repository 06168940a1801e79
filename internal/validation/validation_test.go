package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bank-statementer/statementer/internal/validation"
)

func TestIsValidInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "statement.csv")
	assert.NoError(t, os.WriteFile(testFile, []byte("x"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{"existing file", testFile, ""},
		{"empty path", "  ", "input file is required"},
		{"missing file", filepath.Join(tmpDir, "nope.csv"), "path does not exist"},
		{"directory", tmpDir, "is not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.NoError(t, validation.IsValidOutputFormat("json", "json", "csv"))
	assert.NoError(t, validation.IsValidOutputFormat("CSV", "json", "csv"))

	err := validation.IsValidOutputFormat("xml", "json", "csv")
	assert.EqualError(t, err, `unsupported output format "xml". Supported formats are json, csv`)
}
