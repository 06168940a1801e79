// Package validation checks command-line inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks format, case-insensitively, against supported.
func IsValidOutputFormat(format string, supported ...string) error {
	if slices.Contains(supported, strings.ToLower(format)) {
		return nil
	}
	return fmt.Errorf("unsupported output format %q. Supported formats are %s",
		format, strings.Join(supported, ", "))
}
