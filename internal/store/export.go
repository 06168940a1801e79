package store

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bank-statementer/statementer/internal/models"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type tagsDocument struct {
	Tags []models.Tag `yaml:"tags"`
}

// ExportTags writes tags to w as JSON (the store's own layout) or as a YAML
// document with a top-level "tags" key.
func ExportTags(w io.Writer, tags []models.Tag, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tags); err != nil {
			return fmt.Errorf("encode tags as json: %w", err)
		}
		return nil
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tagsDocument{Tags: tags}); err != nil {
			return fmt.Errorf("encode tags as yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
