package models

import "strings"

// Tag is a user-confirmed association between a transaction description
// and a spending category.
type Tag struct {
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// NewTag builds a Tag with a case-folded, trimmed description and a trimmed category.
func NewTag(description, category string) Tag {
	return Tag{
		Description: strings.ToLower(strings.TrimSpace(description)),
		Category:    strings.TrimSpace(category),
	}
}

// Validate reports whether both fields are present.
func (t Tag) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return errEmptyField("description")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errEmptyField("category")
	}
	return nil
}
