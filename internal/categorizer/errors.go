package categorizer

import "errors"

var (
	errVectorCount = errors.New("embedder returned wrong number of vectors")
	// ErrInvalidReference is returned when a correction lacks a description
	// or a category.
	ErrInvalidReference = errors.New("reference description and category are required")
)

// Stages reported in parsererror.CategorizationError.
const (
	StageIndex = "index"
	StageEmbed = "embed"
	StageStore = "store"
)
