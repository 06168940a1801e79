package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/prometheus/common/version"

	"github.com/bank-statementer/statementer/internal/categorizer"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/statement"
	"github.com/bank-statementer/statementer/internal/store"
)

// uploadField is the multipart field holding the statement.
const uploadField = "file"

// TransactionsResponse is the body of both transaction endpoints.
type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// CategorizeRequest is the body of POST /categorize. The reference is kept
// raw so an empty object can be told apart from a missing field.
type CategorizeRequest struct {
	ReferenceTransaction map[string]interface{} `json:"reference_transaction"`
	Transactions         []models.Transaction   `json:"transactions"`
}

// TagsResponse is the body of GET /tags.
type TagsResponse struct {
	Tags  []models.Tag `json:"tags"`
	Count int          `json:"count"`
}

// Handlers serves the statement and categorization endpoints.
type Handlers struct {
	parser         *statement.Parser
	categorizer    *categorizer.Categorizer
	repo           store.TagRepository
	maxUploadBytes int64
	logger         logging.Logger
}

// NewHandlers creates the endpoint handlers. A non-positive maxUploadBytes
// disables the upload limit.
func NewHandlers(p *statement.Parser, c *categorizer.Categorizer, repo store.TagRepository, maxUploadBytes int64, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Handlers{
		parser:         p,
		categorizer:    c,
		repo:           repo,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadTransactions handles POST /transactions: parse the uploaded CSV and
// categorize every row against the current tag store.
func (h *Handlers) UploadTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.WithField(logging.FieldRequestID, RequestIDFromContext(ctx))

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	part, err := findFilePart(r)
	if err != nil {
		if isTooLarge(err) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer part.Close()

	filename := part.FileName()
	if filename == "" {
		WriteError(w, http.StatusBadRequest, "Empty filename")
		return
	}

	txs, err := h.parser.Parse(ctx, part, filename)
	if err != nil {
		if isTooLarge(err) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		logger.WithError(err).Warn("Rejected statement upload", logging.F(logging.FieldFile, filename))
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse CSV: %v", err))
		return
	}

	out, err := h.categorizer.CategorizeTransactions(ctx, txs)
	if err != nil {
		logger.WithError(err).Error("Failed to categorize transactions")
		WriteError(w, http.StatusInternalServerError, "Failed to categorize transactions")
		return
	}

	WriteJSON(w, http.StatusOK, TransactionsResponse{Transactions: out})
}

// findFilePart streams the multipart body up to the upload field.
func findFilePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := reader.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FormName() == uploadField {
			return part, nil
		}
		part.Close()
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// Categorize handles POST /categorize: learn the reference correction and
// re-categorize the posted batch.
func (h *Handlers) Categorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.WithField(logging.FieldRequestID, RequestIDFromContext(ctx))

	var req CategorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.ReferenceTransaction) == 0 || len(req.Transactions) == 0 {
		WriteError(w, http.StatusBadRequest, "Missing reference_transaction or transactions")
		return
	}

	description, _ := req.ReferenceTransaction["description"].(string)
	category, _ := req.ReferenceTransaction["category"].(string)
	description = strings.ToLower(strings.TrimSpace(description))
	category = strings.TrimSpace(category)
	if description == "" || category == "" {
		WriteError(w, http.StatusBadRequest, "Description and category required")
		return
	}

	ref := models.Tag{Description: description, Category: category}
	out, err := h.categorizer.CategorizeAndUpdate(ctx, ref, req.Transactions)
	if err != nil {
		logger.WithError(err).Error("Failed to apply category correction")
		WriteError(w, http.StatusInternalServerError, "Failed to categorize transactions")
		return
	}

	WriteJSON(w, http.StatusOK, TransactionsResponse{Transactions: out})
}

// ListTags handles GET /tags.
func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo.LoadTags(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list tags")
		WriteError(w, http.StatusInternalServerError, "Failed to list tags")
		return
	}
	WriteJSON(w, http.StatusOK, TagsResponse{Tags: tags, Count: len(tags)})
}

// Ping handles GET /ping.
func (h *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "statementer %s (up)", buildVersion())
}

func buildVersion() string {
	if version.Version == "" {
		return "dev"
	}
	return version.Version
}
