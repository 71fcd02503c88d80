package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agrofisco/invoice-agent/internal/api/middleware"
	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/pipeline"
)

// maxUploadBytes bounds invoice PDF uploads.
const maxUploadBytes = 20 << 20

// Processor runs an uploaded PDF through the extraction pipeline.
type Processor interface {
	Process(ctx context.Context, pdf io.Reader) (*pipeline.Result, error)
}

// Saver hands a confirmed record to the store's persistence procedure.
type Saver interface {
	Save(ctx context.Context, rec *invoice.Record) (json.RawMessage, error)
}

// Answerer answers a natural-language question over stored records.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// InvoicesHandler handles invoice extraction and persistence endpoints.
type InvoicesHandler struct {
	processor Processor
	saver     Saver
	log       zerolog.Logger
}

// NewInvoicesHandler creates a new invoices handler.
func NewInvoicesHandler(processor Processor, saver Saver, log zerolog.Logger) *InvoicesHandler {
	return &InvoicesHandler{
		processor: processor,
		saver:     saver,
		log:       log,
	}
}

// Extract handles POST /api/invoices/extract. It accepts a multipart upload
// with a "pdf_file" field and returns the processed record, its derived
// categories, the registry verification and any warnings.
func (h *InvoicesHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A PDF file is required (field pdf_file)")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		middleware.WriteError(w, http.StatusBadRequest, "Please upload a PDF file")
		return
	}

	result, err := h.processor.Process(r.Context(), file)
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to process document")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process the document")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// Save handles POST /api/invoices. The body is the confirmed record as
// returned by Extract. Persistence failures are reported as a message in
// the payload, never as a fault.
func (h *InvoicesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var rec invoice.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid record payload")
		return
	}

	confirmation, err := h.saver.Save(r.Context(), &rec)
	if err != nil {
		middleware.WriteJSON(w, http.StatusOK, map[string]any{
			"saved":   false,
			"message": err.Error(),
		})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"saved":        true,
		"confirmation": confirmation,
	})
}

// QuestionsHandler handles natural-language questions over stored records.
type QuestionsHandler struct {
	answerer Answerer
	log      zerolog.Logger
}

// NewQuestionsHandler creates a new questions handler.
func NewQuestionsHandler(answerer Answerer, log zerolog.Logger) *QuestionsHandler {
	return &QuestionsHandler{
		answerer: answerer,
		log:      log,
	}
}

// Ask handles POST /api/ask.
func (h *QuestionsHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "A question is required")
		return
	}

	answer := h.answerer.Answer(r.Context(), req.Question)

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"question": req.Question,
		"answer":   answer,
	})
}
