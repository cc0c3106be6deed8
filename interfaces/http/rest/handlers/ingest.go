package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cortexgraph/ingestion"
	"cortexgraph/pkg/utils"
)

// IngestHandler serves POST /ingest.
type IngestHandler struct {
	workers *ingestion.Workers
	logger  *zap.Logger
}

// NewIngestHandler constructs an IngestHandler.
func NewIngestHandler(workers *ingestion.Workers, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{workers: workers, logger: logger}
}

type ingestRequest struct {
	SourceID string `json:"source_id" validate:"required"`
	Document string `json:"document" validate:"required"`
}

// Submit handles POST /ingest: submits a single document as a
// one-document batch job through the ingestion pipeline's worker pool.
func (h *IngestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "malformed request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	job, err := h.workers.Submit(r.Context(), []ingestion.Document{{SourceID: req.SourceID, Raw: req.Document}})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, job)
}
