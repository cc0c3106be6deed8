package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cortexgraph/workflow"
)

// WorkflowsHandler serves POST /workflows/{ingest,reason} and
// GET /workflows/{id}, bridging to the out-of-scope workflow service.
type WorkflowsHandler struct {
	bridge workflow.Bridge
	logger *zap.Logger
}

// NewWorkflowsHandler constructs a WorkflowsHandler.
func NewWorkflowsHandler(bridge workflow.Bridge, logger *zap.Logger) *WorkflowsHandler {
	return &WorkflowsHandler{bridge: bridge, logger: logger}
}

// Submit handles POST /workflows/{kind}.
func (h *WorkflowsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	var payload interface{}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	submission, err := h.bridge.Submit(r.Context(), kind, payload)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, submission)
}

// Status handles GET /workflows/{id}.
func (h *WorkflowsHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.bridge.Status(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, report)
}
