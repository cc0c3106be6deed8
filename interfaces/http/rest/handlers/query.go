package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cortexgraph/query"
	"cortexgraph/storage"
)

// QueryHandler serves GET/POST /query.
type QueryHandler struct {
	store  storage.NodeStore
	logger *zap.Logger
}

// NewQueryHandler constructs a QueryHandler.
func NewQueryHandler(store storage.NodeStore, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{store: store, logger: logger}
}

type queryRequestBody struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// Get handles GET /query — a shortcut for {query} only.
func (h *QueryHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("query")
	if q == "" {
		writeValidationError(w, "query is required")
		return
	}
	h.run(w, r, query.Request{Query: q, Limit: atoiDefault(r.URL.Query().Get("limit"), 0)})
}

// Post handles POST /query with a {query, limit} JSON body; a filters
// field in the body is not read.
func (h *QueryHandler) Post(w http.ResponseWriter, r *http.Request) {
	var body queryRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, "malformed request body")
		return
	}
	if body.Query == "" {
		writeValidationError(w, "query is required")
		return
	}
	h.run(w, r, query.Request{Query: body.Query, Limit: body.Limit})
}

func (h *QueryHandler) run(w http.ResponseWriter, r *http.Request, req query.Request) {
	resp, err := query.Query(r.Context(), h.store, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, resp)
}
