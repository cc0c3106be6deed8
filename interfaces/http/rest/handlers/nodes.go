package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/validators"
	"cortexgraph/pkg/utils"
	"cortexgraph/storage"
)

// NodesHandler serves GET/POST /nodes.
type NodesHandler struct {
	store     storage.NodeStore
	nodeCheck *validators.NodeValidator
	logger    *zap.Logger
}

// NewNodesHandler constructs a NodesHandler.
func NewNodesHandler(store storage.NodeStore, logger *zap.Logger) *NodesHandler {
	return &NodesHandler{
		store:     store,
		nodeCheck: validators.NewNodeValidator(),
		logger:    logger,
	}
}

// createNodeRequest is the minimal shape accepted for POST /nodes:
// 400 on missing name/type.
type createNodeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Kind        string  `json:"type" validate:"required"`
	Description string  `json:"description"`
	Embedding   []float64 `json:"embedding,omitempty"`
}

// List handles GET /nodes?page&limit&type&search.
func (h *NodesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), 20)

	if search := q.Get("search"); search != "" {
		results, err := h.store.SearchNodesByText(r.Context(), search, limit)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeOK(w, pageOf(results, len(results), 1, limit))
		return
	}

	if kind := q.Get("type"); kind != "" {
		results, err := h.store.NodesByType(r.Context(), kind, limit)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeOK(w, pageOf(results, len(results), 1, limit))
		return
	}

	result, err := h.store.ListNodes(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, pageOf(result.Items, result.Total, result.Page, result.Limit))
}

// Create handles POST /nodes.
func (h *NodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "malformed request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	node := entities.Node{
		Name:        req.Name,
		Kind:        config.NodeKind(req.Kind),
		Description: req.Description,
		Embedding:   req.Embedding,
	}
	if err := h.nodeCheck.Validate(node); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	created, err := h.store.CreateNode(r.Context(), node)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, created)
}

func pageOf(items interface{}, total, p, limit int) page {
	return page{Items: items, Total: total, Page: p, Limit: limit, HasMore: p*limit < total}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
