// Package handlers implements the HTTP glue: thin adapters translating
// chi requests into calls against storage, the query/agents/orchestrator
// packages, and rendering the {success, data?, error?, timestamp}
// response envelope.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	cortexerrors "cortexgraph/pkg/errors"
	"cortexgraph/pkg/utils"
)

// envelope is the response shape every endpoint returns.
type envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// page mirrors storage.Page's {items, total, page, limit, has_more}
// shape for paginated responses.
type page struct {
	Items   interface{} `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"has_more"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	body.Timestamp = utils.NowRFC3339()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// writeError maps err to its status code via pkg/errors' AppError,
// falling back to 500 for errors that never went through the AppError
// constructors.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	if appErr := cortexerrors.GetAppError(err); appErr != nil {
		status = appErr.HTTPStatus
	}
	if logger != nil {
		logger.Warn("request failed", zap.Error(err), zap.Int("status", status))
	}
	writeJSON(w, status, envelope{Success: false, Error: err.Error()})
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: message})
}
