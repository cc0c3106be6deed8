package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cortexgraph/storage"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	storageType string
	store       storage.HealthCheckable
	logger      *zap.Logger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(storageType string, store storage.HealthCheckable, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{storageType: storageType, store: store, logger: logger}
}

type healthResponse struct {
	StorageType string `json:"storage_type"`
	Ready       bool   `json:"ready"`
	Live        bool   `json:"live"`
}

// Check reports storage type, readiness, and liveness.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ready, err := h.store.HealthCheck(r.Context())
	resp := healthResponse{StorageType: h.storageType, Ready: ready, Live: true}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Data: resp, Error: err.Error()})
		return
	}
	writeOK(w, resp)
}
