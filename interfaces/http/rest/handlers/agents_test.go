package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cortexgraph/agents"
	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/embedding"
	"cortexgraph/ingestion"
	"cortexgraph/orchestrator"
	"cortexgraph/storage/memory"
)

func newAgentsHandler(store *memory.Store) *AgentsHandler {
	pipeline := ingestion.New(ingestion.DefaultConfig(), embedding.DefaultVocabulary())
	queue := orchestrator.New(store, orchestrator.DefaultConfig(), zap.NewNop())
	return NewAgentsHandler(store, store, pipeline, queue, agents.AlignmentConfig{Threshold: agents.DefaultAlignmentThreshold}, zap.NewNop())
}

func TestAgentsHandler_Run_IngestRequiresSourceAndDocument(t *testing.T) {
	// Arrange
	h := newAgentsHandler(memory.New())
	req := httptest.NewRequest(http.MethodPost, "/agents?action=ingest", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	// Act
	h.Run(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_Run_UnknownActionRejected(t *testing.T) {
	// Arrange
	h := newAgentsHandler(memory.New())
	req := httptest.NewRequest(http.MethodPost, "/agents?action=bogus", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	// Act
	h.Run(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_Run_AlignEnqueuesProposals(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "gradient descent"})
	assert.NoError(t, err)
	_, err = store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "gradient decent"})
	assert.NoError(t, err)
	h := newAgentsHandler(store)
	req := httptest.NewRequest(http.MethodPost, "/agents?action=align", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	// Act
	h.Run(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestAgentsHandler_List_RequiresStatus(t *testing.T) {
	// Arrange
	h := newAgentsHandler(memory.New())
	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	rec := httptest.NewRecorder()

	// Act
	h.List(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_List_ReturnsProposalsByStatus(t *testing.T) {
	// Arrange
	h := newAgentsHandler(memory.New())
	req := httptest.NewRequest(http.MethodGet, "/agents?status=proposed", nil)
	rec := httptest.NewRecorder()

	// Act
	h.List(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQueryHandler_Get_RequiresQueryParam(t *testing.T) {
	// Arrange
	h := NewQueryHandler(memory.New(), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/query", nil)
	rec := httptest.NewRecorder()

	// Act
	h.Get(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHandler_Get_ReturnsResults(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "attention"})
	assert.NoError(t, err)
	h := NewQueryHandler(store, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/query?query=attention", nil)
	rec := httptest.NewRecorder()

	// Act
	h.Get(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQueryHandler_Post_RequiresQueryInBody(t *testing.T) {
	// Arrange
	h := NewQueryHandler(memory.New(), zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	// Act
	h.Post(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestHandler_Submit_RequiresSourceAndDocument(t *testing.T) {
	// Arrange
	store := memory.New()
	pipeline := ingestion.New(ingestion.DefaultConfig(), embedding.DefaultVocabulary())
	workers := ingestion.NewWorkers(pipeline, store, 2)
	h := NewIngestHandler(workers, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	// Act
	h.Submit(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestHandler_Submit_RunsBatchJobOverOneDocument(t *testing.T) {
	// Arrange
	store := memory.New()
	pipeline := ingestion.New(ingestion.DefaultConfig(), embedding.DefaultVocabulary())
	workers := ingestion.NewWorkers(pipeline, store, 2)
	h := NewIngestHandler(workers, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/ingest", bytes.NewBufferString(`{"source_id": "doc-1", "document": "gradient descent minimizes loss"}`))
	rec := httptest.NewRecorder()

	// Act
	h.Submit(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}
