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

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/storage/memory"
)

func TestNodesHandler_Create_RejectsMissingRequiredFields(t *testing.T) {
	// Arrange
	h := NewNodesHandler(memory.New(), zap.NewNop())
	body := bytes.NewBufferString(`{"description": "no name or type"}`)
	req := httptest.NewRequest(http.MethodPost, "/nodes", body)
	rec := httptest.NewRecorder()

	// Act
	h.Create(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestNodesHandler_Create_RejectsUnrecognizedKind(t *testing.T) {
	// Arrange
	h := NewNodesHandler(memory.New(), zap.NewNop())
	body := bytes.NewBufferString(`{"name": "thing", "type": "not-a-real-kind"}`)
	req := httptest.NewRequest(http.MethodPost, "/nodes", body)
	rec := httptest.NewRecorder()

	// Act
	h.Create(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNodesHandler_Create_PersistsValidNode(t *testing.T) {
	// Arrange
	store := memory.New()
	h := NewNodesHandler(store, zap.NewNop())
	body := bytes.NewBufferString(`{"name": "gradient descent", "type": "concept"}`)
	req := httptest.NewRequest(http.MethodPost, "/nodes", body)
	rec := httptest.NewRecorder()

	// Act
	h.Create(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)

	page, err := store.ListNodes(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "gradient descent", page.Items[0].Name)
}

func TestNodesHandler_Create_MalformedBodyReturns400(t *testing.T) {
	// Arrange
	h := NewNodesHandler(memory.New(), zap.NewNop())
	body := bytes.NewBufferString(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/nodes", body)
	rec := httptest.NewRecorder()

	// Act
	h.Create(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNodesHandler_List_ReturnsPaginatedNodes(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "a"})
	assert.NoError(t, err)
	_, err = store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "b"})
	assert.NoError(t, err)
	h := NewNodesHandler(store, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/nodes?page=1&limit=10", nil)
	rec := httptest.NewRecorder()

	// Act
	h.List(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestNodesHandler_List_FiltersBySearch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "attention"})
	assert.NoError(t, err)
	_, err = store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "recurrence"})
	assert.NoError(t, err)
	h := NewNodesHandler(store, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/nodes?search=attention", nil)
	rec := httptest.NewRecorder()

	// Act
	h.List(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Check_ReportsReadyForHealthyStore(t *testing.T) {
	// Arrange
	h := NewHealthHandler("memory", memory.New(), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	// Act
	h.Check(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}
