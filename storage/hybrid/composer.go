// Package hybrid implements a composer owning a graph backend and a
// vector backend, routing node/edge/chunk/path operations to the graph
// side and vector operations to the vector side. Compensation on
// partial failure follows a single-compensating-step saga pattern.
package hybrid

import (
	"context"

	"go.uber.org/zap"

	"cortexgraph/domain/core/entities"
	"cortexgraph/storage"
)

// GraphStore is the subset of storage.Store the graph side of a hybrid
// composer must provide.
type GraphStore interface {
	storage.NodeStore
	storage.EdgeStore
	storage.ChunkStore
	storage.BulkStore
	storage.HealthCheckable
}

// VectorBackend is the subset of storage.Store the vector side must provide.
type VectorBackend interface {
	storage.VectorStore
	storage.HealthCheckable
}

// Store composes a GraphStore and a VectorBackend into one storage.Store.
type Store struct {
	graph  GraphStore
	vector VectorBackend
	logger *zap.Logger
}

// New constructs a hybrid Store.
func New(graphStore GraphStore, vectorStore VectorBackend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{graph: graphStore, vector: vectorStore, logger: logger}
}

// Initialize initializes both backends.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.graph.Initialize(ctx); err != nil {
		return err
	}
	return s.vector.Initialize(ctx)
}

// Disconnect disconnects both backends.
func (s *Store) Disconnect(ctx context.Context) error {
	graphErr := s.graph.Disconnect(ctx)
	vectorErr := s.vector.Disconnect(ctx)
	if graphErr != nil {
		return graphErr
	}
	return vectorErr
}

// HealthCheck is the conjunction of both backends' health.
func (s *Store) HealthCheck(ctx context.Context) (bool, error) {
	graphOK, err := s.graph.HealthCheck(ctx)
	if err != nil || !graphOK {
		return false, err
	}
	vectorOK, err := s.vector.HealthCheck(ctx)
	if err != nil || !vectorOK {
		return false, err
	}
	return true, nil
}

// Node/edge/chunk/path operations route to the graph backend.

func (s *Store) GetNode(ctx context.Context, id string) (*entities.Node, error) {
	return s.graph.GetNode(ctx, id)
}
func (s *Store) UpdateNode(ctx context.Context, id string, patch map[string]interface{}) (entities.Node, error) {
	return s.graph.UpdateNode(ctx, id, patch)
}
func (s *Store) ListNodes(ctx context.Context, page, limit int) (storage.Page[entities.Node], error) {
	return s.graph.ListNodes(ctx, page, limit)
}
func (s *Store) SearchNodesByText(ctx context.Context, query string, limit int) ([]entities.Node, error) {
	return s.graph.SearchNodesByText(ctx, query, limit)
}
func (s *Store) NodesByType(ctx context.Context, kind string, limit int) ([]entities.Node, error) {
	return s.graph.NodesByType(ctx, kind, limit)
}

func (s *Store) CreateEdge(ctx context.Context, edge entities.Edge) (entities.Edge, error) {
	return s.graph.CreateEdge(ctx, edge)
}
func (s *Store) GetEdge(ctx context.Context, id string) (*entities.Edge, error) {
	return s.graph.GetEdge(ctx, id)
}
func (s *Store) UpdateEdge(ctx context.Context, id string, patch map[string]interface{}) (entities.Edge, error) {
	return s.graph.UpdateEdge(ctx, id, patch)
}
func (s *Store) DeleteEdge(ctx context.Context, id string) (bool, error) {
	return s.graph.DeleteEdge(ctx, id)
}
func (s *Store) ListEdges(ctx context.Context, page, limit int) (storage.Page[entities.Edge], error) {
	return s.graph.ListEdges(ctx, page, limit)
}
func (s *Store) EdgesFrom(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	return s.graph.EdgesFrom(ctx, nodeID)
}
func (s *Store) EdgesTo(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	return s.graph.EdgesTo(ctx, nodeID)
}
func (s *Store) EdgesBetween(ctx context.Context, a, b string) ([]entities.Edge, error) {
	return s.graph.EdgesBetween(ctx, a, b)
}
func (s *Store) EdgesByRelation(ctx context.Context, relation string) ([]entities.Edge, error) {
	return s.graph.EdgesByRelation(ctx, relation)
}
func (s *Store) Path(ctx context.Context, from, to string, maxDepth int) ([]entities.Edge, error) {
	return s.graph.Path(ctx, from, to, maxDepth)
}

func (s *Store) StoreChunk(ctx context.Context, chunk entities.DocumentChunk) (entities.DocumentChunk, error) {
	return s.graph.StoreChunk(ctx, chunk)
}
func (s *Store) ChunksBySource(ctx context.Context, sourceID string) ([]entities.DocumentChunk, error) {
	return s.graph.ChunksBySource(ctx, sourceID)
}
func (s *Store) ChunksByConcept(ctx context.Context, conceptID string) ([]entities.DocumentChunk, error) {
	return s.graph.ChunksByConcept(ctx, conceptID)
}
func (s *Store) DeleteChunksBySource(ctx context.Context, sourceID string) (int, error) {
	return s.graph.DeleteChunksBySource(ctx, sourceID)
}

func (s *Store) BulkCreateNodes(ctx context.Context, nodes []entities.Node) ([]string, error) {
	return s.graph.BulkCreateNodes(ctx, nodes)
}
func (s *Store) BulkCreateEdges(ctx context.Context, edges []entities.Edge) ([]string, error) {
	return s.graph.BulkCreateEdges(ctx, edges)
}

// Vector operations route to the vector backend.

func (s *Store) StoreVector(ctx context.Context, vec entities.VectorPayload) (entities.VectorPayload, error) {
	return s.vector.StoreVector(ctx, vec)
}
func (s *Store) GetVector(ctx context.Context, id string) (*entities.VectorPayload, error) {
	return s.vector.GetVector(ctx, id)
}
func (s *Store) SearchVectors(ctx context.Context, embedding []float64, k int, filters storage.VectorFilters) ([]storage.VectorSearchResult, error) {
	return s.vector.SearchVectors(ctx, embedding, k, filters)
}
func (s *Store) DeleteVector(ctx context.Context, id string) (bool, error) {
	return s.vector.DeleteVector(ctx, id)
}
func (s *Store) UpdateVectorDecay(ctx context.Context, id string, score float64) error {
	return s.vector.UpdateVectorDecay(ctx, id, score)
}

var _ storage.Store = (*Store)(nil)
