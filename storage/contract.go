// Package storage defines the operation set every backend must expose,
// composed of small per-capability interfaces (NodeStore, EdgeStore,
// VectorStore, ...) rather than one monolithic interface.
package storage

import (
	"context"

	"cortexgraph/domain/core/entities"
)

// Page is a paginated result set: {items, total, page, limit, has_more}.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	Limit   int
	HasMore bool
}

// VectorFilters restricts a vector search to payloads matching every
// non-empty field.
type VectorFilters struct {
	EntityRefs       []string
	SourceTiers      []string
	AbstractionLevels []string
	EmbeddingTypes   []string
	Collection       string
}

// VectorSearchResult pairs a stored vector with its similarity to the
// query embedding.
type VectorSearchResult struct {
	Vector     entities.VectorPayload
	Similarity float64
}

// NodeStore exposes node CRUD, search and listing.
type NodeStore interface {
	CreateNode(ctx context.Context, node entities.Node) (entities.Node, error)
	GetNode(ctx context.Context, id string) (*entities.Node, error)
	UpdateNode(ctx context.Context, id string, patch map[string]interface{}) (entities.Node, error)
	DeleteNode(ctx context.Context, id string) (bool, error)
	ListNodes(ctx context.Context, page, limit int) (Page[entities.Node], error)
	SearchNodesByText(ctx context.Context, query string, limit int) ([]entities.Node, error)
	NodesByType(ctx context.Context, kind string, limit int) ([]entities.Node, error)
}

// EdgeStore exposes edge CRUD plus traversal operations on top of plain
// CRUD.
type EdgeStore interface {
	CreateEdge(ctx context.Context, edge entities.Edge) (entities.Edge, error)
	GetEdge(ctx context.Context, id string) (*entities.Edge, error)
	UpdateEdge(ctx context.Context, id string, patch map[string]interface{}) (entities.Edge, error)
	DeleteEdge(ctx context.Context, id string) (bool, error)
	ListEdges(ctx context.Context, page, limit int) (Page[entities.Edge], error)
	EdgesFrom(ctx context.Context, nodeID string) ([]entities.Edge, error)
	EdgesTo(ctx context.Context, nodeID string) ([]entities.Edge, error)
	EdgesBetween(ctx context.Context, a, b string) ([]entities.Edge, error)
	EdgesByRelation(ctx context.Context, relation string) ([]entities.Edge, error)
	Path(ctx context.Context, from, to string, maxDepth int) ([]entities.Edge, error)
}

// VectorStore exposes vector CRUD, similarity search and decay updates.
type VectorStore interface {
	StoreVector(ctx context.Context, vec entities.VectorPayload) (entities.VectorPayload, error)
	GetVector(ctx context.Context, id string) (*entities.VectorPayload, error)
	SearchVectors(ctx context.Context, embedding []float64, k int, filters VectorFilters) ([]VectorSearchResult, error)
	DeleteVector(ctx context.Context, id string) (bool, error)
	UpdateVectorDecay(ctx context.Context, id string, score float64) error
}

// ChunkStore exposes chunk persistence and the lookups ingestion needs.
type ChunkStore interface {
	StoreChunk(ctx context.Context, chunk entities.DocumentChunk) (entities.DocumentChunk, error)
	ChunksBySource(ctx context.Context, sourceID string) ([]entities.DocumentChunk, error)
	ChunksByConcept(ctx context.Context, conceptID string) ([]entities.DocumentChunk, error)
	DeleteChunksBySource(ctx context.Context, sourceID string) (int, error)
}

// BulkStore exposes bulk-insert operations. A partial failure returns
// the prefix of successful ids plus an
// aggregated error; it does not roll back earlier inserts unless the
// caller wraps the call in a transaction.
type BulkStore interface {
	BulkCreateNodes(ctx context.Context, nodes []entities.Node) ([]string, error)
	BulkCreateEdges(ctx context.Context, edges []entities.Edge) ([]string, error)
}

// Transaction is a begun transaction; Commit or Rollback must be called
// exactly once.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Store
}

// TransactionalStore exposes begin/commit/rollback. Backends that cannot
// provide isolation return NotSupported rather than a no-op transaction
// that would silently promise atomicity it can't deliver; in-memory
// documents its no-op instead (see storage/memory).
type TransactionalStore interface {
	Begin(ctx context.Context) (Transaction, error)
}

// HealthCheckable exposes backend lifecycle operations.
type HealthCheckable interface {
	HealthCheck(ctx context.Context) (bool, error)
	Initialize(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Store is the full union every backend variant implements: in-memory,
// graph, vector, or hybrid.
type Store interface {
	NodeStore
	EdgeStore
	VectorStore
	ChunkStore
	BulkStore
	HealthCheckable
}
