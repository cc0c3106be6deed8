package graph

import (
	"context"

	"cortexgraph/domain/core/entities"
	cortexerrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// The graph backend has no native vector similarity search: a
// wide-column store has no cosine index. Every VectorStore method
// returns NotSupported (HTTP 501); callers needing vector search select
// STORAGE_TYPE=vector or STORAGE_TYPE=hybrid instead.

func (s *Store) StoreVector(ctx context.Context, vec entities.VectorPayload) (entities.VectorPayload, error) {
	return entities.VectorPayload{}, cortexerrors.NewNotSupportedError("storeVector on graph backend")
}

func (s *Store) GetVector(ctx context.Context, id string) (*entities.VectorPayload, error) {
	return nil, cortexerrors.NewNotSupportedError("getVector on graph backend")
}

func (s *Store) SearchVectors(ctx context.Context, embedding []float64, k int, filters storage.VectorFilters) ([]storage.VectorSearchResult, error) {
	return nil, cortexerrors.NewNotSupportedError("searchVectors on graph backend")
}

func (s *Store) DeleteVector(ctx context.Context, id string) (bool, error) {
	return false, cortexerrors.NewNotSupportedError("deleteVector on graph backend")
}

func (s *Store) UpdateVectorDecay(ctx context.Context, id string, score float64) error {
	return cortexerrors.NewNotSupportedError("updateVectorDecay on graph backend")
}

var _ storage.Store = (*Store)(nil)
