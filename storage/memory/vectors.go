package memory

import (
	"context"
	"sort"
	"time"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/embedding"
	apperrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// similarityFloor is the default minimum cosine similarity a vector
// search must meet before a result is omitted.
const similarityFloor = 0.3

// StoreVector inserts a vector, enforcing that every vector already in
// the collection shares its dimension.
func (s *Store) StoreVector(ctx context.Context, vec entities.VectorPayload) (entities.VectorPayload, error) {
	s.vectorsMu.Lock()
	defer s.vectorsMu.Unlock()

	for _, existing := range s.vectors {
		if existing.Collection == vec.Collection && existing.Dimension() != vec.Dimension() {
			return entities.VectorPayload{}, apperrors.NewValidationError(
				"embedding dimension mismatch for collection " + vec.Collection)
		}
	}
	if vec.ID == "" {
		vec.ID = valueobjects.NewID()
	}
	now := time.Now().UTC()
	vec.CreatedAt = now
	vec.UpdatedAt = now
	s.vectors[vec.ID] = vec
	return vec, nil
}

// GetVector returns the vector for id, or nil if absent.
func (s *Store) GetVector(ctx context.Context, id string) (*entities.VectorPayload, error) {
	s.vectorsMu.RLock()
	defer s.vectorsMu.RUnlock()
	v, ok := s.vectors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// SearchVectors ranks every stored vector by cosine similarity against
// embedding, applies filters, and omits results below similarityFloor.
func (s *Store) SearchVectors(ctx context.Context, query []float64, k int, filters storage.VectorFilters) ([]storage.VectorSearchResult, error) {
	s.vectorsMu.RLock()
	defer s.vectorsMu.RUnlock()

	var results []storage.VectorSearchResult
	for _, v := range s.vectors {
		if !matchesFilters(v, filters) {
			continue
		}
		sim := embedding.Cosine(query, v.Embedding)
		if sim < similarityFloor {
			continue
		}
		results = append(results, storage.VectorSearchResult{Vector: v, Similarity: sim})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func matchesFilters(v entities.VectorPayload, f storage.VectorFilters) bool {
	if f.Collection != "" && v.Collection != f.Collection {
		return false
	}
	if len(f.EmbeddingTypes) > 0 && !containsString(f.EmbeddingTypes, string(v.EmbeddingType)) {
		return false
	}
	if len(f.SourceTiers) > 0 && !containsString(f.SourceTiers, string(v.SourceTier)) {
		return false
	}
	if len(f.AbstractionLevels) > 0 && !containsString(f.AbstractionLevels, string(v.AbstractionLevel)) {
		return false
	}
	if len(f.EntityRefs) > 0 && !anyOverlap(f.EntityRefs, v.EntityRefs) {
		return false
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func anyOverlap(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}
	return false
}

// DeleteVector removes a vector by id.
func (s *Store) DeleteVector(ctx context.Context, id string) (bool, error) {
	s.vectorsMu.Lock()
	defer s.vectorsMu.Unlock()
	if _, exists := s.vectors[id]; !exists {
		return false, nil
	}
	delete(s.vectors, id)
	return true, nil
}

// UpdateVectorDecay writes a new decay score onto a stored vector.
func (s *Store) UpdateVectorDecay(ctx context.Context, id string, score float64) error {
	s.vectorsMu.Lock()
	defer s.vectorsMu.Unlock()
	v, ok := s.vectors[id]
	if !ok {
		return apperrors.NewNotFoundError("vector " + id)
	}
	v.DecayScore = &score
	v.UpdatedAt = time.Now().UTC()
	s.vectors[id] = v
	return nil
}
