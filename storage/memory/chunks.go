package memory

import (
	"context"
	"time"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
)

// StoreChunk persists a document chunk.
func (s *Store) StoreChunk(ctx context.Context, chunk entities.DocumentChunk) (entities.DocumentChunk, error) {
	s.chunksMu.Lock()
	defer s.chunksMu.Unlock()

	if chunk.ID == "" {
		chunk.ID = valueobjects.NewID()
	}
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}
	s.chunks[chunk.ID] = chunk
	return chunk, nil
}

// ChunksBySource returns every chunk belonging to sourceID.
func (s *Store) ChunksBySource(ctx context.Context, sourceID string) ([]entities.DocumentChunk, error) {
	s.chunksMu.RLock()
	defer s.chunksMu.RUnlock()
	var out []entities.DocumentChunk
	for _, c := range s.chunks {
		if c.SourceID == sourceID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ChunksByConcept returns every chunk tagged with conceptID.
func (s *Store) ChunksByConcept(ctx context.Context, conceptID string) ([]entities.DocumentChunk, error) {
	s.chunksMu.RLock()
	defer s.chunksMu.RUnlock()
	var out []entities.DocumentChunk
	for _, c := range s.chunks {
		for _, id := range c.ConceptIDs {
			if id == conceptID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// DeleteChunksBySource removes every chunk for sourceID, returning the
// count removed.
func (s *Store) DeleteChunksBySource(ctx context.Context, sourceID string) (int, error) {
	s.chunksMu.Lock()
	defer s.chunksMu.Unlock()
	count := 0
	for id, c := range s.chunks {
		if c.SourceID == sourceID {
			delete(s.chunks, id)
			count++
		}
	}
	return count, nil
}
