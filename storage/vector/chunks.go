package vector

import (
	"context"

	"github.com/jackc/pgx/v5"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	cortexerrors "cortexgraph/pkg/errors"
)

// StoreChunk upserts a document chunk into the Postgres chunks table —
// chunk persistence shares the vector backend's connection pool when
// STORAGE_TYPE=vector is selected (the hybrid composer instead routes
// chunks to the graph backend).
func (s *Store) StoreChunk(ctx context.Context, chunk entities.DocumentChunk) (entities.DocumentChunk, error) {
	if chunk.ID == "" {
		chunk.ID = valueobjects.NewID()
	}
	const q = `
		INSERT INTO chunks
		    (id, content, source_id, section, claim_type, concept_ids, embedding_id, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
		    content      = EXCLUDED.content,
		    source_id    = EXCLUDED.source_id,
		    section      = EXCLUDED.section,
		    claim_type   = EXCLUDED.claim_type,
		    concept_ids  = EXCLUDED.concept_ids,
		    embedding_id = EXCLUDED.embedding_id,
		    confidence   = EXCLUDED.confidence`
	_, err := s.pool.Exec(ctx, q,
		chunk.ID, chunk.Content, chunk.SourceID, chunk.Section, string(chunk.ClaimType),
		chunk.ConceptIDs, chunk.EmbeddingID, chunk.Confidence, chunk.CreatedAt,
	)
	if err != nil {
		return entities.DocumentChunk{}, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return chunk, nil
}

// ChunksBySource queries by source_id, using the dedicated index.
func (s *Store) ChunksBySource(ctx context.Context, sourceID string) ([]entities.DocumentChunk, error) {
	return s.queryChunks(ctx, `WHERE source_id = $1`, sourceID)
}

// ChunksByConcept queries for chunks whose concept_ids array contains conceptID.
func (s *Store) ChunksByConcept(ctx context.Context, conceptID string) ([]entities.DocumentChunk, error) {
	return s.queryChunks(ctx, `WHERE $1 = ANY(concept_ids)`, conceptID)
}

// DeleteChunksBySource deletes every chunk for a source id, returning
// the count deleted.
func (s *Store) DeleteChunksBySource(ctx context.Context, sourceID string) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chunks WHERE source_id = $1`, sourceID)
	if err != nil {
		return 0, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) queryChunks(ctx context.Context, whereClause string, arg interface{}) ([]entities.DocumentChunk, error) {
	q := `
		SELECT id, content, source_id, section, claim_type, concept_ids, embedding_id, confidence, created_at
		FROM chunks ` + whereClause
	rows, err := s.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	defer rows.Close()

	var out []entities.DocumentChunk
	for rows.Next() {
		var c entities.DocumentChunk
		var claimType string
		if err := rows.Scan(&c.ID, &c.Content, &c.SourceID, &c.Section, &claimType,
			&c.ConceptIDs, &c.EmbeddingID, &c.Confidence, &c.CreatedAt); err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, cortexerrors.NewBackendUnavailableError("postgres", err)
		}
		c.ClaimType = config.ClaimType(claimType)
		out = append(out, c)
	}
	return out, nil
}
