package vector

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	cortexerrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// StoreVector upserts a vector payload, enforcing that every vector in
// a collection shares the same dimension.
func (s *Store) StoreVector(ctx context.Context, vec entities.VectorPayload) (entities.VectorPayload, error) {
	if vec.ID == "" {
		vec.ID = valueobjects.NewID()
	}
	now := time.Now().UTC()
	if vec.CreatedAt.IsZero() {
		vec.CreatedAt = now
	}
	vec.UpdatedAt = now

	existingDim, err := s.collectionDimension(ctx, vec.Collection)
	if err != nil {
		return entities.VectorPayload{}, err
	}
	if existingDim > 0 && existingDim != vec.Dimension() {
		return entities.VectorPayload{}, cortexerrors.NewValidationError("vector dimension does not match collection dimension")
	}

	const q = `
		INSERT INTO vectors
		    (id, embedding, embedding_type, collection, entity_refs, source_tier,
		     abstraction_level, confidence, decay_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
		    embedding         = EXCLUDED.embedding,
		    embedding_type    = EXCLUDED.embedding_type,
		    collection        = EXCLUDED.collection,
		    entity_refs       = EXCLUDED.entity_refs,
		    source_tier       = EXCLUDED.source_tier,
		    abstraction_level = EXCLUDED.abstraction_level,
		    confidence        = EXCLUDED.confidence,
		    decay_score       = EXCLUDED.decay_score,
		    updated_at        = EXCLUDED.updated_at`

	decayScore := 1.0
	if vec.DecayScore != nil {
		decayScore = *vec.DecayScore
	}
	_, err = s.pool.Exec(ctx, q,
		vec.ID, toPgvector(vec.Embedding), string(vec.EmbeddingType), vec.Collection,
		vec.EntityRefs, string(vec.SourceTier), string(vec.AbstractionLevel),
		vec.Confidence, decayScore, vec.CreatedAt, vec.UpdatedAt,
	)
	if err != nil {
		return entities.VectorPayload{}, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return vec, nil
}

// GetVector fetches a single vector by id.
func (s *Store) GetVector(ctx context.Context, id string) (*entities.VectorPayload, error) {
	const q = `
		SELECT id, embedding, embedding_type, collection, entity_refs, source_tier,
		       abstraction_level, confidence, decay_score, created_at, updated_at
		FROM vectors WHERE id = $1`
	row := s.pool.QueryRow(ctx, q, id)
	vec, err := scanVector(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return &vec, nil
}

// SearchVectors ranks stored vectors by cosine similarity (1 - pgvector's
// cosine distance operator `<=>`) descending, applying VectorFilters and
// the similarity floor.
func (s *Store) SearchVectors(ctx context.Context, embedding []float64, k int, filters storage.VectorFilters) ([]storage.VectorSearchResult, error) {
	args := []interface{}{toPgvector(embedding)}
	arg := func(v interface{}) string {
		args = append(args, v)
		return placeholderFor(len(args))
	}

	where := "TRUE"
	if filters.Collection != "" {
		where += " AND collection = " + arg(filters.Collection)
	}
	if len(filters.SourceTiers) > 0 {
		where += " AND source_tier = ANY(" + arg(filters.SourceTiers) + ")"
	}
	if len(filters.AbstractionLevels) > 0 {
		where += " AND abstraction_level = ANY(" + arg(filters.AbstractionLevels) + ")"
	}
	if len(filters.EmbeddingTypes) > 0 {
		where += " AND embedding_type = ANY(" + arg(filters.EmbeddingTypes) + ")"
	}
	if len(filters.EntityRefs) > 0 {
		where += " AND entity_refs && " + arg(filters.EntityRefs)
	}

	limit := k
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitArg := placeholderFor(len(args))

	q := `
		SELECT id, embedding, embedding_type, collection, entity_refs, source_tier,
		       abstraction_level, confidence, decay_score, created_at, updated_at,
		       1 - (embedding <=> $1) AS similarity
		FROM vectors
		WHERE ` + where + `
		ORDER BY embedding <=> $1
		LIMIT ` + limitArg

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	defer rows.Close()

	var out []storage.VectorSearchResult
	for rows.Next() {
		vec, similarity, err := scanVectorWithSimilarity(rows)
		if err != nil {
			return nil, cortexerrors.NewBackendUnavailableError("postgres", err)
		}
		if similarity < similarityFloor {
			continue
		}
		out = append(out, storage.VectorSearchResult{Vector: vec, Similarity: similarity})
	}
	return out, nil
}

// DeleteVector removes a vector by id.
func (s *Store) DeleteVector(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM vectors WHERE id = $1`, id)
	if err != nil {
		return false, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateVectorDecay writes a freshly computed decay score.
func (s *Store) UpdateVectorDecay(ctx context.Context, id string, score float64) error {
	_, err := s.pool.Exec(ctx, `UPDATE vectors SET decay_score = $1, updated_at = now() WHERE id = $2`, score, id)
	if err != nil {
		return cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return nil
}

func (s *Store) collectionDimension(ctx context.Context, collection string) (int, error) {
	const q = `SELECT vector_dims(embedding) FROM vectors WHERE collection = $1 LIMIT 1`
	row := s.pool.QueryRow(ctx, q, collection)
	var dim int
	if err := row.Scan(&dim); err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return dim, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVector(row rowScanner) (entities.VectorPayload, error) {
	var vec entities.VectorPayload
	var pgVec pgvector.Vector
	var embeddingType, sourceTier, abstractionLevel string
	var decayScore float64
	if err := row.Scan(
		&vec.ID, &pgVec, &embeddingType, &vec.Collection, &vec.EntityRefs,
		&sourceTier, &abstractionLevel, &vec.Confidence, &decayScore,
		&vec.CreatedAt, &vec.UpdatedAt,
	); err != nil {
		return entities.VectorPayload{}, err
	}
	vec.Embedding = fromPgvector(pgVec)
	vec.EmbeddingType = config.EmbeddingType(embeddingType)
	vec.SourceTier = config.SourceTier(sourceTier)
	vec.AbstractionLevel = config.AbstractionLevel(abstractionLevel)
	vec.DecayScore = &decayScore
	return vec, nil
}

func scanVectorWithSimilarity(row rowScanner) (entities.VectorPayload, float64, error) {
	var vec entities.VectorPayload
	var pgVec pgvector.Vector
	var embeddingType, sourceTier, abstractionLevel string
	var decayScore, similarity float64
	if err := row.Scan(
		&vec.ID, &pgVec, &embeddingType, &vec.Collection, &vec.EntityRefs,
		&sourceTier, &abstractionLevel, &vec.Confidence, &decayScore,
		&vec.CreatedAt, &vec.UpdatedAt, &similarity,
	); err != nil {
		return entities.VectorPayload{}, 0, err
	}
	vec.Embedding = fromPgvector(pgVec)
	vec.EmbeddingType = config.EmbeddingType(embeddingType)
	vec.SourceTier = config.SourceTier(sourceTier)
	vec.AbstractionLevel = config.AbstractionLevel(abstractionLevel)
	vec.DecayScore = &decayScore
	return vec, similarity, nil
}

func placeholderFor(n int) string {
	return "$" + strconv.Itoa(n)
}
