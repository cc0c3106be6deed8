// Package vector implements a pgvector/pgx backend for vector payloads,
// kept in one vectors table with a collection column, and a
// Postgres-backed chunk store, both queried through a pgxpool.Pool
// with pgvector's <=> distance operator for search.
package vector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	cortexerrors "cortexgraph/pkg/errors"
)

// similarityFloor is the minimum cosine similarity a search result must
// clear to be returned, matching storage/memory's default.
const similarityFloor = 0.3

// Store is the pgvector-backed vector storage adapter. It implements
// VectorStore and ChunkStore; NodeStore/EdgeStore/BulkStore methods
// return NotSupported, since a vector/chunk store has no graph model.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New constructs a vector Store over an already-connected pool.
func New(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, logger: logger}
}

// Initialize creates the vectors/chunks tables and the pgvector
// extension if they don't already exist.
func (s *Store) Initialize(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS vectors (
			id TEXT PRIMARY KEY,
			embedding vector,
			embedding_type TEXT NOT NULL,
			collection TEXT NOT NULL,
			entity_refs TEXT[] NOT NULL DEFAULT '{}',
			source_tier TEXT NOT NULL,
			abstraction_level TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			decay_score DOUBLE PRECISION NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			source_id TEXT NOT NULL,
			section TEXT NOT NULL,
			claim_type TEXT NOT NULL,
			concept_ids TEXT[] NOT NULL DEFAULT '{}',
			embedding_id TEXT,
			confidence DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS chunks_source_id_idx ON chunks (source_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return cortexerrors.NewBackendUnavailableError("postgres", err)
		}
	}
	return nil
}

// Disconnect closes the pool.
func (s *Store) Disconnect(ctx context.Context) error {
	s.pool.Close()
	return nil
}

// HealthCheck pings the pool.
func (s *Store) HealthCheck(ctx context.Context) (bool, error) {
	if err := s.pool.Ping(ctx); err != nil {
		return false, cortexerrors.NewBackendUnavailableError("postgres", err)
	}
	return true, nil
}

func toPgvector(embedding []float64) pgvector.Vector {
	f32 := make([]float32, len(embedding))
	for i, x := range embedding {
		f32[i] = float32(x)
	}
	return pgvector.NewVector(f32)
}

func fromPgvector(vec pgvector.Vector) []float64 {
	f32 := vec.Slice()
	out := make([]float64, len(f32))
	for i, x := range f32 {
		out[i] = float64(x)
	}
	return out
}

func wrapPgError(operation string, err error) error {
	return fmt.Errorf("vector store: %s: %w", operation, err)
}
