package memory

import (
	"context"

	"cortexgraph/domain/core/entities"
	"cortexgraph/storage"
)

// tx is the in-memory backend's Transaction: a snapshot-and-restore
// isolation model appropriate for a reference implementation. Begin
// copies every map; operations during the transaction mutate the parent
// Store directly (so readers outside the transaction see uncommitted
// writes, matching this backend's synchronous single-writer-lock
// semantics); Rollback restores the snapshot, Commit is a no-op since
// there is nothing else to flush.
type tx struct {
	*Store
	parent *Store

	nodesSnapshot   map[string]entities.Node
	edgesSnapshot   map[string]entities.Edge
	vectorsSnapshot map[string]entities.VectorPayload
	chunksSnapshot  map[string]entities.DocumentChunk
}

// Begin starts a transaction by snapshotting the current state.
func (s *Store) Begin(ctx context.Context) (storage.Transaction, error) {
	s.nodesMu.RLock()
	nodesSnap := make(map[string]entities.Node, len(s.nodes))
	for k, v := range s.nodes {
		nodesSnap[k] = v
	}
	s.nodesMu.RUnlock()

	s.edgesMu.RLock()
	edgesSnap := make(map[string]entities.Edge, len(s.edges))
	for k, v := range s.edges {
		edgesSnap[k] = v
	}
	s.edgesMu.RUnlock()

	s.vectorsMu.RLock()
	vectorsSnap := make(map[string]entities.VectorPayload, len(s.vectors))
	for k, v := range s.vectors {
		vectorsSnap[k] = v
	}
	s.vectorsMu.RUnlock()

	s.chunksMu.RLock()
	chunksSnap := make(map[string]entities.DocumentChunk, len(s.chunks))
	for k, v := range s.chunks {
		chunksSnap[k] = v
	}
	s.chunksMu.RUnlock()

	return &tx{
		Store:           s,
		parent:          s,
		nodesSnapshot:   nodesSnap,
		edgesSnapshot:   edgesSnap,
		vectorsSnapshot: vectorsSnap,
		chunksSnapshot:  chunksSnap,
	}, nil
}

// Commit is a no-op: writes already landed on the parent store.
func (t *tx) Commit(ctx context.Context) error {
	return nil
}

// Rollback restores the parent store to the pre-Begin snapshot.
func (t *tx) Rollback(ctx context.Context) error {
	t.parent.nodesMu.Lock()
	t.parent.nodes = t.nodesSnapshot
	t.parent.nodesMu.Unlock()

	t.parent.edgesMu.Lock()
	t.parent.edges = t.edgesSnapshot
	t.parent.edgesMu.Unlock()

	t.parent.vectorsMu.Lock()
	t.parent.vectors = t.vectorsSnapshot
	t.parent.vectorsMu.Unlock()

	t.parent.chunksMu.Lock()
	t.parent.chunks = t.chunksSnapshot
	t.parent.chunksMu.Unlock()

	return nil
}

var _ storage.TransactionalStore = (*Store)(nil)
