package hybrid

import (
	"context"

	"go.uber.org/zap"

	"cortexgraph/domain/core/entities"
	cortexerrors "cortexgraph/pkg/errors"
)

// CreateNode writes the node to the graph backend, then, if an
// embedding was supplied, writes it to the vector backend. Either
// failure aborts the call; a vector-write failure after a successful
// graph write triggers a single compensating step (delete the node
// from the graph) since there are only two legs to unwind.
func (s *Store) CreateNode(ctx context.Context, node entities.Node) (entities.Node, error) {
	created, err := s.graph.CreateNode(ctx, node)
	if err != nil {
		return entities.Node{}, err
	}

	if len(node.Embedding) == 0 {
		return created, nil
	}

	vec := entities.VectorPayload{
		ID:         created.ID.String(),
		Embedding:  node.Embedding,
		Collection: string(created.Kind),
		EntityRefs: []string{created.ID.String()},
		Confidence: created.CognitiveState.Confidence,
	}
	if _, err := s.vector.StoreVector(ctx, vec); err != nil {
		s.compensateNodeCreate(ctx, created.ID.String())
		return entities.Node{}, cortexerrors.NewBackendUnavailableError("vector", err)
	}

	return created, nil
}

// compensateNodeCreate deletes a node that was already written to the
// graph backend after its paired vector write failed. Residue from a
// failed compensation is logged, not retried or surfaced further.
func (s *Store) compensateNodeCreate(ctx context.Context, nodeID string) {
	if _, err := s.graph.DeleteNode(ctx, nodeID); err != nil {
		s.logger.Warn("hybrid store: compensation failed, node orphaned in graph backend",
			zap.String("node_id", nodeID),
			zap.Error(err),
		)
	}
}

// DeleteNode deletes the node from the graph backend, then its
// embedding from the vector backend. A vector-delete failure does not
// revive the node; it is surfaced only as a warning.
func (s *Store) DeleteNode(ctx context.Context, id string) (bool, error) {
	deleted, err := s.graph.DeleteNode(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if _, err := s.vector.DeleteVector(ctx, id); err != nil {
		s.logger.Warn("hybrid store: failed to delete embedding for deleted node",
			zap.String("node_id", id),
			zap.Error(err),
		)
	}

	return true, nil
}
