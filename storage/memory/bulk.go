package memory

import (
	"context"

	"cortexgraph/domain/core/entities"
)

// BulkCreateNodes inserts each node in order and stops at the first
// failure, returning the prefix of successful ids and that failure's
// error. Earlier inserts are not rolled back unless the caller wraps the
// call in a transaction.
func (s *Store) BulkCreateNodes(ctx context.Context, nodes []entities.Node) ([]string, error) {
	var ids []string
	for _, n := range nodes {
		created, err := s.CreateNode(ctx, n)
		if err != nil {
			return ids, err
		}
		ids = append(ids, created.ID.String())
	}
	return ids, nil
}

// BulkCreateEdges inserts each edge in order, with the same
// prefix-of-successes semantics as BulkCreateNodes.
func (s *Store) BulkCreateEdges(ctx context.Context, edges []entities.Edge) ([]string, error) {
	var ids []string
	for _, e := range edges {
		created, err := s.CreateEdge(ctx, e)
		if err != nil {
			return ids, err
		}
		ids = append(ids, created.ID.String())
	}
	return ids, nil
}
