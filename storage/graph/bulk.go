package graph

import (
	"context"

	"cortexgraph/domain/core/entities"
)

// BulkCreateNodes inserts each node in turn, returning the prefix of
// successful ids and an aggregated error over the rest. DynamoDB items
// here land on different partitions, so this reference backend loops
// rather than using TransactWriteItems: partial failure is tolerated,
// with no automatic rollback outside a transaction.
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

// BulkCreateEdges inserts each edge in turn, same partial-failure
// semantics as BulkCreateNodes.
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
