package memory

import (
	"context"
	"sort"
	"time"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	apperrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// CreateEdge inserts a new edge. Both endpoints must already exist; the
// caller (application layer) is responsible for resolving endpoint
// existence before calling storage, since the storage contract itself
// is backend-agnostic about how nodes are looked up.
func (s *Store) CreateEdge(ctx context.Context, edge entities.Edge) (entities.Edge, error) {
	fromNode, _ := s.GetNode(ctx, edge.FromNode.String())
	if fromNode == nil {
		return entities.Edge{}, apperrors.NewValidationError("from_node " + edge.FromNode.String() + " does not exist")
	}
	toNode, _ := s.GetNode(ctx, edge.ToNode.String())
	if toNode == nil {
		return entities.Edge{}, apperrors.NewValidationError("to_node " + edge.ToNode.String() + " does not exist")
	}

	s.edgesMu.Lock()
	defer s.edgesMu.Unlock()

	if edge.ID.IsZero() {
		edge.ID = valueobjects.NewEdgeID()
	}
	if _, exists := s.edges[edge.ID.String()]; exists {
		return entities.Edge{}, apperrors.NewConflictError("edge " + edge.ID.String() + " already exists")
	}
	now := time.Now().UTC()
	edge.Temporal.CreatedAt = now
	edge.Temporal.LastUsedAt = now
	s.edges[edge.ID.String()] = edge
	return edge, nil
}

// GetEdge returns the edge for id, or nil if absent.
func (s *Store) GetEdge(ctx context.Context, id string) (*entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()
	e, ok := s.edges[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// UpdateEdge applies patch fields onto the stored edge.
func (s *Store) UpdateEdge(ctx context.Context, id string, patch map[string]interface{}) (entities.Edge, error) {
	s.edgesMu.Lock()
	defer s.edgesMu.Unlock()

	existing, ok := s.edges[id]
	if !ok {
		return entities.Edge{}, apperrors.NewNotFoundError("edge " + id)
	}
	updated := applyEdgePatch(existing, patch)
	updated.ID = existing.ID
	updated.Temporal.CreatedAt = existing.Temporal.CreatedAt
	updated.Temporal.LastUsedAt = time.Now().UTC()
	s.edges[id] = updated
	return updated, nil
}

// DeleteEdge removes an edge by id.
func (s *Store) DeleteEdge(ctx context.Context, id string) (bool, error) {
	s.edgesMu.Lock()
	defer s.edgesMu.Unlock()
	if _, exists := s.edges[id]; !exists {
		return false, nil
	}
	delete(s.edges, id)
	return true, nil
}

// ListEdges returns a page of edges ordered by created_at descending.
func (s *Store) ListEdges(ctx context.Context, page, limit int) (storage.Page[entities.Edge], error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()

	all := make([]entities.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Temporal.CreatedAt.After(all[j].Temporal.CreatedAt)
	})
	return paginate(all, page, limit), nil
}

// EdgesFrom returns every edge whose FromNode equals nodeID.
func (s *Store) EdgesFrom(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()
	var out []entities.Edge
	for _, e := range s.edges {
		if e.FromNode.String() == nodeID {
			out = append(out, e)
		}
	}
	return out, nil
}

// EdgesTo returns every edge whose ToNode equals nodeID.
func (s *Store) EdgesTo(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()
	var out []entities.Edge
	for _, e := range s.edges {
		if e.ToNode.String() == nodeID {
			out = append(out, e)
		}
	}
	return out, nil
}

// EdgesBetween returns every edge directly connecting a and b, in either
// direction.
func (s *Store) EdgesBetween(ctx context.Context, a, b string) ([]entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()
	var out []entities.Edge
	for _, e := range s.edges {
		if (e.FromNode.String() == a && e.ToNode.String() == b) ||
			(e.FromNode.String() == b && e.ToNode.String() == a) {
			out = append(out, e)
		}
	}
	return out, nil
}

// EdgesByRelation returns every edge with the given relation label.
func (s *Store) EdgesByRelation(ctx context.Context, relation string) ([]entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()
	var out []entities.Edge
	for _, e := range s.edges {
		if string(e.Relation) == relation {
			out = append(out, e)
		}
	}
	return out, nil
}

// Path performs a breadth-first search bounded by maxDepth, returning the
// edge sequence of the first shortest path found.
func (s *Store) Path(ctx context.Context, from, to string, maxDepth int) ([]entities.Edge, error) {
	s.edgesMu.RLock()
	defer s.edgesMu.RUnlock()

	if from == to {
		return nil, nil
	}

	adjacency := make(map[string][]entities.Edge)
	for _, e := range s.edges {
		adjacency[e.FromNode.String()] = append(adjacency[e.FromNode.String()], e)
		if !e.Dynamics.Directional {
			reverse := e
			reverse.FromNode, reverse.ToNode = e.ToNode, e.FromNode
			adjacency[e.ToNode.String()] = append(adjacency[e.ToNode.String()], reverse)
		}
	}

	type frontierNode struct {
		nodeID string
		path   []entities.Edge
	}

	visited := map[string]bool{from: true}
	queue := []frontierNode{{nodeID: from, path: nil}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && len(current.path) >= maxDepth {
			continue
		}

		for _, edge := range adjacency[current.nodeID] {
			next := edge.ToNode.String()
			if visited[next] {
				continue
			}
			nextPath := append(append([]entities.Edge(nil), current.path...), edge)
			if next == to {
				return nextPath, nil
			}
			visited[next] = true
			queue = append(queue, frontierNode{nodeID: next, path: nextPath})
		}
	}
	return nil, nil
}
