// Package memory is the in-process reference backend: four maps keyed
// by id, a linear-scan text search, and breadth-first path finding.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	apperrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// Store is the in-memory backend. Each entity kind is guarded by its own
// RWMutex so concurrent readers never block each other and a writer on
// nodes never blocks a writer on edges.
type Store struct {
	nodesMu sync.RWMutex
	nodes   map[string]entities.Node

	edgesMu sync.RWMutex
	edges   map[string]entities.Edge

	vectorsMu  sync.RWMutex
	vectors    map[string]entities.VectorPayload

	chunksMu sync.RWMutex
	chunks   map[string]entities.DocumentChunk
}

// New constructs an empty in-memory Store.
func New() *Store {
	return &Store{
		nodes:   make(map[string]entities.Node),
		edges:   make(map[string]entities.Edge),
		vectors: make(map[string]entities.VectorPayload),
		chunks:  make(map[string]entities.DocumentChunk),
	}
}

var _ storage.Store = (*Store)(nil)

// Initialize is a no-op for the in-memory backend.
func (s *Store) Initialize(ctx context.Context) error { return nil }

// Disconnect is a no-op for the in-memory backend.
func (s *Store) Disconnect(ctx context.Context) error { return nil }

// HealthCheck always reports healthy: there is no external dependency.
func (s *Store) HealthCheck(ctx context.Context) (bool, error) { return true, nil }

// CreateNode inserts a new node, failing with Conflict if the id exists.
func (s *Store) CreateNode(ctx context.Context, node entities.Node) (entities.Node, error) {
	s.nodesMu.Lock()
	defer s.nodesMu.Unlock()

	if node.ID.IsZero() {
		node.ID = valueobjects.NewNodeID()
	}
	if _, exists := s.nodes[node.ID.String()]; exists {
		return entities.Node{}, apperrors.NewConflictError("node " + node.ID.String() + " already exists")
	}
	now := time.Now().UTC()
	node.CreatedAt = now
	node.UpdatedAt = now
	s.nodes[node.ID.String()] = node.Clone()
	return node.Clone(), nil
}

// GetNode returns the node for id, or nil if absent.
func (s *Store) GetNode(ctx context.Context, id string) (*entities.Node, error) {
	s.nodesMu.RLock()
	defer s.nodesMu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	clone := n.Clone()
	return &clone, nil
}

// UpdateNode applies patch fields onto the stored node, preserving id and
// created_at, and setting updated_at.
func (s *Store) UpdateNode(ctx context.Context, id string, patch map[string]interface{}) (entities.Node, error) {
	s.nodesMu.Lock()
	defer s.nodesMu.Unlock()

	existing, ok := s.nodes[id]
	if !ok {
		return entities.Node{}, apperrors.NewNotFoundError("node " + id)
	}
	updated := applyNodePatch(existing, patch)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	s.nodes[id] = updated.Clone()
	return updated.Clone(), nil
}

// DeleteNode removes a node and cascades to every incident edge.
func (s *Store) DeleteNode(ctx context.Context, id string) (bool, error) {
	s.nodesMu.Lock()
	_, existed := s.nodes[id]
	if existed {
		delete(s.nodes, id)
	}
	s.nodesMu.Unlock()

	if !existed {
		return false, nil
	}

	s.edgesMu.Lock()
	for eid, e := range s.edges {
		if e.FromNode.String() == id || e.ToNode.String() == id {
			delete(s.edges, eid)
		}
	}
	s.edgesMu.Unlock()

	return true, nil
}

// ListNodes returns a page of nodes ordered by created_at descending.
func (s *Store) ListNodes(ctx context.Context, page, limit int) (storage.Page[entities.Node], error) {
	s.nodesMu.RLock()
	defer s.nodesMu.RUnlock()

	all := make([]entities.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page, limit), nil
}

// SearchNodesByText is a case-insensitive substring scan over name,
// description and canonical_name; exact name matches sort first,
// description-only matches sort last.
func (s *Store) SearchNodesByText(ctx context.Context, query string, limit int) ([]entities.Node, error) {
	s.nodesMu.RLock()
	defer s.nodesMu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	type scored struct {
		node entities.Node
		rank int
	}
	var matches []scored
	for _, n := range s.nodes {
		name := strings.ToLower(n.Name)
		desc := strings.ToLower(n.Description)
		canonical := ""
		if n.CanonicalName != nil {
			canonical = strings.ToLower(*n.CanonicalName)
		}
		switch {
		case name == q:
			matches = append(matches, scored{n, 0})
		case strings.Contains(name, q) || strings.Contains(canonical, q):
			matches = append(matches, scored{n, 1})
		case strings.Contains(desc, q):
			matches = append(matches, scored{n, 2})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].rank < matches[j].rank })
	out := make([]entities.Node, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.node)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// NodesByType filters nodes to an exact kind match.
func (s *Store) NodesByType(ctx context.Context, kind string, limit int) ([]entities.Node, error) {
	s.nodesMu.RLock()
	defer s.nodesMu.RUnlock()

	var out []entities.Node
	for _, n := range s.nodes {
		if string(n.Kind) == kind {
			out = append(out, n)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

