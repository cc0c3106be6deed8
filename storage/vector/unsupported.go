package vector

import (
	"context"

	"cortexgraph/domain/core/entities"
	cortexerrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// The vector backend has no node/edge graph model; every
// NodeStore/EdgeStore/BulkStore method returns NotSupported.

func (s *Store) CreateNode(ctx context.Context, node entities.Node) (entities.Node, error) {
	return entities.Node{}, cortexerrors.NewNotSupportedError("createNode on vector backend")
}
func (s *Store) GetNode(ctx context.Context, id string) (*entities.Node, error) {
	return nil, cortexerrors.NewNotSupportedError("getNode on vector backend")
}
func (s *Store) UpdateNode(ctx context.Context, id string, patch map[string]interface{}) (entities.Node, error) {
	return entities.Node{}, cortexerrors.NewNotSupportedError("updateNode on vector backend")
}
func (s *Store) DeleteNode(ctx context.Context, id string) (bool, error) {
	return false, cortexerrors.NewNotSupportedError("deleteNode on vector backend")
}
func (s *Store) ListNodes(ctx context.Context, page, limit int) (storage.Page[entities.Node], error) {
	return storage.Page[entities.Node]{}, cortexerrors.NewNotSupportedError("listNodes on vector backend")
}
func (s *Store) SearchNodesByText(ctx context.Context, query string, limit int) ([]entities.Node, error) {
	return nil, cortexerrors.NewNotSupportedError("searchNodesByText on vector backend")
}
func (s *Store) NodesByType(ctx context.Context, kind string, limit int) ([]entities.Node, error) {
	return nil, cortexerrors.NewNotSupportedError("nodesByType on vector backend")
}

func (s *Store) CreateEdge(ctx context.Context, edge entities.Edge) (entities.Edge, error) {
	return entities.Edge{}, cortexerrors.NewNotSupportedError("createEdge on vector backend")
}
func (s *Store) GetEdge(ctx context.Context, id string) (*entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("getEdge on vector backend")
}
func (s *Store) UpdateEdge(ctx context.Context, id string, patch map[string]interface{}) (entities.Edge, error) {
	return entities.Edge{}, cortexerrors.NewNotSupportedError("updateEdge on vector backend")
}
func (s *Store) DeleteEdge(ctx context.Context, id string) (bool, error) {
	return false, cortexerrors.NewNotSupportedError("deleteEdge on vector backend")
}
func (s *Store) ListEdges(ctx context.Context, page, limit int) (storage.Page[entities.Edge], error) {
	return storage.Page[entities.Edge]{}, cortexerrors.NewNotSupportedError("listEdges on vector backend")
}
func (s *Store) EdgesFrom(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("edgesFrom on vector backend")
}
func (s *Store) EdgesTo(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("edgesTo on vector backend")
}
func (s *Store) EdgesBetween(ctx context.Context, a, b string) ([]entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("edgesBetween on vector backend")
}
func (s *Store) EdgesByRelation(ctx context.Context, relation string) ([]entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("edgesByRelation on vector backend")
}
func (s *Store) Path(ctx context.Context, from, to string, maxDepth int) ([]entities.Edge, error) {
	return nil, cortexerrors.NewNotSupportedError("path on vector backend")
}

func (s *Store) BulkCreateNodes(ctx context.Context, nodes []entities.Node) ([]string, error) {
	return nil, cortexerrors.NewNotSupportedError("bulkCreateNodes on vector backend")
}
func (s *Store) BulkCreateEdges(ctx context.Context, edges []entities.Edge) ([]string, error) {
	return nil, cortexerrors.NewNotSupportedError("bulkCreateEdges on vector backend")
}

var _ storage.Store = (*Store)(nil)
