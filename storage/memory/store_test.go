package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	apperrors "cortexgraph/pkg/errors"
)

func newTestNode(name string) entities.Node {
	return entities.Node{
		Kind:        config.NodeKindConcept,
		Name:        name,
		Description: "a test node",
	}
}

func TestStore_CreateNode_AssignsIDAndTimestamps(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	n := newTestNode("gradient descent")

	// Act
	created, err := s.CreateNode(ctx, n)

	// Assert
	assert.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.Equal(t, "gradient descent", created.Name)
}

func TestStore_CreateNode_ConflictOnDuplicateID(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	n := newTestNode("backpropagation")
	created, err := s.CreateNode(ctx, n)
	assert.NoError(t, err)

	// Act
	_, err = s.CreateNode(ctx, created)

	// Assert
	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestStore_GetNode_RoundTrip(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	created, err := s.CreateNode(ctx, newTestNode("attention"))
	assert.NoError(t, err)

	// Act
	fetched, err := s.GetNode(ctx, created.ID.String())

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
}

func TestStore_GetNode_MissingReturnsNil(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()

	// Act
	fetched, err := s.GetNode(ctx, "does-not-exist")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestStore_UpdateNode_MergesPatchAndPreservesIdentity(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	created, err := s.CreateNode(ctx, newTestNode("transformer"))
	assert.NoError(t, err)

	patch := map[string]interface{}{
		"description": "an updated description",
		"cognitive_state": map[string]interface{}{
			"strength":   0.8,
			"activation": 0.5,
			"decay_rate": 0.01,
			"confidence": 0.9,
		},
	}

	// Act
	updated, err := s.UpdateNode(ctx, created.ID.String(), patch)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	assert.Equal(t, "an updated description", updated.Description)
	assert.Equal(t, 0.8, updated.CognitiveState.Strength)
}

func TestStore_UpdateNode_NotFound(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()

	// Act
	_, err := s.UpdateNode(ctx, "missing", map[string]interface{}{"name": "x"})

	// Assert
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_DeleteNode_CascadesIncidentEdges(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	a, err := s.CreateNode(ctx, newTestNode("a"))
	assert.NoError(t, err)
	b, err := s.CreateNode(ctx, newTestNode("b"))
	assert.NoError(t, err)
	edge := entities.Edge{FromNode: a.ID, ToNode: b.ID, Relation: config.RelationDependsOn}
	createdEdge, err := s.CreateEdge(ctx, edge)
	assert.NoError(t, err)

	// Act
	deleted, err := s.DeleteNode(ctx, a.ID.String())

	// Assert
	assert.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := s.GetEdge(ctx, createdEdge.ID.String())
	assert.NoError(t, err)
	assert.Nil(t, remaining)
}

func TestStore_CreateEdge_RequiresBothEndpointsToExist(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	a, err := s.CreateNode(ctx, newTestNode("a"))
	assert.NoError(t, err)

	// Act: to_node does not exist
	_, err = s.CreateEdge(ctx, entities.Edge{
		FromNode: a.ID,
		ToNode:   mustNodeID("missing-node"),
		Relation: config.RelationDependsOn,
	})

	// Assert
	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestStore_BulkCreateNodes_ReturnsPrefixOfSuccessesOnFailure(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	first, err := s.CreateNode(ctx, newTestNode("already-exists"))
	assert.NoError(t, err)

	// second node collides with an existing id, third would otherwise succeed
	batch := []entities.Node{
		newTestNode("fresh-one"),
		first,
		newTestNode("fresh-two"),
	}

	// Act
	ids, err := s.BulkCreateNodes(ctx, batch)

	// Assert: insertion stops at the colliding node, so only the first
	// node's id is returned, alongside the error.
	assert.Error(t, err)
	assert.Len(t, ids, 1)
}

func TestStore_BulkCreateEdges_ReturnsPrefixOfSuccessesOnFailure(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	a, err := s.CreateNode(ctx, newTestNode("a"))
	assert.NoError(t, err)
	b, err := s.CreateNode(ctx, newTestNode("b"))
	assert.NoError(t, err)

	batch := []entities.Edge{
		{FromNode: a.ID, ToNode: b.ID, Relation: config.RelationDependsOn},
		{FromNode: a.ID, ToNode: mustNodeID("missing"), Relation: config.RelationUses},
	}

	// Act
	ids, err := s.BulkCreateEdges(ctx, batch)

	// Assert
	assert.Error(t, err)
	assert.Len(t, ids, 1)
}

func TestStore_ListNodes_PaginatesMostRecentFirst(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.CreateNode(ctx, newTestNode("node"))
		assert.NoError(t, err)
	}

	// Act
	page, err := s.ListNodes(ctx, 1, 2)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
}

func TestStore_SearchNodesByText_ExactNameRanksFirst(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	_, err := s.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "cache", Description: "memoizes results"})
	assert.NoError(t, err)
	_, err = s.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "lru cache policy", Description: "a cache eviction strategy"})
	assert.NoError(t, err)

	// Act
	results, err := s.SearchNodesByText(ctx, "cache", 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "cache", results[0].Name)
}

func TestStore_Path_FindsShortestRoute(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	a, _ := s.CreateNode(ctx, newTestNode("a"))
	b, _ := s.CreateNode(ctx, newTestNode("b"))
	c, _ := s.CreateNode(ctx, newTestNode("c"))
	_, err := s.CreateEdge(ctx, entities.Edge{FromNode: a.ID, ToNode: b.ID, Relation: config.RelationDependsOn})
	assert.NoError(t, err)
	_, err = s.CreateEdge(ctx, entities.Edge{FromNode: b.ID, ToNode: c.ID, Relation: config.RelationDependsOn})
	assert.NoError(t, err)

	// Act
	path, err := s.Path(ctx, a.ID.String(), c.ID.String(), 5)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, path, 2)
}

func TestStore_Path_NoRouteReturnsEmpty(t *testing.T) {
	// Arrange
	s := New()
	ctx := context.Background()
	a, _ := s.CreateNode(ctx, newTestNode("isolated-a"))
	b, _ := s.CreateNode(ctx, newTestNode("isolated-b"))

	// Act
	path, err := s.Path(ctx, a.ID.String(), b.ID.String(), 5)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func mustNodeID(s string) valueobjects.NodeID {
	id, _ := valueobjects.NewNodeIDFromString(s)
	return id
}
