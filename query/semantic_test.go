package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/storage/memory"
)

func TestQuery_RanksExactMatchFirst(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "attention mechanism"})
	assert.NoError(t, err)
	_, err = store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "attention"})
	assert.NoError(t, err)

	// Act
	resp, err := Query(ctx, store, Request{Query: "attention", Limit: 10})

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Results)
	assert.Equal(t, "attention", resp.Results[0].Name)
}

func TestQuery_FiltersByKind(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "gradient concept"})
	assert.NoError(t, err)
	_, err = store.CreateNode(ctx, entities.Node{Kind: config.NodeKindTool, Name: "gradient tool"})
	assert.NoError(t, err)

	// Act
	resp, err := Query(ctx, store, Request{Query: "gradient", Filters: Filters{Kinds: []config.NodeKind{config.NodeKindTool}}})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, config.NodeKindTool, resp.Results[0].Kind)
}

func TestQuery_NoMatchesExplainsEmptyResult(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()

	// Act
	resp, err := Query(ctx, store, Request{Query: "nonexistent"})

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Contains(t, resp.Explanation, "No concepts found")
}

func TestCompare_DetectsSimilaritiesAndDifferences(t *testing.T) {
	// Arrange
	domainA := "ml"
	a := entities.Node{
		Kind:           config.NodeKindConcept,
		Name:           "gradient descent",
		Level:          entities.Level{Difficulty: 0.5, Abstraction: 0.4},
		Domain:         &domainA,
		CognitiveState: entities.CognitiveState{Confidence: 0.9},
		RealWorld:      entities.RealWorld{UsedInProduction: true},
	}
	b := entities.Node{
		Kind:           config.NodeKindConcept,
		Name:           "stochastic gradient descent",
		Level:          entities.Level{Difficulty: 0.55, Abstraction: 0.45},
		Domain:         &domainA,
		CognitiveState: entities.CognitiveState{Confidence: 0.6},
		RealWorld:      entities.RealWorld{UsedInProduction: false},
	}

	// Act
	cmp := Compare(a, b)

	// Assert
	assert.Contains(t, cmp.Similarities, "same kind")
	assert.Contains(t, cmp.Similarities, "same domain")
	assert.Contains(t, cmp.Differences, "gradient descent has higher confidence")
	assert.Contains(t, cmp.Differences, "gradient descent is used in production")
}

func TestPrerequisites_TraversesUpToDepth(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	target, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "target"})
	mid, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "mid"})
	root, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "root"})
	_, err := store.CreateEdge(ctx, entities.Edge{FromNode: mid.ID, ToNode: target.ID, Relation: config.RelationRequires})
	assert.NoError(t, err)
	_, err = store.CreateEdge(ctx, entities.Edge{FromNode: root.ID, ToNode: mid.ID, Relation: config.RelationDependsOn})
	assert.NoError(t, err)

	// Act
	ids, err := Prerequisites(ctx, store, target.ID.String(), 2)

	// Assert
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{mid.ID.String(), root.ID.String()}, ids)
}

func TestPrerequisites_DepthOneStopsAtImmediatePredecessors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	target, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "target"})
	mid, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "mid"})
	root, _ := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "root"})
	_, err := store.CreateEdge(ctx, entities.Edge{FromNode: mid.ID, ToNode: target.ID, Relation: config.RelationRequires})
	assert.NoError(t, err)
	_, err = store.CreateEdge(ctx, entities.Edge{FromNode: root.ID, ToNode: mid.ID, Relation: config.RelationDependsOn})
	assert.NoError(t, err)

	// Act
	ids, err := Prerequisites(ctx, store, target.ID.String(), 1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{mid.ID.String()}, ids)
}
