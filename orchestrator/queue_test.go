package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage/memory"
)

func TestQueue_Enqueue_AutoApprovesAboveThreshold(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	node, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "existing"})
	assert.NoError(t, err)
	queue := New(store, DefaultConfig(), zap.NewNop())

	proposal := entities.AgentProposal{
		ID:        valueobjects.NewID(),
		AgentType: config.AgentTypeCurriculum,
		Action:    config.ActionUpdateNode,
		Target:    entities.UpdateNodeTarget{NodeID: node.ID.String(), Patch: map[string]interface{}{"description": "updated"}},
		Confidence: 0.99,
		Status:    config.ProposalStatusProposed,
		CreatedAt: time.Now().UTC(),
	}

	// Act
	result := queue.Enqueue(ctx, proposal)

	// Assert
	assert.Equal(t, config.ProposalStatusApproved, result.Status)
	updated, err := store.GetNode(ctx, node.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)
}

func TestQueue_Enqueue_LeavesBelowThresholdProposed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	queue := New(store, DefaultConfig(), zap.NewNop())

	proposal := entities.AgentProposal{
		ID:         valueobjects.NewID(),
		AgentType:  config.AgentTypeResearch,
		Action:     config.ActionFlagConflict,
		Target:     entities.FlagConflictTarget{NodeA: "a", NodeB: "b"},
		Confidence: 0.6,
		Status:     config.ProposalStatusProposed,
		CreatedAt:  time.Now().UTC(),
	}

	// Act
	result := queue.Enqueue(ctx, proposal)

	// Assert
	assert.Equal(t, config.ProposalStatusProposed, result.Status)
}

func TestQueue_Enqueue_RejectsOnExecutionFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	queue := New(store, DefaultConfig(), zap.NewNop())

	proposal := entities.AgentProposal{
		ID:         valueobjects.NewID(),
		AgentType:  config.AgentTypeCurriculum,
		Action:     config.ActionUpdateNode,
		Target:     entities.UpdateNodeTarget{NodeID: "does-not-exist", Patch: map[string]interface{}{}},
		Confidence: 0.99,
		Status:     config.ProposalStatusProposed,
		CreatedAt:  time.Now().UTC(),
	}

	// Act
	result := queue.Enqueue(ctx, proposal)

	// Assert
	assert.Equal(t, config.ProposalStatusRejected, result.Status)
	assert.Contains(t, result.Reasoning, "execution failed")
}

func TestQueue_Approve_ManuallyApprovesAProposedProposal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	a, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "a", CognitiveState: entities.CognitiveState{Confidence: 0.4}})
	assert.NoError(t, err)
	b, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "b", CognitiveState: entities.CognitiveState{Confidence: 0.9}})
	assert.NoError(t, err)
	queue := New(store, DefaultConfig(), zap.NewNop())

	proposal := entities.AgentProposal{
		ID:         valueobjects.NewID(),
		AgentType:  config.AgentTypeAlignment,
		Action:     config.ActionMergeNodes,
		Target:     entities.MergeNodesTarget{NodeA: a.ID.String(), NodeB: b.ID.String()},
		Confidence: 0.5,
		Status:     config.ProposalStatusProposed,
		CreatedAt:  time.Now().UTC(),
	}
	enqueued := queue.Enqueue(ctx, proposal)
	assert.Equal(t, config.ProposalStatusProposed, enqueued.Status)

	// Act
	approved, ok := queue.Approve(ctx, enqueued.ID)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, config.ProposalStatusApproved, approved.Status)

	remaining, err := store.GetNode(ctx, a.ID.String())
	assert.NoError(t, err)
	assert.Nil(t, remaining)
	canonical, err := store.GetNode(ctx, b.ID.String())
	assert.NoError(t, err)
	assert.NotNil(t, canonical)
}

func TestQueue_Reject_DoesNotExecute(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	queue := New(store, DefaultConfig(), zap.NewNop())

	proposal := entities.AgentProposal{
		ID:         valueobjects.NewID(),
		AgentType:  config.AgentTypeResearch,
		Action:     config.ActionFlagConflict,
		Target:     entities.FlagConflictTarget{NodeA: "a", NodeB: "b"},
		Confidence: 0.5,
		Status:     config.ProposalStatusProposed,
		CreatedAt:  time.Now().UTC(),
	}
	queue.Enqueue(ctx, proposal)

	// Act
	rejected, ok := queue.Reject(proposal.ID, "not relevant")

	// Assert
	assert.True(t, ok)
	assert.Equal(t, config.ProposalStatusRejected, rejected.Status)
	assert.Equal(t, "not relevant", rejected.Reasoning)
}

func TestQueue_ByStatus_FiltersInInsertionOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	queue := New(store, DefaultConfig(), zap.NewNop())

	p1 := entities.AgentProposal{ID: "p1", Action: config.ActionFlagConflict, Target: entities.FlagConflictTarget{NodeA: "a", NodeB: "b"}, Confidence: 0.5, Status: config.ProposalStatusProposed, CreatedAt: time.Now().UTC()}
	p2 := entities.AgentProposal{ID: "p2", Action: config.ActionFlagConflict, Target: entities.FlagConflictTarget{NodeA: "c", NodeB: "d"}, Confidence: 0.5, Status: config.ProposalStatusProposed, CreatedAt: time.Now().UTC()}
	queue.Enqueue(ctx, p1)
	queue.Enqueue(ctx, p2)

	// Act
	proposed := queue.ByStatus(config.ProposalStatusProposed)

	// Assert
	assert.Len(t, proposed, 2)
	assert.Equal(t, "p1", proposed[0].ID)
	assert.Equal(t, "p2", proposed[1].ID)
}

func TestExecuteFlagConflict_CreatesInhibitoryConflictingEdge(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	a, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "a"})
	assert.NoError(t, err)
	b, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "b"})
	assert.NoError(t, err)

	proposal := entities.AgentProposal{
		ID:         valueobjects.NewID(),
		Action:     config.ActionFlagConflict,
		Target:     entities.FlagConflictTarget{NodeA: a.ID.String(), NodeB: b.ID.String()},
		Confidence: 0.8,
		Status:     config.ProposalStatusProposed,
		CreatedAt:  time.Now().UTC(),
	}

	// Act
	err = execute(ctx, store, proposal)

	// Assert
	assert.NoError(t, err)
	edges, err := store.EdgesFrom(ctx, a.ID.String())
	assert.NoError(t, err)
	assert.Len(t, edges, 1)
	assert.True(t, edges[0].Dynamics.Inhibitory)
	assert.True(t, edges[0].Conflicting)
	assert.Equal(t, config.RelationCompetesWith, edges[0].Relation)
}
