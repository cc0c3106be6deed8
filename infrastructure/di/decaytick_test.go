package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"cortexgraph/decayengine"
	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/storage/memory"
)

func TestDecayTicker_RunOnce_WritesBackDecayedStrength(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	created, err := store.CreateNode(ctx, entities.Node{Kind: config.NodeKindConcept, Name: "old idea"})
	assert.NoError(t, err)

	old := time.Now().Add(-60 * 24 * time.Hour)
	_, err = store.UpdateNode(ctx, created.ID.String(), map[string]interface{}{
		"cognitive_state": map[string]interface{}{
			"strength":   1.0,
			"activation": 0.0,
			"confidence": 0.9,
		},
		"temporal": map[string]interface{}{
			"last_reinforced_at": old,
		},
	})
	assert.NoError(t, err)

	engine := decayengine.New(config.DefaultDecayConfig())
	ticker := NewDecayTicker(store, engine, zap.NewNop())

	// Act
	err = ticker.runOnce(ctx, time.Now())

	// Assert
	assert.NoError(t, err)
	updated, err := store.GetNode(ctx, created.ID.String())
	assert.NoError(t, err)
	assert.Less(t, updated.CognitiveState.Strength, 1.0)
}

func TestDecayTicker_RunOnce_EmptyStoreIsNoOp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	engine := decayengine.New(config.DefaultDecayConfig())
	ticker := NewDecayTicker(store, engine, zap.NewNop())

	// Act
	err := ticker.runOnce(ctx, time.Now())

	// Assert
	assert.NoError(t, err)
}
