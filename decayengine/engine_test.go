package decayengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
)

func TestEngine_Strength_DecaysOverTime(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	node := entities.Node{
		CognitiveState: entities.CognitiveState{Strength: 1.0},
		Temporal:       entities.Temporal{LastReinforcedAt: now.Add(-30 * 24 * time.Hour)},
		Level:          entities.Level{Abstraction: 0.5},
	}

	// Act
	strength := engine.Strength(node, now)

	// Assert: one 30-day half-life should land near 0.5, allowing for the
	// foundational bonus/volatility terms being zero in this fixture.
	assert.InDelta(t, 0.5, strength, 0.05)
}

func TestEngine_Strength_NeverGoesBelowZeroOrAboveOne(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	node := entities.Node{
		CognitiveState: entities.CognitiveState{Strength: 1.0},
		Temporal:       entities.Temporal{LastReinforcedAt: now.Add(-365 * 24 * time.Hour)},
		Level:          entities.Level{Volatility: 1.0},
	}

	// Act
	strength := engine.Strength(node, now)

	// Assert
	assert.GreaterOrEqual(t, strength, 0.0)
	assert.LessOrEqual(t, strength, 1.0)
}

func TestEngine_ApplyDecay_DoesNotMutateReinforcementTime(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	reinforcedAt := now.Add(-10 * 24 * time.Hour)
	node := entities.Node{
		CognitiveState: entities.CognitiveState{Strength: 0.9},
		Temporal:       entities.Temporal{LastReinforcedAt: reinforcedAt},
		Level:          entities.Level{Abstraction: 0.5},
	}

	// Act
	updated := engine.ApplyDecay(node, now)

	// Assert
	assert.Equal(t, reinforcedAt, updated.Temporal.LastReinforcedAt)
	assert.Less(t, updated.CognitiveState.Strength, node.CognitiveState.Strength)
}

func TestEngine_Reinforce_RaisesStrengthAndActivation(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	node := entities.Node{
		CognitiveState: entities.CognitiveState{Strength: 0.4, Activation: 0.1},
		Temporal:       entities.Temporal{LastReinforcedAt: now.Add(-48 * time.Hour)},
	}

	// Act
	updated := engine.Reinforce(node, now)

	// Assert
	assert.Greater(t, updated.CognitiveState.Strength, node.CognitiveState.Strength)
	assert.Greater(t, updated.CognitiveState.Activation, node.CognitiveState.Activation)
	assert.Equal(t, now, updated.Temporal.LastReinforcedAt)
}

func TestEngine_Reinforce_ClampsStrengthToOne(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	node := entities.Node{CognitiveState: entities.CognitiveState{Strength: 0.95, Activation: 0.95}}

	// Act
	updated := engine.Reinforce(node, now)

	// Assert
	assert.LessOrEqual(t, updated.CognitiveState.Strength, 1.0)
	assert.LessOrEqual(t, updated.CognitiveState.Activation, 1.0)
}

func TestEngine_ForgettingTime_ZeroWhenAlreadyBelowTau(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	node := entities.Node{CognitiveState: entities.CognitiveState{Strength: 0.1}}

	// Act
	d := engine.ForgettingTime(node, 0.2)

	// Assert
	assert.Equal(t, time.Duration(0), d)
}

func TestEngine_ForgettingTime_PositiveWhenAboveTau(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	node := entities.Node{CognitiveState: entities.CognitiveState{Strength: 0.9}}

	// Act
	d := engine.ForgettingTime(node, 0.3)

	// Assert
	assert.Greater(t, d, time.Duration(0))
}

func TestEngine_VectorDecayScore_TheoryGetsBonus(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	created := now.Add(-60 * 24 * time.Hour)
	theory := entities.VectorPayload{CreatedAt: created, AbstractionLevel: config.AbstractionLevelTheory, Confidence: 0.5}
	code := entities.VectorPayload{CreatedAt: created, AbstractionLevel: config.AbstractionLevelCode, Confidence: 0.5}

	// Act
	theoryScore := engine.VectorDecayScore(theory, now)
	codeScore := engine.VectorDecayScore(code, now)

	// Assert
	assert.Greater(t, theoryScore, codeScore)
}

func TestEngine_ShouldRun_RespectsTickInterval(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	cfg.TickInterval = time.Hour
	engine := New(cfg)
	now := time.Now().UTC()

	// Act + Assert
	assert.False(t, engine.ShouldRun(now, now.Add(-30*time.Minute)))
	assert.True(t, engine.ShouldRun(now, now.Add(-90*time.Minute)))
}

func TestEngine_RunPass_UpdatesEveryNode(t *testing.T) {
	// Arrange
	cfg := config.DefaultDecayConfig()
	engine := New(cfg)
	now := time.Now().UTC()
	nodes := []entities.Node{
		{CognitiveState: entities.CognitiveState{Strength: 1.0}, Temporal: entities.Temporal{LastReinforcedAt: now.Add(-60 * 24 * time.Hour)}},
		{CognitiveState: entities.CognitiveState{Strength: 1.0}, Temporal: entities.Temporal{LastReinforcedAt: now}},
	}

	// Act
	out := engine.RunPass(nodes, now)

	// Assert
	assert.Len(t, out, 2)
	assert.Less(t, out[0].CognitiveState.Strength, 1.0)
	assert.InDelta(t, 1.0, out[1].CognitiveState.Strength, 0.01)
}

func TestCluster_GroupsSimilarVectorsBySingleLinkage(t *testing.T) {
	// Arrange
	vectors := []entities.VectorPayload{
		{Embedding: []float64{1, 0, 0}},
		{Embedding: []float64{0.99, 0.01, 0}},
		{Embedding: []float64{0, 1, 0}},
	}

	// Act
	clusters := Cluster(vectors, 0.9)

	// Assert
	assert.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 2)
}

func TestConsolidate_SynthesizesMeanVectorAndAbstractionNode(t *testing.T) {
	// Arrange
	now := time.Now().UTC()
	cluster := []entities.VectorPayload{
		{Embedding: []float64{1, 1}, Confidence: 0.8, AbstractionLevel: config.AbstractionLevelCode, EntityRefs: []string{"n1"}},
		{Embedding: []float64{1, 1}, Confidence: 0.6, AbstractionLevel: config.AbstractionLevelCode, EntityRefs: []string{"n2"}},
	}

	// Act
	result := Consolidate(cluster, now)

	// Assert
	assert.Equal(t, []float64{1, 1}, result.SynthesizedVector.Embedding)
	assert.InDelta(t, 0.95*0.6, result.SynthesizedVector.Confidence, 0.001)
	assert.Equal(t, config.NodeKindAbstraction, result.ConceptNode.Kind)
	assert.ElementsMatch(t, []string{"n1", "n2"}, result.SynthesizedVector.EntityRefs)
}

func TestRunConsolidationPass_SkipsSingletonClusters(t *testing.T) {
	// Arrange
	now := time.Now().UTC()
	vectors := []entities.VectorPayload{
		{Embedding: []float64{1, 0}},
		{Embedding: []float64{0, 1}},
	}

	// Act
	results := RunConsolidationPass(vectors, 0.99, now)

	// Assert
	assert.Empty(t, results)
}
