// Package decayengine implements exponential strength decay,
// reinforcement, forgetting-time projection, vector decay and vector
// consolidation. The engine never writes to storage itself — it returns
// updated entities for the caller to persist rather than reaching into
// a repository from domain logic.
package decayengine

import (
	"math"
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
)

// Engine applies the decay law using a fixed DecayConfig.
type Engine struct {
	cfg config.DecayConfig
}

// New constructs a decay Engine.
func New(cfg config.DecayConfig) *Engine {
	return &Engine{cfg: cfg}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Strength computes the strength law at time now for a node:
//
//	strength(t) = clamp01(strength0 * exp(-lambda*dt) + foundationalBonus - volatilityPenalty)
func (e *Engine) Strength(node entities.Node, now time.Time) float64 {
	lambda := e.cfg.BaseLambda
	if node.CognitiveState.DecayRate > 0 {
		lambda = node.CognitiveState.DecayRate
	}
	dt := now.Sub(node.Temporal.LastReinforcedAt).Seconds()

	var foundationalBonus float64
	if node.Level.Abstraction < 0.3 {
		foundationalBonus = e.cfg.FoundationalBonus
	}
	volatilityPenalty := 0.5 * node.Level.Volatility

	raw := node.CognitiveState.Strength*math.Exp(-lambda*dt) + foundationalBonus - volatilityPenalty
	return clamp01(raw)
}

// ApplyDecay returns a copy of node with its strength updated to the
// value at now. It does not mutate last_reinforced_at: decay and
// reinforcement are distinct operators (see GLOSSARY).
func (e *Engine) ApplyDecay(node entities.Node, now time.Time) entities.Node {
	updated := node.Clone()
	updated.CognitiveState.Strength = e.Strength(node, now)
	updated.UpdatedAt = now
	return updated
}

// Reinforce raises a node's strength and activation on access.
func (e *Engine) Reinforce(node entities.Node, now time.Time) entities.Node {
	updated := node.Clone()
	updated.CognitiveState.Strength = clamp01(node.CognitiveState.Strength + e.cfg.ReinforcementBoost)
	updated.CognitiveState.Activation = clamp01(node.CognitiveState.Activation + 0.2)
	updated.Temporal.LastReinforcedAt = now
	if now.After(updated.Temporal.PeakRelevanceAt) {
		updated.Temporal.PeakRelevanceAt = now
	}
	updated.UpdatedAt = now
	return updated
}

// ForgettingTime returns the duration until strength drops below target
// tau, given the node's current strength and effective lambda. Returns 0
// when strength is already at or below tau.
func (e *Engine) ForgettingTime(node entities.Node, tau float64) time.Duration {
	if node.CognitiveState.Strength <= tau {
		return 0
	}
	lambda := e.cfg.BaseLambda
	if node.CognitiveState.DecayRate > 0 {
		lambda = node.CognitiveState.DecayRate
	}
	if lambda <= 0 {
		return 0
	}
	seconds := -math.Log(tau/node.CognitiveState.Strength) / lambda
	if seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// VectorDecayScore computes the decay score for a vector:
//
//	decayScore = clamp01(exp(-lambda*dt) + (abstraction_level==theory ? 0.2 : 0) + 0.1*confidence)
func (e *Engine) VectorDecayScore(vec entities.VectorPayload, now time.Time) float64 {
	dt := now.Sub(vec.CreatedAt).Seconds()
	score := math.Exp(-e.cfg.BaseLambda * dt)
	if vec.AbstractionLevel == config.AbstractionLevelTheory {
		score += 0.2
	}
	score += 0.1 * vec.Confidence
	return clamp01(score)
}

// ShouldRun implements the scheduler contract: now - lastRun >= interval.
func (e *Engine) ShouldRun(now, lastRun time.Time) bool {
	return now.Sub(lastRun) >= e.cfg.TickInterval
}

// RunPass applies the strength law to every node in nodes and returns the
// updated copies. It does not write to storage; the caller persists the
// result.
func (e *Engine) RunPass(nodes []entities.Node, now time.Time) []entities.Node {
	out := make([]entities.Node, len(nodes))
	for i, n := range nodes {
		out[i] = e.ApplyDecay(n, now)
	}
	return out
}
