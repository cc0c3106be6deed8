package entities

import (
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/valueobjects"
)

// EdgeWeight carries the three decay-engine-relevant scalars an edge
// tracks independently of its endpoints' node-level cognitive state.
type EdgeWeight struct {
	Strength          float64 `json:"strength"`
	DecayRate         float64 `json:"decay_rate"`
	ReinforcementRate float64 `json:"reinforcement_rate"`
}

// EdgeDynamics describes how an edge behaves during traversal and decay.
type EdgeDynamics struct {
	Inhibitory bool `json:"inhibitory"`
	Directional bool `json:"directional"`
}

// EdgeTemporal holds the two timestamps an edge tracks.
type EdgeTemporal struct {
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// Edge is a directed (when Dynamics.Directional) relation between two
// nodes, carrying its own weight, dynamics and confidence.
type Edge struct {
	ID       valueobjects.EdgeID `json:"id"`
	FromNode valueobjects.NodeID `json:"from_node"`
	ToNode   valueobjects.NodeID `json:"to_node"`
	Relation config.RelationType `json:"relation"`

	Weight   EdgeWeight   `json:"weight"`
	Dynamics EdgeDynamics `json:"dynamics"`
	Temporal EdgeTemporal `json:"temporal"`

	Confidence float64 `json:"confidence"`
	Conflicting bool    `json:"conflicting,omitempty"`
}

// Key returns the (from, to, relation) tuple used to deduplicate edges
// during merge execution.
func (e Edge) Key() string {
	return e.FromNode.String() + "|" + e.ToNode.String() + "|" + string(e.Relation)
}
