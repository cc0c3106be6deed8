package entities

import (
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/valueobjects"
)

// Level holds a node's three real-valued positioning axes.
type Level struct {
	Abstraction float64 `json:"abstraction"`
	Difficulty  float64 `json:"difficulty"`
	Volatility  float64 `json:"volatility"`
}

// CognitiveState is a node's temporal memory state: how strongly it is
// retained, how salient it currently is, and how reliable it is believed
// to be.
type CognitiveState struct {
	Strength   float64 `json:"strength"`
	Activation float64 `json:"activation"`
	DecayRate  float64 `json:"decay_rate"`
	Confidence float64 `json:"confidence"`
}

// Temporal holds the three timestamps a node tracks across its lifetime.
type Temporal struct {
	IntroducedAt    time.Time `json:"introduced_at"`
	LastReinforcedAt time.Time `json:"last_reinforced_at"`
	PeakRelevanceAt time.Time `json:"peak_relevance_at"`
}

// RealWorld captures a node's production-use signal.
type RealWorld struct {
	UsedInProduction    bool    `json:"used_in_production"`
	CompaniesUsing      int     `json:"companies_using"`
	AvgSalaryWeight     float64 `json:"avg_salary_weight"`
	InterviewFrequency  float64 `json:"interview_frequency"`
}

// Grounding is the two ordered source-reference sequences a node carries.
type Grounding struct {
	SourceRefs         []string `json:"source_refs"`
	ImplementationRefs []string `json:"implementation_refs"`
}

// FailureSurface links a node to known bugs and misconceptions, by id.
type FailureSurface struct {
	CommonBugs     []string `json:"common_bugs"`
	Misconceptions []string `json:"misconceptions"`
}

// Node is the central entity of the knowledge graph: a concept, algorithm,
// system, or other cognitive unit with temporal decay state.
//
// Node is a plain exported struct rather than a private-field aggregate:
// the storage contract requires value-typed round trips
// (get(create(n).id) must equal n up to server timestamps), which private
// fields and constructor-only mutation would make awkward to guarantee
// across backend boundaries.
type Node struct {
	ID          valueobjects.NodeID `json:"id"`
	Kind        config.NodeKind     `json:"kind"`
	Name        string              `json:"name"`
	Description string              `json:"description"`

	Level          Level          `json:"level"`
	CognitiveState CognitiveState `json:"cognitive_state"`
	Temporal       Temporal       `json:"temporal"`
	RealWorld      RealWorld      `json:"real_world"`
	Grounding      Grounding      `json:"grounding"`
	FailureSurface FailureSurface `json:"failure_surface"`

	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	CanonicalName        *string  `json:"canonical_name,omitempty"`
	FirstAppearanceYear *int      `json:"first_appearance_year,omitempty"`
	Domain              *string   `json:"domain,omitempty"`

	// Embedding is an optional, caller-supplied vector carried alongside
	// a node on creation. The hybrid composer (storage/hybrid) peels it
	// off and writes it to the vector backend; graph-only and memory
	// backends simply persist it as part of the node.
	Embedding []float64 `json:"embedding,omitempty"`
}

// Clone returns a deep-enough copy for safe storage-layer round trips:
// slice fields are copied so callers cannot mutate a stored node through
// a returned reference.
func (n Node) Clone() Node {
	clone := n
	clone.Grounding.SourceRefs = append([]string(nil), n.Grounding.SourceRefs...)
	clone.Grounding.ImplementationRefs = append([]string(nil), n.Grounding.ImplementationRefs...)
	clone.FailureSurface.CommonBugs = append([]string(nil), n.FailureSurface.CommonBugs...)
	clone.FailureSurface.Misconceptions = append([]string(nil), n.FailureSurface.Misconceptions...)
	clone.Embedding = append([]float64(nil), n.Embedding...)
	return clone
}
