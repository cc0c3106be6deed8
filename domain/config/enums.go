// Package config holds the fixed vocabularies and tunable knobs shared
// across the domain: node kinds, relation labels, tier/level enums, and
// the decay engine's configuration surface.
package config

// NodeKind enumerates the nine kinds a Node may take.
type NodeKind string

const (
	NodeKindConcept      NodeKind = "concept"
	NodeKindAlgorithm    NodeKind = "algorithm"
	NodeKindSystem       NodeKind = "system"
	NodeKindAPI          NodeKind = "api"
	NodeKindPaper        NodeKind = "paper"
	NodeKindTool         NodeKind = "tool"
	NodeKindFailureMode  NodeKind = "failure_mode"
	NodeKindOptimization NodeKind = "optimization"
	NodeKindAbstraction  NodeKind = "abstraction"
)

// NodeKinds lists every valid NodeKind in canonical order.
var NodeKinds = []NodeKind{
	NodeKindConcept, NodeKindAlgorithm, NodeKindSystem, NodeKindAPI,
	NodeKindPaper, NodeKindTool, NodeKindFailureMode, NodeKindOptimization,
	NodeKindAbstraction,
}

// IsValid reports whether k is one of the nine recognized kinds.
func (k NodeKind) IsValid() bool {
	for _, v := range NodeKinds {
		if v == k {
			return true
		}
	}
	return false
}

// RelationType enumerates the 19 fixed edge relation labels.
type RelationType string

const (
	RelationDependsOn            RelationType = "depends_on"
	RelationAbstracts            RelationType = "abstracts"
	RelationImplements           RelationType = "implements"
	RelationReplaces             RelationType = "replaces"
	RelationSuppresses           RelationType = "suppresses"
	RelationInterferesWith       RelationType = "interferes_with"
	RelationRequiresForDebugging RelationType = "requires_for_debugging"
	RelationOptimizes            RelationType = "optimizes"
	RelationCausesFailureIn      RelationType = "causes_failure_in"
	RelationUses                 RelationType = "uses"
	RelationImproves             RelationType = "improves"
	RelationGeneralizes          RelationType = "generalizes"
	RelationSpecializes          RelationType = "specializes"
	RelationRequires             RelationType = "requires"
	RelationFailsOn              RelationType = "fails_on"
	RelationIntroducedIn         RelationType = "introduced_in"
	RelationEvaluatedOn          RelationType = "evaluated_on"
	RelationCompetesWith         RelationType = "competes_with"
	RelationDerivedFrom          RelationType = "derived_from"
)

// RelationTypes lists all 19 recognized relations.
var RelationTypes = []RelationType{
	RelationDependsOn, RelationAbstracts, RelationImplements, RelationReplaces,
	RelationSuppresses, RelationInterferesWith, RelationRequiresForDebugging,
	RelationOptimizes, RelationCausesFailureIn, RelationUses, RelationImproves,
	RelationGeneralizes, RelationSpecializes, RelationRequires, RelationFailsOn,
	RelationIntroducedIn, RelationEvaluatedOn, RelationCompetesWith,
	RelationDerivedFrom,
}

// IsValid reports whether r is one of the 19 recognized relations.
func (r RelationType) IsValid() bool {
	for _, v := range RelationTypes {
		if v == r {
			return true
		}
	}
	return false
}

// PrerequisiteRelations are the relations the prerequisite API
// (query.Prerequisites) follows backwards from a target node. Curriculum
// traversal follows only requires and depends_on.
var PrerequisiteRelations = map[RelationType]bool{
	RelationRequires:             true,
	RelationDependsOn:            true,
	RelationRequiresForDebugging: true,
}

// SourceTier is the four-level provenance ranking, T1 highest.
type SourceTier string

const (
	SourceTierT1 SourceTier = "T1"
	SourceTierT2 SourceTier = "T2"
	SourceTierT3 SourceTier = "T3"
	SourceTierT4 SourceTier = "T4"
)

var SourceTiers = []SourceTier{SourceTierT1, SourceTierT2, SourceTierT3, SourceTierT4}

func (t SourceTier) IsValid() bool {
	for _, v := range SourceTiers {
		if v == t {
			return true
		}
	}
	return false
}

// AbstractionLevel is the four-level vector/chunk abstraction axis.
type AbstractionLevel string

const (
	AbstractionLevelTheory    AbstractionLevel = "theory"
	AbstractionLevelMath      AbstractionLevel = "math"
	AbstractionLevelIntuition AbstractionLevel = "intuition"
	AbstractionLevelCode      AbstractionLevel = "code"
)

var AbstractionLevels = []AbstractionLevel{
	AbstractionLevelTheory, AbstractionLevelMath, AbstractionLevelIntuition, AbstractionLevelCode,
}

func (a AbstractionLevel) IsValid() bool {
	for _, v := range AbstractionLevels {
		if v == a {
			return true
		}
	}
	return false
}

// EmbeddingType enumerates the six labels a VectorPayload may carry.
type EmbeddingType string

const (
	EmbeddingTypeConceptEmbedding  EmbeddingType = "concept_embedding"
	EmbeddingTypeMethodExplanation EmbeddingType = "method_explanation"
	EmbeddingTypePaperClaim        EmbeddingType = "paper_claim"
	EmbeddingTypeFailureCase       EmbeddingType = "failure_case"
	EmbeddingTypeCodePattern       EmbeddingType = "code_pattern"
	EmbeddingTypeComparison        EmbeddingType = "comparison"
)

var EmbeddingTypes = []EmbeddingType{
	EmbeddingTypeConceptEmbedding, EmbeddingTypeMethodExplanation, EmbeddingTypePaperClaim,
	EmbeddingTypeFailureCase, EmbeddingTypeCodePattern, EmbeddingTypeComparison,
}

func (e EmbeddingType) IsValid() bool {
	for _, v := range EmbeddingTypes {
		if v == e {
			return true
		}
	}
	return false
}

// ClaimType enumerates a document chunk's claim classification.
type ClaimType string

const (
	ClaimTypeDefinition ClaimType = "definition"
	ClaimTypeMethod     ClaimType = "method"
	ClaimTypeResult     ClaimType = "result"
	ClaimTypeLimitation ClaimType = "limitation"
	ClaimTypeAssumption ClaimType = "assumption"
	ClaimTypeUnknown    ClaimType = "unknown"
)

var ClaimTypes = []ClaimType{
	ClaimTypeDefinition, ClaimTypeMethod, ClaimTypeResult,
	ClaimTypeLimitation, ClaimTypeAssumption, ClaimTypeUnknown,
}

// AgentType enumerates the five agents that can author a proposal.
type AgentType string

const (
	AgentTypeIngestion    AgentType = "ingestion"
	AgentTypeAlignment    AgentType = "alignment"
	AgentTypeContradiction AgentType = "contradiction"
	AgentTypeCurriculum   AgentType = "curriculum"
	AgentTypeResearch     AgentType = "research"
)

// ProposalAction enumerates the six action kinds a proposal may carry.
type ProposalAction string

const (
	ActionCreateNode   ProposalAction = "create_node"
	ActionUpdateNode   ProposalAction = "update_node"
	ActionCreateEdge   ProposalAction = "create_edge"
	ActionUpdateEdge   ProposalAction = "update_edge"
	ActionMergeNodes   ProposalAction = "merge_nodes"
	ActionFlagConflict ProposalAction = "flag_conflict"
)

// ProposalStatus enumerates the three states a proposal's lifecycle visits.
// Transitions are monotonic: proposed -> approved or proposed -> rejected.
type ProposalStatus string

const (
	ProposalStatusProposed ProposalStatus = "proposed"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// StorageType enumerates the recognized STORAGE_TYPE environment values.
type StorageType string

const (
	StorageTypeMemory    StorageType = "memory"
	StorageTypeGraph     StorageType = "graph"
	StorageTypeVector    StorageType = "vector"
	StorageTypeHybrid    StorageType = "hybrid"
	StorageTypeExternal1 StorageType = "external1"
	StorageTypeExternal2 StorageType = "external2"
)
