package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"cortexgraph/domain/config"
)

// ProposalTarget is a tagged union keyed by AgentProposal.Action: each
// action gets its own Go type implementing this marker interface
// instead of one struct carrying every field with a runtime switch.
type ProposalTarget interface {
	proposalTarget()
}

// CreateNodeTarget is the target of a create_node proposal: a full node
// value, not yet persisted.
type CreateNodeTarget struct {
	Node Node `json:"node"`
}

func (CreateNodeTarget) proposalTarget() {}

// UpdateNodeTarget is the target of an update_node proposal.
type UpdateNodeTarget struct {
	NodeID string                 `json:"node_id"`
	Patch  map[string]interface{} `json:"patch"`
}

func (UpdateNodeTarget) proposalTarget() {}

// CreateEdgeTarget is the target of a create_edge proposal.
type CreateEdgeTarget struct {
	Edge Edge `json:"edge"`
}

func (CreateEdgeTarget) proposalTarget() {}

// UpdateEdgeTarget is the target of an update_edge proposal.
type UpdateEdgeTarget struct {
	EdgeID string                 `json:"edge_id"`
	Patch  map[string]interface{} `json:"patch"`
}

func (UpdateEdgeTarget) proposalTarget() {}

// MergeNodesTarget is the target of a merge_nodes proposal: two node ids
// to be unioned into one canonical node.
type MergeNodesTarget struct {
	NodeA string `json:"node_a"`
	NodeB string `json:"node_b"`
}

func (MergeNodesTarget) proposalTarget() {}

// FlagConflictTarget is the target of a flag_conflict proposal.
type FlagConflictTarget struct {
	NodeA string `json:"node_a"`
	NodeB string `json:"node_b"`
}

func (FlagConflictTarget) proposalTarget() {}

// AgentProposal is a reversible, value-typed description of an intended
// graph mutation, authored by one of the five agents and owned
// exclusively by the orchestrator's proposal queue until executed.
type AgentProposal struct {
	ID        string                `json:"id"`
	AgentType config.AgentType      `json:"agent_type"`
	Action    config.ProposalAction `json:"action"`
	Target    ProposalTarget        `json:"target"`
	Reasoning string                `json:"reasoning"`
	Confidence float64              `json:"confidence"`
	Status    config.ProposalStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}

// proposalWire is the JSON-on-the-wire shape of AgentProposal: Target is
// serialized raw and decoded against Action, since Go interfaces carry no
// type tag of their own.
type proposalWire struct {
	ID         string                `json:"id"`
	AgentType  config.AgentType      `json:"agent_type"`
	Action     config.ProposalAction `json:"action"`
	Target     json.RawMessage       `json:"target"`
	Reasoning  string                `json:"reasoning"`
	Confidence float64               `json:"confidence"`
	Status     config.ProposalStatus `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}

// MarshalJSON implements json.Marshaler.
func (p AgentProposal) MarshalJSON() ([]byte, error) {
	target, err := json.Marshal(p.Target)
	if err != nil {
		return nil, err
	}
	return json.Marshal(proposalWire{
		ID:         p.ID,
		AgentType:  p.AgentType,
		Action:     p.Action,
		Target:     target,
		Reasoning:  p.Reasoning,
		Confidence: p.Confidence,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler, dispatching Target decoding
// on Action.
func (p *AgentProposal) UnmarshalJSON(data []byte) error {
	var wire proposalWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	target, err := decodeProposalTarget(wire.Action, wire.Target)
	if err != nil {
		return err
	}
	p.ID = wire.ID
	p.AgentType = wire.AgentType
	p.Action = wire.Action
	p.Target = target
	p.Reasoning = wire.Reasoning
	p.Confidence = wire.Confidence
	p.Status = wire.Status
	p.CreatedAt = wire.CreatedAt
	return nil
}

func decodeProposalTarget(action config.ProposalAction, raw json.RawMessage) (ProposalTarget, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch action {
	case config.ActionCreateNode:
		var t CreateNodeTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	case config.ActionUpdateNode:
		var t UpdateNodeTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	case config.ActionCreateEdge:
		var t CreateEdgeTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	case config.ActionUpdateEdge:
		var t UpdateEdgeTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	case config.ActionMergeNodes:
		var t MergeNodesTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	case config.ActionFlagConflict:
		var t FlagConflictTarget
		err := json.Unmarshal(raw, &t)
		return t, err
	default:
		return nil, fmt.Errorf("unknown proposal action %q", action)
	}
}
