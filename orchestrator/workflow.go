package orchestrator

import (
	"context"
	"time"

	"cortexgraph/agents"
	"cortexgraph/domain/config"
)

// WorkflowResult reports proposals generated versus proposals
// auto-approved by one unattended maintenance sweep.
type WorkflowResult struct {
	Generated    int
	AutoApproved int
}

// RunFullWorkflow runs Alignment, Contradiction and Research (in that
// order) over the current storage snapshot, enqueues every proposal
// they produce, and lets Enqueue's auto-approval path run inline.
// Curriculum is excluded: it requires a caller-supplied target and
// known-id set, so it has no place in an unattended maintenance sweep.
func (q *Queue) RunFullWorkflow(ctx context.Context, alignCfg agents.AlignmentConfig, now time.Time) (WorkflowResult, error) {
	var result WorkflowResult

	alignProposals, err := agents.Alignment(ctx, q.store, alignCfg, now)
	if err != nil {
		return result, err
	}
	result.Generated += len(alignProposals)
	for _, p := range q.EnqueueAll(ctx, alignProposals) {
		if p.Status == config.ProposalStatusApproved {
			result.AutoApproved++
		}
	}

	contradictionProposals, err := agents.Contradiction(ctx, q.store, now)
	if err != nil {
		return result, err
	}
	result.Generated += len(contradictionProposals)
	for _, p := range q.EnqueueAll(ctx, contradictionProposals) {
		if p.Status == config.ProposalStatusApproved {
			result.AutoApproved++
		}
	}

	researchProposals, err := agents.Research(ctx, q.store, q.store, now)
	if err != nil {
		return result, err
	}
	result.Generated += len(researchProposals)
	for _, p := range q.EnqueueAll(ctx, researchProposals) {
		if p.Status == config.ProposalStatusApproved {
			result.AutoApproved++
		}
	}

	return result, nil
}
