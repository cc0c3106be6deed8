// Package orchestrator owns the proposal queue: enqueueing
// agent-authored proposals, auto-approving the ones that meet the
// confidence threshold, dispatching execution by action, and running
// the full maintenance workflow (Alignment, Contradiction, Research).
package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/pkg/observability"
	"cortexgraph/storage"
)

// DefaultAutoApproveConfidence is the confidence threshold at or above which a
// proposal is approved and executed within the same enqueue call.
const DefaultAutoApproveConfidence = 0.95

// Config configures the orchestrator's auto-approval behavior.
type Config struct {
	AutoApproveConfidence float64
	LogProposals          bool
}

// DefaultConfig returns the orchestrator's default auto-approval settings.
func DefaultConfig() Config {
	return Config{AutoApproveConfidence: DefaultAutoApproveConfidence, LogProposals: false}
}

// Queue owns the proposal queue, keyed by proposal id. The order slice
// preserves insertion order, so callers can always process proposals in
// the order they were enqueued.
type Queue struct {
	mu        sync.Mutex
	cfg       Config
	store     storage.Store
	logger    *zap.Logger
	proposals map[string]*entities.AgentProposal
	order     []string
	metrics   *observability.Metrics
}

// WithMetrics arms the queue to publish CloudWatch metrics for every
// proposal execution. A nil metrics publisher (the default) disables
// this.
func (q *Queue) WithMetrics(metrics *observability.Metrics) *Queue {
	q.metrics = metrics
	return q
}

// New constructs a Queue bound to a storage backend.
func New(store storage.Store, cfg Config, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		cfg:       cfg,
		store:     store,
		logger:    logger,
		proposals: make(map[string]*entities.AgentProposal),
	}
}

// Enqueue inserts a proposal and, if its confidence meets the
// auto-approval threshold, immediately approves and executes it before
// returning.
func (q *Queue) Enqueue(ctx context.Context, p entities.AgentProposal) entities.AgentProposal {
	q.mu.Lock()
	stored := p
	q.proposals[stored.ID] = &stored
	q.order = append(q.order, stored.ID)
	q.mu.Unlock()

	if q.cfg.LogProposals {
		q.logger.Info("proposal enqueued",
			zap.String("proposal_id", stored.ID),
			zap.String("agent_type", string(stored.AgentType)),
			zap.String("action", string(stored.Action)),
			zap.Float64("confidence", stored.Confidence),
		)
	}

	if stored.Confidence >= q.cfg.AutoApproveConfidence {
		q.approveAndExecute(ctx, stored.ID)
	}

	q.mu.Lock()
	result := *q.proposals[stored.ID]
	q.mu.Unlock()
	return result
}

// EnqueueAll enqueues every proposal in order, returning the final state
// of each.
func (q *Queue) EnqueueAll(ctx context.Context, proposals []entities.AgentProposal) []entities.AgentProposal {
	results := make([]entities.AgentProposal, 0, len(proposals))
	for _, p := range proposals {
		results = append(results, q.Enqueue(ctx, p))
	}
	return results
}

// Get returns a proposal by id.
func (q *Queue) Get(id string) (entities.AgentProposal, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.proposals[id]
	if !ok {
		return entities.AgentProposal{}, false
	}
	return *p, true
}

// ByStatus returns every proposal with the given status, in insertion
// order.
func (q *Queue) ByStatus(status config.ProposalStatus) []entities.AgentProposal {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []entities.AgentProposal
	for _, id := range q.order {
		p := q.proposals[id]
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out
}

// Reject transitions a proposal to rejected without executing it.
func (q *Queue) Reject(id, reason string) (entities.AgentProposal, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.proposals[id]
	if !ok {
		return entities.AgentProposal{}, false
	}
	p.Status = config.ProposalStatusRejected
	if reason != "" {
		p.Reasoning = reason
	}
	return *p, true
}

// approveAndExecute transitions a proposal to approved and dispatches
// execution. On execution failure the proposal is instead rejected and
// the cause recorded in Reasoning; a single proposal's failure never
// aborts the rest of the queue.
func (q *Queue) approveAndExecute(ctx context.Context, id string) {
	q.mu.Lock()
	p := q.proposals[id]
	q.mu.Unlock()

	started := time.Now()
	err := execute(ctx, q.store, *p)
	q.metrics.RecordProposalExecution(ctx, string(p.AgentType), string(p.Action), time.Since(started), err)
	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		p.Status = config.ProposalStatusRejected
		p.Reasoning = p.Reasoning + "; execution failed: " + err.Error()
		q.logger.Warn("proposal execution failed",
			zap.String("proposal_id", p.ID),
			zap.Error(err),
		)
		return
	}
	p.Status = config.ProposalStatusApproved
}

// Approve manually approves and executes a proposed proposal, the
// HTTP surface's human-in-the-loop approval path.
func (q *Queue) Approve(ctx context.Context, id string) (entities.AgentProposal, bool) {
	q.mu.Lock()
	_, ok := q.proposals[id]
	q.mu.Unlock()
	if !ok {
		return entities.AgentProposal{}, false
	}
	q.approveAndExecute(ctx, id)
	return q.Get(id)
}
