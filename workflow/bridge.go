// Package workflow defines the stub client interface for an optional
// long-running workflow service: the core does not implement that
// service, only the contract a caller submits work through and polls
// for status.
package workflow

import (
	"context"
	"sync"

	"cortexgraph/domain/core/valueobjects"
	cortexerrors "cortexgraph/pkg/errors"
)

// Status is a workflow run's lifecycle state.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Submission is returned by Bridge.Submit.
type Submission struct {
	WorkflowID string `json:"workflow_id"`
	Status     Status `json:"status"`
}

// StatusReport is returned by Bridge.Status.
type StatusReport struct {
	WorkflowID string      `json:"workflow_id"`
	Status     Status      `json:"status"`
	Result     interface{} `json:"result,omitempty"`
}

// Bridge is the contract a caller submits workflow work through.
// Real deployments point this at a separate long-running workflow
// service; the core only needs to honor the shape.
type Bridge interface {
	Submit(ctx context.Context, kind string, payload interface{}) (Submission, error)
	Status(ctx context.Context, workflowID string) (StatusReport, error)
}

// StubBridge is an in-memory Bridge that completes every submission
// immediately with a nil result, standing in for an out-of-scope
// external workflow service.
type StubBridge struct {
	mu    sync.Mutex
	state map[string]StatusReport
}

// NewStubBridge constructs a StubBridge.
func NewStubBridge() *StubBridge {
	return &StubBridge{state: make(map[string]StatusReport)}
}

// Submit records a new workflow run and marks it completed immediately.
func (b *StubBridge) Submit(ctx context.Context, kind string, payload interface{}) (Submission, error) {
	id := valueobjects.NewID()
	b.mu.Lock()
	b.state[id] = StatusReport{WorkflowID: id, Status: StatusCompleted}
	b.mu.Unlock()
	return Submission{WorkflowID: id, Status: StatusCompleted}, nil
}

// Status returns the recorded state for a workflow id.
func (b *StubBridge) Status(ctx context.Context, workflowID string) (StatusReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	report, ok := b.state[workflowID]
	if !ok {
		return StatusReport{}, cortexerrors.NewNotFoundError("workflow " + workflowID)
	}
	return report, nil
}
