package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cortexgraph/decayengine"
	dynamolock "cortexgraph/infrastructure/persistence/dynamodb"
	"cortexgraph/pkg/observability"
	"cortexgraph/storage"
)

const decayLockResource = "decay-ticker"

// DecayTicker periodically applies the decay engine to every node in a
// store and persists the result; the engine itself only computes, it
// never writes to storage.
type DecayTicker struct {
	store   storage.NodeStore
	engine  *decayengine.Engine
	logger  *zap.Logger
	lastRun time.Time

	lock    *dynamolock.DistributedLock
	ownerID string
	metrics *observability.Metrics
}

// NewDecayTicker constructs a DecayTicker bound to a store and engine.
func NewDecayTicker(store storage.NodeStore, engine *decayengine.Engine, logger *zap.Logger) *DecayTicker {
	if logger == nil {
		logger = zap.NewNop()
	}
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "decay-ticker"
	}
	return &DecayTicker{
		store:   store,
		engine:  engine,
		logger:  logger,
		ownerID: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// WithLock arms the ticker with a distributed mutex so that, when
// several replicas of this process share one store, only the replica
// holding the lock runs a given pass; the rest skip it and retry on
// their next tick. Passing nil leaves the ticker running
// unconditionally, appropriate for a single instance or a
// non-DynamoDB-backed store.
func (t *DecayTicker) WithLock(lock *dynamolock.DistributedLock) *DecayTicker {
	t.lock = lock
	return t
}

// WithMetrics arms the ticker to publish CloudWatch metrics for each
// pass. A nil metrics publisher (the default) disables this.
func (t *DecayTicker) WithMetrics(metrics *observability.Metrics) *DecayTicker {
	t.metrics = metrics
	return t
}

// Run blocks applying one decay pass every interval until ctx is done.
// Callers start it with `go ticker.Run(ctx, interval)`.
func (t *DecayTicker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := t.runOnce(ctx, now); err != nil {
				t.logger.Warn("decay pass failed", zap.Error(err))
			}
		}
	}
}

func (t *DecayTicker) runOnce(ctx context.Context, now time.Time) (err error) {
	if t.lock != nil {
		lease, lockErr := t.lock.AcquireLock(ctx, decayLockResource, t.ownerID, 5*time.Minute)
		if lockErr != nil {
			t.logger.Debug("decay pass skipped: lock held by another replica", zap.Error(lockErr))
			return nil
		}
		defer lease.Release(ctx)
	}

	started := time.Now()
	var touched int
	defer func() {
		t.metrics.RecordDecayPass(ctx, touched, time.Since(started), err)
	}()

	const pageSize = 500
	for pageNum := 1; ; pageNum++ {
		page, listErr := t.store.ListNodes(ctx, pageNum, pageSize)
		if listErr != nil {
			return listErr
		}

		updated := t.engine.RunPass(page.Items, now)
		for _, n := range updated {
			patch := map[string]interface{}{
				"cognitive_state": n.CognitiveState,
			}
			if _, writeErr := t.store.UpdateNode(ctx, n.ID.String(), patch); writeErr != nil {
				t.logger.Warn("decay write-back failed", zap.String("node_id", n.ID.String()), zap.Error(writeErr))
			}
		}
		touched += len(updated)
		if !page.HasMore || len(page.Items) == 0 {
			break
		}
	}

	t.lastRun = now
	t.logger.Info("decay pass complete", zap.Int("nodes", touched))
	return nil
}
