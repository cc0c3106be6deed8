package ingestion

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage"
)

// Document is one unit of work submitted to a batch ingestion job.
type Document struct {
	SourceID string
	Raw      string
}

// BatchJob tracks one batch ingestion run.
type BatchJob struct {
	ID        string
	Total     int
	Processed int
	Failed    int
	StartedAt time.Time
	EndedAt   time.Time
	Errors    []string
	Cancelled bool
}

// Workers pulls documents from a shared queue, processes each in
// isolation through a Pipeline, and stores the resulting chunks. A
// document failure increments Failed without aborting the batch, using
// golang.org/x/sync/errgroup for the worker pool.
type Workers struct {
	pipeline   *Pipeline
	store      storage.ChunkStore
	numWorkers int

	mu   sync.Mutex
	jobs map[string]*BatchJob
}

// NewWorkers constructs a Workers pool with the given concurrency
// (default 4).
func NewWorkers(pipeline *Pipeline, store storage.ChunkStore, numWorkers int) *Workers {
	if numWorkers <= 0 {
		numWorkers = 4
	}
	return &Workers{
		pipeline:   pipeline,
		store:      store,
		numWorkers: numWorkers,
		jobs:       make(map[string]*BatchJob),
	}
}

// Submit runs a batch of documents through the pipeline with bounded
// worker concurrency, recording per-document failures without aborting
// the batch.
func (w *Workers) Submit(ctx context.Context, docs []Document) (*BatchJob, error) {
	job := &BatchJob{
		ID:        valueobjects.NewID(),
		Total:     len(docs),
		StartedAt: time.Now().UTC(),
	}
	w.mu.Lock()
	w.jobs[job.ID] = job
	w.mu.Unlock()

	queue := make(chan Document)
	group, groupCtx := errgroup.WithContext(ctx)

	for i := 0; i < w.numWorkers; i++ {
		group.Go(func() error {
			for doc := range queue {
				w.processOne(groupCtx, job, doc)
			}
			return nil
		})
	}

	for _, d := range docs {
		select {
		case queue <- d:
		case <-groupCtx.Done():
		}
	}
	close(queue)
	_ = group.Wait()

	w.mu.Lock()
	job.EndedAt = time.Now().UTC()
	w.mu.Unlock()

	return job, nil
}

func (w *Workers) processOne(ctx context.Context, job *BatchJob, doc Document) {
	result := w.pipeline.Ingest(doc.SourceID, doc.Raw, time.Now().UTC())

	var failErr error
	for _, chunk := range result.Chunks {
		if _, err := w.store.StoreChunk(ctx, chunk); err != nil {
			failErr = err
			break
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	job.Processed++
	if failErr != nil {
		job.Failed++
		job.Errors = append(job.Errors, failErr.Error())
	}
}

// Job returns the current state of a tracked batch job.
func (w *Workers) Job(id string) (*BatchJob, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	j, ok := w.jobs[id]
	return j, ok
}

// CancelJob marks a job failed; any documents still queued for it will
// have already been claimed by a worker since Submit blocks until the
// whole batch finishes in this implementation — CancelJob exists for
// callers tracking job state out of band (e.g. an HTTP DELETE handler).
func (w *Workers) CancelJob(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	j, ok := w.jobs[id]
	if !ok {
		return false
	}
	j.Cancelled = true
	return true
}

// Rollback opens a storage transaction and deletes every node whose
// grounding.source_refs contains jobID, committing only if every delete
// succeeds.
func Rollback(ctx context.Context, txStore storage.TransactionalStore, jobID string) error {
	tx, err := txStore.Begin(ctx)
	if err != nil {
		return err
	}

	page, err := tx.ListNodes(ctx, 1, 0)
	if err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	for _, n := range page.Items {
		if containsRef(n.Grounding.SourceRefs, jobID) {
			if _, err := tx.DeleteNode(ctx, n.ID.String()); err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func containsRef(refs []string, jobID string) bool {
	for _, r := range refs {
		if r == jobID {
			return true
		}
	}
	return false
}
