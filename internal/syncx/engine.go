// Package syncx implements the queue-draining synchronization engine that
// reconciles local encrypted records with the remote store.
//
// One drain cycle selects a bounded batch of queue entries, processes every
// delete before any upsert (deletes first avoids referential conflicts on
// the remote side), and walks each phase in queue-creation order,
// sequentially. Per-item failures are converted into queue-state updates and
// never abort the batch; only a failure to read the queue itself aborts the
// cycle, and even that returns a degenerate Result instead of an error.
package syncx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/remote"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

const (
	// MaxRetryCount is the retry ceiling. An entry failing this many times
	// is stamped failed_at and excluded from future drains.
	MaxRetryCount = 3

	// DefaultBatchSize bounds how many queue entries one drain selects.
	DefaultBatchSize = 50

	// DefaultCallTimeout bounds each remote call so a hung connection cannot
	// stall the batch indefinitely.
	DefaultCallTimeout = 30 * time.Second
)

// Result is the aggregate report of one drain cycle.
type Result struct {
	Synced int
	Failed int
	Errors []string
}

// Options tunes an Engine. Zero values select defaults.
type Options struct {
	BatchSize   int
	BaseBackoff time.Duration
	CallTimeout time.Duration
	Clock       Clock
}

// Engine drains the sync queue. Each engine owns its mutual-exclusion lock,
// so independent engines (e.g. in tests) never contend with each other.
type Engine struct {
	mu sync.Mutex

	queue  syncqueue.Repository
	store  remote.Store
	tables map[string]TableSyncer
	userID string
	log    logging.Logger

	batchSize   int
	baseBackoff time.Duration
	callTimeout time.Duration
	clock       Clock
}

func NewEngine(queue syncqueue.Repository, store remote.Store, userID string, log logging.Logger, opts *Options) *Engine {
	e := &Engine{
		queue:       queue,
		store:       store,
		tables:      make(map[string]TableSyncer),
		userID:      userID,
		log:         log,
		batchSize:   DefaultBatchSize,
		baseBackoff: DefaultBaseBackoff,
		callTimeout: DefaultCallTimeout,
		clock:       realClock{},
	}
	if opts != nil {
		if opts.BatchSize > 0 {
			e.batchSize = opts.BatchSize
		}
		if opts.BaseBackoff > 0 {
			e.baseBackoff = opts.BaseBackoff
		}
		if opts.CallTimeout > 0 {
			e.callTimeout = opts.CallTimeout
		}
		if opts.Clock != nil {
			e.clock = opts.Clock
		}
	}
	return e
}

// Register adds a table syncer to the engine's dispatch registry.
func (e *Engine) Register(s TableSyncer) {
	e.tables[s.Table()] = s
}

// ProcessQueue runs one drain cycle and reports the outcome. A second call
// while one is running returns immediately with a "sync already in progress"
// result, without touching the queue.
func (e *Engine) ProcessQueue(ctx context.Context) Result {
	if !e.mu.TryLock() {
		return Result{Errors: []string{common.ErrSyncInProgress.Error()}}
	}
	defer e.mu.Unlock()

	items, err := e.queue.Drainable(ctx, e.batchSize, MaxRetryCount)
	if err != nil {
		e.log.Error(ctx, "failed to read sync queue", "error", err)
		return Result{Errors: []string{err.Error()}}
	}
	if len(items) == 0 {
		return Result{}
	}

	var deletes, upserts []models.QueueEntry
	for _, item := range items {
		if item.Operation.IsDelete() {
			deletes = append(deletes, item)
		} else {
			upserts = append(upserts, item)
		}
	}

	var res Result
	for _, item := range deletes {
		e.processDelete(ctx, item, &res)
	}
	for _, item := range upserts {
		e.processUpsert(ctx, item, &res)
	}

	e.log.Info(ctx, "sync cycle finished", "synced", res.Synced, "failed", res.Failed)
	return res
}

func (e *Engine) processDelete(ctx context.Context, item models.QueueEntry, res *Result) {
	// A record that never reached the remote store carries no remote
	// obligation; its delete resolves locally.
	if item.SupabaseID == "" {
		if err := e.queue.Remove(ctx, item.ID); err != nil {
			e.failItem(ctx, item, err, res)
			return
		}
		res.Synced++
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	err := e.store.Delete(callCtx, item.TableName, item.SupabaseID, e.userID)
	cancel()
	if err != nil {
		e.failItem(ctx, item, err, res)
		return
	}

	if err := e.queue.Remove(ctx, item.ID); err != nil {
		e.failItem(ctx, item, err, res)
		return
	}
	res.Synced++
}

func (e *Engine) processUpsert(ctx context.Context, item models.QueueEntry, res *Result) {
	syncer, ok := e.tables[item.TableName]
	if !ok {
		e.failItem(ctx, item, fmt.Errorf("no syncer registered for table %q", item.TableName), res)
		return
	}

	// Retried items back off exponentially. The delay is per item, so a
	// fast-failing entry does not stall a healthy one beyond its own turn.
	if item.RetryCount > 0 {
		if err := e.clock.Sleep(ctx, backoffDelay(e.baseBackoff, item.RetryCount)); err != nil {
			e.failItem(ctx, item, err, res)
			return
		}
	}

	rec, supabaseID, err := syncer.BuildRemote(ctx, item.RecordID)
	if errors.Is(err, common.ErrNotFound) {
		// The record vanished locally after this obligation was queued
		// (deleted before its upsert synced). The delete entry owns the
		// remote cleanup; this one is stale.
		e.log.Debug(ctx, "dropping stale queue entry",
			"table", item.TableName, "record", item.RecordID, "op", item.Operation)
		if err := e.queue.Remove(ctx, item.ID); err != nil {
			e.failItem(ctx, item, err, res)
		}
		return
	}
	if err != nil {
		e.failItem(ctx, item, err, res)
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	err = e.store.Upsert(callCtx, item.TableName, rec, "id")
	cancel()
	if err != nil {
		e.failItem(ctx, item, err, res)
		return
	}

	if err := syncer.ApplyUpserted(ctx, item.RecordID, supabaseID); err != nil {
		e.failItem(ctx, item, err, res)
		return
	}
	if err := e.queue.Remove(ctx, item.ID); err != nil {
		e.failItem(ctx, item, err, res)
		return
	}
	res.Synced++
}

// failItem converts a per-item failure into queue state: retry_count is
// incremented, the error recorded, and the permanent-failure stamp applied
// once the ceiling is reached. The batch continues regardless.
func (e *Engine) failItem(ctx context.Context, item models.QueueEntry, cause error, res *Result) {
	res.Failed++
	res.Errors = append(res.Errors,
		fmt.Sprintf("%s %s/%s: %v", item.Operation, item.TableName, item.RecordID, cause))

	now := e.clock.Now().UTC().Format(time.RFC3339Nano)
	count, err := e.queue.RecordFailure(ctx, item.ID, cause.Error(), MaxRetryCount, now)
	if err != nil {
		e.log.Error(ctx, "failed to record queue failure",
			"table", item.TableName, "record", item.RecordID, "error", err)
		return
	}

	if count >= MaxRetryCount {
		e.log.Warn(ctx, "queue entry permanently failed",
			"table", item.TableName, "record", item.RecordID, "op", item.Operation, "retries", count)
	} else {
		e.log.Warn(ctx, "sync item failed, will retry",
			"table", item.TableName, "record", item.RecordID, "op", item.Operation, "retries", count)
	}
}
