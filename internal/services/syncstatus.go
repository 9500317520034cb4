package services

import (
	"context"
	"database/sql"

	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
	"github.com/stillwater-app/stillwater/internal/syncx"
)

// SyncStatus summarizes the queue for the status surface. Permanently failed
// entries are the only place terminal failure is visible; the domain records
// themselves stay pending.
type SyncStatus struct {
	Pending int
	Failed  []models.QueueEntry
}

type SyncStatusService interface {
	Status(ctx context.Context) (*SyncStatus, error)
}

type syncStatusService struct {
	db *sql.DB
}

func NewSyncStatusService(db *sql.DB) SyncStatusService {
	return &syncStatusService{db: db}
}

func (s *syncStatusService) Status(ctx context.Context) (*SyncStatus, error) {
	repo := syncqueue.NewSQLiteRepository(s.db)

	pending, err := repo.CountPending(ctx, syncx.MaxRetryCount)
	if err != nil {
		return nil, err
	}
	failed, err := repo.FailedEntries(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncStatus{Pending: pending, Failed: failed}, nil
}
