// Package journal persists encrypted journal entries in the local store.
package journal

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

// Repository is the journal-entry storage contract. Implementations operate
// over dbx.DBTX so the same code runs inside or outside a transaction.
type Repository interface {
	Insert(ctx context.Context, e *models.JournalEntry) error
	Update(ctx context.Context, e *models.JournalEntry) error
	GetByID(ctx context.Context, id string) (*models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.JournalEntry, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id, supabaseID string) error
}
