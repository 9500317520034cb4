// Package checkins persists daily morning/evening check-ins in the local store.
package checkins

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, c *models.DailyCheckin) error
	GetByID(ctx context.Context, id string) (*models.DailyCheckin, error)
	// GetByDate returns the check-in of the given type for one calendar day,
	// or common.ErrNotFound.
	GetByDate(ctx context.Context, userID, date string, typ models.CheckinType) (*models.DailyCheckin, error)
	// ListDates returns distinct check-in dates for the user, newest first.
	// Used by streak calculations; no decryption involved.
	ListDates(ctx context.Context, userID string) ([]string, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id, supabaseID string) error
}
