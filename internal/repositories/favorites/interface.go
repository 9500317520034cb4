// Package favorites persists the user's favorite meetings in the local store.
package favorites

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, f *models.FavoriteMeeting) error
	GetByID(ctx context.Context, id string) (*models.FavoriteMeeting, error)
	ListByUser(ctx context.Context, userID string) ([]models.FavoriteMeeting, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id, supabaseID string) error
}
