// Package reflections persists daily-reading reflections in the local store.
package reflections

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

type Repository interface {
	Upsert(ctx context.Context, x *models.ReadingReflection) error
	GetByID(ctx context.Context, id string) (*models.ReadingReflection, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReadingReflection, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id, supabaseID string) error
}
