// Package stepwork persists encrypted step-work answers in the local store.
package stepwork

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/models"
)

type Repository interface {
	Upsert(ctx context.Context, w *models.StepWork) error
	GetByID(ctx context.Context, id string) (*models.StepWork, error)
	ListByStep(ctx context.Context, userID string, stepNumber int) ([]models.StepWork, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id, supabaseID string) error
}
