package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/stepwork"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

// StepWorkView is a decrypted step-work answer.
type StepWorkView struct {
	ID            string
	StepNumber    int
	QuestionIndex int
	Answer        string
	IsComplete    bool
	SyncStatus    models.SyncStatus
	DecryptFailed bool
}

type StepWorkService interface {
	// SaveAnswer creates or replaces the answer to one step question.
	SaveAnswer(ctx context.Context, step, questionIndex int, answer string, complete bool) error
	ListStep(ctx context.Context, step int) ([]StepWorkView, error)
	Delete(ctx context.Context, id string) error
}

type stepWorkService struct {
	db     *sql.DB
	cipher *cryptox.Cipher
	userID string
	log    logging.Logger
}

func NewStepWorkService(db *sql.DB, cipher *cryptox.Cipher, userID string, log logging.Logger) StepWorkService {
	return &stepWorkService{db: db, cipher: cipher, userID: userID, log: log}
}

func (s *stepWorkService) SaveAnswer(ctx context.Context, step, questionIndex int, answer string, complete bool) error {
	if step < 1 || step > 12 {
		return fmt.Errorf("step number %d out of range", step)
	}

	encAnswer, err := s.cipher.Encrypt(answer)
	if err != nil {
		return fmt.Errorf("encrypting answer: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := stepwork.NewSQLiteRepository(tx)

		// Answers are keyed by (step, question); editing an existing answer
		// keeps its identity so the remote row is updated in place.
		op := models.OpInsert
		id := uuid.NewString()
		supabaseID := ""
		createdAt := nowISO()
		existing, err := repo.ListByStep(ctx, s.userID, step)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].QuestionIndex == questionIndex {
				op = models.OpUpdate
				id = existing[i].ID
				supabaseID = existing[i].SupabaseID
				createdAt = existing[i].CreatedAt
				break
			}
		}

		w := &models.StepWork{
			ID:              id,
			UserID:          s.userID,
			StepNumber:      step,
			QuestionIndex:   questionIndex,
			EncryptedAnswer: encAnswer,
			IsComplete:      complete,
			SyncStatus:      models.SyncStatusPending,
			SupabaseID:      supabaseID,
			CreatedAt:       createdAt,
			UpdatedAt:       nowISO(),
		}
		if err := repo.Upsert(ctx, w); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableStepWork, w.ID, op, supabaseID)
	})
}

func (s *stepWorkService) ListStep(ctx context.Context, step int) ([]StepWorkView, error) {
	rows, err := stepwork.NewSQLiteRepository(s.db).ListByStep(ctx, s.userID, step)
	if err != nil {
		return nil, err
	}

	views := make([]StepWorkView, 0, len(rows))
	for i := range rows {
		w := &rows[i]
		v := StepWorkView{
			ID: w.ID, StepNumber: w.StepNumber, QuestionIndex: w.QuestionIndex,
			IsComplete: w.IsComplete, SyncStatus: w.SyncStatus,
		}
		if v.Answer, err = s.cipher.Decrypt(w.EncryptedAnswer); err != nil {
			if errors.Is(err, common.ErrKeyNotFound) {
				return nil, err
			}
			s.log.Warn(ctx, "step work failed to decrypt", "id", w.ID, "error", err)
			v.DecryptFailed = true
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *stepWorkService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := syncqueue.NewManager(tx).EnqueueDelete(ctx, common.TableStepWork, id, s.userID); err != nil {
			return err
		}
		return stepwork.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}
