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
	"github.com/stillwater-app/stillwater/internal/repositories/reflections"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

// ReflectionView is a decrypted daily-reading reflection.
type ReflectionView struct {
	ID            string
	ReadingDate   string
	Text          string
	SyncStatus    models.SyncStatus
	DecryptFailed bool
}

type ReflectionService interface {
	// Save creates or replaces the reflection for a reading date.
	Save(ctx context.Context, readingDate, text string) error
	List(ctx context.Context) ([]ReflectionView, error)
	Delete(ctx context.Context, id string) error
}

type reflectionService struct {
	db     *sql.DB
	cipher *cryptox.Cipher
	userID string
	log    logging.Logger
}

func NewReflectionService(db *sql.DB, cipher *cryptox.Cipher, userID string, log logging.Logger) ReflectionService {
	return &reflectionService{db: db, cipher: cipher, userID: userID, log: log}
}

func (s *reflectionService) Save(ctx context.Context, readingDate, text string) error {
	encText, err := s.cipher.Encrypt(text)
	if err != nil {
		return fmt.Errorf("encrypting reflection: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := reflections.NewSQLiteRepository(tx)

		op := models.OpInsert
		id := uuid.NewString()
		supabaseID := ""
		createdAt := nowISO()
		existing, err := repo.ListByUser(ctx, s.userID)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].ReadingDate == readingDate {
				op = models.OpUpdate
				id = existing[i].ID
				supabaseID = existing[i].SupabaseID
				createdAt = existing[i].CreatedAt
				break
			}
		}

		x := &models.ReadingReflection{
			ID:            id,
			UserID:        s.userID,
			ReadingDate:   readingDate,
			EncryptedText: encText,
			SyncStatus:    models.SyncStatusPending,
			SupabaseID:    supabaseID,
			CreatedAt:     createdAt,
			UpdatedAt:     nowISO(),
		}
		if err := repo.Upsert(ctx, x); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableReadingReflections, x.ID, op, supabaseID)
	})
}

func (s *reflectionService) List(ctx context.Context) ([]ReflectionView, error) {
	rows, err := reflections.NewSQLiteRepository(s.db).ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	views := make([]ReflectionView, 0, len(rows))
	for i := range rows {
		x := &rows[i]
		v := ReflectionView{ID: x.ID, ReadingDate: x.ReadingDate, SyncStatus: x.SyncStatus}
		if v.Text, err = s.cipher.Decrypt(x.EncryptedText); err != nil {
			if errors.Is(err, common.ErrKeyNotFound) {
				return nil, err
			}
			s.log.Warn(ctx, "reflection failed to decrypt", "id", x.ID, "error", err)
			v.DecryptFailed = true
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *reflectionService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := syncqueue.NewManager(tx).EnqueueDelete(ctx, common.TableReadingReflections, id, s.userID); err != nil {
			return err
		}
		return reflections.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}
