package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/favorites"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

// FavoriteView is a favorite meeting with its decrypted note.
type FavoriteView struct {
	ID            string
	MeetingID     string
	Note          string
	SyncStatus    models.SyncStatus
	DecryptFailed bool
}

type FavoriteService interface {
	Add(ctx context.Context, meetingID, note string) (string, error)
	List(ctx context.Context) ([]FavoriteView, error)
	Remove(ctx context.Context, id string) error
}

type favoriteService struct {
	db     *sql.DB
	cipher *cryptox.Cipher
	userID string
	log    logging.Logger
}

func NewFavoriteService(db *sql.DB, cipher *cryptox.Cipher, userID string, log logging.Logger) FavoriteService {
	return &favoriteService{db: db, cipher: cipher, userID: userID, log: log}
}

func (s *favoriteService) Add(ctx context.Context, meetingID, note string) (string, error) {
	encNote, err := s.cipher.Encrypt(note)
	if err != nil {
		return "", fmt.Errorf("encrypting note: %w", err)
	}

	now := nowISO()
	f := &models.FavoriteMeeting{
		ID:            uuid.NewString(),
		UserID:        s.userID,
		MeetingID:     meetingID,
		EncryptedNote: encNote,
		SyncStatus:    models.SyncStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := favorites.NewSQLiteRepository(tx).Insert(ctx, f); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableFavoriteMeetings, f.ID, models.OpInsert, "")
	})
	if err != nil {
		return "", fmt.Errorf("saving favorite meeting: %w", err)
	}
	return f.ID, nil
}

func (s *favoriteService) List(ctx context.Context) ([]FavoriteView, error) {
	rows, err := favorites.NewSQLiteRepository(s.db).ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	views := make([]FavoriteView, 0, len(rows))
	for i := range rows {
		f := &rows[i]
		v := FavoriteView{ID: f.ID, MeetingID: f.MeetingID, SyncStatus: f.SyncStatus}
		if v.Note, err = s.cipher.Decrypt(f.EncryptedNote); err != nil {
			s.log.Warn(ctx, "favorite note failed to decrypt", "id", f.ID, "error", err)
			v.DecryptFailed = true
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *favoriteService) Remove(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := syncqueue.NewManager(tx).EnqueueDelete(ctx, common.TableFavoriteMeetings, id, s.userID); err != nil {
			return err
		}
		return favorites.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}
