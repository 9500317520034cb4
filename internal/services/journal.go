// Package services contains the application services for Stillwater: they
// encrypt sensitive fields through the content cipher and commit the record
// write together with its sync-queue entry in one transaction.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/journal"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// JournalView is a decrypted journal entry for display. DecryptFailed marks
// entries whose content could not be recovered; callers render a placeholder
// instead of failing the whole list.
type JournalView struct {
	ID            string
	Title         string
	Body          string
	Mood          string
	SyncStatus    models.SyncStatus
	CreatedAt     string
	DecryptFailed bool
}

type JournalService interface {
	Add(ctx context.Context, title, body, mood string) (string, error)
	Update(ctx context.Context, id, title, body, mood string) error
	Get(ctx context.Context, id string) (*JournalView, error)
	List(ctx context.Context) ([]JournalView, error)
	Delete(ctx context.Context, id string) error
}

type journalService struct {
	db     *sql.DB
	cipher *cryptox.Cipher
	userID string
	log    logging.Logger
}

func NewJournalService(db *sql.DB, cipher *cryptox.Cipher, userID string, log logging.Logger) JournalService {
	return &journalService{db: db, cipher: cipher, userID: userID, log: log}
}

func (s *journalService) encryptFields(title, body, mood string) (et, eb, em string, err error) {
	if et, err = s.cipher.Encrypt(title); err != nil {
		return "", "", "", fmt.Errorf("encrypting title: %w", err)
	}
	if eb, err = s.cipher.Encrypt(body); err != nil {
		return "", "", "", fmt.Errorf("encrypting body: %w", err)
	}
	if em, err = s.cipher.Encrypt(mood); err != nil {
		return "", "", "", fmt.Errorf("encrypting mood: %w", err)
	}
	return et, eb, em, nil
}

func (s *journalService) Add(ctx context.Context, title, body, mood string) (string, error) {
	et, eb, em, err := s.encryptFields(title, body, mood)
	if err != nil {
		return "", err
	}

	now := nowISO()
	e := &models.JournalEntry{
		ID:             uuid.NewString(),
		UserID:         s.userID,
		EncryptedTitle: et,
		EncryptedBody:  eb,
		EncryptedMood:  em,
		SyncStatus:     models.SyncStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := journal.NewSQLiteRepository(tx).Insert(ctx, e); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableJournalEntries, e.ID, models.OpInsert, "")
	})
	if err != nil {
		return "", fmt.Errorf("saving journal entry: %w", err)
	}
	return e.ID, nil
}

func (s *journalService) Update(ctx context.Context, id, title, body, mood string) error {
	et, eb, em, err := s.encryptFields(title, body, mood)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := journal.NewSQLiteRepository(tx)
		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		e.EncryptedTitle, e.EncryptedBody, e.EncryptedMood = et, eb, em
		e.SyncStatus = models.SyncStatusPending
		e.UpdatedAt = nowISO()
		if err := repo.Update(ctx, e); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableJournalEntries, id, models.OpUpdate, e.SupabaseID)
	})
}

func (s *journalService) view(ctx context.Context, e *models.JournalEntry) JournalView {
	v := JournalView{ID: e.ID, SyncStatus: e.SyncStatus, CreatedAt: e.CreatedAt}

	var err error
	if v.Title, err = s.cipher.Decrypt(e.EncryptedTitle); err != nil {
		s.log.Warn(ctx, "journal entry failed to decrypt", "id", e.ID, "error", err)
		return JournalView{ID: e.ID, SyncStatus: e.SyncStatus, CreatedAt: e.CreatedAt, DecryptFailed: true}
	}
	if v.Body, err = s.cipher.Decrypt(e.EncryptedBody); err != nil {
		s.log.Warn(ctx, "journal entry failed to decrypt", "id", e.ID, "error", err)
		return JournalView{ID: e.ID, SyncStatus: e.SyncStatus, CreatedAt: e.CreatedAt, DecryptFailed: true}
	}
	if v.Mood, err = s.cipher.Decrypt(e.EncryptedMood); err != nil {
		// Mood is optional; a missing mood token is not a failed entry.
		v.Mood = ""
	}
	return v
}

func (s *journalService) Get(ctx context.Context, id string) (*JournalView, error) {
	e, err := journal.NewSQLiteRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(ctx, e)
	return &v, nil
}

func (s *journalService) List(ctx context.Context) ([]JournalView, error) {
	entries, err := journal.NewSQLiteRepository(s.db).ListByUser(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	views := make([]JournalView, 0, len(entries))
	for i := range entries {
		views = append(views, s.view(ctx, &entries[i]))
	}
	return views, nil
}

// Delete captures the record's remote id into the queue before the row is
// removed, inside one transaction.
func (s *journalService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := syncqueue.NewManager(tx).EnqueueDelete(ctx, common.TableJournalEntries, id, s.userID); err != nil {
			return err
		}
		return journal.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}
