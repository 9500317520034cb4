package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/repositories/checkins"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
)

// Milestones are the celebrated streak lengths, in days.
var Milestones = []int{1, 7, 30, 60, 90, 180, 365}

// CheckinView is a decrypted daily check-in.
type CheckinView struct {
	ID            string
	Type          models.CheckinType
	Date          string
	Text          string // intention (morning) or reflection (evening)
	Mood          string
	CravingLevel  int
	SyncStatus    models.SyncStatus
	DecryptFailed bool
}

type CheckinService interface {
	// RecordMorning saves the morning intention for a date. Re-recording the
	// same day replaces the earlier check-in.
	RecordMorning(ctx context.Context, date, intention, mood string, craving int) error
	RecordEvening(ctx context.Context, date, reflection, mood string, craving int) error
	GetDay(ctx context.Context, date string, typ models.CheckinType) (*CheckinView, error)
	Delete(ctx context.Context, id string) error

	// Streak returns the current run of consecutive check-in days ending
	// today or yesterday, and the highest milestone it has reached (0 when
	// none). Works on plaintext dates only.
	Streak(ctx context.Context, today string) (days, milestone int, err error)
}

type checkinService struct {
	db     *sql.DB
	cipher *cryptox.Cipher
	userID string
	log    logging.Logger
}

func NewCheckinService(db *sql.DB, cipher *cryptox.Cipher, userID string, log logging.Logger) CheckinService {
	return &checkinService{db: db, cipher: cipher, userID: userID, log: log}
}

func (s *checkinService) record(ctx context.Context, typ models.CheckinType, date, text, mood string, craving int) error {
	if craving < 0 || craving > 10 {
		return fmt.Errorf("craving level %d out of range", craving)
	}

	encText, err := s.cipher.Encrypt(text)
	if err != nil {
		return fmt.Errorf("encrypting check-in: %w", err)
	}
	encMood, err := s.cipher.Encrypt(mood)
	if err != nil {
		return fmt.Errorf("encrypting mood: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := checkins.NewSQLiteRepository(tx)

		// One check-in per (day, type): reuse the existing row's identity so
		// a re-record is an update, not a duplicate day.
		op := models.OpInsert
		id := uuid.NewString()
		supabaseID := ""
		createdAt := nowISO()
		if existing, err := repo.GetByDate(ctx, s.userID, date, typ); err == nil {
			op = models.OpUpdate
			id = existing.ID
			supabaseID = existing.SupabaseID
			createdAt = existing.CreatedAt
		} else if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		c := &models.DailyCheckin{
			ID:           id,
			UserID:       s.userID,
			CheckinType:  typ,
			CheckinDate:  date,
			CravingLevel: craving,
			SyncStatus:   models.SyncStatusPending,
			SupabaseID:   supabaseID,
			CreatedAt:    createdAt,
			UpdatedAt:    nowISO(),
		}
		switch typ {
		case models.CheckinMorning:
			c.EncryptedIntention = encText
		case models.CheckinEvening:
			c.EncryptedReflection = encText
		}
		c.EncryptedMood = encMood

		if err := repo.Insert(ctx, c); err != nil {
			return err
		}
		return syncqueue.NewManager(tx).Enqueue(ctx, common.TableDailyCheckins, c.ID, op, supabaseID)
	})
}

func (s *checkinService) RecordMorning(ctx context.Context, date, intention, mood string, craving int) error {
	return s.record(ctx, models.CheckinMorning, date, intention, mood, craving)
}

func (s *checkinService) RecordEvening(ctx context.Context, date, reflection, mood string, craving int) error {
	return s.record(ctx, models.CheckinEvening, date, reflection, mood, craving)
}

func (s *checkinService) GetDay(ctx context.Context, date string, typ models.CheckinType) (*CheckinView, error) {
	c, err := checkins.NewSQLiteRepository(s.db).GetByDate(ctx, s.userID, date, typ)
	if err != nil {
		return nil, err
	}

	v := &CheckinView{
		ID: c.ID, Type: c.CheckinType, Date: c.CheckinDate,
		CravingLevel: c.CravingLevel, SyncStatus: c.SyncStatus,
	}
	encText := c.EncryptedIntention
	if typ == models.CheckinEvening {
		encText = c.EncryptedReflection
	}
	if v.Text, err = s.cipher.Decrypt(encText); err != nil {
		s.log.Warn(ctx, "check-in failed to decrypt", "id", c.ID, "error", err)
		v.DecryptFailed = true
		return v, nil
	}
	if v.Mood, err = s.cipher.Decrypt(c.EncryptedMood); err != nil {
		v.Mood = ""
	}
	return v, nil
}

func (s *checkinService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := syncqueue.NewManager(tx).EnqueueDelete(ctx, common.TableDailyCheckins, id, s.userID); err != nil {
			return err
		}
		return checkins.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}

func (s *checkinService) Streak(ctx context.Context, today string) (int, int, error) {
	dates, err := checkins.NewSQLiteRepository(s.db).ListDates(ctx, s.userID)
	if err != nil {
		return 0, 0, err
	}
	if len(dates) == 0 {
		return 0, 0, nil
	}

	day, err := time.Parse(time.DateOnly, today)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: %w", today, err)
	}

	// A streak survives until a full day is missed: if the newest check-in
	// is from yesterday, today still counts as in progress.
	cursor := day
	if dates[0] != cursor.Format(time.DateOnly) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range dates {
		if d != cursor.Format(time.DateOnly) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	milestone := 0
	for _, m := range Milestones {
		if streak >= m {
			milestone = m
		}
	}
	return streak, milestone, nil
}
