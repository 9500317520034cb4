package syncx

import (
	"context"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/models"
	"github.com/stillwater-app/stillwater/internal/remote"
	"github.com/stillwater-app/stillwater/internal/repositories/checkins"
	"github.com/stillwater-app/stillwater/internal/repositories/favorites"
	"github.com/stillwater-app/stillwater/internal/repositories/journal"
	"github.com/stillwater-app/stillwater/internal/repositories/reflections"
	"github.com/stillwater-app/stillwater/internal/repositories/stepwork"
)

// JournalSyncer syncs journal_entries.
type JournalSyncer struct {
	repo journal.Repository
}

func NewJournalSyncer(repo journal.Repository) *JournalSyncer {
	return &JournalSyncer{repo: repo}
}

func (s *JournalSyncer) Table() string { return common.TableJournalEntries }

func (s *JournalSyncer) BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error) {
	e, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	sid := remoteIDFor(e.SupabaseID, e.ID)
	rec := mapFields(s.Table(), map[string]any{
		"encrypted_title": e.EncryptedTitle,
		"encrypted_body":  e.EncryptedBody,
		"encrypted_mood":  e.EncryptedMood,
	})
	rec["id"] = sid
	rec["user_id"] = e.UserID
	rec["created_at"] = e.CreatedAt
	rec["updated_at"] = e.UpdatedAt
	return rec, sid, nil
}

func (s *JournalSyncer) ApplyUpserted(ctx context.Context, recordID, supabaseID string) error {
	return s.repo.MarkSynced(ctx, recordID, supabaseID)
}

// StepWorkSyncer syncs step_work.
type StepWorkSyncer struct {
	repo stepwork.Repository
}

func NewStepWorkSyncer(repo stepwork.Repository) *StepWorkSyncer {
	return &StepWorkSyncer{repo: repo}
}

func (s *StepWorkSyncer) Table() string { return common.TableStepWork }

func (s *StepWorkSyncer) BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error) {
	w, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	sid := remoteIDFor(w.SupabaseID, w.ID)
	rec := mapFields(s.Table(), map[string]any{
		"encrypted_answer": w.EncryptedAnswer,
		"is_complete":      w.IsComplete,
	})
	rec["id"] = sid
	rec["user_id"] = w.UserID
	rec["step_number"] = w.StepNumber
	rec["question_index"] = w.QuestionIndex
	rec["created_at"] = w.CreatedAt
	rec["updated_at"] = w.UpdatedAt
	return rec, sid, nil
}

func (s *StepWorkSyncer) ApplyUpserted(ctx context.Context, recordID, supabaseID string) error {
	return s.repo.MarkSynced(ctx, recordID, supabaseID)
}

// CheckinSyncer syncs daily_checkins.
type CheckinSyncer struct {
	repo checkins.Repository
}

func NewCheckinSyncer(repo checkins.Repository) *CheckinSyncer {
	return &CheckinSyncer{repo: repo}
}

func (s *CheckinSyncer) Table() string { return common.TableDailyCheckins }

func (s *CheckinSyncer) BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error) {
	c, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	sid := remoteIDFor(c.SupabaseID, c.ID)

	local := map[string]any{
		"check_in_type":  c.CheckinType,
		"encrypted_mood": c.EncryptedMood,
	}
	// Morning check-ins carry an intention, evening ones a reflection; the
	// other column is empty and stays local.
	switch c.CheckinType {
	case models.CheckinMorning:
		local["encrypted_intention"] = c.EncryptedIntention
	case models.CheckinEvening:
		local["encrypted_reflection"] = c.EncryptedReflection
	}

	rec := mapFields(s.Table(), local)
	rec["id"] = sid
	rec["user_id"] = c.UserID
	rec["checkin_date"] = c.CheckinDate
	if c.CravingLevel > 0 {
		rec["rating"] = cravingRating(c.CravingLevel)
	}
	rec["created_at"] = c.CreatedAt
	rec["updated_at"] = c.UpdatedAt
	return rec, sid, nil
}

func (s *CheckinSyncer) ApplyUpserted(ctx context.Context, recordID, supabaseID string) error {
	return s.repo.MarkSynced(ctx, recordID, supabaseID)
}

// FavoriteSyncer syncs favorite_meetings.
type FavoriteSyncer struct {
	repo favorites.Repository
}

func NewFavoriteSyncer(repo favorites.Repository) *FavoriteSyncer {
	return &FavoriteSyncer{repo: repo}
}

func (s *FavoriteSyncer) Table() string { return common.TableFavoriteMeetings }

func (s *FavoriteSyncer) BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error) {
	f, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	sid := remoteIDFor(f.SupabaseID, f.ID)
	rec := mapFields(s.Table(), map[string]any{
		"encrypted_note": f.EncryptedNote,
	})
	rec["id"] = sid
	rec["user_id"] = f.UserID
	rec["meeting_id"] = f.MeetingID
	rec["created_at"] = f.CreatedAt
	rec["updated_at"] = f.UpdatedAt
	return rec, sid, nil
}

func (s *FavoriteSyncer) ApplyUpserted(ctx context.Context, recordID, supabaseID string) error {
	return s.repo.MarkSynced(ctx, recordID, supabaseID)
}

// ReflectionSyncer syncs reading_reflections.
type ReflectionSyncer struct {
	repo reflections.Repository
}

func NewReflectionSyncer(repo reflections.Repository) *ReflectionSyncer {
	return &ReflectionSyncer{repo: repo}
}

func (s *ReflectionSyncer) Table() string { return common.TableReadingReflections }

func (s *ReflectionSyncer) BuildRemote(ctx context.Context, recordID string) (remote.Record, string, error) {
	x, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	sid := remoteIDFor(x.SupabaseID, x.ID)
	rec := mapFields(s.Table(), map[string]any{
		"encrypted_text": x.EncryptedText,
	})
	rec["id"] = sid
	rec["user_id"] = x.UserID
	rec["reading_date"] = x.ReadingDate
	rec["created_at"] = x.CreatedAt
	rec["updated_at"] = x.UpdatedAt
	return rec, sid, nil
}

func (s *ReflectionSyncer) ApplyUpserted(ctx context.Context, recordID, supabaseID string) error {
	return s.repo.MarkSynced(ctx, recordID, supabaseID)
}
