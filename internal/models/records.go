// Package models defines the client-side domain records persisted in the
// local store and synchronized with the remote store.
//
// Encrypted* fields hold cipher tokens produced by cryptox, never plaintext.
// Timestamps are ISO-8601 strings in UTC, matching the local schema.
package models

// SyncStatus is the local view of a record's durability.
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
)

// CheckinType distinguishes morning intentions from evening reflections.
type CheckinType string

const (
	CheckinMorning CheckinType = "morning"
	CheckinEvening CheckinType = "evening"
)

// JournalEntry is a dated free-form journal record.
type JournalEntry struct {
	ID             string
	UserID         string
	EncryptedTitle string
	EncryptedBody  string
	EncryptedMood  string
	SyncStatus     SyncStatus
	SupabaseID     string // empty until first successful sync
	CreatedAt      string
	UpdatedAt      string
}

// StepWork is one answered question inside a twelve-step program step.
type StepWork struct {
	ID              string
	UserID          string
	StepNumber      int
	QuestionIndex   int
	EncryptedAnswer string
	IsComplete      bool
	SyncStatus      SyncStatus
	SupabaseID      string
	CreatedAt       string
	UpdatedAt       string
}

// DailyCheckin records either a morning intention or an evening reflection.
// CravingLevel is a plaintext 1–10 slider value; the free-text fields and
// mood are encrypted.
type DailyCheckin struct {
	ID                  string
	UserID              string
	CheckinType         CheckinType
	CheckinDate         string // YYYY-MM-DD
	EncryptedIntention  string // morning
	EncryptedReflection string // evening
	EncryptedMood       string
	CravingLevel        int // 0 when not recorded
	SyncStatus          SyncStatus
	SupabaseID          string
	CreatedAt           string
	UpdatedAt           string
}

// FavoriteMeeting marks a recurring meeting the user attends.
type FavoriteMeeting struct {
	ID            string
	UserID        string
	MeetingID     string
	EncryptedNote string
	SyncStatus    SyncStatus
	SupabaseID    string
	CreatedAt     string
	UpdatedAt     string
}

// ReadingReflection is the user's response to a daily reading.
type ReadingReflection struct {
	ID            string
	UserID        string
	ReadingDate   string // YYYY-MM-DD
	EncryptedText string
	SyncStatus    SyncStatus
	SupabaseID    string
	CreatedAt     string
	UpdatedAt     string
}
