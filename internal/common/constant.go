// Package common contains shared constants used across Stillwater components.
package common

// Syncable local table names. The sync queue and the engine's table registry
// are keyed by these values.
const (
	TableJournalEntries     = "journal_entries"
	TableStepWork           = "step_work"
	TableDailyCheckins      = "daily_checkins"
	TableFavoriteMeetings   = "favorite_meetings"
	TableReadingReflections = "reading_reflections"
)

// Metadata keys for session material cached in the local store.
const (
	MetaAccessToken  = "access_token"
	MetaRemoteUserID = "remote_user_id"
	MetaLocalUserID  = "local_user_id"
)
