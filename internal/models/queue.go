package models

// Operation is the kind of remote obligation a queue entry records.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// IsDelete reports whether the operation belongs to the delete phase of a
// drain cycle. Inserts and updates both resolve to remote upserts.
func (o Operation) IsDelete() bool { return o == OpDelete }

// QueueEntry is one durable pending local→remote synchronization obligation.
// Queue entries are written only by the queue repository and the sync engine;
// the status surface reads them to report permanent failures.
type QueueEntry struct {
	ID         string
	TableName  string
	RecordID   string
	Operation  Operation
	SupabaseID string // carried for deletes, whose record is already gone locally
	RetryCount int
	LastError  string
	FailedAt   string // set once the retry ceiling is reached; entry becomes inert
	CreatedAt  string
}

// PermanentlyFailed reports whether the entry exhausted its retry budget and
// is excluded from future drain attempts.
func (q *QueueEntry) PermanentlyFailed() bool { return q.FailedAt != "" }
