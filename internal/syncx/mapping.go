package syncx

import (
	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/remote"
)

// remoteFieldNames declares, per table, how local column names translate to
// the remote schema. The schemas intentionally diverge: local favors
// fine-grained encrypted columns, remote favors fewer, coarser ones. Local
// fields absent from a table's map keep their name.
var remoteFieldNames = map[string]map[string]string{
	common.TableJournalEntries: {
		"encrypted_title": "title",
		"encrypted_body":  "content",
		"encrypted_mood":  "mood",
	},
	common.TableStepWork: {
		"encrypted_answer": "content",
		"is_complete":      "is_completed",
	},
	common.TableDailyCheckins: {
		"check_in_type":        "checkin_type",
		"encrypted_intention":  "intention",
		"encrypted_reflection": "notes",
	},
	common.TableFavoriteMeetings:   {},
	common.TableReadingReflections: {},
}

// mapFields renames local fields to their remote names for the given table.
func mapFields(table string, local map[string]any) remote.Record {
	names := remoteFieldNames[table]
	out := make(remote.Record, len(local))
	for k, v := range local {
		if rk, ok := names[k]; ok {
			k = rk
		}
		out[k] = v
	}
	return out
}

// remoteIDNamespace is the UUIDv5 namespace for deriving remote ids from
// local ids. Deterministic derivation keeps retried upserts idempotent: the
// same local record always targets the same remote row, even when an earlier
// attempt succeeded remotely but the local sync-state write was lost.
var remoteIDNamespace = uuid.MustParse("1b4e28ba-2fa1-11d2-883f-b9a761bde3fb")

// remoteIDFor returns the record's established remote id, or derives one
// from the local id on first sync.
func remoteIDFor(supabaseID, localID string) string {
	if supabaseID != "" {
		return supabaseID
	}
	return uuid.NewSHA1(remoteIDNamespace, []byte(localID)).String()
}

// cravingRating converts the local 1–10 craving intensity to the remote
// wellbeing rating: 11 - craving, clamped to 1..10. Inherited behavior; the
// inverse scale is intentional on the remote side.
func cravingRating(craving int) int {
	rating := 11 - craving
	if rating < 1 {
		return 1
	}
	if rating > 10 {
		return 10
	}
	return rating
}
