package setup

import "github.com/kverlaine/pitwall/internal/models"

// endOfDay stands in for a missing start time so a dated-only session
// orders after every timed session on the same date.
const endOfDay = "23:59:59"

// OrderingKey builds the sortable timestamp for a session. The fixed-width
// zero-padded layout makes plain string comparison chronological.
func OrderingKey(session *models.Session) string {
	start := session.StartTime
	if start == "" {
		start = endOfDay
	}
	return session.Date + "T" + start
}

// SelectPrevious picks the chronologically nearest session strictly earlier
// than current among candidates. Candidates for another vehicle, the current
// session itself, and later-or-equal sessions are skipped regardless of how
// the list was queried. When two candidates share an ordering key the
// smallest id wins, so the choice is deterministic whatever the candidate
// order. Returns nil when no candidate is strictly earlier.
func SelectPrevious(current *models.Session, candidates []*models.Session) *models.Session {
	cutoff := OrderingKey(current)

	var best *models.Session
	var bestKey string
	for _, c := range candidates {
		if c == nil || c.ID == current.ID || c.VehicleID != current.VehicleID {
			continue
		}
		key := OrderingKey(c)
		if key >= cutoff {
			continue
		}
		if best == nil || key > bestKey || (key == bestKey && c.ID < best.ID) {
			best = c
			bestKey = key
		}
	}
	return best
}
