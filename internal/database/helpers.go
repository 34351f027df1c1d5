package database

import (
	"errors"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

// ErrNotFound is returned (wrapped) when a list or item document is absent.
// Board reads report absence as a nil board instead.
var ErrNotFound = docstore.ErrNotFound

// IsNotFound reports whether err means the target document does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, docstore.ErrNotFound)
}

// storable reports whether every id could name a stored document. Ids that
// cannot are reported as absent, never as malformed: "a:b" is a board that
// does not exist.
func storable(ids ...string) bool {
	for _, id := range ids {
		if !docstore.ValidSegment(id) {
			return false
		}
	}
	return true
}

// parseTimestamp reads a stored timestamp.
// Returns zero time if the value is empty or malformed.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseOptionalTimestamp reads a stored timestamp that may be absent.
// Returns nil if the value is empty or malformed.
func parseOptionalTimestamp(s string) *time.Time {
	t := parseTimestamp(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

// stamp truncates t to the stored millisecond precision in UTC, so values
// returned to callers equal the values read back later
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// timestampField renders t for storage
func timestampField(t time.Time) string {
	return models.FormatTimestamp(t)
}
