package services

import (
	"encoding/base64"
	"fmt"
	"time"

	"PelicanChat/models"
)

// Page is one ascending window of a scope's timeline. Done flips when
// a window comes back short; the cursor still points at the last
// served position, so a later traversal can pick up new appends.
type Page struct {
	Items      []models.PagedMessage `json:"items"`
	NextCursor string                `json:"next_cursor"`
	Done       bool                  `json:"done"`
}

// Cursors encode the (timestamp, id) ordering key of the last served
// message. Opaque to clients, recomputed per request, never persisted.
// Full nanosecond precision: a rounded key would sit before the last
// served message and re-admit it on the next window.
func encodeCursor(t time.Time, id uint) string {
	raw := fmt.Sprintf("m:%d:%d", t.UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, uint, error) {
	if cursor == "" {
		return time.Time{}, 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	var nanos int64
	var id uint
	if _, err := fmt.Sscanf(string(raw), "m:%d:%d", &nanos, &id); err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	return time.Unix(0, nanos), id, nil
}
