// Package history records completed interactions in a durable append-only
// log. Records are never mutated or deleted; database-backed logs can be
// read back to restore a returning session's conversation history.
package history

import (
	"context"
	"time"
)

// TimestampFormat is the wall-clock format written to the log.
const TimestampFormat = "2006-01-02 15:04:05"

// Record is one completed interaction.
type Record struct {
	Timestamp    time.Time
	SessionID    string
	UserText     string
	ResponseText string
	Mood         string
	Gender       string // display-only attribute, often empty
}

// Logger appends interaction records to a durable log.
// Append failures are surfaced to the caller as non-fatal: the pipeline
// logs a warning and the interaction still completes.
type Logger interface {
	Append(ctx context.Context, record Record) error
}

// Reader reads a session's records back from a durable log. Backends that
// support it let a returning session re-hydrate its conversation history
// after the session store has forgotten it.
type Reader interface {
	// RecentForSession returns the session's most recent records, at most
	// limit of them, in chronological order.
	RecentForSession(ctx context.Context, sessionID string, limit int) ([]Record, error)
}

// Discard is a Logger that drops every record. Used when no log
// destination is configured.
type Discard struct{}

// Append discards the record.
func (Discard) Append(context.Context, Record) error { return nil }

var _ Logger = Discard{}
