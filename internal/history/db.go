package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindease/go-mindease/internal/db"
)

// DBLogger appends records to the interactions table in PostgreSQL.
type DBLogger struct {
	database *db.DB
}

// NewDBLogger creates a database-backed logger.
func NewDBLogger(database *db.DB) *DBLogger {
	return &DBLogger{database: database}
}

// Append inserts one interaction row.
func (l *DBLogger) Append(ctx context.Context, record Record) error {
	interaction := &db.Interaction{
		ID:           uuid.New(),
		SessionID:    record.SessionID,
		CreatedAt:    record.Timestamp,
		UserText:     record.UserText,
		ResponseText: record.ResponseText,
		Mood:         record.Mood,
	}
	if record.Gender != "" {
		interaction.Gender = &record.Gender
	}

	if err := l.database.Interactions().Append(ctx, interaction); err != nil {
		return fmt.Errorf("appending interaction: %w", err)
	}
	return nil
}

// RecentForSession returns the session's most recent records in
// chronological order.
func (l *DBLogger) RecentForSession(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	interactions, err := l.database.Interactions().RecentForSession(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("reading interactions: %w", err)
	}

	records := make([]Record, 0, len(interactions))
	for _, i := range interactions {
		record := Record{
			Timestamp:    i.CreatedAt,
			SessionID:    i.SessionID,
			UserText:     i.UserText,
			ResponseText: i.ResponseText,
			Mood:         i.Mood,
		}
		if i.Gender != nil {
			record.Gender = *i.Gender
		}
		records = append(records, record)
	}
	return records, nil
}

// CountSince returns the number of interactions recorded at or after the
// given time.
func (l *DBLogger) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return l.database.Interactions().CountSince(ctx, since)
}

var (
	_ Logger = (*DBLogger)(nil)
	_ Reader = (*DBLogger)(nil)
)
