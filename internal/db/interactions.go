package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InteractionRepository handles interaction log database operations.
// The pipeline only appends; reads serve history re-hydration and
// operational reporting.
type InteractionRepository struct {
	pool *pgxpool.Pool
}

// Append inserts a new interaction record.
func (r *InteractionRepository) Append(ctx context.Context, interaction *Interaction) error {
	query := `
		INSERT INTO interactions (id, session_id, created_at, user_text, response_text, mood, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		interaction.ID,
		interaction.SessionID,
		interaction.CreatedAt,
		interaction.UserText,
		interaction.ResponseText,
		interaction.Mood,
		interaction.Gender,
	)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// CountSince returns the number of interactions recorded at or after the
// given time.
func (r *InteractionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM interactions WHERE created_at >= $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting interactions: %w", err)
	}
	return count, nil
}

// RecentForSession returns the session's most recent interactions, at most
// limit of them, in chronological order.
func (r *InteractionRepository) RecentForSession(ctx context.Context, sessionID string, limit int) ([]Interaction, error) {
	query := `
		SELECT id, session_id, created_at, user_text, response_text, mood, gender
		FROM interactions
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var i Interaction
		err := rows.Scan(&i.ID, &i.SessionID, &i.CreatedAt, &i.UserText, &i.ResponseText, &i.Mood, &i.Gender)
		if err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		interactions = append(interactions, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading interactions: %w", err)
	}

	// The query returns newest first; flip to chronological for display.
	for i, j := 0, len(interactions)-1; i < j; i, j = i+1, j-1 {
		interactions[i], interactions[j] = interactions[j], interactions[i]
	}
	return interactions, nil
}
