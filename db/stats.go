package db

import (
	"context"
	"fmt"

	"linguachat/auth"
)

// Stats represents per-user usage statistics for the stats view
type Stats struct {
	ChatCount         int64
	MessageCount      int64
	UserMessages      int64
	AssistantMessages int64
}

// GetStats returns usage statistics for the principal's chats.
func (db *DB) GetStats(ctx context.Context, p auth.Principal) (*Stats, error) {
	if !p.Valid() {
		return nil, auth.ErrNoPrincipal
	}

	stats := &Stats{}

	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chats WHERE created_by_user_id = ?", p.UserID,
	).Scan(&stats.ChatCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count chats: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN role = 'user' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN role = 'assistant' THEN 1 ELSE 0 END), 0)
		FROM messages WHERE author_user_id = ?`, p.UserID,
	).Scan(&stats.MessageCount, &stats.UserMessages, &stats.AssistantMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	return stats, nil
}
