package db

import (
	"context"
	"fmt"
	"time"

	"linguachat/auth"
	"linguachat/chat"
)

// AddMessage persists a message at the given per-chat sequence number
// and returns the authoritative receipt: the timestamp and author
// fields the database assigned.
func (db *DB) AddMessage(ctx context.Context, p auth.Principal, chatID string, seq int, role chat.Role, content, translated string) (chat.Receipt, error) {
	if !p.Valid() {
		return chat.Receipt{}, auth.ErrNoPrincipal
	}

	// Upsert on (chat_id, seq) so a retried write is idempotent: if a
	// first attempt committed but errored on return, the retry lands on
	// the same row instead of failing the unique constraint.
	now := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (chat_id, seq, role, content, translated_content, added_at, author_email, author_user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chat_id, seq) DO UPDATE SET
			role = excluded.role,
			content = excluded.content,
			translated_content = excluded.translated_content,
			added_at = excluded.added_at,
			author_email = excluded.author_email,
			author_user_id = excluded.author_user_id`,
		chatID, seq, string(role), content, translated, now, p.Email, p.UserID,
	)
	if err != nil {
		return chat.Receipt{}, fmt.Errorf("failed to save message: %w", err)
	}

	return chat.Receipt{
		AddedAt:      now,
		AuthorEmail:  p.Email,
		AuthorUserID: p.UserID,
	}, nil
}

// ListMessages retrieves all messages in a chat in sequence order.
func (db *DB) ListMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT chat_id, seq, role, content, translated_content, added_at, author_email, author_user_id FROM messages WHERE chat_id = ? ORDER BY seq ASC",
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var msg chat.Message
		var role string
		if err := rows.Scan(&msg.ChatID, &msg.ID, &role, &msg.Content, &msg.TranslatedContent, &msg.AddedAt, &msg.AuthorEmail, &msg.AuthorUserID); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = chat.Role(role)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// CountMessages returns the number of messages in a chat.
func (db *DB) CountMessages(ctx context.Context, chatID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE chat_id = ?", chatID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
