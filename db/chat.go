package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linguachat/auth"
	"linguachat/chat"
)

// ErrChatNotFound is returned when a chat does not exist or is not
// owned by the calling principal. Ownership failures are deliberately
// indistinguishable from missing chats.
var ErrChatNotFound = errors.New("chat not found")

// CreateChat creates a new chat owned by the principal and returns it
// with its assigned id.
func (db *DB) CreateChat(ctx context.Context, p auth.Principal, name, sourceLang, targetLang string) (chat.Chat, error) {
	if !p.Valid() {
		return chat.Chat{}, auth.ErrNoPrincipal
	}

	id := uuid.NewString()
	now := time.Now()

	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO chats (id, name, source_language, target_language, created_at, created_by, created_by_user_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, name, sourceLang, targetLang, now, p.Email, p.UserID,
	)
	if err != nil {
		return chat.Chat{}, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat.Chat{
		ID:             id,
		Name:           name,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		CreatedAt:      now,
		Messages:       []chat.Message{},
	}, nil
}

// GetChat retrieves a chat with its full message history. Chats owned
// by other users are not visible.
func (db *DB) GetChat(ctx context.Context, p auth.Principal, chatID string) (chat.Chat, error) {
	if !p.Valid() {
		return chat.Chat{}, auth.ErrNoPrincipal
	}

	var c chat.Chat
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, name, source_language, target_language, created_at FROM chats WHERE id = ? AND created_by_user_id = ?",
		chatID, p.UserID,
	).Scan(&c.ID, &c.Name, &c.SourceLanguage, &c.TargetLanguage, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return chat.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return chat.Chat{}, fmt.Errorf("failed to get chat: %w", err)
	}

	c.Messages, err = db.ListMessages(ctx, chatID)
	if err != nil {
		return chat.Chat{}, err
	}
	return c, nil
}

// ListChats retrieves all chats created by the principal, ordered by
// creation time, each with its message history loaded.
func (db *DB) ListChats(ctx context.Context, p auth.Principal) ([]chat.Chat, error) {
	if !p.Valid() {
		return nil, auth.ErrNoPrincipal
	}

	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, source_language, target_language, created_at FROM chats WHERE created_by_user_id = ? ORDER BY created_at ASC",
		p.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []chat.Chat
	for rows.Next() {
		var c chat.Chat
		if err := rows.Scan(&c.ID, &c.Name, &c.SourceLanguage, &c.TargetLanguage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	for i := range chats {
		chats[i].Messages, err = db.ListMessages(ctx, chats[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return chats, nil
}

// RenameChat updates a chat's name. Only the owner may rename.
func (db *DB) RenameChat(ctx context.Context, p auth.Principal, chatID, newName string) error {
	if !p.Valid() {
		return auth.ErrNoPrincipal
	}

	result, err := db.conn.ExecContext(ctx,
		"UPDATE chats SET name = ? WHERE id = ? AND created_by_user_id = ?",
		newName, chatID, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// DeleteChat removes a chat and all its messages. Only the owner may
// delete; deletion is immediate, there is no undo.
func (db *DB) DeleteChat(ctx context.Context, p auth.Principal, chatID string) error {
	if !p.Valid() {
		return auth.ErrNoPrincipal
	}

	// Messages first, then the chat itself.
	if _, err := db.conn.ExecContext(ctx,
		"DELETE FROM messages WHERE chat_id = ? AND chat_id IN (SELECT id FROM chats WHERE created_by_user_id = ?)",
		chatID, p.UserID,
	); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}

	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM chats WHERE id = ? AND created_by_user_id = ?",
		chatID, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}
