package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"linguachat/auth"
	"linguachat/chat"
)

// LoadSettings retrieves the user's persisted display settings. The
// second return value is false when the user has never saved any.
func (db *DB) LoadSettings(ctx context.Context, p auth.Principal) (chat.DisplaySettings, bool, error) {
	if !p.Valid() {
		return chat.DisplaySettings{}, false, auth.ErrNoPrincipal
	}

	var value string
	err := db.conn.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE user_id = ?", p.UserID,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return chat.DisplaySettings{}, false, nil
	}
	if err != nil {
		return chat.DisplaySettings{}, false, fmt.Errorf("failed to load settings: %w", err)
	}

	var settings chat.DisplaySettings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return chat.DisplaySettings{}, false, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, true, nil
}

// SaveSettings persists the full settings document for the user.
func (db *DB) SaveSettings(ctx context.Context, p auth.Principal, s chat.DisplaySettings) error {
	if !p.Valid() {
		return auth.ErrNoPrincipal
	}

	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO settings (user_id, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p.UserID, string(value), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
