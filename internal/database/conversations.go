package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ConversationRow is the persisted per-user dialog state. State holds
// the state machine name and Pending the serialized pending action, if
// any. Interpretation of both belongs to the dialog package.
type ConversationRow struct {
	UserID    int64
	State     string
	Pending   []byte
	UpdatedAt time.Time
}

// GetConversation returns the stored conversation, or nil when the
// user has no row yet.
func (d *DB) GetConversation(userID int64) (*ConversationRow, error) {
	var row ConversationRow
	var pending sql.NullString

	err := d.QueryRow(`
		SELECT user_id, state, pending, updated_at
		FROM conversations WHERE user_id = ?
	`, userID).Scan(&row.UserID, &row.State, &pending, &row.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if pending.Valid && pending.String != "" {
		row.Pending = []byte(pending.String)
	}

	return &row, nil
}

// SaveConversation upserts the conversation row. A nil pending clears
// the stored pending action.
func (d *DB) SaveConversation(userID int64, state string, pending []byte) error {
	var pendingVal interface{}
	if len(pending) > 0 {
		pendingVal = string(pending)
	}

	_, err := d.Exec(`
		INSERT INTO conversations (user_id, state, pending, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			pending = excluded.pending,
			updated_at = CURRENT_TIMESTAMP
	`, userID, state, pendingVal)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// DeleteConversation drops the stored dialog state for a user.
func (d *DB) DeleteConversation(userID int64) error {
	_, err := d.Exec(`DELETE FROM conversations WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
