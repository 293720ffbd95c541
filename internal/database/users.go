package database

import (
	"database/sql"
	"fmt"
	"time"
)

// User represents a bot user, keyed by Telegram user ID.
type User struct {
	ID          int64
	Username    *string
	FirstName   *string
	NotifyEmail *string
	Timezone    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpsertUser creates the user row on first contact and refreshes the
// Telegram profile fields on every later one.
func (d *DB) UpsertUser(id int64, username, firstName string) error {
	_, err := d.Exec(`
		INSERT INTO users (id, username, first_name)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			updated_at = CURRENT_TIMESTAMP
	`, id, nullIfEmpty(username), nullIfEmpty(firstName))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUser returns the user row, or nil when the user has never talked
// to the bot.
func (d *DB) GetUser(id int64) (*User, error) {
	var u User
	var username, firstName, notifyEmail, timezone sql.NullString

	err := d.QueryRow(`
		SELECT id, username, first_name, notify_email, timezone, created_at, updated_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &username, &firstName, &notifyEmail, &timezone, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if username.Valid {
		u.Username = &username.String
	}
	if firstName.Valid {
		u.FirstName = &firstName.String
	}
	if notifyEmail.Valid {
		u.NotifyEmail = &notifyEmail.String
	}
	if timezone.Valid {
		u.Timezone = timezone.String
	}

	return &u, nil
}

// SetNotifyEmail stores the address that receives event confirmations.
func (d *DB) SetNotifyEmail(id int64, email string) error {
	res, err := d.Exec(`
		UPDATE users
		SET notify_email = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, email, id)
	if err != nil {
		return fmt.Errorf("failed to set notify email: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

// GetNotifyEmail returns the confirmation address, or "" when unset.
func (d *DB) GetNotifyEmail(id int64) (string, error) {
	var email sql.NullString
	err := d.QueryRow(`SELECT notify_email FROM users WHERE id = ?`, id).Scan(&email)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get notify email: %w", err)
	}
	return email.String, nil
}

// GetUserTimezone returns a user's preferred timezone, or "" when unset.
func (d *DB) GetUserTimezone(id int64) (string, error) {
	var tz sql.NullString
	err := d.QueryRow(`SELECT timezone FROM users WHERE id = ?`, id).Scan(&tz)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user timezone: %w", err)
	}
	return tz.String, nil
}

// UpdateUserTimezone updates a user's preferred timezone.
func (d *DB) UpdateUserTimezone(id int64, timezone string) error {
	_, err := d.Exec(`
		UPDATE users
		SET timezone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, timezone, id)
	if err != nil {
		return fmt.Errorf("failed to update user timezone: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
