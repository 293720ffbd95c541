package migrations

import "database/sql"

func init() {
	Register(Migration{
		Version: 1,
		Name:    "initial_schema",
		Up:      up001,
	})
}

func up001(db *sql.DB) error {
	// users are keyed by their Telegram user ID, there is no separate
	// surrogate key
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			notify_email TEXT,
			timezone TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS google_tokens (
			user_id INTEGER PRIMARY KEY,
			access_token_encrypted BLOB NOT NULL,
			refresh_token_encrypted BLOB NOT NULL,
			token_type TEXT NOT NULL DEFAULT 'Bearer',
			expiry DATETIME,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS conversations (
			user_id INTEGER PRIMARY KEY,
			state TEXT NOT NULL,
			pending TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`)
	return err
}
