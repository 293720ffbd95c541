package database

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database for testing.
// The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

var testUserCounter int64

// CreateTestUser inserts a user with a unique Telegram-style ID and
// returns that ID.
func CreateTestUser(t *testing.T, db *DB) int64 {
	t.Helper()

	id := 100000 + atomic.AddInt64(&testUserCounter, 1)
	require.NoError(t, db.UpsertUser(id, "testuser", "Test"), "failed to create test user")
	return id
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
