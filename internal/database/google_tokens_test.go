package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGoogleTokenRoundTrip(t *testing.T) {
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "test-key")

	db := NewTestDB(t)
	id := CreateTestUser(t, db)

	got, err := db.GetGoogleToken(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	token := &oauth2.Token{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       expiry,
	}
	require.NoError(t, db.SaveGoogleToken(id, token))

	got, err = db.GetGoogleToken(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ya29.access", got.AccessToken)
	assert.Equal(t, "1//refresh", got.RefreshToken)
	assert.Equal(t, "Bearer", got.TokenType)
	assert.WithinDuration(t, expiry, got.Expiry, time.Second)
}

func TestGoogleTokenUpsert(t *testing.T) {
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "test-key")

	db := NewTestDB(t)
	id := CreateTestUser(t, db)

	first := &oauth2.Token{AccessToken: "old", RefreshToken: "r1", TokenType: "Bearer"}
	require.NoError(t, db.SaveGoogleToken(id, first))

	second := &oauth2.Token{AccessToken: "new", RefreshToken: "r2", TokenType: "Bearer"}
	require.NoError(t, db.SaveGoogleToken(id, second))

	got, err := db.GetGoogleToken(id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	assert.Equal(t, "r2", got.RefreshToken)
}

func TestDeleteGoogleToken(t *testing.T) {
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "test-key")

	db := NewTestDB(t)
	id := CreateTestUser(t, db)

	require.NoError(t, db.SaveGoogleToken(id, &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}))

	has, err := db.HasGoogleToken(id)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.DeleteGoogleToken(id))

	has, err = db.HasGoogleToken(id)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestEncryptDecryptToken(t *testing.T) {
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "test-key")

	ciphertext, err := encryptToken("secret")
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "secret")

	plaintext, err := decryptToken(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "secret", plaintext)
}

func TestEncryptionRequiresKey(t *testing.T) {
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "")

	_, err := encryptToken("secret")
	assert.Error(t, err)
}
