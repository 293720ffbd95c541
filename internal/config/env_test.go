package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("AGENDADOR_TELEGRAM_APP_ID", "12345")
	t.Setenv("AGENDADOR_TELEGRAM_APP_HASH", "hash")
	t.Setenv("AGENDADOR_TELEGRAM_BOT_TOKEN", "123:token")
	t.Setenv("AGENDADOR_ENCRYPTION_KEY", "secret")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg := LoadFromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 12345, cfg.TelegramAppID)
	assert.Equal(t, "./agendador.db", cfg.DBPath)
	assert.Equal(t, "./telegram.session", cfg.SessionPath)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, 30, cfg.PendingTTLMinutes)
	assert.Equal(t, "rules", cfg.Classifier)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AGENDADOR_DB_PATH", "/tmp/x.db")
	t.Setenv("AGENDADOR_PENDING_TTL_MINUTES", "10")
	t.Setenv("AGENDADOR_CLASSIFIER", "bayes")

	cfg := LoadFromEnv()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.PendingTTLMinutes)
	assert.Equal(t, "bayes", cfg.Classifier)
}

func TestValidateMissing(t *testing.T) {
	setRequired(t)
	t.Setenv("AGENDADOR_TELEGRAM_BOT_TOKEN", "")

	cfg := LoadFromEnv()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENDADOR_TELEGRAM_BOT_TOKEN")
}
