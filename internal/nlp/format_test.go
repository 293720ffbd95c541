package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 de março de 2024", FormatDate("2024-03-15"))
	assert.Equal(t, "1 de janeiro de 2025", FormatDate("2025-01-01"))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "14h30", FormatTime("14:30"))
	assert.Equal(t, "9h", FormatTime("09:00"))
	assert.Equal(t, "0h15", FormatTime("00:15"))
	assert.Equal(t, "oops", FormatTime("oops"))
}

func TestFormatWeekday(t *testing.T) {
	assert.Equal(t, "Sexta", FormatWeekday(time.Friday))
	assert.Equal(t, "Domingo", FormatWeekday(time.Sunday))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 hora", FormatDuration(1))
	assert.Equal(t, "2 horas", FormatDuration(2))
	assert.Equal(t, "1,5 horas", FormatDuration(1.5))
	assert.Equal(t, "30 minutos", FormatDuration(0.5))
	assert.Equal(t, "", FormatDuration(0))
}
