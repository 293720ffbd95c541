package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardomaia/agendador/internal/nlp"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(nlp.NewRuleClassifier())
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name string
		text string
		want nlp.Intent
	}{
		{"list phrasing", "mostre meus eventos", nlp.IntentListEvents},
		{"list question", "quais são meus compromissos para hoje?", nlp.IntentListEvents},
		{"create phrasing", "quero agendar um compromisso", nlp.IntentCreateEvent},
		{"create with date", "crie um evento para amanhã", nlp.IntentCreateEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifyFallsBackWithoutVocabularyOverlap(t *testing.T) {
	c := newClassifier(t)

	assert.Equal(t, nlp.IntentUnknown, c.Classify("xyzzy plugh"))
}

func TestClassifyDefersToRulesForUncoveredIntents(t *testing.T) {
	c := newClassifier(t)

	// The corpus only covers listing and creation, so deletion and
	// duration changes must come from the rule engine.
	assert.Equal(t, nlp.IntentDeleteEvent, c.Classify("cancelar a reunião de amanhã"))
	assert.Equal(t, nlp.IntentUpdateDuration, c.Classify("mudar a duração da reunião para 2 horas"))
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Liste meus eventos, por favor!")

	assert.Contains(t, tokens, "liste")
	assert.Contains(t, tokens, "eventos")
	assert.NotContains(t, tokens, ",")
	assert.NotContains(t, tokens, "!")
}
