package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "query cue paired with agenda object",
			text: "Quais são minhas reuniões?",
			want: IntentListEvents,
		},
		{
			name: "whole phrase list idiom",
			text: "o que tenho hoje",
			want: IntentListEvents,
		},
		{
			name: "proximos eventos idiom",
			text: "próximos eventos",
			want: IntentListEvents,
		},
		{
			name: "creation verb",
			text: "Agendar reunião amanhã às 10h",
			want: IntentCreateEvent,
		},
		{
			name: "creation verb beats temporal cue",
			text: "marcar reunião hoje",
			want: IntentCreateEvent,
		},
		{
			name: "creation verb in future phrasing",
			text: "amanhã vou criar um evento",
			want: IntentCreateEvent,
		},
		{
			name: "generic update verb",
			text: "Mudar reunião de amanhã para sexta",
			want: IntentUpdateEvent,
		},
		{
			name: "update specializes to duration",
			text: "Mudar duração da reunião para 2 horas",
			want: IntentUpdateDuration,
		},
		{
			name: "aumentar duracao implies duration update",
			text: "aumentar duração da reunião com o cliente",
			want: IntentUpdateDuration,
		},
		{
			name: "cancellation verb",
			text: "Cancelar reunião de amanhã",
			want: IntentDeleteEvent,
		},
		{
			name: "nao vou participar",
			text: "não vou participar da call de sexta",
			want: IntentDeleteEvent,
		},
		{
			name: "bare amanha without action verb",
			text: "amanhã",
			want: IntentListEvents,
		},
		{
			name: "bare hoje without action verb",
			text: "e hoje?",
			want: IntentListEvents,
		},
		{
			name: "interrogative about schedule",
			text: "quando é a entrevista?",
			want: IntentListEvents,
		},
		{
			name: "unintelligible input",
			text: "bom dia",
			want: IntentUnknown,
		},
		{
			name: "empty input",
			text: "   ",
			want: IntentUnknown,
		},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}
