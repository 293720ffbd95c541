package nlp

import "strings"

// Intent is the user's top-level goal for one utterance.
type Intent string

const (
	IntentCreateEvent    Intent = "CREATE_EVENT"
	IntentListEvents     Intent = "LIST_EVENTS"
	IntentUpdateEvent    Intent = "UPDATE_EVENT"
	IntentUpdateDuration Intent = "UPDATE_DURATION"
	IntentDeleteEvent    Intent = "DELETE_EVENT"
	IntentUnknown        Intent = "UNKNOWN"
)

// Classifier maps one utterance to an intent. Implementations must be
// safe for concurrent use.
type Classifier interface {
	Classify(text string) Intent
}

// Phrase cues for agenda queries. A list intent requires a query cue
// paired with an agenda object, so that "amanhã vou criar um evento"
// is not mistaken for a query.
var agendaQueries = []string{
	"quais", "quais são", "me mostra", "mostre", "me diz", "diga",
	"preciso saber", "gostaria de saber", "poderia me dizer",
	"tenho", "tem", "existe", "há", "estão", "estarão",
	"qual é", "qual a", "qual minha", "quero ver", "quero saber",

	"para hoje", "pra hoje", "hoje eu tenho", "tenho hoje",
	"para amanhã", "pra amanhã", "amanhã eu tenho", "tenho amanhã",
	"para essa semana", "essa semana", "na semana", "da semana",
	"tenho marcado", "está marcado", "foi marcado",

	"não quero esquecer", "não posso esquecer", "lembrar", "me lembre",
	"o que temos", "preciso me preparar",
}

var agendaObjects = []string{
	"agenda", "calendário", "calendar", "dia", "cronograma",
	"reuniões", "reunioes", "reunião", "reuniao",
	"compromissos", "compromisso", "eventos", "evento",
	"marcado", "marcações", "marcacoes", "calls", "meetings",
}

// Whole-phrase idioms that are list queries even without an explicit
// agenda object.
var listExpressions = []string{
	"o que tenho hoje", "o que eu tenho hoje", "o que tem hoje",
	"tenho algo hoje", "reuniões de hoje", "compromissos de hoje",
	"o que tenho amanhã", "o que eu tenho amanhã", "o que tem amanhã",
	"tenho algo amanhã", "reuniões de amanhã", "compromissos de amanhã",
	"o que tenho essa semana", "o que está marcado", "quais são os próximos",
	"próximos eventos", "próximas reuniões", "próximos compromissos",
}

var createActions = []string{
	"agendar", "marcar", "criar", "adicionar", "incluir", "inserir",
	"novo", "nova", "agende", "marque", "crie", "adicione",
	"quero marcar", "quero agendar", "preciso marcar", "preciso agendar",
	"gostaria de marcar", "gostaria de agendar", "poderia marcar",
	"por favor agende", "por favor marque", "coloque", "colocar",

	"para amanhã vamos ter", "amanhã teremos", "amanhã será",
	"para semana que vem", "na próxima semana", "semana que vem",
	"vou ter", "teremos", "vamos ter", "acontecerá",
}

var updateActions = []string{
	"alterar", "mudar", "editar", "atualizar", "modificar", "trocar",
	"mover", "transferir", "reagendar", "remarcar", "ajustar",
	"quero mudar", "preciso alterar", "gostaria de mudar", "poderia alterar",

	"aumentar duração", "diminuir duração", "estender", "prolongar", "encurtar",
}

var durationContext = []string{
	"duração", "durar", "dura", "horas", "hora", "minutos", "tempo",
	"mais longo", "mais curto", "estender", "prolongar", "reduzir",
	"aumentar o tempo", "diminuir o tempo", "por mais tempo",
}

var deleteActions = []string{
	"cancelar", "remover", "deletar", "apagar", "excluir", "desmarcar",
	"quero cancelar", "preciso cancelar", "gostaria de cancelar",
	"não quero mais", "não vou participar", "não poderei", "não posso", "impossibilitado",
	"não acontecerá", "não vai acontecer", "não ocorrerá", "removido",
}

var questionWords = []string{
	"quando", "que horas", "a que horas", "qual horário", "onde", "com quem",
}

// intentRule is one entry of the priority-ordered classification table.
// The first rule that reports ok wins.
type intentRule struct {
	name  string
	apply func(text string) (Intent, bool)
}

// intentRules is the classification order as an explicit artifact: action
// verbs outrank temporal nouns, and the bare-temporal fallback runs only
// after every verb rule has had its chance.
var intentRules = []intentRule{
	{
		name: "agenda query paired with agenda object",
		apply: func(text string) (Intent, bool) {
			if containsAny(text, agendaQueries) && containsAny(text, agendaObjects) {
				return IntentListEvents, true
			}
			return IntentUnknown, false
		},
	},
	{
		name: "whole-phrase list idiom",
		apply: func(text string) (Intent, bool) {
			if containsAny(text, listExpressions) {
				return IntentListEvents, true
			}
			return IntentUnknown, false
		},
	},
	{
		name: "creation verb",
		apply: func(text string) (Intent, bool) {
			if containsAny(text, createActions) {
				return IntentCreateEvent, true
			}
			return IntentUnknown, false
		},
	},
	{
		name: "modification verb, specializing on duration context",
		apply: func(text string) (Intent, bool) {
			if !containsAny(text, updateActions) {
				return IntentUnknown, false
			}
			if containsAny(text, durationContext) {
				return IntentUpdateDuration, true
			}
			return IntentUpdateEvent, true
		},
	},
	{
		name: "cancellation verb",
		apply: func(text string) (Intent, bool) {
			if containsAny(text, deleteActions) {
				return IntentDeleteEvent, true
			}
			return IntentUnknown, false
		},
	},
	{
		name: "bare temporal word without action verb",
		apply: func(text string) (Intent, bool) {
			if !strings.Contains(text, "hoje") && !strings.Contains(text, "amanhã") {
				return IntentUnknown, false
			}
			if containsAny(text, createActions) || containsAny(text, updateActions) || containsAny(text, deleteActions) {
				return IntentUnknown, false
			}
			return IntentListEvents, true
		},
	},
	{
		name: "interrogative about schedule",
		apply: func(text string) (Intent, bool) {
			if containsAny(text, questionWords) {
				return IntentListEvents, true
			}
			return IntentUnknown, false
		},
	},
}

// RuleClassifier is the deterministic keyword-based intent classifier.
type RuleClassifier struct{}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify runs the rule table in priority order over the lowercased
// utterance and returns the first match, or IntentUnknown.
func (c *RuleClassifier) Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return IntentUnknown
	}

	for _, rule := range intentRules {
		if intent, ok := rule.apply(normalized); ok {
			return intent
		}
	}
	return IntentUnknown
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
