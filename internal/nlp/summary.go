package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// summaryPatterns are tried in order: explicit markers first, generic
// "agendar X" captures last.
var summaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:sobre|assunto|título|titulo|tema)[\s:]+["']?([^"']+)["']?`),
	regexp.MustCompile(`(?:reunião|reuniao|encontro|evento|compromisso)\s+(?:sobre|com|de)\s+([^,.:;]+)`),
	regexp.MustCompile(`(?:marcar|agendar|criar)\s+([^,.:;]+)\s+(?:para|em|no dia)`),
	regexp.MustCompile(`(?:marcar|agendar|criar)\s+([^,.:;]+)`),
}

// summaryTrailerRe strips scheduling words that leak into a captured
// title, such as "reunião amanhã às 10h" -> "reunião amanhã".
var summaryTrailerRe = regexp.MustCompile(`(?:^|\s)(?:para|no dia|às|as|com duração|com duracao)(?:\s.*)?$`)

// ExtractSummary derives an event title from the utterance. Unlike the
// other extractors it never reports absence: when no marker pattern
// matches it falls back to a label for the meeting type, and finally to
// the literal "Evento".
func ExtractSummary(text string) string {
	lower := strings.ToLower(text)

	for _, re := range summaryPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		summary := strings.TrimSpace(m[1])
		summary = strings.TrimSpace(summaryTrailerRe.ReplaceAllString(summary, ""))
		if summary != "" {
			return capitalizeFirst(summary)
		}
	}

	switch {
	case strings.Contains(lower, "reunião"), strings.Contains(lower, "reuniao"), strings.Contains(lower, "reunir"):
		return "Reunião"
	case strings.Contains(lower, "call"):
		return "Call"
	case strings.Contains(lower, "entrevista"):
		return "Entrevista"
	}
	return "Evento"
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
