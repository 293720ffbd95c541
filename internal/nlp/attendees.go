package nlp

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)

	attendeePhraseRe = regexp.MustCompile(`\b(?:com|para|convidar|participantes|participante|adicionar)[\s:]+([^,.;]+(?:(?:,|\se\s)\s*[^,.;]+)*)`)
	attendeeSplitRe  = regexp.MustCompile(`,|\se\s`)
)

// eventWords disqualify a captured fragment from being an attendee
// name, so "convidar a equipe para a reunião" does not yield "reunião".
var eventWords = []string{"reunião", "reuniao", "evento", "call"}

// ExtractAttendees pulls an attendee list out of the utterance.
// Email-like tokens anywhere in the text win; otherwise phrases after
// "com/para/convidar" are split on commas and the conjunction "e".
// Returns nil when nothing usable is found.
func ExtractAttendees(text string) []string {
	if emails := emailRe.FindAllString(text, -1); len(emails) > 0 {
		return emails
	}

	lower := strings.ToLower(text)
	m := attendeePhraseRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}

	var attendees []string
	for _, part := range attendeeSplitRe.Split(m[1], -1) {
		part = strings.TrimSpace(part)
		if part == "" || containsAny(part, eventWords) {
			continue
		}
		attendees = append(attendees, part)
	}
	return attendees
}
