package nlp

import (
	"regexp"
	"strings"
)

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:local|localização|localizacao|lugar)[\s:]+["']?([^"',.;]+)["']?`),
	regexp.MustCompile(`\b(?:em|no|na)\s+([^,.;]+)`),
}

var (
	looksLikeDateRe  = regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`)
	looksLikeClockRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	looksLikeHourRe  = regexp.MustCompile(`\b\d{1,2}h\b`)
)

// ExtractLocation pulls an event location out of "em/no/na <place>"
// style phrases. Matches that look like a date, a clock time or a
// weekday name are rejected so "na sexta" is not reported as a place.
func ExtractLocation(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			location := strings.TrimSpace(m[1])
			if location == "" {
				continue
			}
			if looksLikeDateRe.MatchString(location) ||
				looksLikeClockRe.MatchString(location) ||
				looksLikeHourRe.MatchString(location) {
				continue
			}
			if isWeekdayPhrase(location) {
				continue
			}
			return capitalizeFirst(location), true
		}
	}
	return "", false
}

func isWeekdayPhrase(s string) bool {
	for _, wd := range weekdayNames {
		if strings.Contains(s, wd.name) {
			return true
		}
	}
	return false
}
