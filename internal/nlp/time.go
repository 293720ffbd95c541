package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRe     = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hourHRe     = regexp.MustCompile(`\b(\d{1,2})h(\d{2})?\b`)
	horasRe     = regexp.MustCompile(`\b(\d{1,2}) ?horas?(?: e (\d{1,2}) ?minutos?)?\b`)
	bareHourRe  = regexp.MustCompile(`\b(\d{1,2}) ?(?:h|hrs)\b`)
	dayPeriodRe = regexp.MustCompile(`\b(\d{1,2}) da (?:tarde|noite|manhã|manha)\b`)
	middayRe    = regexp.MustCompile(`\bmeio[- ]dia(?: e (\d{1,2}))?\b`)
)

// ExtractTime pulls a clock time out of the utterance and returns it as
// a zero-padded 24h "HH:MM" string. Recognizes "14:30", "14h30", "10h",
// "10 horas e 15 minutos", "10 hrs", "2 da tarde" and "meio-dia [e M]".
// With "tarde" or "noite" in the text, hours below 12 are promoted to
// the afternoon.
func ExtractTime(text string) (string, bool) {
	lower := strings.ToLower(text)
	afternoon := strings.Contains(lower, "tarde") || strings.Contains(lower, "noite")

	type attempt struct {
		re *regexp.Regexp
	}
	for _, a := range []attempt{{clockRe}, {hourHRe}, {horasRe}, {bareHourRe}, {dayPeriodRe}} {
		m := a.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if len(m) > 2 && m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if afternoon && hour < 12 {
			hour += 12
		}
		if hour > 23 || minute > 59 {
			continue
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}

	if m := middayRe.FindStringSubmatch(lower); m != nil {
		minute := 0
		if m[1] != "" {
			minute, _ = strconv.Atoi(m[1])
		}
		if minute > 59 {
			minute = 0
		}
		return fmt.Sprintf("12:%02d", minute), true
	}

	return "", false
}
