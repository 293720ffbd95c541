package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	halfHourRe      = regexp.MustCompile(`\bmeia[\s-]?hora\b`)
	hourAndAHalfRe  = regexp.MustCompile(`\b(?:uma|1) hora e meia\b`)
	fractionHoursRe = regexp.MustCompile(`\b(\d+)[,.](\d+)[\s-]?(?:horas?|hrs?|h)\b`)
	wholeMinutesRe  = regexp.MustCompile(`\b(\d+)[\s-]?(?:minutos?|mins?|m)\b`)
	wholeHoursRe    = regexp.MustCompile(`\b(\d+)[\s-]?(?:horas?|hrs?|h)\b`)
)

// ExtractDuration pulls an event duration out of the utterance as
// positive fractional hours. The fixed idioms "meia hora" and
// "uma hora e meia" are checked before the numeric patterns so that
// "1 hora e meia" yields 1.5 rather than 1.
func ExtractDuration(text string) (float64, bool) {
	lower := strings.ToLower(text)

	if hourAndAHalfRe.MatchString(lower) {
		return 1.5, true
	}
	if halfHourRe.MatchString(lower) {
		return 0.5, true
	}

	if m := fractionHoursRe.FindStringSubmatch(lower); m != nil {
		value, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		if err == nil && value > 0 {
			return value, true
		}
	}

	if m := wholeMinutesRe.FindStringSubmatch(lower); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		if minutes > 0 {
			return float64(minutes) / 60, true
		}
	}

	if m := wholeHoursRe.FindStringSubmatch(lower); m != nil {
		hours, _ := strconv.Atoi(m[1])
		if hours > 0 {
			return float64(hours), true
		}
	}

	return 0, false
}
