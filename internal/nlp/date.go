package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the layout extractors use for calendar dates.
const ISODate = "2006-01-02"

// weekdayNames maps Portuguese weekday spellings (accented and not) to
// Go weekdays. Order matters only for readability; matching is by
// substring containment so "sexta-feira" and "sexta" hit the same day.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"segunda-feira", time.Monday},
	{"segunda feira", time.Monday},
	{"segunda", time.Monday},
	{"terça-feira", time.Tuesday},
	{"terça feira", time.Tuesday},
	{"terça", time.Tuesday},
	{"terca-feira", time.Tuesday},
	{"terca feira", time.Tuesday},
	{"terca", time.Tuesday},
	{"quarta-feira", time.Wednesday},
	{"quarta feira", time.Wednesday},
	{"quarta", time.Wednesday},
	{"quinta-feira", time.Thursday},
	{"quinta feira", time.Thursday},
	{"quinta", time.Thursday},
	{"sexta-feira", time.Friday},
	{"sexta feira", time.Friday},
	{"sexta", time.Friday},
	{"sábado", time.Saturday},
	{"sabado", time.Saturday},
	{"domingo", time.Sunday},
}

var monthNames = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})(?:[/.-](\d{2,4}))?\b`)
	dayOfMonthRe  = regexp.MustCompile(`\bdia (\d{1,2})(?: (?:de|do|da) ([a-zA-Zçã]+))?`)
)

// ExtractDate pulls a calendar date out of the utterance, resolved
// against now (which carries the bot's timezone). Relative keywords win
// over weekday names, which win over explicit numeric patterns, so
// "amanhã dia 15" resolves via "amanhã". Returns the date in ISODate
// format, or ok=false when the text names no recognizable date.
func ExtractDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// "depois de amanhã" contains "amanhã", so it must be checked first.
	switch {
	case strings.Contains(lower, "depois de amanhã"), strings.Contains(lower, "depois de amanha"):
		return today.AddDate(0, 0, 2).Format(ISODate), true
	case strings.Contains(lower, "amanhã"), strings.Contains(lower, "amanha"):
		return today.AddDate(0, 0, 1).Format(ISODate), true
	case strings.Contains(lower, "hoje"):
		return today.Format(ISODate), true
	}

	for _, wd := range weekdayNames {
		if !strings.Contains(lower, wd.name) {
			continue
		}
		daysAhead := int(wd.day-today.Weekday()+7) % 7
		if daysAhead == 0 {
			// A bare weekday name never means today; roll a full week.
			daysAhead = 7
		}
		return today.AddDate(0, 0, daysAhead).Format(ISODate), true
	}

	if m := numericDateRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])

		var year int
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		} else {
			year = today.Year()
			// Month/day already behind us means next year.
			if month < int(today.Month()) || (month == int(today.Month()) && day < today.Day()) {
				year++
			}
		}

		if date, ok := validDate(year, time.Month(month), day, now.Location()); ok {
			return date.Format(ISODate), true
		}
		return "", false
	}

	if m := dayOfMonthRe.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])

		if m[2] != "" {
			month, ok := monthNames[m[2]]
			if !ok {
				return "", false
			}
			year := today.Year()
			if month < today.Month() || (month == today.Month() && day < today.Day()) {
				year++
			}
			if date, ok := validDate(year, month, day, now.Location()); ok {
				return date.Format(ISODate), true
			}
			return "", false
		}

		// "dia 15" with no month: this month, or the next one if the day
		// has already passed.
		date, ok := validDate(today.Year(), today.Month(), day, now.Location())
		if !ok || date.Before(today) {
			date, ok = validDate(today.Year(), today.Month()+1, day, now.Location())
		}
		if ok {
			return date.Format(ISODate), true
		}
	}

	return "", false
}

// validDate builds a date and rejects values time.Date would silently
// normalize, such as day 31 of a 30-day month.
func validDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month > time.December {
		year++
		month = time.January
	}
	if day < 1 || day > 31 || month < time.January {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}
