package nlp

import (
	"fmt"
	"strings"
	"time"
)

var monthDisplayNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayDisplayNames = map[time.Weekday]string{
	time.Monday:    "Segunda",
	time.Tuesday:   "Terça",
	time.Wednesday: "Quarta",
	time.Thursday:  "Quinta",
	time.Friday:    "Sexta",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// FormatDate renders an ISODate value for display, e.g. "15 de março
// de 2026". Unparseable input is returned unchanged.
func FormatDate(isoDate string) string {
	d, err := time.Parse(ISODate, isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%d de %s de %d", d.Day(), monthDisplayNames[d.Month()-1], d.Year())
}

// FormatTime renders an "HH:MM" value the way Brazilians write clock
// times: "14h30", or just "14h" on the whole hour.
func FormatTime(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	hour := strings.TrimLeft(parts[0], "0")
	if hour == "" {
		hour = "0"
	}
	if parts[1] == "00" {
		return hour + "h"
	}
	return hour + "h" + parts[1]
}

// FormatWeekday returns the Portuguese weekday name.
func FormatWeekday(d time.Weekday) string {
	return weekdayDisplayNames[d]
}

// FormatDuration renders fractional hours for display: "1 hora",
// "2 horas", "1,5 horas", "30 minutos".
func FormatDuration(hours float64) string {
	if hours <= 0 {
		return ""
	}
	if hours < 1 {
		return fmt.Sprintf("%d minutos", int(hours*60+0.5))
	}
	if hours == float64(int(hours)) {
		if int(hours) == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", int(hours))
	}
	return strings.Replace(fmt.Sprintf("%.1f horas", hours), ".", ",", 1)
}
