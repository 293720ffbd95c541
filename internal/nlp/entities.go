package nlp

import (
	"strings"
	"time"
)

// EntitySet holds every structured value pulled from an utterance. All
// fields are independently optional; the missing-info resolver checks
// presence, not validity. The JSON tags are what gets persisted inside
// a pending action, so renames are breaking.
type EntitySet struct {
	Date        string   `json:"date,omitempty"`     // ISODate
	Time        string   `json:"time,omitempty"`     // HH:MM, 24h
	Duration    float64  `json:"duration,omitempty"` // fractional hours, always > 0 when set
	Summary     string   `json:"summary,omitempty"`
	Location    string   `json:"location,omitempty"`
	IsMeeting   bool     `json:"is_meeting,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	AddMeetLink *bool    `json:"add_meet_link,omitempty"` // nil = not decided yet
	EventRef    string   `json:"event_reference,omitempty"`
	EventID     string   `json:"event_id,omitempty"`
}

// HasDate reports whether a date was extracted.
func (e *EntitySet) HasDate() bool { return e.Date != "" }

// HasTime reports whether a clock time was extracted.
func (e *EntitySet) HasTime() bool { return e.Time != "" }

// HasDuration reports whether a duration was extracted.
func (e *EntitySet) HasDuration() bool { return e.Duration > 0 }

var meetingKeywords = []string{
	"reunião", "reuniao", "reunir", "meeting", "call", "conferência", "conferencia",
	"videoconferência", "videoconferencia", "meet", "hangout", "entrevista",
	"conversa", "bate-papo", "discussão", "discussao", "online",
}

// IsMeetingRequest reports whether the utterance describes a meeting,
// which is what gates the Google Meet link question.
func IsMeetingRequest(text string) bool {
	return containsAny(strings.ToLower(text), meetingKeywords)
}

// ExtractEntities runs every extractor over the utterance and collects
// the results. now anchors relative date words and must carry the
// bot's timezone.
func ExtractEntities(text string, now time.Time) EntitySet {
	e := EntitySet{Summary: ExtractSummary(text)}

	if date, ok := ExtractDate(text, now); ok {
		e.Date = date
	}
	if clock, ok := ExtractTime(text); ok {
		e.Time = clock
	}
	if duration, ok := ExtractDuration(text); ok {
		e.Duration = duration
	}
	if location, ok := ExtractLocation(text); ok {
		e.Location = location
	}
	e.IsMeeting = IsMeetingRequest(text)
	e.Attendees = ExtractAttendees(text)

	return e
}
