package nlp

// Slot names a required field of a pending action that may still be
// missing and must be asked for.
type Slot string

const (
	SlotDate        Slot = "date"
	SlotTime        Slot = "time"
	SlotDuration    Slot = "duration"
	SlotAddMeetLink Slot = "add_meet_link"
	SlotAttendees   Slot = "attendees"
	SlotEventRef    Slot = "event_reference"
)

// MissingSlots computes the required-but-absent slots for an intent, in
// the fixed order the dialog asks for them. An empty result means the
// action is immediately executable.
//
// The Meet-link question is only raised once both date and time exist,
// so a conversation that still lacks its time slot is asked for the
// time first even when the event is a meeting.
func MissingSlots(intent Intent, e EntitySet) []Slot {
	var missing []Slot

	switch intent {
	case IntentCreateEvent:
		if !e.HasDate() {
			missing = append(missing, SlotDate)
		}
		if !e.HasTime() {
			missing = append(missing, SlotTime)
		}
		if len(missing) == 0 {
			if e.IsMeeting && e.AddMeetLink == nil {
				missing = append(missing, SlotAddMeetLink)
			}
			if e.AddMeetLink != nil && *e.AddMeetLink && len(e.Attendees) == 0 {
				missing = append(missing, SlotAttendees)
			}
		}

	case IntentUpdateEvent, IntentDeleteEvent, IntentUpdateDuration:
		if e.EventID == "" {
			missing = append(missing, SlotEventRef)
		}
		if intent == IntentUpdateDuration && !e.HasDuration() {
			missing = append(missing, SlotDuration)
		}
	}

	return missing
}
