package dialog

// State identifies where a conversation stands: NORMAL, or the slot or
// confirmation the bot is currently waiting on.
type State int

const (
	StateNormal State = iota
	StateAwaitingAuthCode
	StateAwaitingDate
	StateAwaitingTime
	StateAwaitingDuration
	StateAwaitingAddMeet
	StateAwaitingAttendees
	StateAwaitingEventRef
	StateConfirmDelete
)

var stateNames = map[State]string{
	StateNormal:            "NORMAL",
	StateAwaitingAuthCode:  "AWAITING_AUTH_CODE",
	StateAwaitingDate:      "AWAITING_DATE",
	StateAwaitingTime:      "AWAITING_TIME",
	StateAwaitingDuration:  "AWAITING_DURATION",
	StateAwaitingAddMeet:   "AWAITING_ADD_MEET",
	StateAwaitingAttendees: "AWAITING_ATTENDEES",
	StateAwaitingEventRef:  "AWAITING_EVENT_REF",
	StateConfirmDelete:     "CONFIRM_DELETE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "NORMAL"
}

// ParseState maps a persisted state name back to its State. Unknown
// names report ok=false so callers can reset the conversation instead
// of acting on a state this build does not understand.
func ParseState(name string) (State, bool) {
	for s, n := range stateNames {
		if n == name {
			return s, true
		}
	}
	return StateNormal, false
}
