package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateNameRoundTrip(t *testing.T) {
	states := []State{
		StateNormal, StateAwaitingAuthCode, StateAwaitingDate, StateAwaitingTime,
		StateAwaitingDuration, StateAwaitingAddMeet, StateAwaitingAttendees,
		StateAwaitingEventRef, StateConfirmDelete,
	}

	for _, s := range states {
		parsed, ok := ParseState(s.String())
		assert.True(t, ok, "state %v", s)
		assert.Equal(t, s, parsed)
	}
}

func TestParseStateUnknown(t *testing.T) {
	s, ok := ParseState("AWAITING_SOMETHING_NEW")
	assert.False(t, ok)
	assert.Equal(t, StateNormal, s)
}
