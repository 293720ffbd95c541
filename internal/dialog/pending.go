package dialog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ricardomaia/agendador/internal/nlp"
)

// Candidate is one search hit shown to the user when an event
// reference matched more than one calendar event.
type Candidate struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
}

// PendingAction is the single in-flight operation of a conversation:
// the classified intent, everything extracted so far, and, while
// disambiguating, the candidate events offered to the user.
type PendingAction struct {
	Intent     nlp.Intent    `json:"intent"`
	Entities   nlp.EntitySet `json:"entities"`
	Candidates []Candidate   `json:"candidates,omitempty"`
}

// Conversation is the per-user dialog state as held in memory during a
// turn. It round-trips through the conversations table.
type Conversation struct {
	UserID    int64
	State     State
	Pending   *PendingAction
	UpdatedAt time.Time
}

func encodePending(p *PendingAction) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending action: %w", err)
	}
	return data, nil
}

func decodePending(data []byte) (*PendingAction, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var p PendingAction
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode pending action: %w", err)
	}
	return &p, nil
}
