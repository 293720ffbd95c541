package dialog

import (
	"context"
	"sync"
)

// Manager serializes turns per conversation. Two messages from the
// same user are handled strictly one after the other; different users
// proceed in parallel. The lock is held across the whole turn,
// including calendar calls.
type Manager struct {
	engine *Engine

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewManager(engine *Engine) *Manager {
	return &Manager{
		engine: engine,
		locks:  make(map[int64]*sync.Mutex),
	}
}

func (m *Manager) lockFor(userID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	return l
}

// HandleText runs one text turn for the user.
func (m *Manager) HandleText(ctx context.Context, userID int64, text string) (Reply, error) {
	l := m.lockFor(userID)
	l.Lock()
	defer l.Unlock()
	return m.engine.HandleText(ctx, userID, text)
}

// HandleCallback runs one button-press turn for the user.
func (m *Manager) HandleCallback(ctx context.Context, userID int64, data string) (Reply, error) {
	l := m.lockFor(userID)
	l.Lock()
	defer l.Unlock()
	return m.engine.HandleCallback(ctx, userID, data)
}

// HandleCommand runs one /command turn for the user.
func (m *Manager) HandleCommand(ctx context.Context, userID int64, command, args string) (Reply, error) {
	l := m.lockFor(userID)
	l.Lock()
	defer l.Unlock()
	return m.engine.HandleCommand(ctx, userID, command, args)
}
