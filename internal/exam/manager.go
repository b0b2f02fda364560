package exam

import (
	"errors"
	"sort"
	"sync"

	"github.com/abhisek/calcexam/internal/bank"
)

// ErrSessionNotFound is returned for an unknown session ID.
var ErrSessionNotFound = errors.New("exam: session not found")

type entry struct {
	mu    sync.Mutex
	state *SessionState
}

// Manager keeps sessions by ID. Operations on one session are serialized;
// different sessions proceed independently. Every returned state is a copy.
type Manager struct {
	engine *Engine

	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewManager returns an empty manager over engine.
func NewManager(engine *Engine) *Manager {
	return &Manager{engine: engine, sessions: make(map[string]*entry)}
}

// Engine returns the engine sessions run on.
func (m *Manager) Engine() *Engine { return m.engine }

// Create starts and stores a new session.
func (m *Manager) Create() (*SessionState, error) {
	s, err := m.engine.Start()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = &entry{state: s}
	m.mu.Unlock()
	return s.Clone(), nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (*SessionState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

// Current returns the session snapshot and its active question. ok is false
// when the session is finished.
func (m *Manager) Current(id string) (*SessionState, bank.QuestionRecord, bool, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, bank.QuestionRecord{}, false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	q, ok := m.engine.Current(e.state)
	return e.state.Clone(), q, ok, nil
}

// Submit grades raw for the session's active question.
func (m *Manager) Submit(id, raw string) (*SessionState, *Outcome, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	out, err := m.engine.Submit(e.state, raw)
	if err != nil {
		return e.state.Clone(), nil, err
	}
	return e.state.Clone(), out, nil
}

// Restart resets the session to its first question.
func (m *Manager) Restart(id string) (*SessionState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := m.engine.Restart(e.state); err != nil {
		return nil, err
	}
	return e.state.Clone(), nil
}

// Delete forgets the session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// IDs returns the stored session IDs in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
