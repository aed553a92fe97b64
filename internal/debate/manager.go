package debate

import (
	"sync"

	"debatesim/models"
)

// Manager owns the live sessions, keyed by session id. Each session gets its
// own pacing controller driving the same shared gateway.
type Manager struct {
	mu          sync.Mutex
	gateway     *Gateway
	pacing      PacingConfig
	maxMessages int
	sessions    map[string]*Session
	controllers map[string]*Controller
}

// NewManager builds the session registry.
func NewManager(gateway *Gateway, pacing PacingConfig, maxMessages int) *Manager {
	return &Manager{
		gateway:     gateway,
		pacing:      pacing,
		maxMessages: maxMessages,
		sessions:    make(map[string]*Session),
		controllers: make(map[string]*Controller),
	}
}

// Create starts a new debate session on the given topic. Pacing begins
// immediately.
func (m *Manager) Create(topic models.Topic) *Session {
	session := NewSession(topic, m.maxMessages, m.pacing.Speeds, m.pacing.DefaultSpeedIndex)
	controller := NewController(session, m.gateway, m.pacing)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.controllers[session.ID] = controller
	m.mu.Unlock()
	return session
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Controller looks up the pacing controller of a live session.
func (m *Manager) Controller(id string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	controller, ok := m.controllers[id]
	return controller, ok
}

// Remove stops pacing and closes the session's event streams.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	session, ok := m.sessions[id]
	controller := m.controllers[id]
	delete(m.sessions, id)
	delete(m.controllers, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	session.Close()
	if controller != nil {
		controller.Stop()
	}
	return true
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
