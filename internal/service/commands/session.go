package commands

import "sync"

// SessionManager remembers which pond each worker is talking about.
type SessionManager struct {
	ponds map[string]string
	mu    sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{ponds: make(map[string]string)}
}

// Pond returns the pond selected by a sender, or "".
func (sm *SessionManager) Pond(sender string) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.ponds[sender]
}

// Select records the sender's current pond.
func (sm *SessionManager) Select(sender, pondID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.ponds[sender] = pondID
}

// Clear forgets the sender's pond.
func (sm *SessionManager) Clear(sender string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.ponds, sender)
}
