// Package mirror holds the in-memory session mirrors for active games.
// A mirror is a per-player cache of game progress; losing one is harmless
// because the game service rebuilds it from the database on the next start.
package mirror

import (
	"sync"

	"wordquest/internal/models"
)

// Store maps user IDs to their active game session mirror.
// Concurrency-safe via RWMutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*models.GameSession
}

// NewStore constructs an empty mirror store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*models.GameSession)}
}

// Get returns the session mirror for a user, or nil if none exists.
func (s *Store) Get(userID int64) *models.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Put stores or replaces the session mirror for a user.
func (s *Store) Put(userID int64, session *models.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Delete discards the session mirror for a user.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
