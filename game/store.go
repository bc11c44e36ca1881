package game

import "sync"

// ScoreStore persists the best score across sessions.
type ScoreStore interface {
	HighScore() int
	SetHighScore(score int) error
}

// MemoryStore keeps the high score in memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

// NewMemoryStore creates a store seeded with score.
func NewMemoryStore(score int) *MemoryStore {
	return &MemoryStore{score: score}
}

// HighScore returns the stored score.
func (m *MemoryStore) HighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

// SetHighScore replaces the stored score.
func (m *MemoryStore) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	return nil
}
