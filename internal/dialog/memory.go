package dialog

import (
	"context"
	"sync"
	"time"
)

// MemoryStore держит сессии в памяти процесса. Подходит для одного инстанса бота.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return NewSession(userID), nil
	}
	if expired(s.UpdatedAt, m.ttl, m.now()) {
		delete(m.sessions, userID)
		return NewSession(userID), nil
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Set(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := s.Clone()
	c.UpdatedAt = m.now()
	m.sessions[s.UserID] = c
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// Sweep удаляет просроченные сессии, возвращает сколько удалено.
func (m *MemoryStore) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if expired(s.UpdatedAt, m.ttl, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper периодически чистит память до отмены ctx.
func (m *MemoryStore) RunSweeper(ctx context.Context, every time.Duration) {
	if m.ttl <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
