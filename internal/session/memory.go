package session

import (
	"context"
	"sync"
	"time"

	"github.com/spigell/hirely/internal/interview"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory keeps encoded sessions in process memory. A zero ttl keeps them
// until deleted.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		sessions: map[string]memoryEntry{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, id string) (*interview.Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && m.expired(entry) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decode(entry.data)
}

func (m *Memory) Save(_ context.Context, s *interview.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.sessions[s.ID] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
