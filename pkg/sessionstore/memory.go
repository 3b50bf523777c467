package sessionstore

import (
	"bytes"
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage. Every write extends
// the session lifetime by the configured TTL.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*memorySession
	closed   bool

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

type memorySession struct {
	values    map[string][]byte
	expiresAt time.Time
}

func (s *memorySession) expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

// NewMemoryStore creates an in-memory store. A ttl of zero keeps sessions
// until they are deleted; a positive cleanupInterval starts a goroutine that
// drops expired sessions until Close is called.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, sid, key string) ([]byte, bool, error) {
	if sid == "" {
		return nil, false, ErrEmptySessionID
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, false, ErrStoreClosed
	}
	sess, exists := m.sessions[sid]
	if !exists {
		m.mu.RUnlock()
		return nil, false, nil
	}
	expired := sess.expired(m.now())
	value, ok := sess.values[key]
	m.mu.RUnlock()

	if expired {
		m.mu.Lock()
		if cur, ok := m.sessions[sid]; ok && cur.expired(m.now()) {
			delete(m.sessions, sid)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(value), true, nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, sid, key string, value []byte) error {
	if sid == "" {
		return ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	now := m.now()
	sess, exists := m.sessions[sid]
	if !exists || sess.expired(now) {
		sess = &memorySession{values: make(map[string][]byte)}
		m.sessions[sid] = sess
	}
	sess.values[key] = bytes.Clone(value)
	if m.ttl > 0 {
		sess.expiresAt = now.Add(m.ttl)
	}
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if sid == "" {
		return ErrEmptySessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if len(keys) == 0 {
		delete(m.sessions, sid)
		return nil
	}
	if sess, ok := m.sessions[sid]; ok {
		for _, k := range keys {
			delete(sess.values, k)
		}
	}
	return nil
}

// DeleteExpired removes all expired sessions.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	maps.DeleteFunc(m.sessions, func(_ string, s *memorySession) bool {
		return s.expired(now)
	})
	return nil
}

// Len returns the number of stored sessions, expired ones included until
// they are cleaned up.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine and rejects further use of the store.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.sessions = make(map[string]*memorySession)
		m.mu.Unlock()

		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
