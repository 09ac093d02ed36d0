package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Demo mode runs on it so the
// app works with no redis at hand; expired entries are dropped lazily on Get.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(_ context.Context, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = memoryEntry{
		sess:      sess,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}

	sess := entry.sess
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
