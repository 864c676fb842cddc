package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xxpisal/flower-shop/internal/models"
)

// MemoryStore is a map-backed Store used by tests in place of GormStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Create(_ context.Context, userID uint, userName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	now := time.Now().UTC()
	s.sessions[token] = models.Session{
		TokenHash: token,
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: now.Add(TTL),
		CreatedAt: now,
	}
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return ErrNoSession
	}
	delete(s.sessions, token)
	return nil
}

// Expire backdates a session so tests can exercise expiry handling.
func (s *MemoryStore) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[token]; ok {
		sess.ExpiresAt = time.Now().Add(-time.Minute)
		s.sessions[token] = sess
	}
}
