package signup

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process local PendingStore. It cannot be shared between server instances.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]*PendingSignup
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string]*PendingSignup)}
}

func (s *MemoryStore) Get(_ context.Context, email string) (*PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[email]
	if !ok {
		return nil, ErrNoPendingSignup
	}

	cp := *p
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, p *PendingSignup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.pending[p.Email] = &cp

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[email]; !ok {
		return false, nil
	}

	delete(s.pending, email)
	return true, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for email, p := range s.pending {
		if p.Expired(now) {
			delete(s.pending, email)
			n++
		}
	}

	return n, nil
}
