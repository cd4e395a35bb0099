package authlockout

import (
	"context"
	"sync"
	"time"

	"screenboard/internal/ratelimit/models"
	"screenboard/pkg/requestcontext"
)

// InMemoryAuthLockoutStore keeps lockout records in process memory. Lapsed windows
// are restarted on the next failure rather than swept.
type InMemoryAuthLockoutStore struct {
	mu      sync.Mutex
	records map[string]*models.AuthLockout
}

func New() *InMemoryAuthLockoutStore {
	return &InMemoryAuthLockoutStore{records: make(map[string]*models.AuthLockout)}
}

// Get returns nil without error when nothing has been recorded for identifier.
func (s *InMemoryAuthLockoutStore) Get(_ context.Context, identifier string) (*models.AuthLockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[identifier]; ok {
		c := *r
		return &c, nil
	}
	return nil, nil
}

func (s *InMemoryAuthLockoutStore) RecordFailure(ctx context.Context, identifier string, window time.Duration) (*models.AuthLockout, error) {
	now := requestcontext.Now(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[identifier]
	if !ok {
		r = &models.AuthLockout{Identifier: identifier}
		s.records[identifier] = r
	}
	r.RecordFailureAt(now, window)
	c := *r
	return &c, nil
}

func (s *InMemoryAuthLockoutStore) Clear(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identifier)
	return nil
}
