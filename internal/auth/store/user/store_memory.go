package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in a map guarded by a RWMutex. Records are copied on
// the way in and out so callers never share state with the store.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return sentinel.ErrConflict
		}
	}
	s.users[user.ID] = clone(user)
	return nil
}

// SetSession replaces the session token of userID.
func (s *InMemoryUserStore) SetSession(_ context.Context, userID id.UserID, token string, issuedAt time.Time) error {
	return s.update(userID, func(u *models.User) { u.IssueSession(token, issuedAt) })
}

func (s *InMemoryUserStore) ClearSession(_ context.Context, userID id.UserID, at time.Time) error {
	return s.update(userID, func(u *models.User) { u.RevokeSession(at) })
}

func (s *InMemoryUserStore) UpdateUsername(_ context.Context, userID id.UserID, username string, at time.Time) error {
	return s.update(userID, func(u *models.User) {
		u.Username = username
		u.UpdatedAt = at
	})
}

// update applies fn to the stored record under the write lock.
func (s *InMemoryUserStore) update(userID id.UserID, fn func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	fn(u)
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return clone(u), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindBySessionToken returns sentinel.ErrConflict when more than one user holds token.
func (s *InMemoryUserStore) FindBySessionToken(_ context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var match *models.User
	for _, u := range s.users {
		if u.SessionToken == nil || *u.SessionToken != token {
			continue
		}
		if match != nil {
			return nil, sentinel.ErrConflict
		}
		match = u
	}
	if match == nil {
		return nil, sentinel.ErrNotFound
	}
	return clone(match), nil
}

// List returns users ordered by creation time, then id.
func (s *InMemoryUserStore) List(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemoryUserStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.SessionToken != nil {
		t := *u.SessionToken
		c.SessionToken = &t
	}
	if u.SessionIssuedAt != nil {
		t := *u.SessionIssuedAt
		c.SessionIssuedAt = &t
	}
	return &c
}
