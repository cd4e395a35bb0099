package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
)

// User store invariants (lookup, uniqueness, delete, ErrNotFound) protect service
// behavior independent of the backend.
type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
	ctx   context.Context
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *InMemoryUserStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func newUser(email string) *models.User {
	return &models.User{
		ID:             id.NewUserID(),
		Email:          email,
		Username:       "jane",
		Salt:           "salt",
		PasswordDigest: "digest",
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func withToken(u *models.User, token string) *models.User {
	u.IssueSession(token, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	return u
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	s.Run("returns user by ID when exists", func() {
		user := newUser("jane.doe@example.com")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, found)
	})

	s.Run("returns user by email when exists", func() {
		user := newUser("email.lookup@example.com")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByEmail(s.ctx, user.Email)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returns ErrNotFound when user ID does not exist", func() {
		_, err := s.store.FindByID(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when email does not exist", func() {
		_, err := s.store.FindByEmail(s.ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned records are copies", func() {
		user := withToken(newUser("copy@example.com"), "tok")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		*found.SessionToken = "mutated"
		found.Username = "mutated"

		again, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("tok", *again.SessionToken)
		s.Equal("jane", again.Username)
	})
}

func (s *InMemoryUserStoreSuite) TestCreateUniqueness() {
	s.Run("duplicate email conflicts", func() {
		s.Require().NoError(s.store.Create(s.ctx, newUser("dup@example.com")))
		err := s.store.Create(s.ctx, newUser("dup@example.com"))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate id conflicts", func() {
		user := newUser("first@example.com")
		s.Require().NoError(s.store.Create(s.ctx, user))
		clash := newUser("second@example.com")
		clash.ID = user.ID
		s.ErrorIs(s.store.Create(s.ctx, clash), sentinel.ErrConflict)
	})
}

func (s *InMemoryUserStoreSuite) TestSessionTokenLookup() {
	s.Run("finds the single holder of a token", func() {
		user := withToken(newUser("holder@example.com"), "tok-1")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindBySessionToken(s.ctx, "tok-1")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("unknown token is not found", func() {
		s.Require().NoError(s.store.Create(s.ctx, newUser("nobody@example.com")))
		_, err := s.store.FindBySessionToken(s.ctx, "tok-unknown")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("two holders of one token conflict", func() {
		s.Require().NoError(s.store.Create(s.ctx, withToken(newUser("a@example.com"), "shared")))
		s.Require().NoError(s.store.Create(s.ctx, withToken(newUser("b@example.com"), "shared")))

		_, err := s.store.FindBySessionToken(s.ctx, "shared")
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("a revoked token no longer resolves", func() {
		user := withToken(newUser("revoked@example.com"), "tok-r")
		s.Require().NoError(s.store.Create(s.ctx, user))
		s.Require().NoError(s.store.ClearSession(s.ctx, user.ID, time.Now()))

		_, err := s.store.FindBySessionToken(s.ctx, "tok-r")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestNarrowUpdates() {
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	s.Run("set session replaces the token only", func() {
		user := withToken(newUser("set@example.com"), "tok-old")
		s.Require().NoError(s.store.Create(s.ctx, user))
		s.Require().NoError(s.store.SetSession(s.ctx, user.ID, "tok-new", at))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("tok-new", *found.SessionToken)
		s.Equal(at, *found.SessionIssuedAt)
		s.Equal("jane", found.Username)
		_, err = s.store.FindBySessionToken(s.ctx, "tok-old")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("username update leaves the session alone", func() {
		user := withToken(newUser("rename@example.com"), "tok-keep")
		s.Require().NoError(s.store.Create(s.ctx, user))
		s.Require().NoError(s.store.UpdateUsername(s.ctx, user.ID, "renamed", at))

		found, err := s.store.FindBySessionToken(s.ctx, "tok-keep")
		s.Require().NoError(err)
		s.Equal("renamed", found.Username)
		s.Equal(at, found.UpdatedAt)
	})

	s.Run("updates on a missing user are not found", func() {
		missing := id.NewUserID()
		s.ErrorIs(s.store.SetSession(s.ctx, missing, "tok", at), sentinel.ErrNotFound)
		s.ErrorIs(s.store.ClearSession(s.ctx, missing, at), sentinel.ErrNotFound)
		s.ErrorIs(s.store.UpdateUsername(s.ctx, missing, "x", at), sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestListAndDelete() {
	s.Run("lists in creation order", func() {
		first := newUser("first@example.com")
		second := newUser("second@example.com")
		second.CreatedAt = first.CreatedAt.Add(time.Hour)
		s.Require().NoError(s.store.Create(s.ctx, second))
		s.Require().NoError(s.store.Create(s.ctx, first))

		users, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(users, 2)
		s.Equal(first.ID, users[0].ID)
		s.Equal(second.ID, users[1].ID)
	})

	s.Run("deletes user and makes them unfindable", func() {
		user := newUser("delete.me@example.com")
		s.Require().NoError(s.store.Create(s.ctx, user))
		s.Require().NoError(s.store.Delete(s.ctx, user.ID))

		_, err := s.store.FindByID(s.ctx, user.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleting a missing user is not found", func() {
		s.ErrorIs(s.store.Delete(s.ctx, id.NewUserID()), sentinel.ErrNotFound)
	})
}
