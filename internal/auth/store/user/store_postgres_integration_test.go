//go:build integration

package user_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"screenboard/internal/auth/models"
	"screenboard/internal/auth/store/user"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
	"screenboard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "widgets", "screens", "solutions", "users"))
}

func newTestUser(email string) *models.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.User{
		ID:             id.NewUserID(),
		Email:          email,
		Username:       "user",
		Salt:           "salt",
		PasswordDigest: "digest",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	u := newTestUser("round@example.com")
	s.Require().NoError(s.store.Create(ctx, u))

	found, err := s.store.FindByEmail(ctx, "round@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Nil(found.SessionToken)

	u.IssueSession("tok-"+uuid.NewString(), time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.SetSession(ctx, u.ID, *u.SessionToken, *u.SessionIssuedAt))

	byToken, err := s.store.FindBySessionToken(ctx, *u.SessionToken)
	s.Require().NoError(err)
	s.Equal(u.ID, byToken.ID)
	s.Require().NotNil(byToken.SessionIssuedAt)
	s.True(u.SessionIssuedAt.Equal(*byToken.SessionIssuedAt))
}

func (s *PostgresStoreSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newTestUser("dup@example.com")))
	s.ErrorIs(s.store.Create(ctx, newTestUser("dup@example.com")), sentinel.ErrConflict)
}

// TestSessionTokenUniqueness verifies the partial unique index rejects a second holder.
func (s *PostgresStoreSuite) TestSessionTokenUniqueness() {
	ctx := context.Background()
	now := time.Now().UTC()

	a := newTestUser("a@example.com")
	a.IssueSession("shared", now)
	s.Require().NoError(s.store.Create(ctx, a))

	b := newTestUser("b@example.com")
	s.Require().NoError(s.store.Create(ctx, b))
	s.ErrorIs(s.store.SetSession(ctx, b.ID, "shared", now), sentinel.ErrConflict)

	found, err := s.store.FindBySessionToken(ctx, "shared")
	s.Require().NoError(err)
	s.Equal(a.ID, found.ID)
}

func (s *PostgresStoreSuite) TestNarrowUpdates() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	u := newTestUser("narrow@example.com")
	s.Require().NoError(s.store.Create(ctx, u))
	s.Require().NoError(s.store.SetSession(ctx, u.ID, "tok-"+u.ID.String(), at))

	s.Require().NoError(s.store.UpdateUsername(ctx, u.ID, "renamed", at.Add(time.Second)))
	found, err := s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("renamed", found.Username)
	s.Require().NotNil(found.SessionToken)
	s.Equal("tok-"+u.ID.String(), *found.SessionToken)

	s.Require().NoError(s.store.ClearSession(ctx, u.ID, at.Add(2*time.Second)))
	found, err = s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Nil(found.SessionToken)
	s.Nil(found.SessionIssuedAt)
	s.Equal("renamed", found.Username)

	missing := newTestUser("missing@example.com").ID
	s.ErrorIs(s.store.SetSession(ctx, missing, "tok", at), sentinel.ErrNotFound)
	s.ErrorIs(s.store.ClearSession(ctx, missing, at), sentinel.ErrNotFound)
	s.ErrorIs(s.store.UpdateUsername(ctx, missing, "x", at), sentinel.ErrNotFound)
}

// TestConcurrentRegistrationSameEmail verifies exactly one of many concurrent creates wins.
func (s *PostgresStoreSuite) TestConcurrentRegistrationSameEmail() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(ctx, newTestUser("race@example.com"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *PostgresStoreSuite) TestListAndDelete() {
	ctx := context.Background()
	first := newTestUser("first@example.com")
	second := newTestUser("second@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	users, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(first.ID, users[0].ID)

	s.Require().NoError(s.store.Delete(ctx, first.ID))
	_, err = s.store.FindByID(ctx, first.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, first.ID), sentinel.ErrNotFound)
}
