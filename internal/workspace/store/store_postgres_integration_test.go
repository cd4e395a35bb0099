//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"screenboard/internal/auth/models"
	"screenboard/internal/auth/store/user"
	wsmodels "screenboard/internal/workspace/models"
	"screenboard/internal/workspace/store"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
	txcontext "screenboard/pkg/platform/tx"
	"screenboard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	users    *user.PostgresStore
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.users = user.NewPostgres(s.postgres.DB)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "widgets", "screens", "solutions", "users"))
}

func (s *PostgresStoreSuite) owner(email string) id.UserID {
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &models.User{
		ID:             id.NewUserID(),
		Email:          email,
		Username:       "owner",
		Salt:           "salt",
		PasswordDigest: "digest",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Require().NoError(s.users.Create(context.Background(), u))
	return u.ID
}

func (s *PostgresStoreSuite) tree(owner id.UserID) (*wsmodels.Solution, *wsmodels.Screen, *wsmodels.Widget) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	sol := &wsmodels.Solution{ID: id.NewSolutionID(), UserID: owner, Name: "sol", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.store.CreateSolution(ctx, sol))
	sc := &wsmodels.Screen{ID: id.NewScreenID(), SolutionID: sol.ID, Name: "screen", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.store.CreateScreen(ctx, sc))
	w := &wsmodels.Widget{ID: id.NewWidgetID(), ScreenID: sc.ID, Name: "chart", CreatedAt: now, UpdatedAt: now}
	w.SetType(wsmodels.WidgetBarGraph)
	w.Values = []float64{4, 5.5}
	s.Require().NoError(s.store.CreateWidget(ctx, w))
	return sol, sc, w
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	sol, sc, w := s.tree(s.owner("round@example.com"))

	foundSol, err := s.store.FindSolution(ctx, sol.ID)
	s.Require().NoError(err)
	s.Equal(sol.UserID, foundSol.UserID)
	s.True(sol.CreatedAt.Equal(foundSol.CreatedAt))

	foundScreen, err := s.store.FindScreen(ctx, sc.ID)
	s.Require().NoError(err)
	s.Equal(sol.ID, foundScreen.SolutionID)

	foundWidget, err := s.store.FindWidget(ctx, w.ID)
	s.Require().NoError(err)
	s.Equal([]float64{4, 5.5}, foundWidget.Values)
	s.Empty(foundWidget.Src)

	foundWidget.SetType("iframe")
	foundWidget.Src = "https://example.com"
	s.Require().NoError(s.store.UpdateWidget(ctx, foundWidget))
	again, err := s.store.FindWidget(ctx, w.ID)
	s.Require().NoError(err)
	s.Equal("https://example.com", again.Src)
	s.Empty(again.Values)
}

func (s *PostgresStoreSuite) TestForeignKeysMapToNotFound() {
	ctx := context.Background()
	now := time.Now().UTC()

	orphanSolution := &wsmodels.Solution{ID: id.NewSolutionID(), UserID: id.NewUserID(), Name: "x", CreatedAt: now, UpdatedAt: now}
	s.ErrorIs(s.store.CreateSolution(ctx, orphanSolution), sentinel.ErrNotFound)

	orphanScreen := &wsmodels.Screen{ID: id.NewScreenID(), SolutionID: id.NewSolutionID(), Name: "x", CreatedAt: now, UpdatedAt: now}
	s.ErrorIs(s.store.CreateScreen(ctx, orphanScreen), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCascadeOnUserDelete() {
	ctx := context.Background()
	owner := s.owner("gone@example.com")
	sol, sc, w := s.tree(owner)

	s.Require().NoError(s.users.Delete(ctx, owner))

	_, err := s.store.FindSolution(ctx, sol.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindScreen(ctx, sc.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindWidget(ctx, w.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteOwnedBy() {
	ctx := context.Background()
	alice := s.owner("alice@example.com")
	bob := s.owner("bob@example.com")
	s.tree(alice)
	bobSol, _, _ := s.tree(bob)

	s.Require().NoError(s.store.DeleteOwnedBy(ctx, alice))

	list, err := s.store.ListSolutions(ctx, alice)
	s.Require().NoError(err)
	s.Empty(list)
	_, err = s.store.FindSolution(ctx, bobSol.ID)
	s.NoError(err)
}

func (s *PostgresStoreSuite) TestTransactionRollsBackUserErasure() {
	ctx := context.Background()
	alice := s.owner("tx@example.com")
	sol, _, _ := s.tree(alice)
	runner := txcontext.NewSQLRunner(s.postgres.DB)

	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteOwnedBy(ctx, alice); err != nil {
			return err
		}
		if err := s.users.Delete(ctx, alice); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.EqualError(err, "abort")

	_, err = s.store.FindSolution(ctx, sol.ID)
	s.NoError(err)
	_, err = s.users.FindByID(ctx, alice)
	s.NoError(err)

	s.Require().NoError(runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteOwnedBy(ctx, alice); err != nil {
			return err
		}
		return s.users.Delete(ctx, alice)
	}))
	_, err = s.users.FindByID(ctx, alice)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
