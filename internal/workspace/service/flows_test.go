package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"screenboard/internal/workspace/models"
	"screenboard/internal/workspace/service"
	"screenboard/internal/workspace/store"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit/publisher"
	auditmemory "screenboard/pkg/platform/audit/store/memory"
)

// FlowSuite drives the service over the in-memory store to check behaviour that spans
// several records.
type FlowSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.InMemoryStore
	audit *auditmemory.InMemoryStore
	svc   *service.Service
	alice *id.Principal
	bob   *id.Principal
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowSuite))
}

func (s *FlowSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()
	svc, err := service.New(s.store, service.WithAuditPublisher(publisher.NewPublisher(s.audit)))
	s.Require().NoError(err)
	s.svc = svc
	s.alice = &id.Principal{ID: id.NewUserID(), Email: "alice@example.com"}
	s.bob = &id.Principal{ID: id.NewUserID(), Email: "bob@example.com"}
}

func (s *FlowSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *FlowSuite) build(owner *id.Principal) (*models.Solution, *models.Screen, *models.Widget) {
	sol, err := s.svc.CreateSolution(s.ctx, owner, &models.CreateSolutionRequest{Name: "Ops"})
	s.Require().NoError(err)
	screen, err := s.svc.CreateScreen(s.ctx, owner, &models.CreateScreenRequest{SolutionID: sol.ID.String(), Name: "Main"})
	s.Require().NoError(err)
	widget, err := s.svc.CreateWidget(s.ctx, owner, &models.CreateWidgetRequest{ScreenID: screen.ID.String(), Name: "Sales", Type: models.WidgetBarGraph})
	s.Require().NoError(err)
	return sol, screen, widget
}

func (s *FlowSuite) TestCrossTenantAccessIsForbidden() {
	s.Run("every record of another user answers forbidden", func() {
		sol, screen, widget := s.build(s.alice)

		_, err := s.svc.GetSolution(s.ctx, s.bob, sol.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.svc.ListScreens(s.ctx, s.bob, sol.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.svc.UpdateScreen(s.ctx, s.bob, screen.ID.String(), &models.UpdateRequest{Name: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.svc.ListWidgets(s.ctx, s.bob, screen.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.svc.DeleteWidget(s.ctx, s.bob, widget.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.svc.CreateWidget(s.ctx, s.bob, &models.CreateWidgetRequest{ScreenID: screen.ID.String(), Name: "n", Type: models.WidgetCard})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		widgets, err := s.svc.ListWidgets(s.ctx, s.alice, screen.ID.String())
		s.Require().NoError(err)
		s.Len(widgets, 1)
	})

	s.Run("listing solutions only returns the caller's", func() {
		s.build(s.alice)
		s.build(s.bob)

		mine, err := s.svc.ListSolutions(s.ctx, s.alice)
		s.Require().NoError(err)
		s.Require().Len(mine, 1)
		s.Equal(s.alice.ID, mine[0].UserID)
	})
}

func (s *FlowSuite) TestDeleteCascades() {
	s.Run("deleting a solution removes its screens and widgets", func() {
		sol, screen, widget := s.build(s.alice)

		_, err := s.svc.DeleteSolution(s.ctx, s.alice, sol.ID.String())
		s.Require().NoError(err)

		_, err = s.svc.GetScreen(s.ctx, s.alice, screen.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		_, err = s.svc.GetWidget(s.ctx, s.alice, widget.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		events, err := s.audit.ListByUser(s.ctx, s.alice.ID)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal("solution_deleted", events[0].Action)
	})

	s.Run("erasing a user keeps other users' trees", func() {
		s.build(s.alice)
		_, bobScreen, _ := s.build(s.bob)

		s.Require().NoError(s.svc.DeleteOwnedBy(s.ctx, s.alice.ID))

		mine, err := s.svc.ListSolutions(s.ctx, s.alice)
		s.Require().NoError(err)
		s.Empty(mine)
		_, err = s.svc.GetScreen(s.ctx, s.bob, bobScreen.ID.String())
		s.NoError(err)
	})
}
