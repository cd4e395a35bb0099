package service

import (
	"context"
	"errors"

	"screenboard/internal/auth/ownership"
	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/sentinel"
)

var errUnauthenticated = dErrors.New(dErrors.CodeUnauthorized, "authentication required")

// ownedSolution loads the solution and applies the ownership gate. A missing record
// is reported before ownership so callers see 404 rather than 403 for unknown ids.
func (s *Service) ownedSolution(ctx context.Context, principal *id.Principal, solutionID id.SolutionID) (*models.Solution, error) {
	solution, err := s.store.FindSolution(ctx, solutionID)
	if err != nil {
		return nil, wrapLookup(err, "solution")
	}
	if err := s.requireOwner(ctx, principal, solution.UserID, solution.ID.String()); err != nil {
		return nil, err
	}
	return solution, nil
}

func (s *Service) ownedScreen(ctx context.Context, principal *id.Principal, screenID id.ScreenID) (*models.Screen, error) {
	screen, err := s.store.FindScreen(ctx, screenID)
	if err != nil {
		return nil, wrapLookup(err, "screen")
	}
	// A screen whose solution vanished mid-cascade is reported as missing itself.
	solution, err := s.store.FindSolution(ctx, screen.SolutionID)
	if err != nil {
		return nil, wrapLookup(err, "screen")
	}
	if err := s.requireOwner(ctx, principal, solution.UserID, screen.ID.String()); err != nil {
		return nil, err
	}
	return screen, nil
}

func (s *Service) ownedWidget(ctx context.Context, principal *id.Principal, widgetID id.WidgetID) (*models.Widget, error) {
	widget, err := s.store.FindWidget(ctx, widgetID)
	if err != nil {
		return nil, wrapLookup(err, "widget")
	}
	if _, err := s.ownedScreen(ctx, principal, widget.ScreenID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "widget not found")
		}
		return nil, err
	}
	return widget, nil
}

func (s *Service) requireOwner(ctx context.Context, principal *id.Principal, owner id.UserID, subject string) error {
	if err := ownership.Require(principal, owner.String()); err != nil {
		s.metrics.IncrementOwnershipDenied()
		s.logAudit(ctx, audit.EventOwnerDenied, principal, subject, "reason", "owner_mismatch", "decision", "deny")
		return err
	}
	return nil
}

func wrapLookup(err error, kind string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, kind+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup "+kind)
}

func wrapWrite(err error, kind string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, kind+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save "+kind)
}

func parseSolutionID(raw string) (id.SolutionID, error) {
	solutionID, err := id.ParseSolutionID(raw)
	if err != nil {
		return id.SolutionID{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid solution id")
	}
	return solutionID, nil
}

func parseScreenID(raw string) (id.ScreenID, error) {
	screenID, err := id.ParseScreenID(raw)
	if err != nil {
		return id.ScreenID{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid screen id")
	}
	return screenID, nil
}

func parseWidgetID(raw string) (id.WidgetID, error) {
	widgetID, err := id.ParseWidgetID(raw)
	if err != nil {
		return id.WidgetID{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid widget id")
	}
	return widgetID, nil
}
