package service

import (
	"context"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/requestcontext"
)

// CreateScreen adds a screen to a solution the principal owns.
func (s *Service) CreateScreen(ctx context.Context, principal *id.Principal, req *models.CreateScreenRequest) (*models.Screen, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	if req == nil {
		req = &models.CreateScreenRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	solutionID, err := parseSolutionID(req.SolutionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedSolution(ctx, principal, solutionID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	screen := &models.Screen{
		ID:         id.NewScreenID(),
		SolutionID: solutionID,
		Name:       req.Name,
		Comment:    req.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateScreen(ctx, screen); err != nil {
		return nil, wrapWrite(err, "solution")
	}
	return screen, nil
}

func (s *Service) ListScreens(ctx context.Context, principal *id.Principal, solutionID string) ([]*models.Screen, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseSolutionID(solutionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedSolution(ctx, principal, parsed); err != nil {
		return nil, err
	}
	screens, err := s.store.ListScreens(ctx, parsed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list screens")
	}
	return screens, nil
}

func (s *Service) GetScreen(ctx context.Context, principal *id.Principal, screenID string) (*models.Screen, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseScreenID(screenID)
	if err != nil {
		return nil, err
	}
	return s.ownedScreen(ctx, principal, parsed)
}

func (s *Service) UpdateScreen(ctx context.Context, principal *id.Principal, screenID string, req *models.UpdateRequest) (*models.Screen, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseScreenID(screenID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &models.UpdateRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	screen, err := s.ownedScreen(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}

	screen.Name = req.Name
	screen.Comment = req.Comment
	screen.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdateScreen(ctx, screen); err != nil {
		return nil, wrapWrite(err, "screen")
	}
	return screen, nil
}

// DeleteScreen removes the screen and its widgets and returns the deleted record.
func (s *Service) DeleteScreen(ctx context.Context, principal *id.Principal, screenID string) (*models.Screen, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseScreenID(screenID)
	if err != nil {
		return nil, err
	}
	screen, err := s.ownedScreen(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteScreen(ctx, screen.ID); err != nil {
		return nil, wrapWrite(err, "screen")
	}
	return screen, nil
}
