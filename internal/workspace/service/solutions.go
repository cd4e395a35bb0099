package service

import (
	"context"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/requestcontext"
)

// CreateSolution stores a new solution owned by principal. The owner never comes from
// the request.
func (s *Service) CreateSolution(ctx context.Context, principal *id.Principal, req *models.CreateSolutionRequest) (*models.Solution, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	if req == nil {
		req = &models.CreateSolutionRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	solution := &models.Solution{
		ID:        id.NewSolutionID(),
		UserID:    principal.ID,
		Name:      req.Name,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSolution(ctx, solution); err != nil {
		return nil, wrapWrite(err, "solution")
	}
	return solution, nil
}

func (s *Service) ListSolutions(ctx context.Context, principal *id.Principal) ([]*models.Solution, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	solutions, err := s.store.ListSolutions(ctx, principal.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list solutions")
	}
	return solutions, nil
}

func (s *Service) GetSolution(ctx context.Context, principal *id.Principal, solutionID string) (*models.Solution, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseSolutionID(solutionID)
	if err != nil {
		return nil, err
	}
	return s.ownedSolution(ctx, principal, parsed)
}

func (s *Service) UpdateSolution(ctx context.Context, principal *id.Principal, solutionID string, req *models.UpdateRequest) (*models.Solution, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseSolutionID(solutionID)
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
	solution, err := s.ownedSolution(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}

	solution.Name = req.Name
	solution.Comment = req.Comment
	solution.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdateSolution(ctx, solution); err != nil {
		return nil, wrapWrite(err, "solution")
	}
	return solution, nil
}

// DeleteSolution removes the solution with its screens and widgets and returns the
// deleted record.
func (s *Service) DeleteSolution(ctx context.Context, principal *id.Principal, solutionID string) (*models.Solution, error) {
	ctx, span := tracer.Start(ctx, "workspace.DeleteSolution")
	defer span.End()

	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseSolutionID(solutionID)
	if err != nil {
		return nil, err
	}
	solution, err := s.ownedSolution(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteSolution(ctx, solution.ID); err != nil {
		return nil, wrapWrite(err, "solution")
	}
	s.logAudit(ctx, audit.EventSolutionDeleted, principal, solution.ID.String())
	return solution, nil
}

// DeleteOwnedBy removes every solution owned by userID. It runs before the user record
// itself is deleted.
func (s *Service) DeleteOwnedBy(ctx context.Context, userID id.UserID) error {
	ctx, span := tracer.Start(ctx, "workspace.DeleteOwnedBy")
	defer span.End()

	if err := s.store.DeleteOwnedBy(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete owned solutions")
	}
	return nil
}
