package service

import (
	"context"
	"errors"

	"screenboard/internal/auth/models"
	"screenboard/internal/auth/ownership"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/sentinel"
	"screenboard/pkg/requestcontext"
)

// Logout clears the caller's session token. A caller with no live session is a no-op.
func (s *Service) Logout(ctx context.Context, principal *id.Principal) error {
	if principal == nil {
		return errDenied
	}
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return errDenied
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}
	if !user.HasSession() {
		return nil
	}
	now := requestcontext.Now(ctx)
	if err := s.users.ClearSession(ctx, user.ID, now); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return errDenied
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	user.RevokeSession(now)
	s.logAudit(ctx, audit.EventSessionRevoked, user)
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// UpdateUsername changes the username of userID. Only the identity itself may do so.
func (s *Service) UpdateUsername(ctx context.Context, principal *id.Principal, userID string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := s.requireOwner(ctx, principal, userID); err != nil {
		return nil, err
	}
	if req == nil {
		req = &models.UpdateUserRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUsername(ctx, principal.ID, req.Username, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.wrapLookup(err)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, s.wrapLookup(err)
	}
	s.logAudit(ctx, audit.EventUserUpdated, user)
	return user, nil
}

// DeleteUser removes userID and everything it owns, returning the deleted record.
func (s *Service) DeleteUser(ctx context.Context, principal *id.Principal, userID string) (*models.User, error) {
	if err := s.requireOwner(ctx, principal, userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, s.wrapLookup(err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if s.eraser != nil {
			if err := s.eraser.DeleteOwnedBy(ctx, user.ID); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete owned records")
			}
		}
		if err := s.users.Delete(ctx, user.ID); err != nil {
			return s.wrapLookup(err)
		}
		return nil
	})
	if err != nil {
		var coded *dErrors.Error
		if !errors.As(err, &coded) {
			err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
		}
		return nil, err
	}
	s.logAudit(ctx, audit.EventUserDeleted, user)
	return user, nil
}

// requireOwner applies the ownership gate with the authenticated principal, so the
// serverless handlers get the same check as the HTTP middleware.
func (s *Service) requireOwner(ctx context.Context, principal *id.Principal, ownerID string) error {
	if err := ownership.Require(principal, ownerID); err != nil {
		s.metrics.IncrementOwnershipDenied()
		var actor *models.User
		if principal != nil {
			actor = &models.User{ID: principal.ID, Email: principal.Email}
		}
		s.logAudit(ctx, audit.EventOwnerDenied, actor, "reason", "owner_mismatch", "decision", "deny")
		return err
	}
	return nil
}

func (s *Service) wrapLookup(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
}
