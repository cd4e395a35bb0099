package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"

	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/sentinel"
	"screenboard/pkg/requestcontext"
)

// Register creates an identity with a fresh password salt and no session token.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	if req == nil {
		req = &models.RegisterRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}

	salt, err := s.newSalt()
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate salt")
	}
	now := requestcontext.Now(ctx)
	user := &models.User{
		ID:             id.NewUserID(),
		Email:          req.Email,
		Username:       req.Username,
		Salt:           salt,
		PasswordDigest: s.hasher.Digest(salt, req.Password),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.platformMetrics.IncrementUsersCreated()
	s.logAudit(ctx, audit.EventUserCreated, user)
	return user, nil
}
