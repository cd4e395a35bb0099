package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"screenboard/internal/auth/models"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/sentinel"
	"screenboard/pkg/requestcontext"
)

// Login verifies credentials and issues a fresh session token, replacing any previous
// one. Unknown emails and wrong passwords both yield CodeUnauthorized. The identity
// store is written exactly once, and only on success.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	if req == nil {
		req = &models.LoginRequest{}
	}
	email := models.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		s.metrics.IncrementLogin("bad_request")
		span.SetStatus(codes.Error, "missing credential")
		return nil, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	if s.lockout != nil {
		if _, err := s.lockout.Check(ctx, email); err != nil {
			if dErrors.HasCode(err, dErrors.CodeTooManyRequests) {
				s.metrics.IncrementLogin("locked")
				s.logAudit(ctx, audit.EventAuthFailed, nil, "email", email, "reason", "locked_out", "decision", "deny")
			} else {
				s.logger.ErrorContext(ctx, "lockout check failed", "error", err)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "lockout")
			return nil, err
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Same digest work as a real comparison.
			_ = s.hasher.Digest(s.dummySalt, req.Password)
			return nil, s.loginFailed(ctx, email, "unknown_identity")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}
	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	if !s.hasher.Matches(user.Salt, req.Password, user.PasswordDigest) {
		return nil, s.loginFailed(ctx, email, "bad_credential")
	}

	salt, err := s.newSalt()
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session salt")
	}
	token := s.hasher.Digest(salt, user.ID.String())
	now := requestcontext.Now(ctx)

	if err := s.users.SetSession(ctx, user.ID, token, now); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			// Deleted between the lookup and the write.
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		case errors.Is(err, sentinel.ErrConflict):
			// Another identity already holds this digest; refuse rather than share it.
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "session token collision")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}
	user.IssueSession(token, now)

	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "failed to clear auth failures", "error", err)
		}
	}

	s.metrics.IncrementLogin("success")
	s.logAudit(ctx, audit.EventSessionCreated, user, "decision", "allow")
	span.SetStatus(codes.Ok, "")
	return &models.LoginResult{User: user, Token: token}, nil
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) error {
	s.metrics.IncrementLogin(reason)
	if s.lockout != nil {
		if _, err := s.lockout.RecordFailure(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "failed to record auth failure", "error", err)
		}
	}
	s.logAudit(ctx, audit.EventAuthFailed, nil, "email", email, "reason", reason, "decision", "deny")
	return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
}
