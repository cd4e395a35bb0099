package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/codes"

	authmetrics "screenboard/internal/auth/metrics"
	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/sentinel"
	"screenboard/pkg/requestcontext"
)

// Authenticate resolves a session token to the identity that holds it. It performs
// at most one store lookup and never writes. Denials carry CodeUnauthorized with no
// detail; store failures carry CodeInternal and are also denials.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	start := time.Now()
	defer s.metrics.ObserveAuthenticate(start)

	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()

	if token == "" {
		span.SetStatus(codes.Error, "missing token")
		return nil, errDenied
	}

	user, err := s.users.FindBySessionToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup")
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			s.logAudit(ctx, audit.EventAuthDenied, nil, "reason", "unknown_token", "decision", "deny")
			return nil, errDenied
		case errors.Is(err, sentinel.ErrConflict):
			s.logger.ErrorContext(ctx, "session token matched more than one identity")
			s.logAudit(ctx, audit.EventAuthDenied, nil, "reason", "ambiguous_token", "decision", "deny")
			return nil, errDenied
		default:
			s.logger.ErrorContext(ctx, "session lookup failed", "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "session lookup failed")
		}
	}

	if user.SessionExpiredAt(s.sessionTTL, requestcontext.Now(ctx)) {
		span.SetStatus(codes.Error, "expired")
		s.logAudit(ctx, audit.EventAuthDenied, user, "reason", "session_expired", "decision", "deny")
		return nil, errDenied
	}

	span.SetStatus(codes.Ok, "")
	return user, nil
}

// AuthenticatePrincipal adapts Authenticate for the interactive session middleware.
func (s *Service) AuthenticatePrincipal(ctx context.Context, token string) (*id.Principal, error) {
	user, err := s.Authenticate(ctx, token)
	switch {
	case err == nil:
		s.metrics.IncrementAuthDecision(authmetrics.VariantInteractive, "allow")
		return user.Principal(), nil
	case dErrors.HasCode(err, dErrors.CodeInternal):
		s.metrics.IncrementAuthDecision(authmetrics.VariantInteractive, "error")
	default:
		s.metrics.IncrementAuthDecision(authmetrics.VariantInteractive, "deny")
	}
	return nil, err
}

var errDenied = dErrors.New(dErrors.CodeUnauthorized, "authentication required")
