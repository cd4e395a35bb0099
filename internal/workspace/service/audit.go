package service

import (
	"context"

	"screenboard/pkg/attrs"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/requestcontext"
)

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, principal *id.Principal, subject string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	e := audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		Subject:   subject,
		Action:    string(event),
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
	}
	if principal != nil {
		e.UserID = principal.ID
		e.Email = principal.Email
		attributes = append(attributes, "user_id", principal.ID.String())
	}
	e.Decision = attrs.ExtractString(attributes, "decision")
	e.Reason = attrs.ExtractString(attributes, "reason")

	args := append(attributes, "event", string(event), "subject", subject, "request_id", requestID, "log_type", "audit")
	s.logger.InfoContext(ctx, string(event), args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
