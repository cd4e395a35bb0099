package service

import (
	"context"

	"screenboard/internal/auth/device"
	"screenboard/internal/auth/models"
	"screenboard/pkg/attrs"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/requestcontext"
)

// logAudit writes the event to the structured log and the audit publisher. Publisher
// errors are logged only; they never change the outcome of the operation.
func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, user *models.User, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	e := audit.Event{
		Category:  event.Category(),
		Timestamp: requestcontext.Now(ctx),
		Action:    string(event),
		Decision:  attrs.ExtractString(attributes, "decision"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		Email:     attrs.ExtractString(attributes, "email"),
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	}
	if user != nil {
		e.UserID = user.ID
		e.Subject = user.ID.String()
		if e.Email == "" {
			e.Email = user.Email
		}
		attributes = append(attributes, "user_id", user.ID.String())
	}

	args := append(attributes, "event", string(event), "log_type", "audit")
	s.logger.InfoContext(ctx, string(event), args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
