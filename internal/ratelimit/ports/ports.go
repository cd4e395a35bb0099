// Package ports defines shared interfaces for the ratelimit module.
package ports

import (
	"context"
	"log/slog"
	"time"

	"screenboard/internal/ratelimit/models"
	"screenboard/pkg/attrs"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/requestcontext"
)

// AuditPublisher emits audit events for security-relevant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// AuthLockoutStore manages authentication failure tracking.
type AuthLockoutStore interface {
	// Get returns the record for identifier, or nil when none exists.
	Get(ctx context.Context, identifier string) (*models.AuthLockout, error)

	// RecordFailure counts one failure inside the window and returns the updated record.
	RecordFailure(ctx context.Context, identifier string, window time.Duration) (*models.AuthLockout, error)

	// Clear removes the record for identifier.
	Clear(ctx context.Context, identifier string) error
}

// LogAudit logs the event and emits it to the publisher. Emission failures are
// logged and never returned.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.AuditEvent, attrList ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}

	args := append(attrList, "event", string(event), "log_type", "audit")
	if logger != nil {
		logger.InfoContext(ctx, string(event), args...)
	}

	if publisher == nil {
		return
	}
	err := publisher.Emit(ctx, audit.Event{
		Category:  event.Category(),
		Action:    string(event),
		Subject:   attrs.ExtractString(attrList, "identifier"),
		Email:     attrs.ExtractString(attrList, "identifier"),
		Reason:    attrs.ExtractString(attrList, "reason"),
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
