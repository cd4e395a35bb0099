package audit

import (
	"time"

	id "screenboard/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle events that must be retained.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authentication failures, denials and lockouts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity such as session issuance.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It is transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	Email     string
	RequestID string
	ClientIP  string
	// Device is a short human-readable description derived from the User-Agent.
	Device string
}

type AuditEvent string

const (
	EventUserCreated    AuditEvent = "user_created"
	EventUserUpdated    AuditEvent = "user_updated"
	EventUserDeleted    AuditEvent = "user_deleted"
	EventSessionCreated AuditEvent = "session_created"
	EventSessionRevoked AuditEvent = "session_revoked"
	EventAuthFailed     AuditEvent = "auth_failed"
	EventAuthDenied     AuditEvent = "auth_denied"
	EventOwnerDenied    AuditEvent = "ownership_denied"

	EventAuthLockoutTriggered AuditEvent = "auth_lockout_triggered"
	EventAuthLockoutCleared   AuditEvent = "auth_lockout_cleared"

	EventSolutionDeleted AuditEvent = "solution_deleted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserCreated:     CategoryCompliance,
	EventUserUpdated:     CategoryCompliance,
	EventUserDeleted:     CategoryCompliance,
	EventSolutionDeleted: CategoryCompliance,

	EventAuthFailed:           CategorySecurity,
	EventAuthDenied:           CategorySecurity,
	EventOwnerDenied:          CategorySecurity,
	EventSessionRevoked:       CategorySecurity,
	EventAuthLockoutTriggered: CategorySecurity,
	EventAuthLockoutCleared:   CategorySecurity,

	EventSessionCreated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
