package audit

import (
	"context"

	id "screenboard/pkg/domain"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader is implemented by stores that can answer per-user queries.
type Reader interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
