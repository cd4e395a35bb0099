package domain

import (
	"github.com/google/uuid"

	dErrors "screenboard/pkg/domain-errors"
)

// Typed identifiers. Each is a distinct named type so a ScreenID can never be passed
// where a SolutionID is expected.
type (
	UserID     uuid.UUID
	SolutionID uuid.UUID
	ScreenID   uuid.UUID
	WidgetID   uuid.UUID
)

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id SolutionID) String() string { return uuid.UUID(id).String() }
func (id ScreenID) String() string   { return uuid.UUID(id).String() }
func (id WidgetID) String() string   { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SolutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ScreenID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id WidgetID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id SolutionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ScreenID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id WidgetID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SolutionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ScreenID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *WidgetID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseUserID parses a user id at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseSolutionID parses a solution id at a trust boundary.
func ParseSolutionID(s string) (SolutionID, error) {
	u, err := parseUUID(s, "solution id")
	return SolutionID(u), err
}

// ParseScreenID parses a screen id at a trust boundary.
func ParseScreenID(s string) (ScreenID, error) {
	u, err := parseUUID(s, "screen id")
	return ScreenID(u), err
}

// ParseWidgetID parses a widget id at a trust boundary.
func ParseWidgetID(s string) (WidgetID, error) {
	u, err := parseUUID(s, "widget id")
	return WidgetID(u), err
}

func NewUserID() UserID         { return UserID(uuid.New()) }
func NewSolutionID() SolutionID { return SolutionID(uuid.New()) }
func NewScreenID() ScreenID     { return ScreenID(uuid.New()) }
func NewWidgetID() WidgetID     { return WidgetID(uuid.New()) }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}
