// Package ownership decides whether an authenticated principal may act on a
// resource owned by a given id.
package ownership

import (
	"strings"

	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Check is pure: it reads nothing but its arguments. The owner id is compared in its
// canonical lowercase form after surrounding whitespace is trimmed.
func Check(principal *id.Principal, ownerID string) Decision {
	if principal == nil || principal.ID.IsNil() {
		return Deny
	}
	if principal.ID.String() != strings.ToLower(strings.TrimSpace(ownerID)) {
		return Deny
	}
	return Allow
}

// Require returns a CodeForbidden error when Check denies.
func Require(principal *id.Principal, ownerID string) error {
	if Check(principal, ownerID) == Deny {
		return dErrors.New(dErrors.CodeForbidden, "principal does not own the resource")
	}
	return nil
}
