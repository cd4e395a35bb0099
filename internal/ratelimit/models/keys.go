package models

import "strings"

const authLockoutPrefix = "auth_lockout"

// SanitizeKeySegment escapes delimiter characters in key segments so a user-controlled
// identifier containing ':' cannot address an adjacent key.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// AuthLockoutKey is the store key for an identifier, usually a normalized email.
type AuthLockoutKey string

func NewAuthLockoutKey(identifier string) AuthLockoutKey {
	return AuthLockoutKey(authLockoutPrefix + ":" + SanitizeKeySegment(strings.ToLower(strings.TrimSpace(identifier))))
}

func (k AuthLockoutKey) String() string { return string(k) }
