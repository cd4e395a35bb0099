package models

import (
	"time"

	id "screenboard/pkg/domain"
)

// User is the stored identity record. Salt, PasswordDigest and SessionToken are
// credential material and never leave the service through PublicUser.
type User struct {
	ID              id.UserID
	Email           string
	Username        string
	Salt            string
	PasswordDigest  string
	SessionToken    *string
	SessionIssuedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasSession reports whether the user currently holds an issued session token.
func (u *User) HasSession() bool {
	return u.SessionToken != nil && *u.SessionToken != ""
}

// IssueSession replaces any previous token with token, issued at now.
func (u *User) IssueSession(token string, now time.Time) {
	u.SessionToken = &token
	u.SessionIssuedAt = &now
	u.UpdatedAt = now
}

// RevokeSession clears the session token.
func (u *User) RevokeSession(now time.Time) {
	u.SessionToken = nil
	u.SessionIssuedAt = nil
	u.UpdatedAt = now
}

// SessionExpiredAt reports whether the session issued to u is older than ttl at now.
// A zero ttl never expires. A token without an issue time is treated as expired when a
// ttl is configured, since its age cannot be established.
func (u *User) SessionExpiredAt(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	if u.SessionIssuedAt == nil {
		return true
	}
	return now.After(u.SessionIssuedAt.Add(ttl))
}

// Principal projects the user into the request identity carried by context.
func (u *User) Principal() *id.Principal {
	return &id.Principal{ID: u.ID, Email: u.Email, Username: u.Username}
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the user as returned by the API.
type PublicUser struct {
	ID        id.UserID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User  *User
	Token string
}

// PublicUsers maps users to their public views.
func PublicUsers(users []*User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
