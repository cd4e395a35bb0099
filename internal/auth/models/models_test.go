package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
)

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &User{ID: id.NewUserID(), Email: "a@example.com"}
	assert.False(t, u.HasSession())

	u.IssueSession("tok", now)
	require.True(t, u.HasSession())
	assert.Equal(t, "tok", *u.SessionToken)
	assert.Equal(t, now, *u.SessionIssuedAt)

	u.RevokeSession(now.Add(time.Minute))
	assert.False(t, u.HasSession())
	assert.Nil(t, u.SessionIssuedAt)
}

func TestSessionExpiredAt(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &User{}
	u.IssueSession("tok", issued)

	assert.False(t, u.SessionExpiredAt(0, issued.Add(24*365*time.Hour)), "zero ttl never expires")
	assert.False(t, u.SessionExpiredAt(time.Hour, issued.Add(time.Hour)), "boundary is still valid")
	assert.True(t, u.SessionExpiredAt(time.Hour, issued.Add(time.Hour+time.Second)))

	legacy := &User{}
	token := "tok"
	legacy.SessionToken = &token
	assert.True(t, legacy.SessionExpiredAt(time.Hour, issued))
}

func TestPublicViewOmitsCredentials(t *testing.T) {
	token := "secret-token"
	u := &User{ID: id.NewUserID(), Email: "a@example.com", Username: "a", Salt: "s", PasswordDigest: "d", SessionToken: &token}

	pub := u.Public()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, "a@example.com", pub.Email)
	assert.Equal(t, "a", pub.Username)
	assert.Len(t, PublicUsers([]*User{u, u}), 2)

	p := u.Principal()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, "a", p.Username)
}

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
		code dErrors.Code
	}{
		{"missing email", RegisterRequest{Username: "u", Password: "p"}, dErrors.CodeBadRequest},
		{"missing username", RegisterRequest{Email: "a@example.com", Password: "p"}, dErrors.CodeBadRequest},
		{"missing password", RegisterRequest{Email: "a@example.com", Username: "u"}, dErrors.CodeBadRequest},
		{"malformed email", RegisterRequest{Email: "not-an-email", Username: "u", Password: "p"}, dErrors.CodeValidation},
		{"valid", RegisterRequest{Email: "  A@Example.com ", Username: " u ", Password: "p"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := tt.req.Validate()
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, "a@example.com", tt.req.Email)
				assert.Equal(t, "u", tt.req.Username)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.code))
		})
	}
}

func TestLoginAndUpdateRequestValidation(t *testing.T) {
	login := &LoginRequest{Email: " X@Y.com ", Password: ""}
	login.Normalize()
	assert.Equal(t, "x@y.com", login.Email)
	assert.True(t, dErrors.HasCode(login.Validate(), dErrors.CodeBadRequest))

	login.Password = "pw"
	assert.NoError(t, login.Validate())

	update := &UpdateUserRequest{Username: "   "}
	update.Normalize()
	assert.True(t, dErrors.HasCode(update.Validate(), dErrors.CodeBadRequest))
}
