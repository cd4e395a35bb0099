// Package credentials derives password digests and session tokens from a salt, an
// input and the fixed server secret.
package credentials

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// SaltBytes is the amount of randomness behind every salt.
const SaltBytes = 128

// GenerateSalt returns SaltBytes of cryptographically secure randomness, base64-encoded.
func GenerateSalt() (string, error) {
	buf := make([]byte, SaltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Hasher computes digests keyed by salt and input over a fixed secret.
type Hasher struct {
	secret []byte
}

// NewHasher returns a Hasher bound to secret. The secret must be stable for the
// lifetime of stored digests; rotating it invalidates every password and session.
func NewHasher(secret string) (*Hasher, error) {
	if secret == "" {
		return nil, errors.New("hasher secret is required")
	}
	return &Hasher{secret: []byte(secret)}, nil
}

// Digest returns hex(HMAC-SHA256(key = salt + "/" + input, message = secret)).
func (h *Hasher) Digest(salt, input string) string {
	mac := hmac.New(sha256.New, []byte(salt+"/"+input))
	mac.Write(h.secret)
	return hex.EncodeToString(mac.Sum(nil))
}

// Matches reports whether digest is the Digest of salt and input, in constant time.
func (h *Hasher) Matches(salt, input, digest string) bool {
	expected := h.Digest(salt, input)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}
