package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/requestcontext"
)

// DefaultCookieName is the cookie that carries the session token.
const DefaultCookieName = "USER-AUTH"

// SessionAuthenticator resolves a session token into the principal that owns it.
// Denials carry dErrors.CodeUnauthorized; infrastructure failures carry CodeInternal.
type SessionAuthenticator interface {
	AuthenticatePrincipal(ctx context.Context, token string) (*id.Principal, error)
}

// OwnerCheck decides whether principal may act on resources owned by ownerID.
type OwnerCheck func(principal *id.Principal, ownerID string) error

// CookieConfig describes the session cookie written at login.
type CookieConfig struct {
	Name   string
	Domain string
	Path   string
	Secure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// SetSessionCookie writes the session token. The cookie has no expiry; the server
// decides when a token stops being honored.
func SetSessionCookie(w http.ResponseWriter, cfg CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    token,
		Domain:   cfg.Domain,
		Path:     cfg.Path,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Domain:   cfg.Domain,
		Path:     cfg.Path,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionToken reads the session token from the request cookie.
func SessionToken(r *http.Request, cfg CookieConfig) string {
	c, err := r.Cookie(cfg.name())
	if err != nil {
		return ""
	}
	return c.Value
}

// RequireSession admits requests whose session cookie resolves to an identity and
// attaches that identity to the request context. Denials answer 403 and failures of
// the lookup itself answer 400, both with an empty body.
func RequireSession(authenticator SessionAuthenticator, cfg CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token := SessionToken(r, cfg)
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session cookie",
					"request_id", requestID,
				)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			principal, err := authenticator.AuthenticatePrincipal(ctx, token)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeInternal) {
					logger.ErrorContext(ctx, "session lookup failed",
						"error", err,
						"request_id", requestID,
					)
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				logger.WarnContext(ctx, "unauthorized access - session rejected",
					"request_id", requestID,
				)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithPrincipal(ctx, principal)))
		})
	}
}

// RequireOwner admits requests whose authenticated principal owns the resource named
// by the URL parameter param. It must run after RequireSession.
func RequireOwner(param string, check OwnerCheck, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal, _ := requestcontext.Principal(ctx)
			ownerID := chi.URLParam(r, param)

			if err := check(principal, ownerID); err != nil {
				logger.WarnContext(ctx, "forbidden - principal does not own resource",
					"owner_id", ownerID,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
