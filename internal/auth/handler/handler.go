package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"screenboard/internal/auth/models"
	"screenboard/internal/auth/ownership"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/httputil"
	authmw "screenboard/pkg/platform/middleware/auth"
	"screenboard/pkg/requestcontext"
)

// Service is the auth behaviour the HTTP layer needs.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Logout(ctx context.Context, principal *id.Principal) error
	AuthenticatePrincipal(ctx context.Context, token string) (*id.Principal, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUsername(ctx context.Context, principal *id.Principal, userID string, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, principal *id.Principal, userID string) (*models.User, error)
}

// Handler serves registration, login and the user endpoints.
type Handler struct {
	auth   Service
	cookie authmw.CookieConfig
	logger *slog.Logger
}

func New(auth Service, cookie authmw.CookieConfig, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, cookie: cookie, logger: logger}
}

// Register mounts the auth and user routes on r.
func (h *Handler) Register(r chi.Router) {
	requireSession := authmw.RequireSession(h.auth, h.cookie, h.logger)
	requireOwner := authmw.RequireOwner("id", ownership.Require, h.logger)

	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/users", h.handleListUsers)
		r.With(requireOwner).Patch("/users/{id}", h.handleUpdateUser)
		r.With(requireOwner).Delete("/users/{id}", h.handleDeleteUser)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "register failed")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user.Public())
}

// handleLogin answers 400 for a missing field and 403 for any credential failure. The
// session cookie carries no expiry.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.auth.Login(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "login failed")
		return
	}

	authmw.SetSessionCookie(w, h.cookie, result.Token)
	httputil.WriteJSON(w, http.StatusOK, result.User.Public())
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := requestcontext.Principal(ctx)

	if err := h.auth.Logout(ctx, principal); err != nil {
		h.writeServiceError(ctx, w, err, "logout failed")
		return
	}
	authmw.ClearSessionCookie(w, h.cookie)
	httputil.WriteStatus(w, http.StatusNoContent)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.auth.ListUsers(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, err, "list users failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.PublicUsers(users))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	principal, _ := requestcontext.Principal(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.auth.UpdateUsername(ctx, principal, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(ctx, w, err, "update user failed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := requestcontext.Principal(ctx)

	user, err := h.auth.DeleteUser(ctx, principal, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(ctx, w, err, "delete user failed")
		return
	}
	authmw.ClearSessionCookie(w, h.cookie)
	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestID)
	} else {
		h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestID)
	}
	httputil.WriteError(w, err)
}
