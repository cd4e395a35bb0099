package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/httputil"
	"screenboard/pkg/requestcontext"
)

// Service is the workspace behaviour the HTTP layer needs. Every call carries the
// principal attached by the session gate.
type Service interface {
	CreateSolution(ctx context.Context, principal *id.Principal, req *models.CreateSolutionRequest) (*models.Solution, error)
	ListSolutions(ctx context.Context, principal *id.Principal) ([]*models.Solution, error)
	GetSolution(ctx context.Context, principal *id.Principal, solutionID string) (*models.Solution, error)
	UpdateSolution(ctx context.Context, principal *id.Principal, solutionID string, req *models.UpdateRequest) (*models.Solution, error)
	DeleteSolution(ctx context.Context, principal *id.Principal, solutionID string) (*models.Solution, error)
	CreateScreen(ctx context.Context, principal *id.Principal, req *models.CreateScreenRequest) (*models.Screen, error)
	ListScreens(ctx context.Context, principal *id.Principal, solutionID string) ([]*models.Screen, error)
	GetScreen(ctx context.Context, principal *id.Principal, screenID string) (*models.Screen, error)
	UpdateScreen(ctx context.Context, principal *id.Principal, screenID string, req *models.UpdateRequest) (*models.Screen, error)
	DeleteScreen(ctx context.Context, principal *id.Principal, screenID string) (*models.Screen, error)
	CreateWidget(ctx context.Context, principal *id.Principal, req *models.CreateWidgetRequest) (*models.Widget, error)
	ListWidgets(ctx context.Context, principal *id.Principal, screenID string) ([]*models.Widget, error)
	GetWidget(ctx context.Context, principal *id.Principal, widgetID string) (*models.Widget, error)
	UpdateWidget(ctx context.Context, principal *id.Principal, widgetID string, req *models.UpdateWidgetRequest) (*models.Widget, error)
	DeleteWidget(ctx context.Context, principal *id.Principal, widgetID string) (*models.Widget, error)
}

// Handler serves the solution, screen and widget endpoints.
type Handler struct {
	svc            Service
	requireSession func(http.Handler) http.Handler
	logger         *slog.Logger
}

// New builds a Handler. requireSession is the authentication gate every route sits
// behind.
func New(svc Service, requireSession func(http.Handler) http.Handler, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, requireSession: requireSession, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Post("/solutions", h.handleCreateSolution)
		r.Get("/solutions", h.handleListSolutions)
		r.Get("/solutions/{id}", h.handleGetSolution)
		r.Patch("/solutions/{id}", h.handleUpdateSolution)
		r.Delete("/solutions/{id}", h.handleDeleteSolution)

		r.Post("/screens", h.handleCreateScreen)
		r.Get("/screens", h.handleListScreens)
		r.Get("/screens/{id}", h.handleGetScreen)
		r.Patch("/screens/{id}", h.handleUpdateScreen)
		r.Delete("/screens/{id}", h.handleDeleteScreen)

		r.Post("/widgets", h.handleCreateWidget)
		r.Get("/widgets", h.handleListWidgets)
		r.Get("/widgets/{id}", h.handleGetWidget)
		r.Patch("/widgets/{id}", h.handleUpdateWidget)
		r.Delete("/widgets/{id}", h.handleDeleteWidget)
	})
}

func (h *Handler) handleCreateSolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreateSolutionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	solution, err := h.svc.CreateSolution(ctx, principalOf(ctx), req)
	h.respond(ctx, w, http.StatusCreated, solution, err, "create solution failed")
}

func (h *Handler) handleListSolutions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solutions, err := h.svc.ListSolutions(ctx, principalOf(ctx))
	h.respond(ctx, w, http.StatusOK, solutions, err, "list solutions failed")
}

func (h *Handler) handleGetSolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solution, err := h.svc.GetSolution(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, solution, err, "get solution failed")
}

func (h *Handler) handleUpdateSolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	solution, err := h.svc.UpdateSolution(ctx, principalOf(ctx), chi.URLParam(r, "id"), req)
	h.respond(ctx, w, http.StatusOK, solution, err, "update solution failed")
}

func (h *Handler) handleDeleteSolution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solution, err := h.svc.DeleteSolution(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, solution, err, "delete solution failed")
}

func (h *Handler) handleCreateScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreateScreenRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	screen, err := h.svc.CreateScreen(ctx, principalOf(ctx), req)
	h.respond(ctx, w, http.StatusCreated, screen, err, "create screen failed")
}

// handleListScreens lists the screens of the solution named by ?solutionId=.
func (h *Handler) handleListScreens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	screens, err := h.svc.ListScreens(ctx, principalOf(ctx), r.URL.Query().Get("solutionId"))
	h.respond(ctx, w, http.StatusOK, screens, err, "list screens failed")
}

func (h *Handler) handleGetScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	screen, err := h.svc.GetScreen(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, screen, err, "get screen failed")
}

func (h *Handler) handleUpdateScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.UpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	screen, err := h.svc.UpdateScreen(ctx, principalOf(ctx), chi.URLParam(r, "id"), req)
	h.respond(ctx, w, http.StatusOK, screen, err, "update screen failed")
}

func (h *Handler) handleDeleteScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	screen, err := h.svc.DeleteScreen(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, screen, err, "delete screen failed")
}

func (h *Handler) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreateWidgetRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	widget, err := h.svc.CreateWidget(ctx, principalOf(ctx), req)
	h.respond(ctx, w, http.StatusCreated, widget, err, "create widget failed")
}

// handleListWidgets lists the widgets of the screen named by ?screenId=.
func (h *Handler) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	widgets, err := h.svc.ListWidgets(ctx, principalOf(ctx), r.URL.Query().Get("screenId"))
	h.respond(ctx, w, http.StatusOK, widgets, err, "list widgets failed")
}

func (h *Handler) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	widget, err := h.svc.GetWidget(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, widget, err, "get widget failed")
}

func (h *Handler) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.UpdateWidgetRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	widget, err := h.svc.UpdateWidget(ctx, principalOf(ctx), chi.URLParam(r, "id"), req)
	h.respond(ctx, w, http.StatusOK, widget, err, "update widget failed")
}

func (h *Handler) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	widget, err := h.svc.DeleteWidget(ctx, principalOf(ctx), chi.URLParam(r, "id"))
	h.respond(ctx, w, http.StatusOK, widget, err, "delete widget failed")
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, status int, body any, err error, msg string) {
	if err != nil {
		requestID := requestcontext.RequestID(ctx)
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestID)
		} else {
			h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestID)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, body)
}

func principalOf(ctx context.Context) *id.Principal {
	p, _ := requestcontext.Principal(ctx)
	return p
}
