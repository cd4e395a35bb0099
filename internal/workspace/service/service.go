package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"

	authmetrics "screenboard/internal/auth/metrics"
	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/audit"
)

var tracer = otel.Tracer("screenboard/internal/workspace/service")

// Store persists solutions, screens and widgets. Lookups return sentinel.ErrNotFound
// when nothing matches, and creates return it when the parent record is gone.
type Store interface {
	CreateSolution(ctx context.Context, solution *models.Solution) error
	UpdateSolution(ctx context.Context, solution *models.Solution) error
	FindSolution(ctx context.Context, solutionID id.SolutionID) (*models.Solution, error)
	ListSolutions(ctx context.Context, userID id.UserID) ([]*models.Solution, error)
	DeleteSolution(ctx context.Context, solutionID id.SolutionID) error
	DeleteOwnedBy(ctx context.Context, userID id.UserID) error

	CreateScreen(ctx context.Context, screen *models.Screen) error
	UpdateScreen(ctx context.Context, screen *models.Screen) error
	FindScreen(ctx context.Context, screenID id.ScreenID) (*models.Screen, error)
	ListScreens(ctx context.Context, solutionID id.SolutionID) ([]*models.Screen, error)
	DeleteScreen(ctx context.Context, screenID id.ScreenID) error

	CreateWidget(ctx context.Context, widget *models.Widget) error
	UpdateWidget(ctx context.Context, widget *models.Widget) error
	FindWidget(ctx context.Context, widgetID id.WidgetID) (*models.Widget, error)
	ListWidgets(ctx context.Context, screenID id.ScreenID) ([]*models.Widget, error)
	DeleteWidget(ctx context.Context, widgetID id.WidgetID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the solution, screen and widget tree of each user. Every operation
// resolves the owning solution and checks it against the calling principal.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *authmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithMetrics records ownership denials alongside the authentication gate's.
func WithMetrics(m *authmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("workspace store is required")
	}
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
