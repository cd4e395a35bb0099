package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"screenboard/internal/auth/credentials"
	authmetrics "screenboard/internal/auth/metrics"
	"screenboard/internal/auth/models"
	platformmetrics "screenboard/internal/platform/metrics"
	rlmodels "screenboard/internal/ratelimit/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/audit"
)

var tracer = otel.Tracer("screenboard/internal/auth/service")

// UserStore is the identity persistence the service consumes. Lookups and updates
// return sentinel.ErrNotFound when nothing matches; FindBySessionToken returns
// sentinel.ErrConflict when a token matches more than one identity.
//
// Updates touch only the fields they name, so a username change never rewrites the
// session token a concurrent login just issued.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	SetSession(ctx context.Context, userID id.UserID, token string, issuedAt time.Time) error
	ClearSession(ctx context.Context, userID id.UserID, at time.Time) error
	UpdateUsername(ctx context.Context, userID id.UserID, username string, at time.Time) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindBySessionToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

// LockoutService tracks failed logins per email.
type LockoutService interface {
	Check(ctx context.Context, identifier string) (*rlmodels.AuthLockoutResult, error)
	RecordFailure(ctx context.Context, identifier string) (*rlmodels.AuthLockout, error)
	Clear(ctx context.Context, identifier string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// OwnedDataEraser removes records owned by a user that the database does not
// cascade on its own.
type OwnedDataEraser interface {
	DeleteOwnedBy(ctx context.Context, userID id.UserID) error
}

// Transactor runs fn as one unit of work. The default runs fn directly.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type directTransactor struct{}

func (directTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Service issues and verifies session tokens and manages user records.
type Service struct {
	users           UserStore
	hasher          *credentials.Hasher
	lockout         LockoutService
	eraser          OwnedDataEraser
	tx              Transactor
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *authmetrics.Metrics
	platformMetrics *platformmetrics.Metrics
	sessionTTL      time.Duration

	newSalt func() (string, error)
	// dummySalt feeds the digest computed for unknown emails so both failure paths
	// do the same work.
	dummySalt string
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

func WithMetrics(m *authmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPlatformMetrics(m *platformmetrics.Metrics) Option {
	return func(s *Service) {
		s.platformMetrics = m
	}
}

// WithLockout enables failed-login lockout.
func WithLockout(l LockoutService) Option {
	return func(s *Service) {
		s.lockout = l
	}
}

// WithOwnedDataEraser registers cleanup run before a user is deleted.
func WithOwnedDataEraser(e OwnedDataEraser) Option {
	return func(s *Service) {
		s.eraser = e
	}
}

// WithTransactor makes user deletion and the erasure of owned data atomic.
func WithTransactor(t Transactor) Option {
	return func(s *Service) {
		if t != nil {
			s.tx = t
		}
	}
}

// WithSessionTTL bounds how long a session token is honored. Zero disables expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.sessionTTL = ttl
	}
}

// New constructs a Service.
func New(users UserStore, hasher *credentials.Hasher, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	s := &Service{
		users:   users,
		hasher:  hasher,
		logger:  slog.Default(),
		tx:      directTransactor{},
		newSalt: credentials.GenerateSalt,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionTTL < 0 {
		return nil, errors.New("session ttl must not be negative")
	}
	salt, err := s.newSalt()
	if err != nil {
		return nil, err
	}
	s.dummySalt = salt
	return s, nil
}
