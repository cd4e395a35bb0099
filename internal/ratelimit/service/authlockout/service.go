package authlockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"screenboard/internal/ratelimit/metrics"
	"screenboard/internal/ratelimit/models"
	"screenboard/internal/ratelimit/ports"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/requestcontext"
)

// Store is an alias to the shared port.
type Store = ports.AuthLockoutStore

// AuditPublisher is an alias to the shared interface.
type AuditPublisher = ports.AuditPublisher

// Config bounds failed logins per identifier. MaxFailures of zero disables lockout.
type Config struct {
	MaxFailures int
	Window      time.Duration
}

func DefaultConfig() Config {
	return Config{MaxFailures: 5, Window: 15 * time.Minute}
}

type Service struct {
	store          Store
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	config         Config
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth lockout store is required")
	}
	svc := &Service{
		store:  store,
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.config.MaxFailures > 0 && svc.config.Window <= 0 {
		return nil, errors.New("auth lockout window must be positive")
	}
	return svc, nil
}

func (s *Service) enabled() bool {
	return s.config.MaxFailures > 0
}

// Check returns a CodeTooManyRequests error while identifier is locked. A store
// failure is returned as CodeInternal so the caller refuses the login.
func (s *Service) Check(ctx context.Context, identifier string) (*models.AuthLockoutResult, error) {
	if !s.enabled() {
		return &models.AuthLockoutResult{}, nil
	}
	key := models.NewAuthLockoutKey(identifier).String()
	record, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get auth lockout record")
	}

	now := requestcontext.Now(ctx)
	if !record.IsLockedAt(now, s.config.MaxFailures, s.config.Window) {
		count := 0
		if record != nil {
			count = record.FailureCount
		}
		return &models.AuthLockoutResult{FailureCount: count}, nil
	}

	s.metrics.IncrementLockedRejections()
	result := &models.AuthLockoutResult{
		Locked:       true,
		FailureCount: record.FailureCount,
		RetryAfter:   max(record.WindowEnd(s.config.Window).Sub(now), 0),
	}
	return result, dErrors.New(dErrors.CodeTooManyRequests, "too many failed login attempts")
}

// RecordFailure counts a failed login and emits a lockout event when the threshold is
// reached.
func (s *Service) RecordFailure(ctx context.Context, identifier string) (*models.AuthLockout, error) {
	if !s.enabled() {
		return nil, nil
	}
	key := models.NewAuthLockoutKey(identifier).String()
	current, err := s.store.RecordFailure(ctx, key, s.config.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record auth failure")
	}
	s.metrics.IncrementAuthFailures()

	if current.FailureCount == s.config.MaxFailures {
		s.metrics.IncrementAuthLockouts()
		ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthLockoutTriggered,
			"identifier", identifier,
			"reason", "failure threshold reached",
			"locked_until", current.WindowEnd(s.config.Window),
		)
	}
	return current, nil
}

// Clear resets the failure count after a successful login.
func (s *Service) Clear(ctx context.Context, identifier string) error {
	if !s.enabled() {
		return nil
	}
	key := models.NewAuthLockoutKey(identifier).String()
	record, err := s.store.Get(ctx, key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to get auth lockout record")
	}
	if record == nil || record.FailureCount == 0 {
		return nil
	}
	if err := s.store.Clear(ctx, key); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear auth failures")
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, audit.EventAuthLockoutCleared,
		"identifier", identifier,
		"failure_count", record.FailureCount,
	)
	return nil
}
