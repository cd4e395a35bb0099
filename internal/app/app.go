// Package app assembles stores and services from configuration. The HTTP server and
// the serverless entry points share it so every process gets the same wiring.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"screenboard/internal/auth/credentials"
	authmetrics "screenboard/internal/auth/metrics"
	authservice "screenboard/internal/auth/service"
	"screenboard/internal/auth/store/user"
	"screenboard/internal/platform/config"
	"screenboard/internal/platform/dynamo"
	platformmetrics "screenboard/internal/platform/metrics"
	"screenboard/internal/platform/postgres"
	platformredis "screenboard/internal/platform/redis"
	rlmetrics "screenboard/internal/ratelimit/metrics"
	"screenboard/internal/ratelimit/service/authlockout"
	lockoutstore "screenboard/internal/ratelimit/store/authlockout"
	wsservice "screenboard/internal/workspace/service"
	wsstore "screenboard/internal/workspace/store"
	"screenboard/pkg/platform/audit"
	"screenboard/pkg/platform/audit/publisher"
	auditkafka "screenboard/pkg/platform/audit/store/kafka"
	auditmemory "screenboard/pkg/platform/audit/store/memory"
	auditpostgres "screenboard/pkg/platform/audit/store/postgres"
	txcontext "screenboard/pkg/platform/tx"
)

const auditBufferSize = 256

// App holds the assembled services and the resources that must be released on exit.
type App struct {
	Config    config.Server
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Auth      *authservice.Service
	Workspace *wsservice.Service

	AuthMetrics *authmetrics.Metrics
	HTTPMetrics *platformmetrics.Metrics

	db      *sql.DB
	redis   *platformredis.Client
	closers []func() error
}

type backends struct {
	users     authservice.UserStore
	workspace wsservice.Store
}

// New connects the configured backends and builds the services.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &App{
		Config:      cfg,
		Logger:      logger,
		Registry:    reg,
		AuthMetrics: authmetrics.New(reg),
		HTTPMetrics: platformmetrics.New(reg),
	}

	stores, err := a.openStores(ctx)
	if err != nil {
		return nil, a.closeOnError(err)
	}

	auditStore, err := a.openAuditStore(ctx)
	if err != nil {
		return nil, a.closeOnError(err)
	}
	pub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(logger),
	)
	a.closers = append(a.closers, func() error { pub.Close(); return nil })

	lockout, err := a.openLockout(ctx, reg, pub)
	if err != nil {
		return nil, a.closeOnError(err)
	}

	workspace, err := wsservice.New(stores.workspace,
		wsservice.WithLogger(logger),
		wsservice.WithAuditPublisher(pub),
		wsservice.WithMetrics(a.AuthMetrics),
	)
	if err != nil {
		return nil, a.closeOnError(err)
	}

	hasher, err := credentials.NewHasher(cfg.Auth.Secret)
	if err != nil {
		return nil, a.closeOnError(err)
	}
	opts := []authservice.Option{
		authservice.WithLogger(logger),
		authservice.WithAuditPublisher(pub),
		authservice.WithMetrics(a.AuthMetrics),
		authservice.WithPlatformMetrics(a.HTTPMetrics),
		authservice.WithLockout(lockout),
		authservice.WithOwnedDataEraser(workspace),
		authservice.WithSessionTTL(cfg.Auth.SessionTTL),
	}
	if a.db != nil {
		opts = append(opts, authservice.WithTransactor(txcontext.NewSQLRunner(a.db)))
	}
	auth, err := authservice.New(stores.users, hasher, opts...)
	if err != nil {
		return nil, a.closeOnError(err)
	}

	a.Auth = auth
	a.Workspace = workspace
	return a, nil
}

func (a *App) openStores(ctx context.Context) (backends, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return backends{}, err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			return backends{}, err
		}
		a.Logger.InfoContext(ctx, "using postgres store")
		return backends{users: user.NewPostgres(db), workspace: wsstore.NewPostgres(db)}, nil

	case config.BackendDynamoDB:
		client, err := dynamo.New(ctx, cfg.Dynamo)
		if err != nil {
			return backends{}, err
		}
		a.Logger.InfoContext(ctx, "using dynamodb store", "region", cfg.Dynamo.Region)
		return backends{
			users: user.NewDynamo(client, cfg.Dynamo.UsersTable),
			workspace: wsstore.NewDynamo(client, wsstore.Tables{
				Solutions: cfg.Dynamo.SolutionsTable,
				Screens:   cfg.Dynamo.ScreensTable,
				Widgets:   cfg.Dynamo.WidgetsTable,
			}),
		}, nil

	default:
		a.Logger.InfoContext(ctx, "using in-memory store")
		return backends{users: user.New(), workspace: wsstore.NewInMemory()}, nil
	}
}

// openAuditStore prefers Kafka, then the relational database, then memory.
func (a *App) openAuditStore(ctx context.Context) (audit.Store, error) {
	cfg := a.Config.Kafka
	if len(cfg.Brokers) > 0 {
		client, err := auditkafka.NewClient(cfg.Brokers, cfg.ClientID)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { client.Close(); return nil })
		if err := auditkafka.EnsureTopic(ctx, client, cfg.AuditTopic, 1, 1); err != nil {
			a.Logger.WarnContext(ctx, "could not ensure audit topic", "topic", cfg.AuditTopic, "error", err)
		}
		a.Logger.InfoContext(ctx, "publishing audit events to kafka", "topic", cfg.AuditTopic)
		return auditkafka.New(client, cfg.AuditTopic), nil
	}
	if a.db != nil {
		return auditpostgres.New(a.db), nil
	}
	return auditmemory.NewInMemoryStore(), nil
}

// openLockout prefers Redis so counters are shared across instances, then the
// relational database, then memory.
func (a *App) openLockout(ctx context.Context, reg prometheus.Registerer, pub authlockout.AuditPublisher) (*authlockout.Service, error) {
	var store authlockout.Store
	client, err := platformredis.New(ctx, a.Config.Redis)
	switch {
	case err != nil:
		return nil, err
	case client != nil:
		a.redis = client
		a.closers = append(a.closers, client.Close)
		store = lockoutstore.NewRedis(client.Client)
		a.Logger.InfoContext(ctx, "using redis lockout store")
	case a.db != nil:
		store = lockoutstore.NewPostgres(a.db)
	default:
		store = lockoutstore.New()
	}

	return authlockout.New(store,
		authlockout.WithLogger(a.Logger),
		authlockout.WithAuditPublisher(pub),
		authlockout.WithMetrics(rlmetrics.New(reg)),
		authlockout.WithConfig(authlockout.Config{
			MaxFailures: a.Config.Auth.MaxLoginFailures,
			Window:      a.Config.Auth.LockoutWindow,
		}),
	)
}

// Health pings the backends that can fail independently of the process.
func (a *App) Health(ctx context.Context) error {
	var errs []error
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) closeOnError(err error) error {
	if closeErr := a.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}
