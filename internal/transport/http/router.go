package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "screenboard/internal/auth/handler"
	platformmetrics "screenboard/internal/platform/metrics"
	wshandler "screenboard/internal/workspace/handler"
	"screenboard/pkg/platform/httputil"
	authmw "screenboard/pkg/platform/middleware/auth"
	"screenboard/pkg/platform/middleware/metadata"
	"screenboard/pkg/platform/middleware/request"
	"screenboard/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts. Metrics and Gatherer are optional.
type Deps struct {
	Auth        authhandler.Service
	Workspace   wshandler.Service
	Cookie      authmw.CookieConfig
	Logger      *slog.Logger
	Metrics     *platformmetrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsPath string
	// Health reports backend readiness for /health. Nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter wires the public endpoints. The transport layer stays thin: handlers
// delegate to the services and never embed business rules.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.Logger))
	r.Use(request.Recovery(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Get("/health", healthHandler(d.Health, d.Logger))
	if d.Gatherer != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	authhandler.New(d.Auth, d.Cookie, d.Logger).Register(r)
	requireSession := authmw.RequireSession(d.Auth, d.Cookie, d.Logger)
	wshandler.New(d.Workspace, requireSession, d.Logger).Register(r)
	return r
}

func healthHandler(check func(ctx context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if check != nil {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
