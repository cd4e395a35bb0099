// Package lambdatransport adapts the services to API Gateway proxy events. Identity
// comes from the token authorizer's context, never from the request body.
package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	authhandler "screenboard/internal/auth/handler"
	"screenboard/internal/auth/authorizer"
	wshandler "screenboard/internal/workspace/handler"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/platform/httputil"
	"screenboard/pkg/requestcontext"
)

// Func handles one API Gateway proxy event.
type Func func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type messageBody struct {
	Message string `json:"message"`
}

// Handlers serves every route of the API as individual functions.
type Handlers struct {
	auth      authhandler.Service
	workspace wshandler.Service
	logger    *slog.Logger
	routes    map[string]Func
	functions map[string]Func
}

func New(auth authhandler.Service, workspace wshandler.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{auth: auth, workspace: workspace, logger: logger}
	h.mount()
	return h
}

type route struct {
	function string
	method   string
	resource string
	fn       Func
}

func (h *Handlers) mount() {
	table := []route{
		{"register", http.MethodPost, "/auth/register", h.register},
		{"login", http.MethodPost, "/auth/login", h.login},
		{"logout", http.MethodPost, "/auth/logout", h.authenticated(h.logout)},
		{"listUsers", http.MethodGet, "/users", h.authenticated(h.listUsers)},
		{"updateUser", http.MethodPatch, "/users/{id}", h.authenticated(h.updateUser)},
		{"deleteUser", http.MethodDelete, "/users/{id}", h.authenticated(h.deleteUser)},

		{"createSolution", http.MethodPost, "/solutions", h.authenticated(h.createSolution)},
		{"listSolutions", http.MethodGet, "/solutions", h.authenticated(h.listSolutions)},
		{"getSolution", http.MethodGet, "/solutions/{id}", h.authenticated(h.getSolution)},
		{"updateSolution", http.MethodPatch, "/solutions/{id}", h.authenticated(h.updateSolution)},
		{"deleteSolution", http.MethodDelete, "/solutions/{id}", h.authenticated(h.deleteSolution)},

		{"createScreen", http.MethodPost, "/screens", h.authenticated(h.createScreen)},
		{"listScreens", http.MethodGet, "/screens", h.authenticated(h.listScreens)},
		{"getScreen", http.MethodGet, "/screens/{id}", h.authenticated(h.getScreen)},
		{"updateScreen", http.MethodPatch, "/screens/{id}", h.authenticated(h.updateScreen)},
		{"deleteScreen", http.MethodDelete, "/screens/{id}", h.authenticated(h.deleteScreen)},

		{"createWidget", http.MethodPost, "/widgets", h.authenticated(h.createWidget)},
		{"listWidgets", http.MethodGet, "/widgets", h.authenticated(h.listWidgets)},
		{"getWidget", http.MethodGet, "/widgets/{id}", h.authenticated(h.getWidget)},
		{"updateWidget", http.MethodPatch, "/widgets/{id}", h.authenticated(h.updateWidget)},
		{"deleteWidget", http.MethodDelete, "/widgets/{id}", h.authenticated(h.deleteWidget)},
	}
	h.routes = make(map[string]Func, len(table))
	h.functions = make(map[string]Func, len(table))
	for _, r := range table {
		fn := h.withRequestContext(r.fn)
		h.routes[r.method+" "+r.resource] = fn
		h.functions[r.function] = fn
	}
}

// Function returns the handler deployed under name, e.g. "createSolution".
func (h *Handlers) Function(name string) (Func, bool) {
	fn, ok := h.functions[name]
	return fn, ok
}

// Route dispatches on the API Gateway resource template and method, for deployments
// that front every route with a single function.
func (h *Handlers) Route(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	fn, ok := h.routes[req.HTTPMethod+" "+req.Resource]
	if !ok {
		return message(http.StatusNotFound, "Not found"), nil
	}
	return fn(ctx, req)
}

func (h *Handlers) withRequestContext(next Func) Func {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = requestcontext.WithRequestID(ctx, req.RequestContext.RequestID)
		ctx = requestcontext.WithClientMetadata(ctx, req.RequestContext.Identity.SourceIP, header(req, "User-Agent"))
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
		return next(ctx, req)
	}
}

// authenticated reads the identity the token authorizer attached. Requests that reach
// a protected function without one are refused.
func (h *Handlers) authenticated(next func(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)) Func {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		principal, ok := principalFrom(req)
		if !ok {
			h.logger.WarnContext(ctx, "unauthorized access - missing authorizer identity",
				"request_id", requestcontext.RequestID(ctx),
			)
			return message(http.StatusForbidden, "Forbidden"), nil
		}
		return next(requestcontext.WithPrincipal(ctx, principal), principal, req)
	}
}

func principalFrom(req events.APIGatewayProxyRequest) (*id.Principal, bool) {
	raw, _ := req.RequestContext.Authorizer[authorizer.ContextUserID].(string)
	if raw == "" {
		raw, _ = req.RequestContext.Authorizer["principalId"].(string)
	}
	userID, err := id.ParseUserID(raw)
	if err != nil {
		return nil, false
	}
	return &id.Principal{ID: userID}, true
}

func header(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func decode[T any](req events.APIGatewayProxyRequest) (*T, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
		}
		body = decoded
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	if n, ok := any(&out).(httputil.Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(&out).(httputil.Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (h *Handlers) respond(ctx context.Context, status int, body any, err error, msg string) (events.APIGatewayProxyResponse, error) {
	if err != nil {
		return h.fail(ctx, err, msg), nil
	}
	if body == nil {
		return events.APIGatewayProxyResponse{StatusCode: status}, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return h.fail(ctx, dErrors.Wrap(err, dErrors.CodeInternal, "encode response"), msg), nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}, nil
}

// fail maps a coded error to its status. Internal failures never expose their cause.
func (h *Handlers) fail(ctx context.Context, err error, msg string) events.APIGatewayProxyResponse {
	code := dErrors.CodeOf(err)
	requestID := requestcontext.RequestID(ctx)
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestID)
		return message(http.StatusInternalServerError, "Internal server error")
	}
	h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestID)
	return message(httputil.StatusFor(code), dErrors.MessageOf(err))
}

func message(status int, msg string) events.APIGatewayProxyResponse {
	raw, _ := json.Marshal(messageBody{Message: msg})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}
}
