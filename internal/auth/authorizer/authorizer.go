// Package authorizer is the API Gateway token authorizer. It runs the same
// authentication gate as the cookie middleware and answers with an IAM policy.
package authorizer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	authmetrics "screenboard/internal/auth/metrics"
	"screenboard/internal/auth/models"
	dErrors "screenboard/pkg/domain-errors"
)

const (
	policyVersion      = "2012-10-17"
	invokeAction       = "execute-api:Invoke"
	anonymousPrincipal = "anonymous"

	// ContextUserID is the authorizer context key downstream handlers read.
	ContextUserID = "userId"
)

// Gate resolves a session token to its identity.
type Gate interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type Authorizer struct {
	gate    Gate
	logger  *slog.Logger
	metrics *authmetrics.Metrics
}

func New(gate Gate, logger *slog.Logger, metrics *authmetrics.Metrics) *Authorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authorizer{gate: gate, logger: logger, metrics: metrics}
}

// Handle never returns an error: API Gateway turns authorizer errors into 500s, and
// every failure here must become an explicit Deny.
func (a *Authorizer) Handle(ctx context.Context, req events.APIGatewayCustomAuthorizerRequest) (resp events.APIGatewayCustomAuthorizerResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "authorizer panic recovered",
				"panic", r,
				"method_arn", req.MethodArn,
			)
			a.metrics.IncrementAuthDecision(authmetrics.VariantDeclarative, "error")
			resp, err = policy(anonymousPrincipal, "Deny", req.MethodArn, nil), nil
		}
	}()

	token := bearerToken(req.AuthorizationToken)

	user, err := a.gate.Authenticate(ctx, token)
	if err != nil {
		outcome := "deny"
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			outcome = "error"
			a.logger.ErrorContext(ctx, "authorizer lookup failed", "error", err, "method_arn", req.MethodArn)
		} else {
			a.logger.InfoContext(ctx, "authorizer denied", "method_arn", req.MethodArn)
		}
		a.metrics.IncrementAuthDecision(authmetrics.VariantDeclarative, outcome)
		return policy(anonymousPrincipal, "Deny", req.MethodArn, nil), nil
	}

	a.metrics.IncrementAuthDecision(authmetrics.VariantDeclarative, "allow")
	userID := user.ID.String()
	return policy(userID, "Allow", req.MethodArn, map[string]any{ContextUserID: userID}), nil
}

func policy(principalID, effect, resource string, authContext map[string]any) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: policyVersion,
			Statement: []events.IAMPolicyStatement{{
				Action:   []string{invokeAction},
				Effect:   effect,
				Resource: []string{resource},
			}},
		},
		Context: authContext,
	}
}

// bearerToken accepts the raw token or an "Authorization: Bearer <token>" value.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
