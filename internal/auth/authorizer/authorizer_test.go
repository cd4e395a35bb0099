package authorizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmetrics "screenboard/internal/auth/metrics"
	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
)

type stubGate struct {
	users map[string]*models.User
	err   error
	seen  []string
}

func (g *stubGate) Authenticate(_ context.Context, token string) (*models.User, error) {
	g.seen = append(g.seen, token)
	if g.err != nil {
		return nil, g.err
	}
	if u, ok := g.users[token]; ok && token != "" {
		return u, nil
	}
	return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
}

const arn = "arn:aws:execute-api:us-east-1:123456789012:api/dev/GET/solutions"

func newAuthorizer(gate Gate) (*Authorizer, *authmetrics.Metrics) {
	m := authmetrics.New(prometheus.NewRegistry())
	return New(gate, slog.New(slog.NewTextHandler(io.Discard, nil)), m), m
}

func assertPolicy(t *testing.T, resp events.APIGatewayCustomAuthorizerResponse, effect string) {
	t.Helper()
	assert.Equal(t, "2012-10-17", resp.PolicyDocument.Version)
	require.Len(t, resp.PolicyDocument.Statement, 1)
	stmt := resp.PolicyDocument.Statement[0]
	assert.Equal(t, []string{"execute-api:Invoke"}, stmt.Action)
	assert.Equal(t, effect, stmt.Effect)
	assert.Equal(t, []string{arn}, stmt.Resource)
}

func TestHandle(t *testing.T) {
	alice := &models.User{ID: id.NewUserID(), Email: "a@x.com"}

	t.Run("known token is allowed with the user id as principal", func(t *testing.T) {
		gate := &stubGate{users: map[string]*models.User{"tok": alice}}
		a, m := newAuthorizer(gate)

		resp, err := a.Handle(context.Background(), events.APIGatewayCustomAuthorizerRequest{
			Type: "TOKEN", AuthorizationToken: "tok", MethodArn: arn,
		})
		require.NoError(t, err)
		assertPolicy(t, resp, "Allow")
		assert.Equal(t, alice.ID.String(), resp.PrincipalID)
		assert.Equal(t, alice.ID.String(), resp.Context[ContextUserID])
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthDecisions.WithLabelValues(authmetrics.VariantDeclarative, "allow")))
	})

	t.Run("bearer prefix is stripped", func(t *testing.T) {
		gate := &stubGate{users: map[string]*models.User{"tok": alice}}
		a, _ := newAuthorizer(gate)

		resp, err := a.Handle(context.Background(), events.APIGatewayCustomAuthorizerRequest{
			AuthorizationToken: "Bearer tok", MethodArn: arn,
		})
		require.NoError(t, err)
		assertPolicy(t, resp, "Allow")
		assert.Equal(t, []string{"tok"}, gate.seen)
	})

	t.Run("unknown and empty tokens are denied", func(t *testing.T) {
		a, _ := newAuthorizer(&stubGate{})
		for _, token := range []string{"", "stale", "Bearer "} {
			resp, err := a.Handle(context.Background(), events.APIGatewayCustomAuthorizerRequest{
				AuthorizationToken: token, MethodArn: arn,
			})
			require.NoError(t, err)
			assertPolicy(t, resp, "Deny")
			assert.Equal(t, "anonymous", resp.PrincipalID)
			assert.Empty(t, resp.Context)
		}
	})

	t.Run("lookup failure fails closed without an error", func(t *testing.T) {
		gate := &stubGate{err: dErrors.Wrap(errors.New("dynamo down"), dErrors.CodeInternal, "session lookup failed")}
		a, m := newAuthorizer(gate)

		resp, err := a.Handle(context.Background(), events.APIGatewayCustomAuthorizerRequest{
			AuthorizationToken: "tok", MethodArn: arn,
		})
		require.NoError(t, err)
		assertPolicy(t, resp, "Deny")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthDecisions.WithLabelValues(authmetrics.VariantDeclarative, "error")))
	})

	t.Run("panic in the gate becomes a deny", func(t *testing.T) {
		a, m := newAuthorizer(panickingGate{})

		var resp events.APIGatewayCustomAuthorizerResponse
		var err error
		require.NotPanics(t, func() {
			resp, err = a.Handle(context.Background(), events.APIGatewayCustomAuthorizerRequest{
				AuthorizationToken: "tok", MethodArn: arn,
			})
		})
		require.NoError(t, err)
		assert.Equal(t, "anonymous", resp.PrincipalID)
		assert.Empty(t, resp.Context)
		assertPolicy(t, resp, "Deny")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthDecisions.WithLabelValues(authmetrics.VariantDeclarative, "error")))
	})
}

type panickingGate struct{}

func (panickingGate) Authenticate(context.Context, string) (*models.User, error) {
	panic("nil store")
}
