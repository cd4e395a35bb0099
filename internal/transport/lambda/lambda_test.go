package lambdatransport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmocks "screenboard/internal/auth/handler/mocks"
	authmodels "screenboard/internal/auth/models"
	wsmocks "screenboard/internal/workspace/handler/mocks"
	wsmodels "screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/requestcontext"
)

type LambdaSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	auth      *authmocks.MockService
	workspace *wsmocks.MockService
	handlers  *Handlers
	aliceID   id.UserID
}

func TestLambdaSuite(t *testing.T) {
	suite.Run(t, new(LambdaSuite))
}

func (s *LambdaSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.auth = authmocks.NewMockService(s.ctrl)
	s.workspace = wsmocks.NewMockService(s.ctrl)
	s.handlers = New(s.auth, s.workspace, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.aliceID = id.NewUserID()
}

func (s *LambdaSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *LambdaSuite) authorized(req events.APIGatewayProxyRequest) events.APIGatewayProxyRequest {
	req.RequestContext.Authorizer = map[string]any{"userId": s.aliceID.String()}
	return req
}

func (s *LambdaSuite) invoke(name string, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	fn, ok := s.handlers.Function(name)
	s.Require().True(ok, "function %s", name)
	resp, err := fn(context.Background(), req)
	s.Require().NoError(err)
	return resp
}

func (s *LambdaSuite) message(resp events.APIGatewayProxyResponse) string {
	var body messageBody
	s.Require().NoError(json.Unmarshal([]byte(resp.Body), &body))
	return body.Message
}

func (s *LambdaSuite) TestIdentity() {
	s.Run("protected function without authorizer context is forbidden", func() {
		resp := s.invoke("listSolutions", events.APIGatewayProxyRequest{})

		s.Equal(http.StatusForbidden, resp.StatusCode)
		s.Equal("Forbidden", s.message(resp))
	})

	s.Run("malformed identity is forbidden", func() {
		req := events.APIGatewayProxyRequest{}
		req.RequestContext.Authorizer = map[string]any{"userId": "not-a-uuid"}
		resp := s.invoke("listSolutions", req)

		s.Equal(http.StatusForbidden, resp.StatusCode)
	})

	s.Run("identity and request metadata reach the service", func() {
		req := s.authorized(events.APIGatewayProxyRequest{
			Headers: map[string]string{"user-agent": "curl/8"},
		})
		req.RequestContext.RequestID = "req-1"
		req.RequestContext.Identity.SourceIP = "10.0.0.1"

		s.workspace.EXPECT().ListSolutions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, principal *id.Principal) ([]*wsmodels.Solution, error) {
				s.Equal(s.aliceID, principal.ID)
				s.Equal("req-1", requestcontext.RequestID(ctx))
				s.Equal("10.0.0.1", requestcontext.ClientIP(ctx))
				s.Equal("curl/8", requestcontext.UserAgent(ctx))
				fromCtx, ok := requestcontext.Principal(ctx)
				s.True(ok)
				s.Equal(s.aliceID, fromCtx.ID)
				return []*wsmodels.Solution{}, nil
			})

		resp := s.invoke("listSolutions", req)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.JSONEq(`[]`, resp.Body)
	})

	s.Run("principalId is accepted when no userId is present", func() {
		req := events.APIGatewayProxyRequest{}
		req.RequestContext.Authorizer = map[string]any{"principalId": s.aliceID.String()}
		s.workspace.EXPECT().ListSolutions(gomock.Any(), gomock.Any()).Return(nil, nil)

		resp := s.invoke("listSolutions", req)
		s.Equal(http.StatusOK, resp.StatusCode)
	})
}

func (s *LambdaSuite) TestAuthFunctions() {
	s.Run("register answers 201 with the public user", func() {
		user := &authmodels.User{ID: s.aliceID, Email: "alice@example.com", Username: "alice", PasswordDigest: "secret"}
		s.auth.EXPECT().Register(gomock.Any(), &authmodels.RegisterRequest{
			Email: "alice@example.com", Username: "alice", Password: "pw",
		}).Return(user, nil)

		resp := s.invoke("register", events.APIGatewayProxyRequest{
			Body: `{"email":" Alice@Example.com ","username":"alice","password":"pw"}`,
		})

		s.Equal(http.StatusCreated, resp.StatusCode)
		s.Contains(resp.Body, `"username":"alice"`)
		s.NotContains(resp.Body, "secret")
	})

	s.Run("register with missing fields answers 400 without calling the service", func() {
		resp := s.invoke("register", events.APIGatewayProxyRequest{Body: `{"email":"a@example.com"}`})

		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("email, username and password are required", s.message(resp))
	})

	s.Run("malformed body answers 400", func() {
		resp := s.invoke("login", events.APIGatewayProxyRequest{Body: `{`})

		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("invalid request body", s.message(resp))
	})

	s.Run("login returns the token in the body", func() {
		user := &authmodels.User{ID: s.aliceID, Email: "alice@example.com", Username: "alice"}
		s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(&authmodels.LoginResult{User: user, Token: "tok"}, nil)

		body := base64.StdEncoding.EncodeToString([]byte(`{"email":"alice@example.com","password":"pw"}`))
		resp := s.invoke("login", events.APIGatewayProxyRequest{Body: body, IsBase64Encoded: true})

		s.Equal(http.StatusOK, resp.StatusCode)
		var out struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		s.Require().NoError(json.Unmarshal([]byte(resp.Body), &out))
		s.Equal("tok", out.Token)
		s.Equal(s.aliceID.String(), out.User.ID)
	})

	s.Run("bad credentials answer 403", func() {
		s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))

		resp := s.invoke("login", events.APIGatewayProxyRequest{Body: `{"email":"a@example.com","password":"x"}`})
		s.Equal(http.StatusForbidden, resp.StatusCode)
		s.Equal("invalid credentials", s.message(resp))
	})

	s.Run("logout answers 204", func() {
		s.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)

		resp := s.invoke("logout", s.authorized(events.APIGatewayProxyRequest{}))
		s.Equal(http.StatusNoContent, resp.StatusCode)
		s.Empty(resp.Body)
	})

	s.Run("delete user passes the path id", func() {
		user := &authmodels.User{ID: s.aliceID, Username: "alice"}
		s.auth.EXPECT().DeleteUser(gomock.Any(), gomock.Any(), s.aliceID.String()).Return(user, nil)

		resp := s.invoke("deleteUser", s.authorized(events.APIGatewayProxyRequest{
			PathParameters: map[string]string{"id": s.aliceID.String()},
		}))
		s.Equal(http.StatusOK, resp.StatusCode)
	})
}

func (s *LambdaSuite) TestWorkspaceFunctions() {
	s.Run("create solution answers 201", func() {
		solution := &wsmodels.Solution{ID: id.NewSolutionID(), UserID: s.aliceID, Name: "plant", CreatedAt: time.Unix(0, 0).UTC()}
		s.workspace.EXPECT().CreateSolution(gomock.Any(), gomock.Any(), &wsmodels.CreateSolutionRequest{Name: "plant"}).
			Return(solution, nil)

		resp := s.invoke("createSolution", s.authorized(events.APIGatewayProxyRequest{Body: `{"name":" plant "}`}))
		s.Equal(http.StatusCreated, resp.StatusCode)
		s.Contains(resp.Body, solution.ID.String())
	})

	s.Run("foreign solution answers 403", func() {
		s.workspace.EXPECT().GetSolution(gomock.Any(), gomock.Any(), "sol-1").
			Return(nil, dErrors.New(dErrors.CodeForbidden, "not the owner"))

		resp := s.invoke("getSolution", s.authorized(events.APIGatewayProxyRequest{
			PathParameters: map[string]string{"id": "sol-1"},
		}))
		s.Equal(http.StatusForbidden, resp.StatusCode)
	})

	s.Run("list screens reads the solutionId query parameter", func() {
		s.workspace.EXPECT().ListScreens(gomock.Any(), gomock.Any(), "sol-1").Return([]*wsmodels.Screen{}, nil)

		resp := s.invoke("listScreens", s.authorized(events.APIGatewayProxyRequest{
			QueryStringParameters: map[string]string{"solutionId": "sol-1"},
		}))
		s.Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("internal failures hide their cause", func() {
		s.workspace.EXPECT().DeleteWidget(gomock.Any(), gomock.Any(), "w-1").
			Return(nil, dErrors.Wrap(errors.New("dynamo throttled"), dErrors.CodeInternal, "delete widget"))

		resp := s.invoke("deleteWidget", s.authorized(events.APIGatewayProxyRequest{
			PathParameters: map[string]string{"id": "w-1"},
		}))
		s.Equal(http.StatusInternalServerError, resp.StatusCode)
		s.Equal("Internal server error", s.message(resp))
		s.NotContains(resp.Body, "throttled")
	})
}

func (s *LambdaSuite) TestRoute() {
	s.Run("dispatches on method and resource template", func() {
		s.workspace.EXPECT().GetWidget(gomock.Any(), gomock.Any(), "w-1").Return(&wsmodels.Widget{}, nil)

		req := s.authorized(events.APIGatewayProxyRequest{
			HTTPMethod:     http.MethodGet,
			Resource:       "/widgets/{id}",
			PathParameters: map[string]string{"id": "w-1"},
		})
		resp, err := s.handlers.Route(context.Background(), req)
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("unknown route answers 404", func() {
		resp, err := s.handlers.Route(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPut,
			Resource:   "/solutions",
		})
		s.Require().NoError(err)
		s.Equal(http.StatusNotFound, resp.StatusCode)
	})

	s.Run("unknown function name is reported", func() {
		_, ok := s.handlers.Function("dropTables")
		s.False(ok)
	})
}
