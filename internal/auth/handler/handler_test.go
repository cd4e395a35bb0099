package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"screenboard/internal/auth/handler/mocks"
	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	authmw "screenboard/pkg/platform/middleware/auth"
	"screenboard/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	svc    *mocks.MockService
	router chi.Router
	alice  *models.User
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.svc, authmw.CookieConfig{Name: "USER-AUTH", Domain: "localhost", Path: "/"}, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.alice = &models.User{
		ID:             id.NewUserID(),
		Email:          "a@x.com",
		Username:       "alice",
		Salt:           "salt",
		PasswordDigest: "digest",
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *HandlerSuite) authenticated(token string) {
	s.svc.EXPECT().AuthenticatePrincipal(gomock.Any(), token).Return(s.alice.Principal(), nil)
}

func (s *HandlerSuite) TestRegister() {
	s.Run("returns the public view", func() {
		s.svc.EXPECT().Register(gomock.Any(), &models.RegisterRequest{Email: "a@x.com", Username: "alice", Password: "pw1"}).
			Return(s.alice, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register",
			map[string]string{"email": " A@x.com", "username": "alice", "password": "pw1"}))

		s.Equal(http.StatusCreated, rr.Code)
		s.NotContains(rr.Body.String(), "digest")
		s.NotContains(rr.Body.String(), "salt")
		body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal("a@x.com", (*body)["email"])
	})

	s.Run("missing field is 400 and the service is not called", func() {
		s.svc.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register",
			map[string]string{"email": "a@x.com"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("duplicate email is 409", func() {
		s.svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeConflict, "email is already registered"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register",
			map[string]string{"email": "a@x.com", "username": "alice", "password": "pw1"}))
		s.Equal(http.StatusConflict, rr.Code)
	})
}

func (s *HandlerSuite) TestLogin() {
	s.Run("sets the session cookie", func() {
		s.svc.EXPECT().Login(gomock.Any(), &models.LoginRequest{Email: "a@x.com", Password: "pw1"}).
			Return(&models.LoginResult{User: s.alice, Token: "tok"}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "a@x.com", "password": "pw1"}))

		s.Equal(http.StatusOK, rr.Code)
		cookies := rr.Result().Cookies()
		s.Require().Len(cookies, 1)
		s.Equal("USER-AUTH", cookies[0].Name)
		s.Equal("tok", cookies[0].Value)
		s.Equal("localhost", cookies[0].Domain)
		s.Equal("/", cookies[0].Path)
		s.True(cookies[0].Expires.IsZero())
		s.NotContains(rr.Body.String(), "tok")
	})

	s.Run("missing password is 400", func() {
		s.svc.EXPECT().Login(gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "a@x.com"}))
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("bad credentials are 403 with no cookie", func() {
		s.svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "ghost@x.com", "password": "pw1"}))
		s.Equal(http.StatusForbidden, rr.Code)
		s.Empty(rr.Result().Cookies())
	})

	s.Run("locked out is 429", func() {
		s.svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeTooManyRequests, "too many"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "a@x.com", "password": "pw1"}))
		s.Equal(http.StatusTooManyRequests, rr.Code)
	})

	s.Run("malformed body is 400", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/auth/login", "{bad"))
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestUsers() {
	s.Run("listing requires a session", func() {
		s.svc.EXPECT().ListUsers(gomock.Any()).Times(0)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/users"))
		s.Equal(http.StatusForbidden, rr.Code)
		s.Empty(rr.Body.String())
	})

	s.Run("lists public views", func() {
		s.authenticated("tok")
		s.svc.EXPECT().ListUsers(gomock.Any()).Return([]*models.User{s.alice}, nil)

		req := testutil.WithSessionCookie(testutil.NewRequest(s.T(), http.MethodGet, "/users"), "USER-AUTH", "tok")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		s.Contains(rr.Body.String(), s.alice.ID.String())
		s.NotContains(rr.Body.String(), "digest")
	})

	s.Run("deleting someone else's record is 403 and never reaches the service", func() {
		s.authenticated("tok")
		s.svc.EXPECT().DeleteUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := testutil.WithSessionCookie(
			testutil.NewRequest(s.T(), http.MethodDelete, "/users/"+id.NewUserID().String()), "USER-AUTH", "tok")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusForbidden, rr.Code)
		s.Empty(rr.Body.String())
	})

	s.Run("owner deletes own record", func() {
		s.authenticated("tok")
		s.svc.EXPECT().DeleteUser(gomock.Any(), gomock.Any(), s.alice.ID.String()).Return(s.alice, nil)

		req := testutil.WithSessionCookie(
			testutil.NewRequest(s.T(), http.MethodDelete, "/users/"+s.alice.ID.String()), "USER-AUTH", "tok")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		testutil.AssertJSONContains(s.T(), rr, "id", s.alice.ID.String())
	})

	s.Run("owner renames self", func() {
		s.authenticated("tok")
		renamed := *s.alice
		renamed.Username = "bob"
		s.svc.EXPECT().UpdateUsername(gomock.Any(), gomock.Any(), s.alice.ID.String(), &models.UpdateUserRequest{Username: "bob"}).
			Return(&renamed, nil)

		req := testutil.WithSessionCookie(
			testutil.NewJSONRequest(s.T(), http.MethodPatch, "/users/"+s.alice.ID.String(), map[string]string{"username": " bob "}),
			"USER-AUTH", "tok")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		testutil.AssertJSONContains(s.T(), rr, "username", "bob")
	})

	s.Run("session lookup failure is 400 with empty body", func() {
		s.svc.EXPECT().AuthenticatePrincipal(gomock.Any(), "tok").
			Return(nil, dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "session lookup failed"))

		req := testutil.WithSessionCookie(testutil.NewRequest(s.T(), http.MethodGet, "/users"), "USER-AUTH", "tok")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Empty(rr.Body.String())
	})
}

func (s *HandlerSuite) TestLogout() {
	s.authenticated("tok")
	s.svc.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)

	req := testutil.WithSessionCookie(testutil.NewRequest(s.T(), http.MethodPost, "/auth/logout"), "USER-AUTH", "tok")
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(-1, cookies[0].MaxAge)
}
