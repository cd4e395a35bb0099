package lambdatransport

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"screenboard/internal/auth/models"
	id "screenboard/pkg/domain"
)

type loginResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (h *Handlers) register(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.RegisterRequest](req)
	if err != nil {
		return h.fail(ctx, err, "register failed"), nil
	}
	user, err := h.auth.Register(ctx, body)
	if err != nil {
		return h.fail(ctx, err, "register failed"), nil
	}
	return h.respond(ctx, http.StatusCreated, user.Public(), nil, "register failed")
}

// login hands the token back in the body; serverless clients present it as a bearer
// token to the authorizer instead of a cookie.
func (h *Handlers) login(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.LoginRequest](req)
	if err != nil {
		return h.fail(ctx, err, "login failed"), nil
	}
	result, err := h.auth.Login(ctx, body)
	if err != nil {
		return h.fail(ctx, err, "login failed"), nil
	}
	return h.respond(ctx, http.StatusOK, loginResponse{Token: result.Token, User: result.User.Public()}, nil, "login failed")
}

func (h *Handlers) logout(ctx context.Context, principal *id.Principal, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return h.respond(ctx, http.StatusNoContent, nil, h.auth.Logout(ctx, principal), "logout failed")
}

func (h *Handlers) listUsers(ctx context.Context, _ *id.Principal, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	users, err := h.auth.ListUsers(ctx)
	if err != nil {
		return h.fail(ctx, err, "list users failed"), nil
	}
	return h.respond(ctx, http.StatusOK, models.PublicUsers(users), nil, "list users failed")
}

func (h *Handlers) updateUser(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.UpdateUserRequest](req)
	if err != nil {
		return h.fail(ctx, err, "update user failed"), nil
	}
	user, err := h.auth.UpdateUsername(ctx, principal, req.PathParameters["id"], body)
	if err != nil {
		return h.fail(ctx, err, "update user failed"), nil
	}
	return h.respond(ctx, http.StatusOK, user.Public(), nil, "update user failed")
}

func (h *Handlers) deleteUser(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	user, err := h.auth.DeleteUser(ctx, principal, req.PathParameters["id"])
	if err != nil {
		return h.fail(ctx, err, "delete user failed"), nil
	}
	return h.respond(ctx, http.StatusOK, user.Public(), nil, "delete user failed")
}
