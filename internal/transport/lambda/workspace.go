package lambdatransport

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
)

func (h *Handlers) createSolution(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.CreateSolutionRequest](req)
	if err != nil {
		return h.fail(ctx, err, "create solution failed"), nil
	}
	solution, err := h.workspace.CreateSolution(ctx, principal, body)
	return h.respond(ctx, http.StatusCreated, solution, err, "create solution failed")
}

func (h *Handlers) listSolutions(ctx context.Context, principal *id.Principal, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	solutions, err := h.workspace.ListSolutions(ctx, principal)
	return h.respond(ctx, http.StatusOK, solutions, err, "list solutions failed")
}

func (h *Handlers) getSolution(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	solution, err := h.workspace.GetSolution(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, solution, err, "get solution failed")
}

func (h *Handlers) updateSolution(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.UpdateRequest](req)
	if err != nil {
		return h.fail(ctx, err, "update solution failed"), nil
	}
	solution, err := h.workspace.UpdateSolution(ctx, principal, req.PathParameters["id"], body)
	return h.respond(ctx, http.StatusOK, solution, err, "update solution failed")
}

func (h *Handlers) deleteSolution(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	solution, err := h.workspace.DeleteSolution(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, solution, err, "delete solution failed")
}

func (h *Handlers) createScreen(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.CreateScreenRequest](req)
	if err != nil {
		return h.fail(ctx, err, "create screen failed"), nil
	}
	screen, err := h.workspace.CreateScreen(ctx, principal, body)
	return h.respond(ctx, http.StatusCreated, screen, err, "create screen failed")
}

func (h *Handlers) listScreens(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	screens, err := h.workspace.ListScreens(ctx, principal, req.QueryStringParameters["solutionId"])
	return h.respond(ctx, http.StatusOK, screens, err, "list screens failed")
}

func (h *Handlers) getScreen(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	screen, err := h.workspace.GetScreen(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, screen, err, "get screen failed")
}

func (h *Handlers) updateScreen(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.UpdateRequest](req)
	if err != nil {
		return h.fail(ctx, err, "update screen failed"), nil
	}
	screen, err := h.workspace.UpdateScreen(ctx, principal, req.PathParameters["id"], body)
	return h.respond(ctx, http.StatusOK, screen, err, "update screen failed")
}

func (h *Handlers) deleteScreen(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	screen, err := h.workspace.DeleteScreen(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, screen, err, "delete screen failed")
}

func (h *Handlers) createWidget(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.CreateWidgetRequest](req)
	if err != nil {
		return h.fail(ctx, err, "create widget failed"), nil
	}
	widget, err := h.workspace.CreateWidget(ctx, principal, body)
	return h.respond(ctx, http.StatusCreated, widget, err, "create widget failed")
}

func (h *Handlers) listWidgets(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	widgets, err := h.workspace.ListWidgets(ctx, principal, req.QueryStringParameters["screenId"])
	return h.respond(ctx, http.StatusOK, widgets, err, "list widgets failed")
}

func (h *Handlers) getWidget(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	widget, err := h.workspace.GetWidget(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, widget, err, "get widget failed")
}

func (h *Handlers) updateWidget(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decode[models.UpdateWidgetRequest](req)
	if err != nil {
		return h.fail(ctx, err, "update widget failed"), nil
	}
	widget, err := h.workspace.UpdateWidget(ctx, principal, req.PathParameters["id"], body)
	return h.respond(ctx, http.StatusOK, widget, err, "update widget failed")
}

func (h *Handlers) deleteWidget(ctx context.Context, principal *id.Principal, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	widget, err := h.workspace.DeleteWidget(ctx, principal, req.PathParameters["id"])
	return h.respond(ctx, http.StatusOK, widget, err, "delete widget failed")
}
