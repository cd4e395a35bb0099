package service

import (
	"context"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	dErrors "screenboard/pkg/domain-errors"
	"screenboard/pkg/requestcontext"
)

// CreateWidget adds a widget to a screen the principal owns. Data widgets start with
// an empty series and source widgets with an empty src.
func (s *Service) CreateWidget(ctx context.Context, principal *id.Principal, req *models.CreateWidgetRequest) (*models.Widget, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	if req == nil {
		req = &models.CreateWidgetRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	screenID, err := parseScreenID(req.ScreenID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedScreen(ctx, principal, screenID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	widget := &models.Widget{
		ID:        id.NewWidgetID(),
		ScreenID:  screenID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	widget.SetType(req.Type)
	if err := s.store.CreateWidget(ctx, widget); err != nil {
		return nil, wrapWrite(err, "screen")
	}
	return widget, nil
}

func (s *Service) ListWidgets(ctx context.Context, principal *id.Principal, screenID string) ([]*models.Widget, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseScreenID(screenID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedScreen(ctx, principal, parsed); err != nil {
		return nil, err
	}
	widgets, err := s.store.ListWidgets(ctx, parsed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list widgets")
	}
	return widgets, nil
}

func (s *Service) GetWidget(ctx context.Context, principal *id.Principal, widgetID string) (*models.Widget, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseWidgetID(widgetID)
	if err != nil {
		return nil, err
	}
	return s.ownedWidget(ctx, principal, parsed)
}

// UpdateWidget renames or retypes a widget. Changing between a data and a source type
// resets the payload that no longer applies before any supplied src or values land.
func (s *Service) UpdateWidget(ctx context.Context, principal *id.Principal, widgetID string, req *models.UpdateWidgetRequest) (*models.Widget, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseWidgetID(widgetID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &models.UpdateWidgetRequest{}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	widget, err := s.ownedWidget(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}

	widget.Name = req.Name
	widget.SetType(req.Type)
	if req.Src != nil {
		widget.Src = *req.Src
	}
	if req.Values != nil {
		widget.Values = req.Values
	}
	widget.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdateWidget(ctx, widget); err != nil {
		return nil, wrapWrite(err, "widget")
	}
	return widget, nil
}

func (s *Service) DeleteWidget(ctx context.Context, principal *id.Principal, widgetID string) (*models.Widget, error) {
	if principal == nil {
		return nil, errUnauthenticated
	}
	parsed, err := parseWidgetID(widgetID)
	if err != nil {
		return nil, err
	}
	widget, err := s.ownedWidget(ctx, principal, parsed)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteWidget(ctx, widget.ID); err != nil {
		return nil, wrapWrite(err, "widget")
	}
	return widget, nil
}
