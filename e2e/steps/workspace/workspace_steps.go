package workspace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	Status() int
	ResponseField(field string) (any, error)
	Save(name, value string)
	Recall(name string) (string, error)
}

// RegisterSteps registers solution, screen and widget step definitions. Records are
// saved under a label so later steps can address them by name.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &workspaceSteps{tc: tc}

	ctx.Step(`^I create a solution "([^"]*)"$`, steps.createSolution)
	ctx.Step(`^I create a screen "([^"]*)" in solution "([^"]*)"$`, steps.createScreen)
	ctx.Step(`^I create a "([^"]*)" widget "([^"]*)" on screen "([^"]*)"$`, steps.createWidget)
	ctx.Step(`^I list my solutions$`, steps.listSolutions)
	ctx.Step(`^I list the screens of solution "([^"]*)"$`, steps.listScreens)
	ctx.Step(`^I list the widgets of screen "([^"]*)"$`, steps.listWidgets)
	ctx.Step(`^I get (solution|screen|widget) "([^"]*)"$`, steps.get)
	ctx.Step(`^I rename (solution|screen) "([^"]*)" to "([^"]*)"$`, steps.rename)
	ctx.Step(`^I set the values of widget "([^"]*)" to "([^"]*)"$`, steps.setValues)
	ctx.Step(`^I delete (solution|screen|widget) "([^"]*)"$`, steps.delete)
}

type workspaceSteps struct {
	tc TestContext
}

func (s *workspaceSteps) create(path, label string, body map[string]any) error {
	if err := s.tc.Do(http.MethodPost, path, body); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusCreated {
		return nil
	}
	recordID, err := s.tc.ResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Save(label, fmt.Sprint(recordID))
	return nil
}

func (s *workspaceSteps) createSolution(_ context.Context, label string) error {
	return s.create("/solutions", label, map[string]any{"name": label})
}

func (s *workspaceSteps) createScreen(_ context.Context, label, solution string) error {
	solutionID, err := s.tc.Recall(solution)
	if err != nil {
		return err
	}
	return s.create("/screens", label, map[string]any{"name": label, "solutionId": solutionID})
}

func (s *workspaceSteps) createWidget(_ context.Context, kind, label, screen string) error {
	screenID, err := s.tc.Recall(screen)
	if err != nil {
		return err
	}
	return s.create("/widgets", label, map[string]any{"name": label, "type": kind, "screenId": screenID})
}

func (s *workspaceSteps) listSolutions(_ context.Context) error {
	return s.tc.Do(http.MethodGet, "/solutions", nil)
}

func (s *workspaceSteps) listScreens(_ context.Context, solution string) error {
	solutionID, err := s.tc.Recall(solution)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodGet, "/screens?solutionId="+url.QueryEscape(solutionID), nil)
}

func (s *workspaceSteps) listWidgets(_ context.Context, screen string) error {
	screenID, err := s.tc.Recall(screen)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodGet, "/widgets?screenId="+url.QueryEscape(screenID), nil)
}

func (s *workspaceSteps) path(kind, label string) (string, error) {
	recordID, err := s.tc.Recall(label)
	if err != nil {
		return "", err
	}
	return "/" + kind + "s/" + recordID, nil
}

func (s *workspaceSteps) get(_ context.Context, kind, label string) error {
	p, err := s.path(kind, label)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodGet, p, nil)
}

func (s *workspaceSteps) rename(_ context.Context, kind, label, name string) error {
	p, err := s.path(kind, label)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodPatch, p, map[string]any{"name": name})
}

func (s *workspaceSteps) setValues(_ context.Context, label, csv string) error {
	p, err := s.path("widget", label)
	if err != nil {
		return err
	}
	var values []float64
	for _, part := range strings.Split(csv, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", part, err)
		}
		values = append(values, v)
	}
	return s.tc.Do(http.MethodPatch, p, map[string]any{"name": label, "type": "barGraph", "values": values})
}

func (s *workspaceSteps) delete(_ context.Context, kind, label string) error {
	p, err := s.path(kind, label)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodDelete, p, nil)
}
