package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	Act(actor string)
	Actor() string
	Email(actor string) string
	Session() string
	UseSession(token string)
	Status() int
	ResponseField(field string) (any, error)
	Save(name, value string)
	Recall(name string) (string, error)
}

// RegisterSteps registers registration, login and user step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^"([^"]*)" has registered with password "([^"]*)"$`, steps.hasRegistered)
	ctx.Step(`^"([^"]*)" is logged in with password "([^"]*)"$`, steps.isLoggedIn)
	ctx.Step(`^I register as "([^"]*)" with password "([^"]*)"$`, steps.register)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I act as "([^"]*)"$`, steps.act)
	ctx.Step(`^I log out$`, steps.logout)
	ctx.Step(`^I present the old session of "([^"]*)"$`, steps.presentOldSession)
	ctx.Step(`^I list users$`, steps.listUsers)
	ctx.Step(`^I rename user "([^"]*)" to "([^"]*)"$`, steps.renameUser)
	ctx.Step(`^I delete user "([^"]*)"$`, steps.deleteUser)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) register(_ context.Context, actor, password string) error {
	s.tc.Act(actor)
	if err := s.tc.Do(http.MethodPost, "/auth/register", map[string]any{
		"email":    s.tc.Email(actor),
		"username": actor,
		"password": password,
	}); err != nil {
		return err
	}
	if s.tc.Status() == http.StatusCreated {
		userID, err := s.tc.ResponseField("id")
		if err != nil {
			return err
		}
		s.tc.Save("user:"+actor, fmt.Sprint(userID))
	}
	return nil
}

func (s *authSteps) hasRegistered(ctx context.Context, actor, password string) error {
	if err := s.register(ctx, actor, password); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusCreated {
		return fmt.Errorf("register %s: status %d", actor, s.tc.Status())
	}
	return nil
}

func (s *authSteps) login(_ context.Context, actor, password string) error {
	s.tc.Act(actor)
	if err := s.tc.Do(http.MethodPost, "/auth/login", map[string]any{
		"email":    s.tc.Email(actor),
		"password": password,
	}); err != nil {
		return err
	}
	if token := s.tc.Session(); token != "" {
		s.tc.Save("session:"+actor, token)
	}
	return nil
}

func (s *authSteps) isLoggedIn(ctx context.Context, actor, password string) error {
	if err := s.hasRegistered(ctx, actor, password); err != nil {
		return err
	}
	if err := s.login(ctx, actor, password); err != nil {
		return err
	}
	if s.tc.Status() != http.StatusOK {
		return fmt.Errorf("login %s: status %d", actor, s.tc.Status())
	}
	return nil
}

func (s *authSteps) act(_ context.Context, actor string) error {
	s.tc.Act(actor)
	return nil
}

func (s *authSteps) logout(_ context.Context) error {
	return s.tc.Do(http.MethodPost, "/auth/logout", nil)
}

func (s *authSteps) presentOldSession(_ context.Context, actor string) error {
	token, err := s.tc.Recall("session:" + actor)
	if err != nil {
		return err
	}
	s.tc.UseSession(token)
	return nil
}

func (s *authSteps) listUsers(_ context.Context) error {
	return s.tc.Do(http.MethodGet, "/users", nil)
}

func (s *authSteps) renameUser(_ context.Context, actor, username string) error {
	userID, err := s.tc.Recall("user:" + actor)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodPatch, "/users/"+userID, map[string]any{"username": username})
}

func (s *authSteps) deleteUser(_ context.Context, actor string) error {
	userID, err := s.tc.Recall("user:" + actor)
	if err != nil {
		return err
	}
	return s.tc.Do(http.MethodDelete, "/users/"+userID, nil)
}
