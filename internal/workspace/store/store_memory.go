package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
)

// InMemoryStore holds solutions, screens and widgets behind one RWMutex so cascading
// deletes are atomic. Records are copied on the way in and out.
type InMemoryStore struct {
	mu        sync.RWMutex
	solutions map[id.SolutionID]*models.Solution
	screens   map[id.ScreenID]*models.Screen
	widgets   map[id.WidgetID]*models.Widget
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		solutions: make(map[id.SolutionID]*models.Solution),
		screens:   make(map[id.ScreenID]*models.Screen),
		widgets:   make(map[id.WidgetID]*models.Widget),
	}
}

func (s *InMemoryStore) CreateSolution(_ context.Context, solution *models.Solution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.solutions[solution.ID]; ok {
		return sentinel.ErrConflict
	}
	c := *solution
	s.solutions[solution.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateSolution(_ context.Context, solution *models.Solution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.solutions[solution.ID]; !ok {
		return sentinel.ErrNotFound
	}
	c := *solution
	s.solutions[solution.ID] = &c
	return nil
}

func (s *InMemoryStore) FindSolution(_ context.Context, solutionID id.SolutionID) (*models.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sol, ok := s.solutions[solutionID]; ok {
		c := *sol
		return &c, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListSolutions(_ context.Context, userID id.UserID) ([]*models.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Solution{}
	for _, sol := range s.solutions {
		if sol.UserID == userID {
			c := *sol
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteSolution removes the solution with its screens and widgets.
func (s *InMemoryStore) DeleteSolution(_ context.Context, solutionID id.SolutionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.solutions[solutionID]; !ok {
		return sentinel.ErrNotFound
	}
	s.deleteSolutionLocked(solutionID)
	return nil
}

func (s *InMemoryStore) deleteSolutionLocked(solutionID id.SolutionID) {
	for screenID, sc := range s.screens {
		if sc.SolutionID == solutionID {
			s.deleteScreenLocked(screenID)
		}
	}
	delete(s.solutions, solutionID)
}

// DeleteOwnedBy removes every solution owned by userID, cascading.
func (s *InMemoryStore) DeleteOwnedBy(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for solutionID, sol := range s.solutions {
		if sol.UserID == userID {
			s.deleteSolutionLocked(solutionID)
		}
	}
	return nil
}

func (s *InMemoryStore) CreateScreen(_ context.Context, screen *models.Screen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.solutions[screen.SolutionID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := s.screens[screen.ID]; ok {
		return sentinel.ErrConflict
	}
	c := *screen
	s.screens[screen.ID] = &c
	return nil
}

func (s *InMemoryStore) UpdateScreen(_ context.Context, screen *models.Screen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.screens[screen.ID]; !ok {
		return sentinel.ErrNotFound
	}
	c := *screen
	s.screens[screen.ID] = &c
	return nil
}

func (s *InMemoryStore) FindScreen(_ context.Context, screenID id.ScreenID) (*models.Screen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sc, ok := s.screens[screenID]; ok {
		c := *sc
		return &c, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListScreens(_ context.Context, solutionID id.SolutionID) ([]*models.Screen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Screen{}
	for _, sc := range s.screens {
		if sc.SolutionID == solutionID {
			c := *sc
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteScreen removes the screen with its widgets.
func (s *InMemoryStore) DeleteScreen(_ context.Context, screenID id.ScreenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.screens[screenID]; !ok {
		return sentinel.ErrNotFound
	}
	s.deleteScreenLocked(screenID)
	return nil
}

func (s *InMemoryStore) deleteScreenLocked(screenID id.ScreenID) {
	for widgetID, w := range s.widgets {
		if w.ScreenID == screenID {
			delete(s.widgets, widgetID)
		}
	}
	delete(s.screens, screenID)
}

func (s *InMemoryStore) CreateWidget(_ context.Context, widget *models.Widget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.screens[widget.ScreenID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := s.widgets[widget.ID]; ok {
		return sentinel.ErrConflict
	}
	s.widgets[widget.ID] = cloneWidget(widget)
	return nil
}

func (s *InMemoryStore) UpdateWidget(_ context.Context, widget *models.Widget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[widget.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.widgets[widget.ID] = cloneWidget(widget)
	return nil
}

func (s *InMemoryStore) FindWidget(_ context.Context, widgetID id.WidgetID) (*models.Widget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.widgets[widgetID]; ok {
		return cloneWidget(w), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListWidgets(_ context.Context, screenID id.ScreenID) ([]*models.Widget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Widget{}
	for _, w := range s.widgets {
		if w.ScreenID == screenID {
			out = append(out, cloneWidget(w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemoryStore) DeleteWidget(_ context.Context, widgetID id.WidgetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[widgetID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.widgets, widgetID)
	return nil
}

func cloneWidget(w *models.Widget) *models.Widget {
	c := *w
	if w.Values != nil {
		c.Values = slices.Clone(w.Values)
	}
	return &c
}
