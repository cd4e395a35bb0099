package models

import (
	"encoding/json"
	"slices"
	"time"

	id "screenboard/pkg/domain"
)

// Data widget types carry numeric series; every other type points at an external source.
const (
	WidgetBarGraph = "barGraph"
	WidgetPieGraph = "pieGraph"
	WidgetTable    = "table"
	WidgetCard     = "card"
)

var dataWidgetTypes = []string{WidgetBarGraph, WidgetPieGraph, WidgetTable, WidgetCard}

// IsDataWidget reports whether widgets of type t carry Values rather than Src.
func IsDataWidget(t string) bool {
	return slices.Contains(dataWidgetTypes, t)
}

// Solution is the top-level container owned by a single user.
type Solution struct {
	ID        id.SolutionID `json:"id"`
	UserID    id.UserID     `json:"userId"`
	Name      string        `json:"name"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Screen struct {
	ID         id.ScreenID   `json:"id"`
	SolutionID id.SolutionID `json:"solutionId"`
	Name       string        `json:"name"`
	Comment    string        `json:"comment"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type Widget struct {
	ID        id.WidgetID
	ScreenID  id.ScreenID
	Name      string
	Type      string
	Src       string
	Values    []float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetType changes the widget type and resets the payload field that no longer applies.
func (w *Widget) SetType(t string) {
	w.Type = t
	if IsDataWidget(t) {
		w.Src = ""
		if w.Values == nil {
			w.Values = []float64{}
		}
		return
	}
	w.Values = nil
}

type widgetJSON struct {
	ID        id.WidgetID `json:"id"`
	ScreenID  id.ScreenID `json:"screenId"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Src       *string     `json:"src,omitempty"`
	Values    *[]float64  `json:"values,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// MarshalJSON emits values for data widgets and src for the rest.
func (w Widget) MarshalJSON() ([]byte, error) {
	out := widgetJSON{
		ID:        w.ID,
		ScreenID:  w.ScreenID,
		Name:      w.Name,
		Type:      w.Type,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if IsDataWidget(w.Type) {
		values := w.Values
		if values == nil {
			values = []float64{}
		}
		out.Values = &values
	} else {
		src := w.Src
		out.Src = &src
	}
	return json.Marshal(out)
}
