package models

import (
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "screenboard/pkg/domain-errors"
)

const (
	maxNameLength    = 128
	maxCommentLength = 1024
	maxTypeLength    = 64
)

func checkLengths(name, comment string) error {
	if !govalidator.StringLength(name, "1", strconv.Itoa(maxNameLength)) {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 128 characters")
	}
	if len(comment) > maxCommentLength {
		return dErrors.New(dErrors.CodeValidation, "comment is too long")
	}
	return nil
}

type CreateSolutionRequest struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

func (r *CreateSolutionRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *CreateSolutionRequest) Validate() error {
	if r == nil || r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	return checkLengths(r.Name, r.Comment)
}

// UpdateRequest renames a solution or screen. Name is required, as on create.
type UpdateRequest struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

func (r *UpdateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *UpdateRequest) Validate() error {
	if r == nil || r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	return checkLengths(r.Name, r.Comment)
}

type CreateScreenRequest struct {
	SolutionID string `json:"solutionId"`
	Name       string `json:"name"`
	Comment    string `json:"comment"`
}

func (r *CreateScreenRequest) Normalize() {
	if r == nil {
		return
	}
	r.SolutionID = strings.TrimSpace(r.SolutionID)
	r.Name = strings.TrimSpace(r.Name)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *CreateScreenRequest) Validate() error {
	if r == nil || r.SolutionID == "" || r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "solutionId and name are required")
	}
	return checkLengths(r.Name, r.Comment)
}

type CreateWidgetRequest struct {
	ScreenID string `json:"screenId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

func (r *CreateWidgetRequest) Normalize() {
	if r == nil {
		return
	}
	r.ScreenID = strings.TrimSpace(r.ScreenID)
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
}

func (r *CreateWidgetRequest) Validate() error {
	if r == nil || r.ScreenID == "" || r.Name == "" || r.Type == "" {
		return dErrors.New(dErrors.CodeBadRequest, "screenId, name and type are required")
	}
	if len(r.Type) > maxTypeLength {
		return dErrors.New(dErrors.CodeValidation, "type is too long")
	}
	return checkLengths(r.Name, "")
}

// UpdateWidgetRequest renames or retypes a widget. Src and Values are optional and
// must match the payload kind of Type.
type UpdateWidgetRequest struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Src    *string   `json:"src,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

func (r *UpdateWidgetRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	if r.Src != nil {
		src := strings.TrimSpace(*r.Src)
		r.Src = &src
	}
}

func (r *UpdateWidgetRequest) Validate() error {
	if r == nil || r.Name == "" || r.Type == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name and type are required")
	}
	if len(r.Type) > maxTypeLength {
		return dErrors.New(dErrors.CodeValidation, "type is too long")
	}
	if IsDataWidget(r.Type) && r.Src != nil {
		return dErrors.New(dErrors.CodeValidation, "src is not valid for data widgets")
	}
	if !IsDataWidget(r.Type) && r.Values != nil {
		return dErrors.New(dErrors.CodeValidation, "values are only valid for data widgets")
	}
	if r.Src != nil && *r.Src != "" && !govalidator.IsURL(*r.Src) {
		return dErrors.New(dErrors.CodeValidation, "src must be a url")
	}
	return checkLengths(r.Name, "")
}
