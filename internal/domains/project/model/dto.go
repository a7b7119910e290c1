package model

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared"
)

const (
	MsgRequired   = "This field is required."
	MsgBlank      = "This field may not be blank."
	MsgNull       = "This field may not be null."
	MsgInvalidURL = "Enter a valid URL."
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ========================================
// PROJECT
// ========================================

// ProjectInput - body của POST /projects/, PUT/PATCH /projects/:id/
type ProjectInput struct {
	Name        shared.Optional[string] `json:"Name"`
	Type        shared.Optional[string] `json:"Type"`
	Description shared.Optional[string] `json:"Description"`
	URL         shared.Optional[string] `json:"URL"`
}

func (in ProjectInput) Validate(partial bool) error {
	return validation.Errors{
		"Name":        validateField(in.Name, partial, validation.RuneLength(0, 100).Error(maxLenMsg(100))),
		"Type":        validateField(in.Type, partial, validation.RuneLength(0, 100).Error(maxLenMsg(100))),
		"Description": validateField(in.Description, partial),
		"URL": validateField(in.URL, partial,
			is.URL.Error(MsgInvalidURL),
			validation.RuneLength(0, 200).Error(maxLenMsg(200)),
		),
	}.Filter()
}

func maxLenMsg(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func validateField(v shared.Optional[string], partial bool, rules ...validation.Rule) error {
	switch {
	case !v.Set:
		if partial {
			return nil
		}
		return validation.NewError("required", MsgRequired)
	case v.Null:
		return validation.NewError("null", MsgNull)
	}
	rules = append([]validation.Rule{validation.Required.Error(MsgBlank)}, rules...)
	return validation.Validate(strings.TrimSpace(v.Value), rules...)
}

func (in ProjectInput) ApplyTo(p *Project) {
	if in.Name.Set {
		p.Name = strings.TrimSpace(in.Name.Value)
	}
	if in.Type.Set {
		p.Type = strings.TrimSpace(in.Type.Value)
	}
	if in.Description.Set {
		p.Description = strings.TrimSpace(in.Description.Value)
	}
	if in.URL.Set {
		p.URL = strings.TrimSpace(in.URL.Value)
	}
}

// ProjectResponse - owner trả về dưới key "user" (read-only)
type ProjectResponse struct {
	ProjectID   int64             `json:"ProjectID"`
	Name        string            `json:"Name"`
	Type        string            `json:"Type"`
	Description string            `json:"Description"`
	URL         string            `json:"URL"`
	User        userModel.UserDTO `json:"user"`
}

func (p *Project) ToResponse(owner userModel.UserDTO) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		URL:         p.URL,
		User:        owner,
	}
}

// ========================================
// TEAM
// ========================================

// AddMemberRequest - body của POST /projects/:id/team/, ProjectID lấy từ path
type AddMemberRequest struct {
	UserID *int64  `json:"UserID"`
	Role   *string `json:"Role"`
}

func (r AddMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.NotNil.Error(MsgRequired)),
		validation.Field(&r.Role, validation.RuneLength(0, 50).Error(maxLenMsg(50))),
	)
}

type TeamMemberResponse struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"ProjectID"`
	UserID    int64   `json:"UserID"`
	Role      *string `json:"Role"`
}

func (m *TeamMember) ToResponse() TeamMemberResponse {
	return TeamMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      m.Role,
	}
}
