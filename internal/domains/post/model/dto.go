package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared"
)

const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgNull     = "This field may not be null."
)

// ========================================
// REQUEST
// ========================================

// PostInput - body của POST /posts/, PUT và PATCH /posts/:id/
// PostID, AuthorID, Author, Status và timestamps không có ở đây nên luôn bị bỏ qua
type PostInput struct {
	Title         shared.Optional[string]   `json:"Title"`
	Description   shared.Optional[string]   `json:"Description"`
	Category      shared.Optional[Category] `json:"Category"`
	TargetMarket  shared.Optional[string]   `json:"TargetMarket"`
	BusinessModel shared.Optional[string]   `json:"BusinessModel"`
	FundingNeeds  shared.Optional[Money]    `json:"FundingNeeds"`
}

// Validate kiểm tra input. partial=true (PATCH) thì field bắt buộc được phép vắng mặt
func (in PostInput) Validate(partial bool) error {
	errs := validation.Errors{
		"Title":        validateText(in.Title, partial, 200),
		"Description":  validateText(in.Description, partial, 0),
		"Category":     validateCategory(in.Category),
		"FundingNeeds": validateFunding(in.FundingNeeds),
	}
	return errs.Filter()
}

func validateText(v shared.Optional[string], partial bool, maxLen int) error {
	switch {
	case !v.Set:
		if partial {
			return nil
		}
		return validation.NewError("required", MsgRequired)
	case v.Null:
		return validation.NewError("null", MsgNull)
	}

	rules := []validation.Rule{validation.Required.Error(MsgBlank)}
	if maxLen > 0 {
		rules = append(rules, validation.RuneLength(0, maxLen).
			Error(fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen)))
	}
	return validation.Validate(strings.TrimSpace(v.Value), rules...)
}

func validateCategory(v shared.Optional[Category]) error {
	switch {
	case !v.Set:
		return nil
	case v.Null:
		return validation.NewError("null", MsgNull)
	case !v.Value.IsValid():
		return validation.NewError("invalid_choice", fmt.Sprintf("%q is not a valid choice.", string(v.Value)))
	}
	return nil
}

func validateFunding(v shared.Optional[Money]) error {
	if !v.Set || v.Null {
		return nil
	}
	m := v.Value
	switch {
	case m.IsNegative():
		return validation.NewError("min_value", "Ensure this value is greater than or equal to 0.")
	case m.ExceedsDecimalPlaces(MoneyDecimalPlaces):
		return validation.NewError("max_decimal_places",
			fmt.Sprintf("Ensure that there are no more than %d decimal places.", MoneyDecimalPlaces))
	case m.IntegerDigits() > MoneyMaxDigits-MoneyDecimalPlaces:
		return validation.NewError("max_whole_digits",
			fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", MoneyMaxDigits-MoneyDecimalPlaces))
	}
	return nil
}

// ApplyTo ghi các field có mặt trong input lên post, field vắng mặt giữ nguyên
func (in PostInput) ApplyTo(p *Post) {
	if in.Title.Set {
		p.Title = strings.TrimSpace(in.Title.Value)
	}
	if in.Description.Set {
		p.Description = strings.TrimSpace(in.Description.Value)
	}
	if in.Category.Set {
		p.Category = in.Category.Value
	}
	if in.TargetMarket.Set {
		p.TargetMarket = in.TargetMarket.Ptr()
	}
	if in.BusinessModel.Set {
		p.BusinessModel = in.BusinessModel.Ptr()
	}
	if in.FundingNeeds.Set {
		if m := in.FundingNeeds.Ptr(); m != nil {
			d := m.Fixed()
			p.FundingNeeds = &d
		} else {
			p.FundingNeeds = nil
		}
	}
}

// ========================================
// RESPONSE
// ========================================

// PostResponse giữ nguyên tên field mà client hiện tại dùng
type PostResponse struct {
	PostID        int64             `json:"PostID"`
	Title         string            `json:"Title"`
	Description   string            `json:"Description"`
	Category      Category          `json:"Category"`
	TargetMarket  *string           `json:"TargetMarket"`
	BusinessModel *string           `json:"BusinessModel"`
	FundingNeeds  *Money            `json:"FundingNeeds"`
	Status        Status            `json:"Status"`
	CreatedAt     time.Time         `json:"CreatedAt"`
	UpdatedAt     time.Time         `json:"UpdatedAt"`
	Author        userModel.UserDTO `json:"Author"`
}

func (p *Post) ToResponse(author userModel.UserDTO) PostResponse {
	resp := PostResponse{
		PostID:        p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		TargetMarket:  p.TargetMarket,
		BusinessModel: p.BusinessModel,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Author:        author,
	}
	if p.FundingNeeds != nil {
		m := NewMoney(*p.FundingNeeds)
		resp.FundingNeeds = &m
	}
	return resp
}
