package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email address."

	// bcrypt chỉ nhận tối đa 72 byte (không phải ký tự)
	MaxPasswordBytes    = 72
	MsgPasswordTooShort = "Ensure this field has at least 8 characters."
	MsgPasswordTooLong  = "Ensure this field has no more than 72 bytes."
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register/
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ANumber   string `json:"ANumber"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(0, 150).Error("Ensure this field has no more than 150 characters."),
		),
		validation.Field(&r.Email,
			validation.Required.Error(MsgRequired),
			is.EmailFormat.Error(MsgInvalidEmail),
			validation.RuneLength(0, 254).Error("Ensure this field has no more than 254 characters."),
		),
		validation.Field(&r.Password,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(8, 0).Error(MsgPasswordTooShort),
			validation.Length(0, MaxPasswordBytes).Error(MsgPasswordTooLong),
		),
		validation.Field(&r.ANumber,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(0, 20).Error("Ensure this field has no more than 20 characters."),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(0, 50).Error("Ensure this field has no more than 50 characters."),
		),
		validation.Field(&r.LastName,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(0, 50).Error("Ensure this field has no more than 50 characters."),
		),
	)
}

// LoginRequest - POST /auth/login/
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO là representation public của user
type UserDTO struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	ANumber    string    `json:"ANumber"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

// AuthResponse trả về sau register/login
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
