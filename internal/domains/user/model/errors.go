package model

import "errors"

// Repository-level errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrANumberAlreadyExists  = errors.New("a-number already exists")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Field error messages for uniqueness, per wire field
const (
	MsgEmailTaken    = "user with this Email Address already exists."
	MsgUsernameTaken = "A user with that username already exists."
	MsgANumberTaken  = "user with this A-Number already exists."
)

// ConflictField maps a uniqueness error to the wire field and message it is reported under
func ConflictField(err error) (field, msg string, ok bool) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		return "email", MsgEmailTaken, true
	case errors.Is(err, ErrUsernameAlreadyExists):
		return "username", MsgUsernameTaken, true
	case errors.Is(err, ErrANumberAlreadyExists):
		return "ANumber", MsgANumberTaken, true
	}
	return "", "", false
}
