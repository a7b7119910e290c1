package model

import (
	"strings"
	"time"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	ANumber    string    `json:"ANumber"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`

	// Never expose in JSON (kể cả khi cache)
	PasswordHash string `json:"-"`
}

// FullName is used in log lines and the admin-facing string form
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) String() string {
	return u.FullName() + " (" + u.ANumber + ")"
}

// ToDTO removes sensitive data before sending to client
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		ANumber:    u.ANumber,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
	}
}

// NormalizeEmail lowercases the domain part, the local part is kept as typed
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
