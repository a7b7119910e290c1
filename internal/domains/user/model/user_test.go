package model

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Jane.Doe@example.com", NormalizeEmail("  Jane.Doe@EXAMPLE.com "))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{ID: 3, Email: "a@b.c", PasswordHash: "$2a$secret", DateJoined: time.Unix(0, 0).UTC()}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	raw, err = json.Marshal(u.ToDTO())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"username":"","ANumber":"","email":"a@b.c","first_name":"","last_name":"","date_joined":"1970-01-01T00:00:00Z"}`, string(raw))
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Username: "jdoe", Email: "jdoe@example.com", Password: "longenough",
		ANumber: "A01234567", FirstName: "Jane", LastName: "Doe",
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Email = "not-an-email"
	bad.Password = "short"
	bad.FirstName = ""
	err := bad.Validate()
	require.Error(t, err)

	verrs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Equal(t, MsgInvalidEmail, verrs["email"].Error())
	assert.Equal(t, "Ensure this field has at least 8 characters.", verrs["password"].Error())
	assert.Equal(t, MsgRequired, verrs["first_name"].Error())
}

func TestConflictField(t *testing.T) {
	field, msg, ok := ConflictField(fmt.Errorf("create: %w", ErrEmailAlreadyExists))
	assert.True(t, ok)
	assert.Equal(t, "email", field)
	assert.Equal(t, MsgEmailTaken, msg)

	_, _, ok = ConflictField(ErrUserNotFound)
	assert.False(t, ok)
}
