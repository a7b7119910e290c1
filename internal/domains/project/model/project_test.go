package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared"
	"sidehustle-backend/internal/shared/apperr"
)

func validationFields(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(apperr.FromValidation(err))
	require.True(t, ok)
	return e.Fields
}

func TestProjectInputValidate(t *testing.T) {
	fields := validationFields(t, ProjectInput{}.Validate(false))
	for _, f := range []string{"Name", "Type", "Description", "URL"} {
		assert.Equal(t, []string{MsgRequired}, fields[f], f)
	}

	assert.NoError(t, ProjectInput{}.Validate(true))

	in := ProjectInput{
		Name:        shared.Some(strings.Repeat("n", 101)),
		Type:        shared.Some("startup"),
		Description: shared.Some(""),
		URL:         shared.Some("not a url"),
	}
	fields = validationFields(t, in.Validate(false))
	assert.Equal(t, []string{"Ensure this field has no more than 100 characters."}, fields["Name"])
	assert.Equal(t, []string{MsgBlank}, fields["Description"])
	assert.Equal(t, []string{MsgInvalidURL}, fields["URL"])
	assert.NotContains(t, fields, "Type")
}

func TestProjectApplyAndResponse(t *testing.T) {
	p := &Project{ID: 4, OwnerID: 2, Name: "old", Type: "app", Description: "d", URL: "https://old.example.com"}
	ProjectInput{Name: shared.Some("  Study Buddy  ")}.ApplyTo(p)

	assert.Equal(t, "Study Buddy", p.Name)
	assert.Equal(t, "https://old.example.com", p.URL)
	assert.Equal(t, "Project 4: app", p.String())

	out, err := json.Marshal(p.ToResponse(userModel.UserDTO{ID: 2, Username: "kim"}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"ProjectID":4`)
	assert.Contains(t, string(out), `"user":{"id":2`)
}

func TestAddMemberRequestValidate(t *testing.T) {
	fields := validationFields(t, AddMemberRequest{}.Validate())
	assert.Equal(t, []string{MsgRequired}, fields["UserID"])

	id := int64(3)
	role := strings.Repeat("r", 51)
	fields = validationFields(t, AddMemberRequest{UserID: &id, Role: &role}.Validate())
	assert.Contains(t, fields, "Role")

	role = "CTO"
	assert.NoError(t, AddMemberRequest{UserID: &id, Role: &role}.Validate())
	assert.Equal(t, `Invalid pk "3" - object does not exist.`, MsgUnknownUser(3))
}
