package apperr

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThing = errors.New("thing not found")

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFound(errThing))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, errThing)
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestFromValidation(t *testing.T) {
	type req struct {
		Title string `json:"Title"`
		Body  string `json:"Description"`
	}
	r := req{}
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("This field is required.")),
		validation.Field(&r.Body, validation.Required.Error("This field is required.")),
	)
	require.Error(t, err)

	converted := FromValidation(err)
	e, ok := As(converted)
	require.True(t, ok)
	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, map[string][]string{
		"Title":       {"This field is required."},
		"Description": {"This field is required."},
	}, e.Fields)
}

func TestFromValidationNil(t *testing.T) {
	assert.NoError(t, FromValidation(nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "thing not found", NotFound(errThing).Error())
	assert.Equal(t, "Invalid token.: thing not found", Authentication("Invalid token.", errThing).Error())
	assert.Equal(t, "validation", Validation(nil).Error())
}
