// Package apperr classifies domain errors into the kinds the HTTP layer
// knows how to render.
package apperr

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	}
	return "internal"
}

// Error là error có phân loại, bọc sentinel error của domain
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string // chỉ dùng cho KindValidation
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(err error) *Error {
	return &Error{Kind: KindNotFound, Err: err}
}

func Permission(err error) *Error {
	return &Error{Kind: KindPermission, Err: err}
}

func Authentication(msg string, err error) *Error {
	return &Error{Kind: KindAuthentication, Message: msg, Err: err}
}

// Validation builds a field error map error. Keys are wire field names.
func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// FieldError is a single-field validation error.
func FieldError(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}

// FromValidation converts ozzo-validation output into a validation error.
// Errors that are not field errors (internal rule failures) are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return FieldError("non_field_errors", err.Error())
	}

	fields := make(map[string][]string, len(verrs))
	keys := make([]string, 0, len(verrs))
	for k := range verrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if verrs[k] == nil {
			continue
		}
		fields[k] = append(fields[k], verrs[k].Error())
	}
	return Validation(fields)
}

// KindOf returns the classification of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As extracts the classified error, if any.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
