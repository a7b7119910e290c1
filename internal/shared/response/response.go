package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sidehustle-backend/internal/shared/apperr"
)

// Body messages kept identical to what existing API clients parse
const (
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgInvalidToken     = "Invalid token."
	MsgForbidden        = "You do not have permission to perform this action."
	MsgNotFound         = "Not found."
	MsgServerError      = "A server error occurred."
)

// Success responses
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func Detail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"detail": message})
}

func FieldErrors(c *gin.Context, fields map[string][]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, fields)
}

func Unauthorized(c *gin.Context, message string) {
	Detail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context) {
	Detail(c, http.StatusForbidden, MsgForbidden)
}

func NotFound(c *gin.Context) {
	Detail(c, http.StatusNotFound, MsgNotFound)
}

func InternalServerError(c *gin.Context) {
	Detail(c, http.StatusInternalServerError, MsgServerError)
}

// BadBody reports a request body that could not be decoded
func BadBody(c *gin.Context, err error) {
	FieldErrors(c, map[string][]string{"non_field_errors": {"Invalid request body: " + err.Error()}})
}

// HandleError map error đã phân loại (apperr) sang HTTP status code
func HandleError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		InternalServerError(c)
		return
	}

	switch e.Kind {
	case apperr.KindValidation:
		FieldErrors(c, e.Fields)
	case apperr.KindAuthentication:
		msg := e.Message
		if msg == "" {
			msg = MsgInvalidToken
		}
		Unauthorized(c, msg)
	case apperr.KindPermission:
		Forbidden(c)
	case apperr.KindNotFound:
		NotFound(c)
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Internal error")
		InternalServerError(c)
	}
}
