package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared/apperr"
	"sidehustle-backend/internal/shared/response"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID      = "userID"
	ContextCurrentUser = "currentUser"
)

// Authenticator resolve bearer token thành user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userModel.User, error)
}

// AuthMiddleware - Middleware xác thực token trên mọi request được bảo vệ
// Chấp nhận "Token <key>" (mobile client hiện tại) và "Bearer <key>"
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.MsgNotAuthenticated)
			return
		}

		// 2. Extract token từ "<scheme> <token>"
		token, ok := parseAuthorization(authHeader)
		if !ok {
			response.Unauthorized(c, response.MsgInvalidToken)
			return
		}

		// 3. Verify token và load user
		u, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindAuthentication {
				log.Error().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("Authentication lookup failed")
				response.InternalServerError(c)
				return
			}
			response.Unauthorized(c, response.MsgInvalidToken)
			return
		}

		// 4. Set caller vào context
		c.Set(ContextUserID, u.ID)
		c.Set(ContextCurrentUser, u)

		c.Next()
	}
}

func parseAuthorization(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return parts[1], true
	}
	return "", false
}

// CallerID trả về user ID đã xác thực (set bởi AuthMiddleware)
func CallerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CurrentUser trả về user đã xác thực
func CurrentUser(c *gin.Context) (*userModel.User, bool) {
	v, exists := c.Get(ContextCurrentUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*userModel.User)
	return u, ok
}
