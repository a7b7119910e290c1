package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/domains/user/service"
	"sidehustle-backend/internal/shared/apperr"
	"sidehustle-backend/internal/shared/middleware"
	"sidehustle-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho auth + users
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service service.Service
}

// NewUserHandler tạo handler instance
func NewUserHandler(service service.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes gắn public auth routes và protected user routes
func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register/", h.Register)
		authGroup.POST("/login/", h.Login)
		authGroup.GET("/user/", auth, h.Profile)
	}

	users := api.Group("/users", auth)
	{
		users.GET("/", h.ListUsers)
		users.GET("/:id/", h.GetUser)
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /auth/register/
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c, err)
		return
	}

	// STEP 2: CALL SERVICE LAYER (validate, check duplicates, hash, save, issue token)
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	// STEP 3: SUCCESS RESPONSE
	c.Header("Location", "/api/users/"+strconv.FormatInt(resp.User.ID, 10)+"/")
	response.Created(c, resp)
}

// Login xử lý POST /auth/login/
// Sai credentials trả về {"message": "Invalid credentials"} như client hiện tại mong đợi
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuthentication {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": service.MsgInvalidCredentials})
			return
		}
		response.HandleError(c, err)
		return
	}

	response.OK(c, resp)
}

// Profile xử lý GET /auth/user/
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, response.MsgNotAuthenticated)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, profile)
}

// ========================================
// USER ENDPOINTS
// ========================================

// ListUsers xử lý GET /users/
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, users)
}

// GetUser xử lý GET /users/:id/
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, u)
}
