package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sidehustle-backend/internal/domains/post/model"
	"sidehustle-backend/internal/domains/post/service"
	"sidehustle-backend/internal/shared/apperr"
	"sidehustle-backend/internal/shared/middleware"
	"sidehustle-backend/internal/shared/response"
)

type PostHandler struct {
	service service.Service
}

func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterRoutes gắn /posts, tất cả routes đều yêu cầu xác thực
func (h *PostHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	posts := api.Group("/posts", auth)
	{
		posts.GET("/", h.List)
		posts.GET("/published/", h.Published)
		posts.GET("/my_posts/", h.MyPosts)
		posts.POST("/", h.Create)

		posts.GET("/:id/", h.Get)
		posts.PUT("/:id/", h.Update)
		posts.PATCH("/:id/", h.PartialUpdate)
		posts.DELETE("/:id/", h.Delete)

		posts.POST("/:id/publish/", h.Publish)
		posts.POST("/:id/archive/", h.Archive)
	}
}

// ========================================
// LISTING
// ========================================

// List xử lý GET /posts/ - tất cả post đã published
func (h *PostHandler) List(c *gin.Context) {
	h.list(c, model.ScopePublic)
}

// Published xử lý GET /posts/published/
func (h *PostHandler) Published(c *gin.Context) {
	h.list(c, model.ScopePublic)
}

// MyPosts xử lý GET /posts/my_posts/ - post của caller, mọi status
func (h *PostHandler) MyPosts(c *gin.Context) {
	h.list(c, model.ScopeMine)
}

func (h *PostHandler) list(c *gin.Context, scope model.Scope) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	posts, err := h.service.List(c.Request.Context(), callerID, scope)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, posts)
}

// ========================================
// CRUD
// ========================================

// Create xử lý POST /posts/
func (h *PostHandler) Create(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	var in model.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadBody(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), callerID, in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/posts/"+strconv.FormatInt(post.PostID, 10)+"/")
	response.Created(c, post)
}

// Get xử lý GET /posts/:id/
func (h *PostHandler) Get(c *gin.Context) {
	callerID, postID, ok := callerAndPost(c)
	if !ok {
		return
	}

	post, err := h.service.Get(c.Request.Context(), callerID, postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, post)
}

// Update xử lý PUT /posts/:id/
func (h *PostHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdate xử lý PATCH /posts/:id/
func (h *PostHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *PostHandler) update(c *gin.Context, partial bool) {
	callerID, postID, ok := callerAndPost(c)
	if !ok {
		return
	}

	var in model.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadBody(c, err)
		return
	}

	post, err := h.service.Update(c.Request.Context(), callerID, postID, in, partial)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, post)
}

// Delete xử lý DELETE /posts/:id/
func (h *PostHandler) Delete(c *gin.Context) {
	callerID, postID, ok := callerAndPost(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, postID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// LIFECYCLE
// ========================================

// Publish xử lý POST /posts/:id/publish/
func (h *PostHandler) Publish(c *gin.Context) {
	h.transition(c, h.service.Publish)
}

// Archive xử lý POST /posts/:id/archive/
func (h *PostHandler) Archive(c *gin.Context) {
	h.transition(c, h.service.Archive)
}

type transitionFunc func(ctx context.Context, callerID, postID int64) (*model.PostResponse, error)

func (h *PostHandler) transition(c *gin.Context, fn transitionFunc) {
	callerID, postID, ok := callerAndPost(c)
	if !ok {
		return
	}

	post, err := fn(c.Request.Context(), callerID, postID)
	if err != nil {
		// Client hiện tại đọc {"error": "Permission denied"} cho lifecycle actions
		if apperr.KindOf(err) == apperr.KindPermission {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": model.MsgPermissionDenied})
			return
		}
		response.HandleError(c, err)
		return
	}
	response.OK(c, post)
}

// ========================================
// HELPERS
// ========================================

func caller(c *gin.Context) (int64, bool) {
	id, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, response.MsgNotAuthenticated)
	}
	return id, ok
}

// callerAndPost: id không phải số nguyên thì coi như không tồn tại
func callerAndPost(c *gin.Context) (int64, int64, bool) {
	callerID, ok := caller(c)
	if !ok {
		return 0, 0, false
	}
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, 0, false
	}
	return callerID, postID, true
}
