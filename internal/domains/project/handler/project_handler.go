package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sidehustle-backend/internal/domains/project/model"
	"sidehustle-backend/internal/domains/project/service"
	"sidehustle-backend/internal/shared/middleware"
	"sidehustle-backend/internal/shared/response"
)

type ProjectHandler struct {
	service service.Service
}

func NewProjectHandler(service service.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	projects := api.Group("/projects", auth)
	{
		projects.GET("/", h.List)
		projects.GET("/user/", h.List)
		projects.POST("/", h.Create)

		projects.GET("/:id/", h.Get)
		projects.PUT("/:id/", h.Update)
		projects.PATCH("/:id/", h.PartialUpdate)
		projects.DELETE("/:id/", h.Delete)

		projects.GET("/:id/team/", h.ListTeam)
		projects.POST("/:id/team/", h.AddMember)
		projects.DELETE("/:id/team/:user_id/", h.RemoveMember)
	}
}

// List xử lý GET /projects/ và GET /projects/user/
func (h *ProjectHandler) List(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	projects, err := h.service.List(c.Request.Context(), callerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, projects)
}

// Create xử lý POST /projects/
func (h *ProjectHandler) Create(c *gin.Context) {
	callerID, ok := caller(c)
	if !ok {
		return
	}

	var in model.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadBody(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), callerID, in)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/projects/"+strconv.FormatInt(project.ProjectID, 10)+"/")
	response.Created(c, project)
}

// Get xử lý GET /projects/:id/
func (h *ProjectHandler) Get(c *gin.Context) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}

	project, err := h.service.Get(c.Request.Context(), callerID, projectID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *ProjectHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *ProjectHandler) update(c *gin.Context, partial bool) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}

	var in model.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadBody(c, err)
		return
	}

	project, err := h.service.Update(c.Request.Context(), callerID, projectID, in, partial)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, project)
}

// Delete xử lý DELETE /projects/:id/
func (h *ProjectHandler) Delete(c *gin.Context) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, projectID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// TEAM
// ========================================

// ListTeam xử lý GET /projects/:id/team/
func (h *ProjectHandler) ListTeam(c *gin.Context) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}

	team, err := h.service.ListTeam(c.Request.Context(), callerID, projectID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, team)
}

// AddMember xử lý POST /projects/:id/team/
func (h *ProjectHandler) AddMember(c *gin.Context) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}

	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadBody(c, err)
		return
	}

	member, err := h.service.AddMember(c.Request.Context(), callerID, projectID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, member)
}

// RemoveMember xử lý DELETE /projects/:id/team/:user_id/
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	callerID, projectID, ok := callerAndID(c, "id")
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.NotFound(c)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), callerID, projectID, userID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
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

func callerAndID(c *gin.Context, param string) (int64, int64, bool) {
	callerID, ok := caller(c)
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.NotFound(c)
		return 0, 0, false
	}
	return callerID, id, true
}
