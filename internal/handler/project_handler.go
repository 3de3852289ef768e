package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects", middleware.RequireAuth())
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id/cancel", h.CancelProject)
		projects.PUT("/:id/start-sample", h.StartSample)
		projects.PUT("/:id/complete-sample", h.CompleteSample)
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	p := pagination.Parse(c)

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}))
}

func (h *ProjectHandler) CancelProject(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.CancelProject(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

func (h *ProjectHandler) StartSample(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.StartSample(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

func (h *ProjectHandler) CompleteSample(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.CompleteSample(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}
