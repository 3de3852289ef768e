package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProformaHandler struct {
	proformaService service.ProformaService
}

func NewProformaHandler(proformaService service.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService}
}

func (h *ProformaHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects", middleware.RequireAuth())
	{
		projects.POST("/:id/proformas", h.CreateProforma)
		projects.GET("/:id/proformas", h.ListProformas)
	}

	proformas := router.Group("/proformas", middleware.RequireAuth())
	{
		proformas.GET("/:id", h.GetProforma)
		proformas.PUT("/:id/approve", h.ApproveProforma)
	}
}

func (h *ProformaHandler) CreateProforma(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.CreateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), middleware.ActorFromContext(c), projectID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, proforma))
}

// ApproveProforma converts the proforma into a purchase order awaiting its
// deposit and returns the new order.
func (h *ProformaHandler) ApproveProforma(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.ApproveProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	po, err := h.proformaService.ApproveProforma(c.Request.Context(), middleware.ActorFromContext(c), id, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, po))
}

func (h *ProformaHandler) GetProforma(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, proforma))
}

func (h *ProformaHandler) ListProformas(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	proformas, err := h.proformaService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, proformas))
}
