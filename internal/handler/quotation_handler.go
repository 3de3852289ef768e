package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	quotationService service.QuotationService
}

func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

func (h *QuotationHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects", middleware.RequireAuth())
	{
		projects.POST("/:id/quotations", h.CreateQuotation)
		projects.GET("/:id/quotations", h.ListQuotations)
	}

	quotations := router.Group("/quotations", middleware.RequireAuth())
	{
		quotations.PUT("/:id/send", h.SendQuotation)
		quotations.PUT("/:id/response", h.RecordClientResponse)
	}
}

func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), middleware.ActorFromContext(c), projectID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, quotation))
}

func (h *QuotationHandler) SendQuotation(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	quotation, err := h.quotationService.SendQuotation(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

func (h *QuotationHandler) RecordClientResponse(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.ClientResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quotation, err := h.quotationService.RecordClientResponse(c.Request.Context(), middleware.ActorFromContext(c), id, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	quotations, err := h.quotationService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotations))
}
