package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type QualityHandler struct {
	qualityService service.QualityService
}

func NewQualityHandler(qualityService service.QualityService) *QualityHandler {
	return &QualityHandler{qualityService: qualityService}
}

func (h *QualityHandler) RegisterRoutes(router *gin.RouterGroup) {
	recaps := router.Group("/recaps", middleware.RequireAuth())
	{
		recaps.POST("/:id/qc", h.RecordQc)
	}

	stock := router.Group("/stock", middleware.RequireAuth())
	{
		stock.GET("", h.ListStock)
	}
}

// RecordQc grades one recap's output into stock rows and returns both the
// inspection result and the rows it produced.
func (h *QualityHandler) RecordQc(c *gin.Context) {
	recapID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.RecordQcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, items, err := h.qualityService.RecordQc(c.Request.Context(), middleware.ActorFromContext(c), recapID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, map[string]interface{}{
		"qc_result":   result,
		"stock_items": items,
	}))
}

func (h *QualityHandler) ListStock(c *gin.Context) {
	p := pagination.Parse(c)

	items, total, err := h.qualityService.ListStock(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"stock": items,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}
