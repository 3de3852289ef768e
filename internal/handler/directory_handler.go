package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/pricing"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	directoryService service.DirectoryService
	pricingService   service.PricingService
}

func NewDirectoryHandler(directoryService service.DirectoryService, pricingService service.PricingService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService, pricingService: pricingService}
}

func (h *DirectoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects", middleware.RequireAuth())
	{
		projects.POST("/:id/items", h.CreateItem)
		projects.GET("/:id/items", h.ListItems)
	}

	items := router.Group("/items", middleware.RequireAuth())
	{
		items.GET("/:id", h.GetItem)
		items.POST("/:id/revise", h.ReviseItem)
		items.GET("/:id/pricing", h.PreviewPricing)
	}
}

func (h *DirectoryHandler) CreateItem(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.directoryService.CreateItem(c.Request.Context(), middleware.ActorFromContext(c), projectID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

func (h *DirectoryHandler) ReviseItem(c *gin.Context) {
	itemID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.ReviseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	revision, err := h.directoryService.ReviseItem(c.Request.Context(), middleware.ActorFromContext(c), itemID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, revision))
}

func (h *DirectoryHandler) GetItem(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.directoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

func (h *DirectoryHandler) ListItems(c *gin.Context) {
	projectID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	currentOnly := c.DefaultQuery("current_only", "true") == "true"
	items, err := h.directoryService.ListByProject(c.Request.Context(), projectID, currentOnly)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// PreviewPricing computes a cost breakdown for one item without persisting
// anything. Quantity and margins are optional query overrides.
func (h *DirectoryHandler) PreviewPricing(c *gin.Context) {
	itemID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	quantity, _ := strconv.Atoi(c.DefaultQuery("quantity", "0"))
	profitMargin, _ := strconv.ParseFloat(c.DefaultQuery("profit_margin", "0"), 64)
	overheadRate, _ := strconv.ParseFloat(c.DefaultQuery("overhead_rate", "0"), 64)

	breakdown, err := h.pricingService.CalculateItemPricing(c.Request.Context(), itemID, quantity, pricing.Config{
		ProfitMargin: profitMargin,
		OverheadRate: overheadRate,
	})
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, breakdown))
}
