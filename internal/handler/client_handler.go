package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/clients")
	{
		clients.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleSales), h.CreateClient)
		clients.GET("", middleware.RequireAuth(), h.ListClients)
		clients.GET("/:id", middleware.RequireAuth(), h.GetClient)
		clients.PUT("/:id/deactivate", middleware.RequireRole(model.RoleAdmin, model.RoleSales), h.DeactivateClient)
	}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	p := pagination.Parse(c)

	clients, total, err := h.clientService.ListClients(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	}))
}

func (h *ClientHandler) DeactivateClient(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.DeactivateClient(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}
