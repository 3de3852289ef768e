package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService     service.OrderService
	paymentService   service.PaymentService
	schedulerService service.SchedulerService
}

func NewOrderHandler(
	orderService service.OrderService,
	paymentService service.PaymentService,
	schedulerService service.SchedulerService,
) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		paymentService:   paymentService,
		schedulerService: schedulerService,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/purchase-orders", middleware.RequireAuth())
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/history", h.GetHistory)
		orders.POST("/:id/payments", h.CreatePayment)
		orders.GET("/:id/payments", h.ListPayments)
		orders.GET("/:id/work-plan", h.GetWorkPlan)
	}

	payments := router.Group("/payments", middleware.RequireAuth())
	{
		payments.PUT("/:id/confirm", h.ConfirmPayment)
	}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	po, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	p := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"purchase_orders": orders,
		"total":           total,
		"page":            p.Page,
		"limit":           p.Limit,
	}))
}

// GetHistory returns the append-only status trail of one purchase order.
func (h *OrderHandler) GetHistory(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	history, err := h.orderService.GetHistory(c.Request.Context(), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}

func (h *OrderHandler) CreatePayment(c *gin.Context) {
	poID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), middleware.ActorFromContext(c), poID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.ConfirmPayment(c.Request.Context(), middleware.ActorFromContext(c), id)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

func (h *OrderHandler) ListPayments(c *gin.Context) {
	poID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), poID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payments))
}

func (h *OrderHandler) GetWorkPlan(c *gin.Context) {
	poID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	plan, err := h.schedulerService.GetWorkPlan(c.Request.Context(), poID)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}
