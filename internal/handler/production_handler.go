package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	productionService service.ProductionService
	qualityService    service.QualityService
}

func NewProductionHandler(productionService service.ProductionService, qualityService service.QualityService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService, qualityService: qualityService}
}

func (h *ProductionHandler) RegisterRoutes(router *gin.RouterGroup) {
	stages := router.Group("/stages")
	{
		stages.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateStage)
		stages.GET("", middleware.RequireAuth(), h.ListStages)
	}

	employees := router.Group("/employees")
	{
		employees.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateEmployee)
		employees.GET("", middleware.RequireAuth(), h.ListEmployees)
	}

	assignments := router.Group("/assignments", middleware.RequireAuth())
	{
		assignments.POST("/:id/recaps", h.RecordRecap)
	}
}

func (h *ProductionHandler) CreateStage(c *gin.Context) {
	var req service.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	stage, err := h.productionService.CreateStage(c.Request.Context(), req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, stage))
}

func (h *ProductionHandler) ListStages(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"
	stages, err := h.productionService.ListStages(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stages))
}

func (h *ProductionHandler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	employee, err := h.productionService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, employee))
}

func (h *ProductionHandler) ListEmployees(c *gin.Context) {
	employees, err := h.productionService.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employees))
}

func (h *ProductionHandler) RecordRecap(c *gin.Context) {
	assignmentID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req service.RecordRecapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	recap, err := h.qualityService.RecordRecap(c.Request.Context(), middleware.ActorFromContext(c), assignmentID, req)
	if err != nil {
		c.JSON(response.FromError(err))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, recap))
}
