package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
)

type CreateStageRequest struct {
	Name             string   `json:"name" binding:"required"`
	SequenceOrder    int      `json:"sequence_order" binding:"required,gt=0"`
	LaborCostPerHour *float64 `json:"labor_cost_per_hour" binding:"omitempty,gte=0"`
}

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
}

// ProductionService manages the reference data the scheduler draws from:
// pipeline stages and the employees staffing them.
type ProductionService interface {
	CreateStage(ctx context.Context, req CreateStageRequest) (*model.ProductionStage, error)
	ListStages(ctx context.Context, activeOnly bool) ([]model.ProductionStage, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

type productionService struct {
	production repository.ProductionRepository
}

func NewProductionService(production repository.ProductionRepository) ProductionService {
	return &productionService{production: production}
}

func (s *productionService) CreateStage(ctx context.Context, req CreateStageRequest) (*model.ProductionStage, error) {
	stages, err := s.production.ListStages(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, st := range stages {
		if st.Name == req.Name {
			return nil, apperror.Conflict("stage %q already exists", req.Name)
		}
	}

	stage := &model.ProductionStage{
		Name:             req.Name,
		SequenceOrder:    req.SequenceOrder,
		IsActive:         true,
		LaborCostPerHour: req.LaborCostPerHour,
	}
	if err := s.production.CreateStage(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *productionService) ListStages(ctx context.Context, activeOnly bool) ([]model.ProductionStage, error) {
	return s.production.ListStages(ctx, activeOnly)
}

func (s *productionService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error) {
	employee := &model.Employee{
		Name:       req.Name,
		Department: req.Department,
		IsActive:   true,
	}
	if err := s.production.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *productionService) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	return s.production.ListActiveEmployees(ctx)
}
