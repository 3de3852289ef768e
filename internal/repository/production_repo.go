package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionRepository interface {
	CreateStage(ctx context.Context, stage *model.ProductionStage) error
	ListStages(ctx context.Context, activeOnly bool) ([]model.ProductionStage, error)
	CreateEmployee(ctx context.Context, employee *model.Employee) error
	ListActiveEmployees(ctx context.Context) ([]model.Employee, error)

	CreateWorkPlan(ctx context.Context, plan *model.WorkPlan) error
	CreateAssignment(ctx context.Context, assignment *model.WorkPlanAssignment) error
	GetWorkPlanByPO(ctx context.Context, poID uuid.UUID) (*model.WorkPlan, error)
	GetWorkPlanByID(ctx context.Context, id uuid.UUID) (*model.WorkPlan, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*model.WorkPlanAssignment, error)

	CreateRecap(ctx context.Context, recap *model.ProductionRecap) error
	GetRecap(ctx context.Context, id uuid.UUID) (*model.ProductionRecap, error)
}

type productionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) ProductionRepository {
	return &productionRepository{db: db}
}

func (r *productionRepository) CreateStage(ctx context.Context, stage *model.ProductionStage) error {
	return GetDB(ctx, r.db).Create(stage).Error
}

func (r *productionRepository) ListStages(ctx context.Context, activeOnly bool) ([]model.ProductionStage, error) {
	var stages []model.ProductionStage
	query := GetDB(ctx, r.db).Order("sequence_order")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *productionRepository) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Create(employee).Error
}

func (r *productionRepository) ListActiveEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).
		Order("name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *productionRepository) CreateWorkPlan(ctx context.Context, plan *model.WorkPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *productionRepository) CreateAssignment(ctx context.Context, assignment *model.WorkPlanAssignment) error {
	return GetDB(ctx, r.db).Create(assignment).Error
}

func (r *productionRepository) GetWorkPlanByPO(ctx context.Context, poID uuid.UUID) (*model.WorkPlan, error) {
	var plan model.WorkPlan
	if err := GetDB(ctx, r.db).
		Preload("Assignments").
		Preload("Assignments.Employee").
		Preload("Assignments.Stage").
		First(&plan, "purchase_order_id = ?", poID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *productionRepository) GetWorkPlanByID(ctx context.Context, id uuid.UUID) (*model.WorkPlan, error) {
	var plan model.WorkPlan
	if err := GetDB(ctx, r.db).
		Preload("Assignments").
		Preload("Assignments.Stage").
		First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *productionRepository) GetAssignment(ctx context.Context, id uuid.UUID) (*model.WorkPlanAssignment, error) {
	var assignment model.WorkPlanAssignment
	if err := GetDB(ctx, r.db).Preload("Stage").Preload("Employee").
		First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *productionRepository) CreateRecap(ctx context.Context, recap *model.ProductionRecap) error {
	return GetDB(ctx, r.db).Create(recap).Error
}

func (r *productionRepository) GetRecap(ctx context.Context, id uuid.UUID) (*model.ProductionRecap, error) {
	var recap model.ProductionRecap
	if err := GetDB(ctx, r.db).
		Preload("Assignment").
		Preload("Assignment.Stage").
		First(&recap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recap, nil
}
