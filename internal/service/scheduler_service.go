package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulerService turns a purchase order into a weekly work plan: one
// assignment per (item × staffed stage). It runs inside the caller's
// transaction context so the plan is visible fully populated or not at all.
// Re-invoking it for a PO that already has a plan is a caller error; the
// deposit ledger guards against that.
type SchedulerService interface {
	GenerateWorkPlan(ctx context.Context, po *model.PurchaseOrder) (*model.WorkPlan, error)
	GetWorkPlan(ctx context.Context, poID uuid.UUID) (*model.WorkPlan, error)
}

type schedulerService struct {
	production repository.ProductionRepository
	proformas  repository.ProformaRepository
	items      repository.DirectoryItemRepository
	clock      Clock
}

func NewSchedulerService(
	production repository.ProductionRepository,
	proformas repository.ProformaRepository,
	items repository.DirectoryItemRepository,
	clock Clock,
) SchedulerService {
	return &schedulerService{production: production, proformas: proformas, items: items, clock: clock}
}

// weekBounds returns the Monday and Sunday of the week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -(weekday - 1))
	return monday, monday.AddDate(0, 0, 6)
}

// matchEmployee picks the first active employee whose department serves the
// stage. Two stages accept a second department: QC & Packaging also draws
// from Quality Control, Glaze also draws from Forming.
func matchEmployee(stage model.ProductionStage, employees []model.Employee) *model.Employee {
	accepted := map[string]bool{stage.Name: true}
	switch stage.Name {
	case model.StageQCPackaging:
		accepted[model.DeptQualityControl] = true
	case model.StageGlaze:
		accepted[model.DeptForming] = true
	}
	for i := range employees {
		if accepted[employees[i].Department] {
			return &employees[i]
		}
	}
	return nil
}

func (s *schedulerService) GenerateWorkPlan(ctx context.Context, po *model.PurchaseOrder) (*model.WorkPlan, error) {
	proforma, err := s.proformas.GetByID(ctx, po.ProformaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("proforma %s not found", po.ProformaID)
		}
		return nil, err
	}

	stages, err := s.production.ListStages(ctx, true)
	if err != nil {
		return nil, err
	}
	employees, err := s.production.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := weekBounds(s.clock.Now())
	plan := &model.WorkPlan{
		PurchaseOrderID: po.ID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
	}
	if err := s.production.CreateWorkPlan(ctx, plan); err != nil {
		return nil, err
	}

	for _, sel := range proforma.SelectedItems {
		item, err := s.items.GetByID(ctx, sel.DirectoryItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("directory item %s not found", sel.DirectoryItemID)
			}
			return nil, err
		}

		for _, stage := range stages {
			employee := matchEmployee(stage, employees)
			if employee == nil {
				// No one staffs this stage yet; the pair is skipped, not an error.
				continue
			}
			assignment := &model.WorkPlanAssignment{
				WorkPlanID:      plan.ID,
				EmployeeID:      employee.ID,
				StageID:         stage.ID,
				CollectCode:     item.CollectCode,
				DayOfWeek:       1, // Monday
				PlannedQuantity: sel.Quantity,
				IsOvertime:      false,
			}
			if err := s.production.CreateAssignment(ctx, assignment); err != nil {
				return nil, err
			}
			plan.Assignments = append(plan.Assignments, *assignment)
		}
	}

	return plan, nil
}

func (s *schedulerService) GetWorkPlan(ctx context.Context, poID uuid.UUID) (*model.WorkPlan, error) {
	plan, err := s.production.GetWorkPlanByPO(ctx, poID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no work plan for purchase order %s", poID)
		}
		return nil, err
	}
	return plan, nil
}
