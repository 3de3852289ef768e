package model

import (
	"time"

	"github.com/google/uuid"
)

// Stage names with special employee matching rules in the scheduler.
const (
	StageGlaze       = "Glaze"
	StageQCPackaging = "QC & Packaging"

	DeptForming        = "Forming"
	DeptQualityControl = "Quality Control"
)

// ProductionStage is reference data describing one step of the manufacturing
// pipeline, ordered by SequenceOrder. Stages without an hourly labor cost
// contribute no labor line to pricing.
type ProductionStage struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SequenceOrder    int       `gorm:"not null" json:"sequence_order"`
	IsActive         bool      `gorm:"default:true;index" json:"is_active"`
	LaborCostPerHour *float64  `gorm:"type:decimal(10,2)" json:"labor_cost_per_hour"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Employee is reference data for scheduling. Department is matched against
// stage names when assignments are generated.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Department string    `gorm:"type:varchar(100);not null;index" json:"department"`
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkPlan is the weekly container of assignments generated at most once per
// purchase order when its production trigger fires.
type WorkPlan struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex" json:"purchase_order_id"`
	WeekStart       time.Time            `gorm:"not null" json:"week_start"`
	WeekEnd         time.Time            `gorm:"not null" json:"week_end"`
	Assignments     []WorkPlanAssignment `gorm:"foreignKey:WorkPlanID" json:"assignments,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// WorkPlanAssignment schedules one employee on one stage for one item
// (identified by collect code) on a day of the week (1 = Monday).
type WorkPlanAssignment struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkPlanID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"work_plan_id"`
	EmployeeID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee        *Employee        `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	StageID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"stage_id"`
	Stage           *ProductionStage `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	CollectCode     string           `gorm:"type:varchar(50);not null" json:"collect_code"`
	DayOfWeek       int              `gorm:"not null" json:"day_of_week"`
	PlannedQuantity int              `gorm:"not null" json:"planned_quantity"`
	TargetQuantity  *int             `json:"target_quantity"`
	IsOvertime      bool             `gorm:"not null;default:false" json:"is_overtime"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ProductionRecap records actual vs planned quantities for one assignment on
// one date. Unique per (assignment, date).
type ProductionRecap struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssignmentID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_recap_assignment_date,unique" json:"assignment_id"`
	Assignment      *WorkPlanAssignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	RecapDate       time.Time           `gorm:"type:date;not null;index:idx_recap_assignment_date,unique" json:"recap_date"`
	PlannedQuantity int                 `gorm:"not null" json:"planned_quantity"`
	ActualQuantity  int                 `gorm:"not null" json:"actual_quantity"`
	Notes           string              `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
}
