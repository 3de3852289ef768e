package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		name       string
		in         time.Time
		wantMonday time.Time
	}{
		{
			"wednesday",
			time.Date(2026, 1, 7, 10, 30, 0, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday keeps its own week",
			time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps back to the same week",
			time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monday, sunday := weekBounds(tc.in)
			if !monday.Equal(tc.wantMonday) {
				t.Fatalf("monday: got %v, want %v", monday, tc.wantMonday)
			}
			if want := tc.wantMonday.AddDate(0, 0, 6); !sunday.Equal(want) {
				t.Fatalf("sunday: got %v, want %v", sunday, want)
			}
		})
	}
}

func TestMatchEmployee(t *testing.T) {
	forming := model.Employee{ID: uuid.New(), Name: "Ana", Department: model.DeptForming}
	qc := model.Employee{ID: uuid.New(), Name: "Bo", Department: model.DeptQualityControl}
	employees := []model.Employee{forming, qc}

	// Glaze falls back to the forming department, QC & Packaging to quality
	// control. Nobody serves a decoration stage.
	cases := []struct {
		stage string
		want  *model.Employee
	}{
		{"Forming", &forming},
		{model.StageGlaze, &forming},
		{model.StageQCPackaging, &qc},
		{"Decoration", nil},
	}

	for _, tc := range cases {
		t.Run(tc.stage, func(t *testing.T) {
			got := matchEmployee(model.ProductionStage{Name: tc.stage}, employees)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected no match, got %q", got.Name)
				}
				return
			}
			if got == nil || got.ID != tc.want.ID {
				t.Fatalf("got %+v, want %q", got, tc.want.Name)
			}
		})
	}
}

func TestGenerateWorkPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plan, err := env.scheduler.GenerateWorkPlan(ctx, env.po)
	if err != nil {
		t.Fatalf("generate work plan: %v", err)
	}

	// The clock is a Wednesday; the plan spans that week.
	if want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC); !plan.WeekStart.Equal(want) {
		t.Fatalf("week start: got %v, want %v", plan.WeekStart, want)
	}
	if want := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC); !plan.WeekEnd.Equal(want) {
		t.Fatalf("week end: got %v, want %v", plan.WeekEnd, want)
	}

	// One item and three staffed stages: three assignments.
	if len(plan.Assignments) != 3 {
		t.Fatalf("assignments: got %d, want 3", len(plan.Assignments))
	}
	for _, a := range plan.Assignments {
		if a.CollectCode != "VAS-01" {
			t.Errorf("collect code: got %q", a.CollectCode)
		}
		if a.PlannedQuantity != 40 {
			t.Errorf("planned quantity: got %d, want 40", a.PlannedQuantity)
		}
		if a.DayOfWeek != 1 {
			t.Errorf("day of week: got %d, want 1", a.DayOfWeek)
		}
		if a.IsOvertime {
			t.Error("assignments default to regular hours")
		}
	}
}

func TestGenerateWorkPlanSkipsUnstaffedStages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A stage nobody's department serves yields no assignment, silently.
	decoration := &model.ProductionStage{Name: "Decoration", SequenceOrder: 4, IsActive: true}
	if err := env.production.CreateStage(ctx, decoration); err != nil {
		t.Fatalf("seed stage: %v", err)
	}

	plan, err := env.scheduler.GenerateWorkPlan(ctx, env.po)
	if err != nil {
		t.Fatalf("generate work plan: %v", err)
	}
	if len(plan.Assignments) != 3 {
		t.Fatalf("assignments: got %d, want 3 (decoration unstaffed)", len(plan.Assignments))
	}
	for _, a := range plan.Assignments {
		if a.StageID == decoration.ID {
			t.Fatal("unstaffed stage should not be scheduled")
		}
	}
}

func TestGetWorkPlanNotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.scheduler.GetWorkPlan(context.Background(), uuid.New()); !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
