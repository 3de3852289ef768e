package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRecapRequest struct {
	RecapDate      string `json:"recap_date" binding:"required"` // YYYY-MM-DD
	ActualQuantity int    `json:"actual_quantity" binding:"gte=0"`
	Notes          string `json:"notes"`
}

type RecordQcRequest struct {
	GoodQuantity   int    `json:"good_quantity" binding:"gte=0"`
	SecondQuantity int    `json:"second_quantity" binding:"gte=0"`
	ReFireQuantity int    `json:"re_fire_quantity" binding:"gte=0"`
	RejectQuantity int    `json:"reject_quantity" binding:"gte=0"`
	Notes          string `json:"notes"`
}

// QualityService records production recaps and grades inspected output into
// stock. The stock rows created for one QC result always conserve the
// inspected total.
type QualityService interface {
	RecordRecap(ctx context.Context, actor workflow.Actor, assignmentID uuid.UUID, req RecordRecapRequest) (*model.ProductionRecap, error)
	RecordQc(ctx context.Context, actor workflow.Actor, recapID uuid.UUID, req RecordQcRequest) (*model.QcResult, []model.StockItem, error)
	ListStock(ctx context.Context, page, limit int) ([]model.StockItem, int64, error)
}

type qualityService struct {
	production     repository.ProductionRepository
	stock          repository.StockRepository
	purchaseOrders repository.PurchaseOrderRepository
	txManager      repository.TransactionManager
	notifier       notify.Notifier
}

func NewQualityService(
	production repository.ProductionRepository,
	stock repository.StockRepository,
	purchaseOrders repository.PurchaseOrderRepository,
	txManager repository.TransactionManager,
	notifier notify.Notifier,
) QualityService {
	return &qualityService{
		production:     production,
		stock:          stock,
		purchaseOrders: purchaseOrders,
		txManager:      txManager,
		notifier:       notifier,
	}
}

func (s *qualityService) RecordRecap(ctx context.Context, actor workflow.Actor, assignmentID uuid.UUID, req RecordRecapRequest) (*model.ProductionRecap, error) {
	if err := workflow.Authorize(actor, workflow.ActionRecordRecap); err != nil {
		return nil, err
	}

	recapDate, err := time.Parse("2006-01-02", req.RecapDate)
	if err != nil {
		return nil, apperror.Validation("invalid recap date %q: %v", req.RecapDate, err)
	}

	assignment, err := s.production.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("assignment %s not found", assignmentID)
		}
		return nil, err
	}

	recap := &model.ProductionRecap{
		AssignmentID:    assignment.ID,
		RecapDate:       recapDate,
		PlannedQuantity: assignment.PlannedQuantity,
		ActualQuantity:  req.ActualQuantity,
		Notes:           req.Notes,
	}
	if err := s.production.CreateRecap(ctx, recap); err != nil {
		// The (assignment, date) pair is unique; a second recap is a conflict.
		return nil, apperror.Wrap(apperror.KindConflict, err,
			"recap for assignment %s on %s already exists or could not be created", assignmentID, req.RecapDate)
	}
	return recap, nil
}

// gradeMapping orders the four buckets with their grade and default status.
var gradeMapping = []struct {
	grade  string
	status string
	pick   func(RecordQcRequest) int
}{
	{model.GradeFirst, model.StockAvailable, func(r RecordQcRequest) int { return r.GoodQuantity }},
	{model.GradeSecond, model.StockAvailable, func(r RecordQcRequest) int { return r.SecondQuantity }},
	{model.GradeReFire, model.StockPending, func(r RecordQcRequest) int { return r.ReFireQuantity }},
	{model.GradeReject, model.StockRejected, func(r RecordQcRequest) int { return r.RejectQuantity }},
}

// RecordQc grades one recap's output. Zero-quantity buckets produce no rows;
// the rows created sum exactly to the inspected total. The first QC on an
// in-production order moves it to quality_control; covering the final
// stage's planned quantity completes the order.
func (s *qualityService) RecordQc(ctx context.Context, actor workflow.Actor, recapID uuid.UUID, req RecordQcRequest) (*model.QcResult, []model.StockItem, error) {
	if err := workflow.Authorize(actor, workflow.ActionRecordQC); err != nil {
		return nil, nil, err
	}
	if req.GoodQuantity < 0 || req.SecondQuantity < 0 || req.ReFireQuantity < 0 || req.RejectQuantity < 0 {
		return nil, nil, apperror.Validation("qc quantities must be non-negative")
	}

	recap, err := s.production.GetRecap(ctx, recapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("recap %s not found", recapID)
		}
		return nil, nil, err
	}
	if recap.Assignment == nil {
		return nil, nil, fmt.Errorf("recap %s has no assignment loaded", recapID)
	}

	if _, err := s.stock.GetQcByRecap(ctx, recapID); err == nil {
		return nil, nil, apperror.Conflict("recap %s has already been inspected", recapID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var result *model.QcResult
	var created []model.StockItem
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		result = &model.QcResult{
			RecapID:        recapID,
			GoodQuantity:   req.GoodQuantity,
			SecondQuantity: req.SecondQuantity,
			ReFireQuantity: req.ReFireQuantity,
			RejectQuantity: req.RejectQuantity,
			Notes:          req.Notes,
		}
		if actorID, parseErr := uuid.Parse(actor.ID); parseErr == nil {
			result.InspectedByID = &actorID
		}
		if err := s.stock.CreateQcResult(txCtx, result); err != nil {
			return err
		}

		for _, bucket := range gradeMapping {
			qty := bucket.pick(req)
			if qty <= 0 {
				continue
			}
			item := &model.StockItem{
				QcResultID:  result.ID,
				CollectCode: recap.Assignment.CollectCode,
				Quantity:    qty,
				Grade:       bucket.grade,
				Status:      bucket.status,
			}
			if err := s.stock.CreateStockItem(txCtx, item); err != nil {
				return err
			}
			created = append(created, *item)
		}

		return s.advanceOrder(txCtx, actor, recap)
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Type: notify.EventQcRecorded,
		Payload: map[string]interface{}{
			"recap_id":     recapID.String(),
			"collect_code": recap.Assignment.CollectCode,
		},
	})
	return result, created, nil
}

// advanceOrder moves the purchase order along the QC tail of its lifecycle:
// in_production → quality_control on the first inspection, and
// quality_control → completed once the final stage's planned quantity has
// been fully inspected.
func (s *qualityService) advanceOrder(ctx context.Context, actor workflow.Actor, recap *model.ProductionRecap) error {
	workPlan, err := s.production.GetWorkPlanByID(ctx, recap.Assignment.WorkPlanID)
	if err != nil {
		return err
	}

	po, err := s.purchaseOrders.GetByIDForUpdate(ctx, workPlan.PurchaseOrderID)
	if err != nil {
		return err
	}

	if po.Status == model.POInProduction {
		if err := workflow.NextPO(po.Status, model.POQualityControl); err != nil {
			return err
		}
		po.Status = model.POQualityControl
		if err := s.purchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		entry := &model.StatusHistoryEntry{
			PurchaseOrderID: po.ID,
			OldStatus:       model.POInProduction,
			NewStatus:       model.POQualityControl,
			ActorID:         actor.ID,
			ActorRole:       actor.Role,
			Reason:          "first quality inspection recorded",
		}
		if err := s.purchaseOrders.AppendHistory(ctx, entry); err != nil {
			return fmt.Errorf("failed to write status history: %w", err)
		}
	}

	if po.Status != model.POQualityControl {
		return nil
	}

	// Completion: every piece planned for the final stage has been graded.
	finalIDs, plannedTotal := finalStageAssignments(workPlan)
	inspected, err := s.stock.SumInspected(ctx, finalIDs)
	if err != nil {
		return err
	}
	if plannedTotal == 0 || inspected < plannedTotal {
		return nil
	}

	if err := workflow.NextPO(po.Status, model.POCompleted); err != nil {
		return err
	}
	po.Status = model.POCompleted
	if err := s.purchaseOrders.Update(ctx, po); err != nil {
		return err
	}
	entry := &model.StatusHistoryEntry{
		PurchaseOrderID: po.ID,
		OldStatus:       model.POQualityControl,
		NewStatus:       model.POCompleted,
		ActorID:         actor.ID,
		ActorRole:       actor.Role,
		Reason:          "all ordered quantity inspected",
	}
	if err := s.purchaseOrders.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("failed to write status history: %w", err)
	}
	return nil
}

// finalStageAssignments returns the assignment ids of the plan's last stage
// (highest sequence order) and their summed planned quantity.
func finalStageAssignments(plan *model.WorkPlan) ([]uuid.UUID, int) {
	maxSeq := -1
	for _, a := range plan.Assignments {
		if a.Stage != nil && a.Stage.SequenceOrder > maxSeq {
			maxSeq = a.Stage.SequenceOrder
		}
	}
	var ids []uuid.UUID
	total := 0
	for _, a := range plan.Assignments {
		if a.Stage != nil && a.Stage.SequenceOrder == maxSeq {
			ids = append(ids, a.ID)
			total += a.PlannedQuantity
		}
	}
	return ids, total
}

func (s *qualityService) ListStock(ctx context.Context, page, limit int) ([]model.StockItem, int64, error) {
	return s.stock.List(ctx, page, limit)
}
