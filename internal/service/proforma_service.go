package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/pricing"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SelectedItemRequest struct {
	DirectoryItemID string `json:"directory_item_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
}

type CreateProformaRequest struct {
	SelectedItems []SelectedItemRequest `json:"selected_items" binding:"required,min=1,dive"`
	ProfitMargin  float64               `json:"profit_margin"`
	OverheadRate  float64               `json:"overhead_rate"`
}

// ApproveProformaRequest optionally overrides the default 30% deposit.
type ApproveProformaRequest struct {
	DepositPercentage float64 `json:"deposit_percentage" binding:"omitempty,gt=0,lte=100"`
}

type ProformaService interface {
	CreateProforma(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateProformaRequest) (*model.Proforma, error)
	ApproveProforma(ctx context.Context, actor workflow.Actor, id uuid.UUID, req ApproveProformaRequest) (*model.PurchaseOrder, error)
	GetProforma(ctx context.Context, id uuid.UUID) (*model.Proforma, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proforma, error)
}

type proformaService struct {
	proformas      repository.ProformaRepository
	projects       repository.ProjectRepository
	purchaseOrders repository.PurchaseOrderRepository
	sequences      repository.SequenceRepository
	pricingSvc     PricingService
	txManager      repository.TransactionManager
	notifier       notify.Notifier
	clock          Clock
}

func NewProformaService(
	proformas repository.ProformaRepository,
	projects repository.ProjectRepository,
	purchaseOrders repository.PurchaseOrderRepository,
	sequences repository.SequenceRepository,
	pricingSvc PricingService,
	txManager repository.TransactionManager,
	notifier notify.Notifier,
	clock Clock,
) ProformaService {
	return &proformaService{
		proformas:      proformas,
		projects:       projects,
		purchaseOrders: purchaseOrders,
		sequences:      sequences,
		pricingSvc:     pricingSvc,
		txManager:      txManager,
		notifier:       notifier,
		clock:          clock,
	}
}

// CreateProforma prices the selected items and freezes the result. The
// snapshot and total are never recomputed after this point.
func (s *proformaService) CreateProforma(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateProformaRequest) (*model.Proforma, error) {
	if err := workflow.Authorize(actor, workflow.ActionCreateProforma); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("project %s not found", projectID)
		}
		return nil, err
	}
	next, err := workflow.Next(project.Status, workflow.ActionCreateProforma)
	if err != nil {
		return nil, err
	}

	selected := make([]model.SelectedItem, 0, len(req.SelectedItems))
	for _, sel := range req.SelectedItems {
		itemID, err := uuid.Parse(sel.DirectoryItemID)
		if err != nil {
			return nil, apperror.Validation("invalid directory item id %q: %v", sel.DirectoryItemID, err)
		}
		selected = append(selected, model.SelectedItem{DirectoryItemID: itemID, Quantity: sel.Quantity})
	}

	details, err := s.pricingSvc.CalculateProformaPricing(ctx, selected, pricing.Config{
		ProfitMargin: req.ProfitMargin,
		OverheadRate: req.OverheadRate,
	})
	if err != nil {
		return nil, err
	}

	var proforma *model.Proforma
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		seq, err := s.sequences.Next(txCtx, repository.ScopedKey(model.SeqProforma, projectID.String()))
		if err != nil {
			return err
		}
		proforma = &model.Proforma{
			Number:         fmt.Sprintf("P%d-%d", project.Number, seq),
			ProjectID:      projectID,
			SelectedItems:  selected,
			PricingDetails: *details,
			TotalAmount:    decimal.NewFromFloat(details.SellingPrice).Round(4),
			Status:         model.ProformaDraft,
		}
		if actorID, err := uuid.Parse(actor.ID); err == nil {
			proforma.CreatedByID = &actorID
		}
		if err := s.proformas.Create(txCtx, proforma); err != nil {
			return err
		}
		return s.projects.UpdateStatus(txCtx, projectID, next, workflow.StepLabel(next))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Type: notify.EventProformaCreated,
		Payload: map[string]interface{}{
			"proforma_number": proforma.Number,
			"project_id":      projectID.String(),
			"total_amount":    proforma.TotalAmount.StringFixed(4),
		},
	})
	return proforma, nil
}

// ApproveProforma marks the proforma approved, moves the project to
// client_approved and creates the purchase order in pending_deposit with its
// seeding history entry.
func (s *proformaService) ApproveProforma(ctx context.Context, actor workflow.Actor, id uuid.UUID, req ApproveProformaRequest) (*model.PurchaseOrder, error) {
	if err := workflow.Authorize(actor, workflow.ActionApproveProforma); err != nil {
		return nil, err
	}

	proforma, err := s.proformas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("proforma %s not found", id)
		}
		return nil, err
	}
	if proforma.Status == model.ProformaApproved {
		return nil, apperror.Conflict("proforma %s is already approved", proforma.Number)
	}

	project, err := s.projects.GetByID(ctx, proforma.ProjectID)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(project.Status, workflow.ActionApproveProforma)
	if err != nil {
		return nil, err
	}

	var po *model.PurchaseOrder
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		seq, err := s.sequences.Next(txCtx, model.SeqPurchaseOrder)
		if err != nil {
			return err
		}

		depositPct := req.DepositPercentage
		if depositPct == 0 {
			depositPct = 30.0
		}
		depositAmount := proforma.TotalAmount.
			Mul(decimal.NewFromFloat(depositPct)).
			Div(decimal.NewFromInt(100)).
			Round(4)

		po = &model.PurchaseOrder{
			Number:            fmt.Sprintf("PO%05d", seq),
			ClientID:          project.ClientID,
			ProjectID:         project.ID,
			ProformaID:        proforma.ID,
			TotalAmount:       proforma.TotalAmount,
			DepositPercentage: depositPct,
			DepositAmount:     depositAmount,
			Status:            model.POPendingDeposit,
		}
		if err := s.purchaseOrders.Create(txCtx, po); err != nil {
			return err
		}

		entry := &model.StatusHistoryEntry{
			PurchaseOrderID: po.ID,
			NewStatus:       model.POPendingDeposit,
			ActorID:         actor.ID,
			ActorRole:       actor.Role,
			Reason:          "purchase order created from proforma " + proforma.Number,
		}
		if err := s.purchaseOrders.AppendHistory(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write status history: %w", err)
		}

		now := s.clock.Now()
		proforma.ApprovedAt = &now
		proforma.Status = model.ProformaApproved
		if err := s.proformas.Update(txCtx, proforma); err != nil {
			return err
		}
		return s.projects.UpdateStatus(txCtx, project.ID, next, workflow.StepLabel(next))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Type: notify.EventProformaApproved,
		Payload: map[string]interface{}{
			"proforma_number": proforma.Number,
			"po_number":       po.Number,
			"deposit_amount":  po.DepositAmount.StringFixed(4),
		},
	})
	return po, nil
}

func (s *proformaService) GetProforma(ctx context.Context, id uuid.UUID) (*model.Proforma, error) {
	proforma, err := s.proformas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("proforma %s not found", id)
		}
		return nil, err
	}
	return proforma, nil
}

func (s *proformaService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proforma, error) {
	return s.proformas.ListByProject(ctx, projectID)
}
