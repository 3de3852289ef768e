package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	Amount            string   `json:"amount" binding:"required"`
	DepositPercentage *float64 `json:"deposit_percentage" binding:"omitempty,gt=0,lte=100"`
	Method            string   `json:"method"`
}

// PaymentService is the deposit ledger. Confirming a payment runs the
// read-check-mutate-trigger sequence for its purchase order under a row
// lock, so the production trigger fires exactly once no matter how payments
// interleave.
type PaymentService interface {
	CreatePayment(ctx context.Context, actor workflow.Actor, poID uuid.UUID, req CreatePaymentRequest) (*model.Payment, error)
	ConfirmPayment(ctx context.Context, actor workflow.Actor, paymentID uuid.UUID) (*model.Payment, error)
	ListPayments(ctx context.Context, poID uuid.UUID) ([]model.Payment, error)
}

type paymentService struct {
	purchaseOrders repository.PurchaseOrderRepository
	scheduler      SchedulerService
	txManager      repository.TransactionManager
	notifier       notify.Notifier
	clock          Clock
}

func NewPaymentService(
	purchaseOrders repository.PurchaseOrderRepository,
	scheduler SchedulerService,
	txManager repository.TransactionManager,
	notifier notify.Notifier,
	clock Clock,
) PaymentService {
	return &paymentService{
		purchaseOrders: purchaseOrders,
		scheduler:      scheduler,
		txManager:      txManager,
		notifier:       notifier,
		clock:          clock,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, actor workflow.Actor, poID uuid.UUID, req CreatePaymentRequest) (*model.Payment, error) {
	if err := workflow.Authorize(actor, workflow.ActionRecordPayment); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, apperror.Validation("invalid amount %q: %v", req.Amount, err)
	}
	if !amount.IsPositive() {
		return nil, apperror.Validation("payment amount must be positive")
	}

	if _, err := s.purchaseOrders.GetByID(ctx, poID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("purchase order %s not found", poID)
		}
		return nil, err
	}

	payment := &model.Payment{
		PurchaseOrderID:   poID,
		Amount:            amount,
		DepositPercentage: req.DepositPercentage,
		Method:            req.Method,
		Status:            model.PaymentPending,
	}
	if err := s.purchaseOrders.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ConfirmPayment marks the payment paid and, when the paid deposit sum
// reaches the required deposit while the PO is still pending_deposit,
// performs the production trigger as one unit: deposit flags, two status
// transitions with history, and exactly one work plan.
func (s *paymentService) ConfirmPayment(ctx context.Context, actor workflow.Actor, paymentID uuid.UUID) (*model.Payment, error) {
	if err := workflow.Authorize(actor, workflow.ActionRecordPayment); err != nil {
		return nil, err
	}

	var payment *model.Payment
	var triggered bool
	var poNumber string

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = s.purchaseOrders.GetPayment(txCtx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("payment %s not found", paymentID)
			}
			return err
		}
		if payment.Status == model.PaymentPaid {
			return apperror.Conflict("payment %s is already paid", paymentID)
		}

		// Lock the PO row: this serializes the threshold check across
		// concurrent confirmations for the same order.
		po, err := s.purchaseOrders.GetByIDForUpdate(txCtx, payment.PurchaseOrderID)
		if err != nil {
			return err
		}
		poNumber = po.Number

		now := s.clock.Now()
		payment.Status = model.PaymentPaid
		payment.PaidAt = &now
		if err := s.purchaseOrders.UpdatePayment(txCtx, payment); err != nil {
			return err
		}

		// Non-deposit payments never touch the PO status.
		if payment.DepositPercentage == nil {
			return nil
		}
		if po.Status != model.POPendingDeposit {
			// Deposit already satisfied earlier; just record the payment.
			return nil
		}

		paidSum, err := s.purchaseOrders.SumPaidDeposits(txCtx, po.ID)
		if err != nil {
			return err
		}
		if paidSum.LessThan(po.DepositAmount) {
			// Below threshold: the PO stays pending_deposit untouched.
			return nil
		}

		triggered = true
		return s.triggerProduction(txCtx, actor, po, paidSum)
	})
	if err != nil {
		return nil, err
	}

	if triggered {
		s.notifier.Notify(ctx, notify.Event{
			Type:    notify.EventDepositReceived,
			Payload: map[string]interface{}{"po_number": poNumber},
		})
		s.notifier.Notify(ctx, notify.Event{
			Type:    notify.EventProductionStart,
			Payload: map[string]interface{}{"po_number": poNumber},
		})
	}
	return payment, nil
}

// triggerProduction runs with the PO row locked. It records the received
// deposit, advances pending_deposit → deposit_received → in_production with
// one history entry each, then generates the work plan.
func (s *paymentService) triggerProduction(ctx context.Context, actor workflow.Actor, po *model.PurchaseOrder, paidSum decimal.Decimal) error {
	if err := workflow.NextPO(po.Status, model.PODepositReceived); err != nil {
		return err
	}

	po.DepositPaid = true
	po.DepositAmount = paidSum
	po.Status = model.PODepositReceived
	if err := s.purchaseOrders.Update(ctx, po); err != nil {
		return err
	}
	if err := s.appendHistory(ctx, actor, po.ID, model.POPendingDeposit, model.PODepositReceived,
		fmt.Sprintf("deposit of %s received", paidSum.StringFixed(4))); err != nil {
		return err
	}

	if err := workflow.NextPO(po.Status, model.POInProduction); err != nil {
		return err
	}
	po.Status = model.POInProduction
	if err := s.purchaseOrders.Update(ctx, po); err != nil {
		return err
	}
	if err := s.appendHistory(ctx, actor, po.ID, model.PODepositReceived, model.POInProduction,
		"production started"); err != nil {
		return err
	}

	if _, err := s.scheduler.GenerateWorkPlan(ctx, po); err != nil {
		return fmt.Errorf("failed to generate work plan: %w", err)
	}
	return nil
}

func (s *paymentService) appendHistory(ctx context.Context, actor workflow.Actor, poID uuid.UUID, oldStatus, newStatus, reason string) error {
	entry := &model.StatusHistoryEntry{
		PurchaseOrderID: poID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		ActorID:         actor.ID,
		ActorRole:       actor.Role,
		Reason:          reason,
	}
	if err := s.purchaseOrders.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("failed to write status history: %w", err)
	}
	return nil
}

func (s *paymentService) ListPayments(ctx context.Context, poID uuid.UUID) ([]model.Payment, error) {
	return s.purchaseOrders.ListPayments(ctx, poID)
}
