package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService is the read side of purchase orders: the documents themselves
// and their append-only status history.
type OrderService interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	ListOrders(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error)
	GetHistory(ctx context.Context, id uuid.UUID) ([]model.StatusHistoryEntry, error)
}

type orderService struct {
	purchaseOrders repository.PurchaseOrderRepository
}

func NewOrderService(purchaseOrders repository.PurchaseOrderRepository) OrderService {
	return &orderService{purchaseOrders: purchaseOrders}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, err := s.purchaseOrders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("purchase order %s not found", id)
		}
		return nil, err
	}
	return po, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	return s.purchaseOrders.List(ctx, page, limit)
}

func (s *orderService) GetHistory(ctx context.Context, id uuid.UUID) ([]model.StatusHistoryEntry, error) {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.purchaseOrders.ListHistory(ctx, id)
}
