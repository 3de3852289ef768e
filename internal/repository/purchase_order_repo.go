package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	// GetByIDForUpdate takes a row-level lock on the purchase order. Must be
	// called inside a transaction; it serializes the deposit threshold check.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	Update(ctx context.Context, po *model.PurchaseOrder) error
	List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error)

	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	UpdatePayment(ctx context.Context, payment *model.Payment) error
	ListPayments(ctx context.Context, poID uuid.UUID) ([]model.Payment, error)
	// SumPaidDeposits sums paid payments carrying a deposit percentage.
	SumPaidDeposits(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error)

	AppendHistory(ctx context.Context, entry *model.StatusHistoryEntry) error
	ListHistory(ctx context.Context, poID uuid.UUID) ([]model.StatusHistoryEntry, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Create(po).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).Preload("Client").Preload("Proforma").
		First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Save(po).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.PurchaseOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Client").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *purchaseOrderRepository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *purchaseOrderRepository) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := GetDB(ctx, r.db).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *purchaseOrderRepository) UpdatePayment(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Save(payment).Error
}

func (r *purchaseOrderRepository) ListPayments(ctx context.Context, poID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	if err := GetDB(ctx, r.db).Where("purchase_order_id = ?", poID).
		Order("created_at").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *purchaseOrderRepository) SumPaidDeposits(ctx context.Context, poID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.Payment{}).
		Select("SUM(amount)").
		Where("purchase_order_id = ? AND status = ? AND deposit_percentage IS NOT NULL",
			poID, model.PaymentPaid).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *purchaseOrderRepository) AppendHistory(ctx context.Context, entry *model.StatusHistoryEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *purchaseOrderRepository) ListHistory(ctx context.Context, poID uuid.UUID) ([]model.StatusHistoryEntry, error) {
	var entries []model.StatusHistoryEntry
	if err := GetDB(ctx, r.db).Where("purchase_order_id = ?", poID).
		Order("created_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
