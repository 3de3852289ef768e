package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	CreateQcResult(ctx context.Context, result *model.QcResult) error
	GetQcByRecap(ctx context.Context, recapID uuid.UUID) (*model.QcResult, error)
	CreateStockItem(ctx context.Context, item *model.StockItem) error
	ListByQcResult(ctx context.Context, qcResultID uuid.UUID) ([]model.StockItem, error)
	List(ctx context.Context, page, limit int) ([]model.StockItem, int64, error)
	// SumInspected totals all four QC tallies over recaps belonging to the
	// given assignments.
	SumInspected(ctx context.Context, assignmentIDs []uuid.UUID) (int, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) CreateQcResult(ctx context.Context, result *model.QcResult) error {
	return GetDB(ctx, r.db).Create(result).Error
}

func (r *stockRepository) GetQcByRecap(ctx context.Context, recapID uuid.UUID) (*model.QcResult, error) {
	var result model.QcResult
	if err := GetDB(ctx, r.db).First(&result, "recap_id = ?", recapID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *stockRepository) CreateStockItem(ctx context.Context, item *model.StockItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *stockRepository) ListByQcResult(ctx context.Context, qcResultID uuid.UUID) ([]model.StockItem, error) {
	var items []model.StockItem
	if err := GetDB(ctx, r.db).Where("qc_result_id = ?", qcResultID).
		Order("grade").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *stockRepository) List(ctx context.Context, page, limit int) ([]model.StockItem, int64, error) {
	var items []model.StockItem
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.StockItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *stockRepository) SumInspected(ctx context.Context, assignmentIDs []uuid.UUID) (int, error) {
	if len(assignmentIDs) == 0 {
		return 0, nil
	}
	var total int
	err := GetDB(ctx, r.db).Model(&model.QcResult{}).
		Select("COALESCE(SUM(good_quantity + second_quantity + re_fire_quantity + reject_quantity), 0)").
		Joins("JOIN production_recaps ON production_recaps.id = qc_results.recap_id").
		Where("production_recaps.assignment_id IN ?", assignmentIDs).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
