package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	Update(ctx context.Context, quotation *model.Quotation) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Quotation, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	if err := GetDB(ctx, r.db).Preload("DirectoryItem").First(&quotation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Save(quotation).Error
}

func (r *quotationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Quotation, error) {
	var quotations []model.Quotation
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).
		Order("created_at").Find(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}
