package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProformaRepository interface {
	Create(ctx context.Context, proforma *model.Proforma) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Proforma, error)
	Update(ctx context.Context, proforma *model.Proforma) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proforma, error)
}

type proformaRepository struct {
	db *gorm.DB
}

func NewProformaRepository(db *gorm.DB) ProformaRepository {
	return &proformaRepository{db: db}
}

func (r *proformaRepository) Create(ctx context.Context, proforma *model.Proforma) error {
	return GetDB(ctx, r.db).Create(proforma).Error
}

func (r *proformaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Proforma, error) {
	var proforma model.Proforma
	if err := GetDB(ctx, r.db).Preload("Project").First(&proforma, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proforma, nil
}

func (r *proformaRepository) Update(ctx context.Context, proforma *model.Proforma) error {
	return GetDB(ctx, r.db).Save(proforma).Error
}

func (r *proformaRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proforma, error) {
	var proformas []model.Proforma
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).
		Order("created_at").Find(&proformas).Error; err != nil {
		return nil, err
	}
	return proformas, nil
}
