package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DirectoryItemRepository interface {
	Create(ctx context.Context, item *model.DirectoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error)
	GetWithMaterials(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, currentOnly bool) ([]model.DirectoryItem, error)
	CreateMaterial(ctx context.Context, material *model.ItemMaterial) error
	MarkSuperseded(ctx context.Context, id uuid.UUID) error
}

type directoryItemRepository struct {
	db *gorm.DB
}

func NewDirectoryItemRepository(db *gorm.DB) DirectoryItemRepository {
	return &directoryItemRepository{db: db}
}

func (r *directoryItemRepository) Create(ctx context.Context, item *model.DirectoryItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *directoryItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error) {
	var item model.DirectoryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *directoryItemRepository) GetWithMaterials(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error) {
	var item model.DirectoryItem
	if err := GetDB(ctx, r.db).Preload("Materials").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *directoryItemRepository) ListByProject(ctx context.Context, projectID uuid.UUID, currentOnly bool) ([]model.DirectoryItem, error) {
	var items []model.DirectoryItem
	query := GetDB(ctx, r.db).Preload("Materials").Where("project_id = ?", projectID)
	if currentOnly {
		query = query.Where("is_current = ?", true)
	}
	if err := query.Order("collect_code, revision_number").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *directoryItemRepository) CreateMaterial(ctx context.Context, material *model.ItemMaterial) error {
	return GetDB(ctx, r.db).Create(material).Error
}

func (r *directoryItemRepository) MarkSuperseded(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.DirectoryItem{}).Where("id = ?", id).
		Update("is_current", false).Error
}
