package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRequest struct {
	MaterialType string   `json:"material_type" binding:"required,oneof=clay glaze engobe tool other"`
	Name         string   `json:"name" binding:"required"`
	UnitCost     float64  `json:"unit_cost" binding:"required,gte=0"`
	Quantity     *float64 `json:"quantity"`
	Unit         string   `json:"unit"`
}

type CreateItemRequest struct {
	CollectCode string            `json:"collect_code" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Clay        string            `json:"clay"`
	Glaze       string            `json:"glaze"`
	Texture     string            `json:"texture"`
	Engobe      string            `json:"engobe"`
	Luster      string            `json:"luster"`
	FiringType  string            `json:"firing_type"`
	Dimensions  model.Dimensions  `json:"dimensions"`
	WeightKg    float64           `json:"weight_kg"`
	Quantity    int               `json:"quantity" binding:"required,gt=0"`
	Materials   []MaterialRequest `json:"materials"`
}

// ReviseItemRequest carries the attribute changes for a new revision. Fields
// left empty inherit from the revised item.
type ReviseItemRequest struct {
	Name       string            `json:"name"`
	Clay       string            `json:"clay"`
	Glaze      string            `json:"glaze"`
	Texture    string            `json:"texture"`
	Engobe     string            `json:"engobe"`
	Luster     string            `json:"luster"`
	FiringType string            `json:"firing_type"`
	Dimensions *model.Dimensions `json:"dimensions"`
	WeightKg   *float64          `json:"weight_kg"`
	Quantity   *int              `json:"quantity"`
	Materials  []MaterialRequest `json:"materials"`
}

type DirectoryService interface {
	CreateItem(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateItemRequest) (*model.DirectoryItem, error)
	ReviseItem(ctx context.Context, actor workflow.Actor, itemID uuid.UUID, req ReviseItemRequest) (*model.DirectoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, currentOnly bool) ([]model.DirectoryItem, error)
}

type directoryService struct {
	items     repository.DirectoryItemRepository
	projects  repository.ProjectRepository
	txManager repository.TransactionManager
}

func NewDirectoryService(
	items repository.DirectoryItemRepository,
	projects repository.ProjectRepository,
	txManager repository.TransactionManager,
) DirectoryService {
	return &directoryService{items: items, projects: projects, txManager: txManager}
}

func (s *directoryService) CreateItem(ctx context.Context, actor workflow.Actor, projectID uuid.UUID, req CreateItemRequest) (*model.DirectoryItem, error) {
	if err := workflow.Authorize(actor, workflow.ActionCreateItem); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("project %s not found", projectID)
		}
		return nil, err
	}
	if project.Status == workflow.StatusCancelled {
		return nil, apperror.Conflict("cannot add items to a cancelled project")
	}

	item := &model.DirectoryItem{
		ProjectID:      projectID,
		CollectCode:    req.CollectCode,
		Name:           req.Name,
		Clay:           req.Clay,
		Glaze:          req.Glaze,
		Texture:        req.Texture,
		Engobe:         req.Engobe,
		Luster:         req.Luster,
		FiringType:     req.FiringType,
		Dimensions:     req.Dimensions,
		WeightKg:       req.WeightKg,
		Quantity:       req.Quantity,
		RevisionNumber: 1,
		IsCurrent:      true,
	}
	if actorID, err := uuid.Parse(actor.ID); err == nil {
		item.CreatedByID = &actorID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.Create(txCtx, item); err != nil {
			return err
		}
		for _, m := range req.Materials {
			material := &model.ItemMaterial{
				DirectoryItemID: item.ID,
				MaterialType:    m.MaterialType,
				Name:            m.Name,
				UnitCost:        m.UnitCost,
				Quantity:        m.Quantity,
				Unit:            m.Unit,
			}
			if err := s.items.CreateMaterial(txCtx, material); err != nil {
				return err
			}
			item.Materials = append(item.Materials, *material)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ReviseItem clones the current revision into revision N+1 and marks the old
// one superseded. Superseded revisions are never mutated again.
func (s *directoryService) ReviseItem(ctx context.Context, actor workflow.Actor, itemID uuid.UUID, req ReviseItemRequest) (*model.DirectoryItem, error) {
	if err := workflow.Authorize(actor, workflow.ActionReviseItem); err != nil {
		return nil, err
	}

	current, err := s.items.GetWithMaterials(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("directory item %s not found", itemID)
		}
		return nil, err
	}
	if !current.IsCurrent {
		return nil, apperror.Conflict("item %s revision %d is superseded and immutable", current.CollectCode, current.RevisionNumber)
	}

	revision := &model.DirectoryItem{
		ProjectID:      current.ProjectID,
		CollectCode:    current.CollectCode,
		Name:           current.Name,
		Clay:           current.Clay,
		Glaze:          current.Glaze,
		Texture:        current.Texture,
		Engobe:         current.Engobe,
		Luster:         current.Luster,
		FiringType:     current.FiringType,
		Dimensions:     current.Dimensions,
		WeightKg:       current.WeightKg,
		Quantity:       current.Quantity,
		RevisionNumber: current.RevisionNumber + 1,
		ParentItemID:   &current.ID,
		IsCurrent:      true,
	}
	if req.Name != "" {
		revision.Name = req.Name
	}
	if req.Clay != "" {
		revision.Clay = req.Clay
	}
	if req.Glaze != "" {
		revision.Glaze = req.Glaze
	}
	if req.Texture != "" {
		revision.Texture = req.Texture
	}
	if req.Engobe != "" {
		revision.Engobe = req.Engobe
	}
	if req.Luster != "" {
		revision.Luster = req.Luster
	}
	if req.FiringType != "" {
		revision.FiringType = req.FiringType
	}
	if req.Dimensions != nil {
		revision.Dimensions = *req.Dimensions
	}
	if req.WeightKg != nil {
		revision.WeightKg = *req.WeightKg
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperror.Validation("quantity must be positive")
		}
		revision.Quantity = *req.Quantity
	}
	if actorID, err := uuid.Parse(actor.ID); err == nil {
		revision.CreatedByID = &actorID
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.MarkSuperseded(txCtx, current.ID); err != nil {
			return err
		}
		if err := s.items.Create(txCtx, revision); err != nil {
			return err
		}

		// Materials: replaced wholesale when provided, otherwise carried over.
		sources := req.Materials
		if sources == nil {
			for _, m := range current.Materials {
				sources = append(sources, MaterialRequest{
					MaterialType: m.MaterialType,
					Name:         m.Name,
					UnitCost:     m.UnitCost,
					Quantity:     m.Quantity,
					Unit:         m.Unit,
				})
			}
		}
		for _, m := range sources {
			material := &model.ItemMaterial{
				DirectoryItemID: revision.ID,
				MaterialType:    m.MaterialType,
				Name:            m.Name,
				UnitCost:        m.UnitCost,
				Quantity:        m.Quantity,
				Unit:            m.Unit,
			}
			if err := s.items.CreateMaterial(txCtx, material); err != nil {
				return err
			}
			revision.Materials = append(revision.Materials, *material)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revision, nil
}

func (s *directoryService) GetItem(ctx context.Context, id uuid.UUID) (*model.DirectoryItem, error) {
	item, err := s.items.GetWithMaterials(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("directory item %s not found", id)
		}
		return nil, err
	}
	return item, nil
}

func (s *directoryService) ListByProject(ctx context.Context, projectID uuid.UUID, currentOnly bool) ([]model.DirectoryItem, error) {
	return s.items.ListByProject(ctx, projectID, currentOnly)
}
