package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/pricing"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingService loads an item's materials and the active stages, then
// delegates to the pure pricing engine. An unresolvable item id is an error;
// the service never substitutes placeholder amounts.
type PricingService interface {
	CalculateItemPricing(ctx context.Context, itemID uuid.UUID, quantity int, cfg pricing.Config) (*pricing.Breakdown, error)
	CalculateProformaPricing(ctx context.Context, items []model.SelectedItem, cfg pricing.Config) (*model.PricingDetails, error)
}

type pricingService struct {
	items      repository.DirectoryItemRepository
	production repository.ProductionRepository
}

func NewPricingService(items repository.DirectoryItemRepository, production repository.ProductionRepository) PricingService {
	return &pricingService{items: items, production: production}
}

func itemAttributes(item *model.DirectoryItem) pricing.ItemAttributes {
	return pricing.ItemAttributes{
		WidthCm:    item.Dimensions.Width,
		HeightCm:   item.Dimensions.Height,
		LengthCm:   item.Dimensions.Length,
		DiameterCm: item.Dimensions.Diameter,
		WeightKg:   item.WeightKg,
		FiringType: item.FiringType,
		Clay:       item.Clay,
		Glaze:      item.Glaze,
		Texture:    item.Texture,
		Engobe:     item.Engobe,
		Luster:     item.Luster,
	}
}

func itemMaterials(item *model.DirectoryItem) []pricing.MaterialInput {
	materials := make([]pricing.MaterialInput, 0, len(item.Materials))
	for _, m := range item.Materials {
		materials = append(materials, pricing.MaterialInput{
			Type:     m.MaterialType,
			Name:     m.Name,
			UnitCost: m.UnitCost,
			Quantity: m.Quantity,
		})
	}
	return materials
}

// laborStages keeps only active stages that carry an hourly rate.
func laborStages(stages []model.ProductionStage) []pricing.StageInput {
	inputs := make([]pricing.StageInput, 0, len(stages))
	for _, st := range stages {
		if st.LaborCostPerHour == nil {
			continue
		}
		inputs = append(inputs, pricing.StageInput{Name: st.Name, CostPerHour: *st.LaborCostPerHour})
	}
	return inputs
}

func (s *pricingService) CalculateItemPricing(ctx context.Context, itemID uuid.UUID, quantity int, cfg pricing.Config) (*pricing.Breakdown, error) {
	item, err := s.items.GetWithMaterials(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("directory item %s not found", itemID)
		}
		return nil, err
	}

	stages, err := s.production.ListStages(ctx, true)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		quantity = item.Quantity
	}

	breakdown := pricing.Calculate(pricing.ItemInput{
		Attributes: itemAttributes(item),
		Materials:  itemMaterials(item),
		Quantity:   quantity,
	}, laborStages(stages), cfg)

	return &breakdown, nil
}

// CalculateProformaPricing prices every selected item and sums the breakdown
// components. It fails on the first unresolvable item rather than pricing a
// partial document.
func (s *pricingService) CalculateProformaPricing(ctx context.Context, items []model.SelectedItem, cfg pricing.Config) (*model.PricingDetails, error) {
	if len(items) == 0 {
		return nil, apperror.Validation("a proforma requires at least one selected item")
	}

	stages, err := s.production.ListStages(ctx, true)
	if err != nil {
		return nil, err
	}
	labor := laborStages(stages)

	details := &model.PricingDetails{Items: make([]model.ItemPricing, 0, len(items))}
	for _, sel := range items {
		if sel.Quantity <= 0 {
			return nil, apperror.Validation("selected item %s has a non-positive quantity", sel.DirectoryItemID)
		}
		item, err := s.items.GetWithMaterials(ctx, sel.DirectoryItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("directory item %s not found", sel.DirectoryItemID)
			}
			return nil, err
		}

		b := pricing.Calculate(pricing.ItemInput{
			Attributes: itemAttributes(item),
			Materials:  itemMaterials(item),
			Quantity:   sel.Quantity,
		}, labor, cfg)

		details.Items = append(details.Items, model.ItemPricing{
			DirectoryItemID: item.ID,
			CollectCode:     item.CollectCode,
			Quantity:        sel.Quantity,
			MaterialCost:    b.MaterialCost,
			LaborCost:       b.LaborCost,
			Overhead:        b.Overhead,
			Profit:          b.Profit,
			SellingPrice:    b.SellingPrice,
		})
		details.MaterialCost += b.MaterialCost
		details.LaborCost += b.LaborCost
		details.Overhead += b.Overhead
		details.Profit += b.Profit
		details.SellingPrice += b.SellingPrice
	}

	return details, nil
}
