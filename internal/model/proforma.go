package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectedItem is one chosen directory item with its ordered quantity.
type SelectedItem struct {
	DirectoryItemID uuid.UUID `json:"directory_item_id"`
	Quantity        int       `json:"quantity"`
}

// ItemPricing is the frozen per-item pricing line inside a proforma snapshot.
type ItemPricing struct {
	DirectoryItemID uuid.UUID `json:"directory_item_id"`
	CollectCode     string    `json:"collect_code"`
	Quantity        int       `json:"quantity"`
	MaterialCost    float64   `json:"material_cost"`
	LaborCost       float64   `json:"labor_cost"`
	Overhead        float64   `json:"overhead"`
	Profit          float64   `json:"profit"`
	SellingPrice    float64   `json:"selling_price"`
}

// PricingDetails is the pricing snapshot frozen when a proforma is created.
// It is never recomputed afterwards.
type PricingDetails struct {
	Items        []ItemPricing `json:"items"`
	MaterialCost float64       `json:"material_cost"`
	LaborCost    float64       `json:"labor_cost"`
	Overhead     float64       `json:"overhead"`
	Profit       float64       `json:"profit"`
	SellingPrice float64       `json:"selling_price"`
}

// Proforma status constants.
const (
	ProformaDraft    = "draft"
	ProformaApproved = "approved"
)

// Proforma is the client-facing pre-invoice for a selected set of items.
// Number is sequential per project (P{projectNumber}-{seq}).
type Proforma struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number         string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"number"`
	ProjectID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Project        *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	SelectedItems  []SelectedItem  `gorm:"serializer:json" json:"selected_items"`
	PricingDetails PricingDetails  `gorm:"serializer:json" json:"pricing_details"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Status         string          `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ApprovedAt     *time.Time      `json:"approved_at"`
	CreatedByID    *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
