package model

import (
	"time"

	"github.com/google/uuid"
)

// Material type constants for ItemMaterial records.
const (
	MaterialClay   = "clay"
	MaterialGlaze  = "glaze"
	MaterialEngobe = "engobe"
	MaterialTool   = "tool"
	MaterialOther  = "other"
)

// Dimensions is the physical size of an item in centimeters. Either
// width/height/length or diameter/height may be populated.
type Dimensions struct {
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Length   float64 `json:"length,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
}

// DirectoryItem is a product line item within a project, carrying the
// technical attributes the complexity model and pricing engine read.
// Revisions form a self-referencing lineage: a revision clones the item with
// RevisionNumber+1 and ParentItemID set; superseded revisions are immutable.
type DirectoryItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	CollectCode    string         `gorm:"type:varchar(50);not null;index" json:"collect_code"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Clay           string         `gorm:"type:varchar(100)" json:"clay"`
	Glaze          string         `gorm:"type:varchar(100)" json:"glaze"`
	Texture        string         `gorm:"type:varchar(100)" json:"texture"`
	Engobe         string         `gorm:"type:varchar(100)" json:"engobe"`
	Luster         string         `gorm:"type:varchar(100)" json:"luster"`
	FiringType     string         `gorm:"type:varchar(50)" json:"firing_type"`
	Dimensions     Dimensions     `gorm:"serializer:json" json:"dimensions"`
	WeightKg       float64        `gorm:"type:decimal(10,3)" json:"weight_kg"`
	Quantity       int            `gorm:"not null;default:1" json:"quantity"`
	RevisionNumber int            `gorm:"not null;default:1" json:"revision_number"`
	ParentItemID   *uuid.UUID     `gorm:"type:uuid;index" json:"parent_item_id"`
	IsCurrent      bool           `gorm:"default:true" json:"is_current"`
	Materials      []ItemMaterial `gorm:"foreignKey:DirectoryItemID" json:"materials,omitempty"`
	CreatedByID    *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ItemMaterial links a priced material record (clay, glaze, engobe, tool) to
// an item. Quantity is per single piece; nil means the pricing engine falls
// back to the item weight for glaze/engobe.
type ItemMaterial struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DirectoryItemID uuid.UUID  `gorm:"type:uuid;not null;index" json:"directory_item_id"`
	MaterialType    string     `gorm:"type:varchar(20);not null" json:"material_type"` // clay, glaze, engobe, tool, other
	Name            string     `gorm:"type:varchar(100);not null" json:"name"`
	UnitCost        float64    `gorm:"type:decimal(12,4);not null" json:"unit_cost"`
	Quantity        *float64   `gorm:"type:decimal(10,3)" json:"quantity"`
	Unit            string     `gorm:"type:varchar(20)" json:"unit"`
	CreatedAt       time.Time  `json:"created_at"`
}
