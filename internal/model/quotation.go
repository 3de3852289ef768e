package model

import (
	"time"

	"github.com/google/uuid"
)

// Quotation status constants.
const (
	QuotationDraft    = "draft"
	QuotationSent     = "sent"
	QuotationApproved = "approved"
	QuotationRejected = "rejected"
)

// Client response constants recorded on a sent quotation.
const (
	ResponseApproved = "approved"
	ResponseRejected = "rejected"
	ResponseRevise   = "revise"
)

// Quotation is a priced offer for a project, optionally tied to a single
// directory item. Number is sequential per project (Q{projectNumber}-{seq}).
type Quotation struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number          string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"number"`
	ProjectID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Project         *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	DirectoryItemID *uuid.UUID     `gorm:"type:uuid;index" json:"directory_item_id"`
	DirectoryItem   *DirectoryItem `gorm:"foreignKey:DirectoryItemID" json:"directory_item,omitempty"`
	Status          string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ClientResponse  string         `gorm:"type:varchar(20)" json:"client_response"` // recorded once
	Notes           string         `gorm:"type:text" json:"notes"`
	SentAt          *time.Time     `json:"sent_at"`
	RespondedAt     *time.Time     `json:"responded_at"`
	CreatedByID     *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
