package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is one client engagement moving through the order workflow.
// Status is the machine state; WorkflowStep is the human label shown to the
// studio and always mirrors the status.
type Project struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number       int64      `gorm:"uniqueIndex;not null" json:"number"` // global sequential, used in document numbers
	ClientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client       *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Status       string     `gorm:"type:varchar(30);not null;index" json:"status"`
	WorkflowStep string     `gorm:"type:varchar(100);not null" json:"workflow_step"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index" json:"owner_id"` // creating actor
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
