package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is an onboarded customer. ClientCode is the external identity used
// on documents and must be unique.
type Client struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientCode  string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"client_code"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Email       string         `gorm:"type:varchar(255)" json:"email"`
	Phone       string         `gorm:"type:varchar(50)" json:"phone"`
	Country     string         `gorm:"type:varchar(100)" json:"country"`
	Notes       string         `gorm:"type:text" json:"notes"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedByID *uuid.UUID     `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
