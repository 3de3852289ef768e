package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants. The designer role originates directory items, quotations
// and samples; the sales role records client responses and manages
// proformas, purchase orders and payments. Admin may do both.
const (
	RoleAdmin    = "admin"
	RoleDesigner = "designer"
	RoleSales    = "sales"
)

// User is a staff account. Its id/role pair is the opaque actor identity the
// workflow core receives; the core never re-authenticates it.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role      string         `gorm:"type:varchar(20);not null" json:"role"` // admin, designer, sales
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
