package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock grades and their default statuses.
const (
	GradeFirst  = "1st"
	GradeSecond = "2nd"
	GradeReFire = "re-fire"
	GradeReject = "reject"

	StockAvailable = "available"
	StockPending   = "pending"
	StockRejected  = "rejected"
	StockReserved  = "reserved"
	StockSold      = "sold"
)

// QcResult is the inspection of one production recap's output, tallied into
// the four quality buckets.
type QcResult struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecapID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"recap_id"`
	Recap           *ProductionRecap `gorm:"foreignKey:RecapID" json:"recap,omitempty"`
	GoodQuantity    int              `gorm:"not null;default:0" json:"good_quantity"`
	SecondQuantity  int              `gorm:"not null;default:0" json:"second_quantity"`
	ReFireQuantity  int              `gorm:"not null;default:0" json:"re_fire_quantity"`
	RejectQuantity  int              `gorm:"not null;default:0" json:"reject_quantity"`
	InspectedByID   *uuid.UUID       `gorm:"type:uuid" json:"inspected_by"`
	Notes           string           `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StockItem is one graded inventory row derived from a QC result. The rows
// created for one QcResult always sum to its total inspected quantity.
type StockItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QcResultID  uuid.UUID `gorm:"type:uuid;not null;index" json:"qc_result_id"`
	CollectCode string    `gorm:"type:varchar(50);not null;index" json:"collect_code"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Grade       string    `gorm:"type:varchar(10);not null;index" json:"grade"`  // 1st, 2nd, re-fire, reject
	Status      string    `gorm:"type:varchar(20);not null;index" json:"status"` // available, pending, rejected, reserved, sold
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
