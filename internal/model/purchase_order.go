package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder status constants. The status only moves along the defined
// transition graph in internal/workflow.
const (
	POPendingDeposit  = "pending_deposit"
	PODepositReceived = "deposit_received"
	POInProduction    = "in_production"
	POQualityControl  = "quality_control"
	POCompleted       = "completed"
	POCancelled       = "cancelled"
)

// Payment status constants.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// PurchaseOrder is the committed order created from one approved proforma.
// Number is sequential across the whole system (PO{seq}).
type PurchaseOrder struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Number            string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"number"`
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client            *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ProjectID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	ProformaID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"proforma_id"`
	Proforma          *Proforma       `gorm:"foreignKey:ProformaID" json:"proforma,omitempty"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	DepositPercentage float64         `gorm:"not null;default:30" json:"deposit_percentage"`
	DepositAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"deposit_amount"`
	DepositPaid       bool            `gorm:"not null;default:false" json:"deposit_paid"`
	Status            string          `gorm:"type:varchar(30);not null;index" json:"status"`
	Payments          []Payment       `gorm:"foreignKey:PurchaseOrderID" json:"payments,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Payment is one payment recorded against a purchase order. Multiple paid
// payments with a deposit percentage accumulate toward the deposit.
type Payment struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	DepositPercentage *float64        `json:"deposit_percentage"` // nil: not a deposit payment
	Method            string          `gorm:"type:varchar(50)" json:"method"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaidAt            *time.Time      `json:"paid_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StatusHistoryEntry is the append-only audit trail of purchase order status
// changes. Entries are never mutated or deleted; the newest entry's NewStatus
// always equals the PO's current status.
type StatusHistoryEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	OldStatus       string    `gorm:"type:varchar(30)" json:"old_status"` // empty on the seeding entry
	NewStatus       string    `gorm:"type:varchar(30);not null" json:"new_status"`
	ActorID         string    `gorm:"type:varchar(100)" json:"actor_id"`
	ActorRole       string    `gorm:"type:varchar(20)" json:"actor_role"`
	Reason          string    `gorm:"type:text" json:"reason"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}
