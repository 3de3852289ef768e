package model

// Sequence scopes for document numbering. Quotation and proforma counters
// are additionally suffixed with the project id.
const (
	SeqProject       = "project"
	SeqPurchaseOrder = "purchase_order"
	SeqQuotation     = "quotation"
	SeqProforma      = "proforma"
)

// SequenceCounter is one atomic per-scope counter row. The repository bumps
// it with a single upsert-returning statement so concurrent number
// generation never collides.
type SequenceCounter struct {
	Scope string `gorm:"type:varchar(100);primaryKey" json:"scope"`
	Value int64  `gorm:"not null" json:"value"`
}
