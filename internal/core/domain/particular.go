package domain

import "github.com/shopspring/decimal"

// ParticularType is the kind of a catalog entry, and therefore of every line item
// recorded against it.
type ParticularType string

const (
	Service ParticularType = "Service"
	Payment ParticularType = "Payment"
)

// IsValid reports whether t is one of the two supported kinds.
func (t ParticularType) IsValid() bool {
	return t == Service || t == Payment
}

// Particular is a catalog entry: a billable service or the payment kind.
type Particular struct {
	ParticularID string           `json:"particularID"`
	Name         string           `json:"name"`
	Type         ParticularType   `json:"type"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"` // default price suggested to the form, nullable
	AuditFields
}
