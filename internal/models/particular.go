package models

import "github.com/shopspring/decimal"

// Particular is a row of the particulars table.
type Particular struct {
	ParticularID   string           `db:"particular_id"`
	Name           string           `db:"name"`
	ParticularType string           `db:"particular_type"`
	UnitPrice      *decimal.Decimal `db:"unit_price"` // Nullable
	AuditFields
}
