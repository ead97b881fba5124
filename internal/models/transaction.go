package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table (the job-order header).
type Transaction struct {
	TransactionID   string    `db:"transaction_id"`
	ClientID        string    `db:"client_id"`
	JONumber        int64     `db:"jo_number"`
	TransactionDate time.Time `db:"transaction_date"`
	Remarks         *string   `db:"remarks"` // Nullable
	AuditFields
}

// LineItem is a row of the transaction_line_items table.
type LineItem struct {
	LineItemID     string          `db:"line_item_id"`
	TransactionID  string          `db:"transaction_id"`
	ParticularID   *string         `db:"particular_id"` // Set to NULL when the particular is deleted
	ParticularName string          `db:"particular_name"`
	ParticularType string          `db:"particular_type"`
	Position       int             `db:"position"`
	Units          *int64          `db:"units"` // NULL for payments
	UnitPrice      decimal.Decimal `db:"unit_price"`
}
