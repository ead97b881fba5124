package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a row of the clients table.
type Client struct {
	ClientID            string          `db:"client_id"`
	FirstName           string          `db:"first_name"`
	LastName            string          `db:"last_name"`
	Title               *string         `db:"title"` // Nullable
	Address             string          `db:"address"`
	TotalBalance        decimal.Decimal `db:"total_balance"`
	LastTransactionDate *time.Time      `db:"last_transaction_date"` // Nullable DATE
	Status              string          `db:"status"`
	AuditFields
}
