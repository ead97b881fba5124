package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus is the derived payment classification of a client's account.
type ClientStatus string

const (
	StatusNew    ClientStatus = "New"
	StatusUnpaid ClientStatus = "Unpaid"
	StatusPaid   ClientStatus = "Paid"
)

// IsValid reports whether s is a known status.
func (s ClientStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusUnpaid, StatusPaid:
		return true
	}
	return false
}

// NoTransactionsYet is displayed when a client has no recorded transactions.
const NoTransactionsYet = "No Transactions Yet"

// Client is a billed customer. TotalBalance, LastTransactionDate and Status are
// derived from the client's transactions and are only written by the ledger.
type Client struct {
	ClientID            string          `json:"clientID"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Title               *string         `json:"title,omitempty"`
	Address             string          `json:"address"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	Status              ClientStatus    `json:"status"`
	AuditFields
}

// FullName joins the optional title and the client's names.
func (c Client) FullName() string {
	parts := make([]string, 0, 3)
	if c.Title != nil && strings.TrimSpace(*c.Title) != "" {
		parts = append(parts, strings.TrimSpace(*c.Title))
	}
	parts = append(parts, c.FirstName, c.LastName)
	return strings.Join(parts, " ")
}

// LastTransactionLabel formats LastTransactionDate, or NoTransactionsYet.
func (c Client) LastTransactionLabel() string {
	if c.LastTransactionDate == nil {
		return NoTransactionsYet
	}
	return c.LastTransactionDate.Format(DateLayout)
}

// ApplyLedgerState copies the derived fields of state onto c.
func (c *Client) ApplyLedgerState(state LedgerState) {
	c.TotalBalance = state.NetBalance
	c.Status = state.Status
	c.LastTransactionDate = state.LastTransactionDate
}

// ClientFilter narrows a client listing. Zero values mean "no constraint".
type ClientFilter struct {
	Status *ClientStatus
	Search string
	Limit  int
	Offset int
}
