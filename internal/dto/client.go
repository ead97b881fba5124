package dto

import (
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required,max=100"`
	LastName  string  `json:"lastName" binding:"required,max=100"`
	Title     *string `json:"title" binding:"omitempty,max=50"`
	Address   string  `json:"address" binding:"required,max=255"`
}

// UpdateClientRequest defines the profile fields a client update may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=100"`
	Title     *string `json:"title" binding:"omitempty,max=50"`
	Address   *string `json:"address" binding:"omitempty,min=1,max=255"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Status string `form:"status" binding:"omitempty,client_status"`
	Search string `form:"search" binding:"max=100"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// CheckClientNameRequest asks whether a client with the same name is already registered.
type CheckClientNameRequest struct {
	FirstName       string  `json:"firstName" binding:"required"`
	LastName        string  `json:"lastName" binding:"required"`
	ExcludeClientID *string `json:"excludeClientID"`
}

// CheckClientNameResponse lists the clients sharing the requested name.
type CheckClientNameResponse struct {
	Exists  bool             `json:"exists"`
	Matches []ClientResponse `json:"matches"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID            string              `json:"clientID"`
	FirstName           string              `json:"firstName"`
	LastName            string              `json:"lastName"`
	Title               *string             `json:"title,omitempty"`
	FullName            string              `json:"fullName"`
	Address             string              `json:"address"`
	TotalBalance        decimal.Decimal     `json:"totalBalance"`
	LastTransactionDate string              `json:"lastTransactionDate"`
	Status              domain.ClientStatus `json:"status"`
	CreatedAt           time.Time           `json:"createdAt"`
	CreatedBy           string              `json:"createdBy"`
	LastUpdatedAt       time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy       string              `json:"lastUpdatedBy"`
}

// ClientSummary is the slice of client state returned after a ledger mutation.
type ClientSummary struct {
	ClientID            string              `json:"clientID"`
	TotalBalance        decimal.Decimal     `json:"totalBalance"`
	Status              domain.ClientStatus `json:"status"`
	LastTransactionDate string              `json:"lastTransactionDate"`
}

// LedgerResponse is a client together with every transaction and the aggregate totals.
type LedgerResponse struct {
	Client        ClientResponse        `json:"client"`
	Transactions  []TransactionResponse `json:"transactions"`
	GrossAmount   decimal.Decimal       `json:"grossAmount"`
	TotalPayments decimal.Decimal       `json:"totalPayments"`
	NetBalance    decimal.Decimal       `json:"netBalance"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:            c.ClientID,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Title:               c.Title,
		FullName:            c.FullName(),
		Address:             c.Address,
		TotalBalance:        c.TotalBalance,
		LastTransactionDate: c.LastTransactionLabel(),
		Status:              c.Status,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// ToListClientResponse converts a slice of domain.Client to ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}

// ToClientSummary extracts the ledger fields of a client.
func ToClientSummary(c *domain.Client) ClientSummary {
	return ClientSummary{
		ClientID:            c.ClientID,
		TotalBalance:        c.TotalBalance,
		Status:              c.Status,
		LastTransactionDate: c.LastTransactionLabel(),
	}
}
