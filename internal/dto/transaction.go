package dto

import (
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one entry of a transaction write.
// unitPrice accepts a JSON number or a numeric string; anything else fails binding.
type LineItemRequest struct {
	ParticularID string          `json:"particularID" binding:"required"`
	Units        *int64          `json:"units" binding:"omitempty,gt=0,max=2147483647"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// CreateTransactionRequest defines the data needed to record a job order.
type CreateTransactionRequest struct {
	ClientID  string            `json:"clientID" binding:"required"`
	Date      string            `json:"date" binding:"required,datetime=2006-01-02"`
	Remarks   *string           `json:"remarks" binding:"omitempty,max=500"`
	LineItems []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateTransactionRequest replaces the mutable fields and every line item.
type UpdateTransactionRequest struct {
	Date      string            `json:"date" binding:"required,datetime=2006-01-02"`
	Remarks   *string           `json:"remarks" binding:"omitempty,max=500"`
	LineItems []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// LineItemResponse defines the data returned for one line item.
type LineItemResponse struct {
	LineItemID     string                `json:"lineItemID"`
	ParticularID   *string               `json:"particularID,omitempty"`
	ParticularName string                `json:"particularName"`
	Kind           domain.ParticularType `json:"kind"`
	Units          *int64                `json:"units,omitempty"`
	UnitPrice      decimal.Decimal       `json:"unitPrice"`
	Amount         decimal.Decimal       `json:"amount"`
}

// TransactionResponse is a formatted job order.
type TransactionResponse struct {
	TransactionID        string             `json:"transactionID"`
	ClientID             string             `json:"clientID"`
	JONumber             int64              `json:"joNumber"`
	Date                 string             `json:"date"`
	Remarks              string             `json:"remarks"`
	LineItems            []LineItemResponse `json:"lineItems"`
	FormattedParticulars []string           `json:"formattedParticulars"`
	UnitPrices           []decimal.Decimal  `json:"unitPrices"`
	Amount               decimal.Decimal    `json:"amount"`
	Payment              decimal.Decimal    `json:"payment"`
	Balance              decimal.Decimal    `json:"balance"`
	CreatedAt            time.Time          `json:"createdAt"`
	CreatedBy            string             `json:"createdBy"`
	LastUpdatedAt        time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy        string             `json:"lastUpdatedBy"`
}

// TransactionMutationResponse is returned by create and update.
type TransactionMutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Client      ClientSummary       `json:"client"`
}

// DeleteTransactionResponse is returned by delete.
type DeleteTransactionResponse struct {
	Client ClientSummary `json:"client"`
}

// NextJobOrderNumberResponse carries the advisory next job-order number.
type NextJobOrderNumberResponse struct {
	JONumber int64 `json:"joNumber"`
}

// ToTransactionResponse converts a domain.Transaction to its formatted DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	totals := t.Totals()
	items := make([]LineItemResponse, len(t.LineItems))
	for i, li := range t.LineItems {
		amount := li.Charge()
		if li.Kind == domain.Payment {
			amount = li.PaymentAmount()
		}
		items[i] = LineItemResponse{
			LineItemID:     li.LineItemID,
			ParticularID:   li.ParticularID,
			ParticularName: li.ParticularName,
			Kind:           li.Kind,
			Units:          li.Units,
			UnitPrice:      li.UnitPrice,
			Amount:         amount,
		}
	}
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		ClientID:             t.ClientID,
		JONumber:             t.JONumber,
		Date:                 t.Date.Format(domain.DateLayout),
		Remarks:              t.RemarksOrDefault(),
		LineItems:            items,
		FormattedParticulars: t.FormattedParticulars(),
		UnitPrices:           t.ServiceUnitPrices(),
		Amount:               totals.Amount,
		Payment:              totals.Payment,
		Balance:              totals.Balance,
		CreatedAt:            t.CreatedAt,
		CreatedBy:            t.CreatedBy,
		LastUpdatedAt:        t.LastUpdatedAt,
		LastUpdatedBy:        t.LastUpdatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(transactions []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return res
}
