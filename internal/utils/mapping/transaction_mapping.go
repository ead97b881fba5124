package mapping

import (
	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		ClientID:        d.ClientID,
		JONumber:        d.JONumber,
		TransactionDate: domain.DateOnly(d.Date),
		Remarks:         d.Remarks,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction and its line items to a domain Transaction
func ToDomainTransaction(m models.Transaction, items []models.LineItem) domain.Transaction {
	lineItems := make([]domain.LineItem, len(items))
	for i, li := range items {
		lineItems[i] = ToDomainLineItem(li)
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ClientID:      m.ClientID,
		JONumber:      m.JONumber,
		Date:          domain.DateOnly(m.TransactionDate),
		Remarks:       m.Remarks,
		LineItems:     lineItems,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:     d.LineItemID,
		TransactionID:  d.TransactionID,
		ParticularID:   d.ParticularID,
		ParticularName: d.ParticularName,
		ParticularType: string(d.Kind),
		Position:       d.Position,
		Units:          d.Units,
		UnitPrice:      d.UnitPrice,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:     m.LineItemID,
		TransactionID:  m.TransactionID,
		ParticularID:   m.ParticularID,
		ParticularName: m.ParticularName,
		Kind:           domain.ParticularType(m.ParticularType),
		Position:       m.Position,
		Units:          m.Units,
		UnitPrice:      m.UnitPrice,
	}
}
