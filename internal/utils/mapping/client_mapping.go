package mapping

import (
	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:            d.ClientID,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Title:               d.Title,
		Address:             d.Address,
		TotalBalance:        d.TotalBalance,
		LastTransactionDate: d.LastTransactionDate,
		Status:              string(d.Status),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	var last = m.LastTransactionDate
	if last != nil {
		d := domain.DateOnly(*last)
		last = &d
	}
	return domain.Client{
		ClientID:            m.ClientID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Title:               m.Title,
		Address:             m.Address,
		TotalBalance:        m.TotalBalance,
		LastTransactionDate: last,
		Status:              domain.ClientStatus(m.Status),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClients converts a slice of model Clients
func ToDomainClients(ms []models.Client) []domain.Client {
	out := make([]domain.Client, len(ms))
	for i, m := range ms {
		out[i] = ToDomainClient(m)
	}
	return out
}
