package mapping

import (
	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/models"
)

// ToModelParticular converts a domain Particular to a model Particular
func ToModelParticular(d domain.Particular) models.Particular {
	return models.Particular{
		ParticularID:   d.ParticularID,
		Name:           d.Name,
		ParticularType: string(d.Type),
		UnitPrice:      d.UnitPrice,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParticular converts a model Particular to a domain Particular
func ToDomainParticular(m models.Particular) domain.Particular {
	return domain.Particular{
		ParticularID: m.ParticularID,
		Name:         m.Name,
		Type:         domain.ParticularType(m.ParticularType),
		UnitPrice:    m.UnitPrice,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
