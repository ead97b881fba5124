package dto

import (
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateParticularRequest defines the data needed to add a catalog entry.
type CreateParticularRequest struct {
	Name      string                `json:"name" binding:"required,max=100"`
	Type      domain.ParticularType `json:"type" binding:"required,particular_type"`
	UnitPrice *decimal.Decimal      `json:"unitPrice"` // Optional default price
}

// ListParticularsParams defines query parameters for listing the catalog.
type ListParticularsParams struct {
	Type string `form:"type" binding:"omitempty,particular_type"`
}

// ParticularResponse defines the data returned for a catalog entry.
type ParticularResponse struct {
	ParticularID  string                `json:"particularID"`
	Name          string                `json:"name"`
	Type          domain.ParticularType `json:"type"`
	UnitPrice     *decimal.Decimal      `json:"unitPrice,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ToParticularResponse converts a domain.Particular to ParticularResponse DTO
func ToParticularResponse(p *domain.Particular) ParticularResponse {
	return ParticularResponse{
		ParticularID:  p.ParticularID,
		Name:          p.Name,
		Type:          p.Type,
		UnitPrice:     p.UnitPrice,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToListParticularResponse converts a slice of domain.Particular to DTOs
func ToListParticularResponse(particulars []domain.Particular) []ParticularResponse {
	res := make([]ParticularResponse, len(particulars))
	for i := range particulars {
		res[i] = ToParticularResponse(&particulars[i])
	}
	return res
}
