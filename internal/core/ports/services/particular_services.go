package services

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/dto"
)

// ParticularReaderSvc defines read operations for the catalog
type ParticularReaderSvc interface {
	GetParticularByID(ctx context.Context, particularID string) (*domain.Particular, error)
	ListParticulars(ctx context.Context, params dto.ListParticularsParams) ([]domain.Particular, error)
}

// ParticularWriterSvc defines write operations for the catalog
type ParticularWriterSvc interface {
	CreateParticular(ctx context.Context, req dto.CreateParticularRequest, actor string) (*domain.Particular, error)
	DeleteParticular(ctx context.Context, particularID string) error
}

// ParticularSvcFacade combines all catalog service interfaces
type ParticularSvcFacade interface {
	ParticularReaderSvc
	ParticularWriterSvc
}
