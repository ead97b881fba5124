package services

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/dto"
)

// ClientReaderSvc defines read operations for the client directory
type ClientReaderSvc interface {
	// GetClientByID retrieves a client.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients matching the filter.
	ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error)

	// CheckClientName reports clients already registered under the same name.
	CheckClientName(ctx context.Context, req dto.CheckClientNameRequest) ([]domain.Client, error)

	// GetClientLedger returns the client, its transactions and the derived totals.
	GetClientLedger(ctx context.Context, clientID string) (*domain.ClientLedger, error)
}

// ClientWriterSvc defines write operations for the client directory
type ClientWriterSvc interface {
	// CreateClient registers a new client with no transactions.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, actor string) (*domain.Client, error)

	// UpdateClient changes profile fields only.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor string) (*domain.Client, error)

	// DeleteClient removes a client and every transaction it owns.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
