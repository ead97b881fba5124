package repositories

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client by its identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients ordered by last name, first name.
	ListClients(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error)

	// FindClientsByName returns clients whose first and last names match case-insensitively.
	FindClientsByName(ctx context.Context, firstName, lastName string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data.
// Balance fields are never written through this interface.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClientProfile updates name, title and address.
	UpdateClientProfile(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
