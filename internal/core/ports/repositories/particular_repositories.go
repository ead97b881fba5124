package repositories

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
)

// ParticularReader defines read operations for the catalog
type ParticularReader interface {
	// FindParticularByID retrieves a catalog entry by its identifier.
	FindParticularByID(ctx context.Context, particularID string) (*domain.Particular, error)

	// FindParticularsByIDs retrieves several entries keyed by id. Missing ids are absent from the map.
	FindParticularsByIDs(ctx context.Context, particularIDs []string) (map[string]domain.Particular, error)

	// ListParticulars lists entries ordered by type then name, optionally of one type.
	ListParticulars(ctx context.Context, particularType *domain.ParticularType) ([]domain.Particular, error)
}

// ParticularWriter defines write operations for the catalog
type ParticularWriter interface {
	// SaveParticular persists a new entry. Names are unique per type, ignoring case.
	SaveParticular(ctx context.Context, particular domain.Particular) error

	// DeleteParticular removes an entry. Recorded line items keep their snapshot.
	DeleteParticular(ctx context.Context, particularID string) error
}

// ParticularRepositoryFacade combines all catalog repository interfaces
type ParticularRepositoryFacade interface {
	ParticularReader
	ParticularWriter
}
