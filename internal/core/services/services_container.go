package services

import (
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Client: NewClientService(
			repos.ClientRepo,
			WithClientTransactionReader(repos.TransactionRepo),
			WithClientLedger(repos.Ledger),
		),
		Particular: NewParticularService(repos.ParticularRepo),
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.ParticularRepo,
			repos.Ledger,
		),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ClientSvcFacade      = (*clientService)(nil)
	_ portssvc.ParticularSvcFacade  = (*particularService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
