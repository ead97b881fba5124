package repositories

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
)

// TransactionReader defines read operations outside a unit of work.
// Mutations go through LedgerUnitOfWork.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its line items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByClient lists a client's transactions by date desc, jo number desc.
	ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error)

	// PeekNextJobOrderNumber returns the number the next creation would most likely get.
	PeekNextJobOrderNumber(ctx context.Context) (int64, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
}
