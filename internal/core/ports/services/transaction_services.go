package services

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for job orders
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its line items.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListClientTransactions lists a client's transactions, newest first.
	ListClientTransactions(ctx context.Context, clientID string) ([]domain.Transaction, error)

	// NextJobOrderNumber previews the next job-order number. Allocation happens on create.
	NextJobOrderNumber(ctx context.Context) (int64, error)
}

// TransactionWriterSvc defines the ledger mutations. Each runs as one unit of
// work serialized on the owning client and recomputes the client's balance.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.MutationResult, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor string) (*domain.MutationResult, error)
	DeleteTransaction(ctx context.Context, transactionID string, actor string) (*domain.MutationResult, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
