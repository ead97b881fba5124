package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
)

// LedgerUnitOfWork runs a ledger mutation as one all-or-nothing unit.
//
// RunInTx commits when fn returns nil and rolls back otherwise. Every lock
// taken through the LedgerTx (client rows, the job-order counter) is held
// until RunInTx returns, on every exit path.
type LedgerUnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// LedgerTx is the set of operations available inside a unit of work.
// Writes that touch a client's transactions require that client to have been
// locked with FindClientByIDForUpdate first.
type LedgerTx interface {
	// FindClientByIDForUpdate loads a client and takes an exclusive lock on it.
	FindClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error)

	// FindTransactionByID loads a transaction with its line items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByClient loads every transaction of a client with line items.
	ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error)

	// AllocateJobOrderNumber reserves the next job-order number. The reservation
	// is released if the unit of work rolls back.
	AllocateJobOrderNumber(ctx context.Context) (int64, error)

	// SaveTransaction inserts a transaction header and its line items.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionHeader writes the mutable header fields (date, remarks, audit).
	UpdateTransactionHeader(ctx context.Context, txn domain.Transaction) error

	// ReplaceLineItems deletes every line item of a transaction and inserts items.
	ReplaceLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error

	// DeleteTransaction removes a transaction and its line items.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// UpdateClientLedgerState writes the derived balance fields onto the client.
	UpdateClientLedgerState(ctx context.Context, clientID string, state domain.LedgerState, actor string, now time.Time) error

	// DeleteClient removes a client together with its transactions.
	DeleteClient(ctx context.Context, clientID string) error
}
