package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
// lockTimeout is applied to each ledger unit of work; zero leaves the server default.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:      newPgxClientRepository(dbPool),
		ParticularRepo:  newPgxParticularRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		Ledger:          newPgxLedgerRepository(dbPool, lockTimeout),
	}
}
