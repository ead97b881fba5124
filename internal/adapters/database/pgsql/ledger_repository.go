package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/client_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository runs ledger units of work as PostgreSQL transactions.
// Client rows are locked with SELECT ... FOR UPDATE and the job-order counter
// row stays locked from allocation until commit or rollback.
type PgxLedgerRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

func newPgxLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

var _ portsrepo.LedgerUnitOfWork = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	if r.lockTimeout > 0 {
		// SET does not accept bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return mapPgError("failed to set lock timeout", err)
		}
	}

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) FindClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error) {
	return findClient(ctx, t.tx, clientID, true)
}

func (t *pgxLedgerTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, t.tx, transactionID)
}

func (t *pgxLedgerTx) ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	return listTransactionsByClient(ctx, t.tx, clientID)
}

// AllocateJobOrderNumber never hands out a number below the highest stored one,
// so rows inserted outside the counter cannot collide.
func (t *pgxLedgerTx) AllocateJobOrderNumber(ctx context.Context) (int64, error) {
	query := `
		UPDATE job_order_counter
		SET last_value = GREATEST(last_value, (SELECT COALESCE(MAX(jo_number), 0) FROM transactions)) + 1
		WHERE counter_id = 1
		RETURNING last_value;
	`
	var next int64
	if err := t.tx.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, notFoundOr("failed to allocate job order number", err)
	}
	return next, nil
}

func (t *pgxLedgerTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := t.tx.Exec(ctx, query,
		m.TransactionID, m.ClientID, m.JONumber, m.TransactionDate, m.Remarks,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to insert transaction "+m.TransactionID, err)
	}
	return t.insertLineItems(ctx, txn.TransactionID, txn.LineItems)
}

func (t *pgxLedgerTx) UpdateTransactionHeader(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_date = $2, remarks = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query,
		txn.TransactionID, domain.DateOnly(txn.Date), txn.Remarks, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (t *pgxLedgerTx) ReplaceLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM transaction_line_items WHERE transaction_id = $1`, transactionID); err != nil {
		return mapPgError("failed to delete line items of "+transactionID, err)
	}
	return t.insertLineItems(ctx, transactionID, items)
}

func (t *pgxLedgerTx) insertLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, item := range items {
		m := mapping.ToModelLineItem(item)
		m.TransactionID = transactionID
		batch.Queue(query,
			m.LineItemID, m.TransactionID, m.ParticularID, m.ParticularName,
			m.ParticularType, m.Position, m.Units, m.UnitPrice,
		)
	}

	// Close reports the first failing statement of the batch.
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError("failed to insert line items of "+transactionID, err)
	}
	return nil
}

func (t *pgxLedgerTx) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return mapPgError("failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (t *pgxLedgerTx) UpdateClientLedgerState(ctx context.Context, clientID string, state domain.LedgerState, actor string, now time.Time) error {
	query := `
		UPDATE clients
		SET total_balance = $2, last_transaction_date = $3, status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE client_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query,
		clientID, state.NetBalance, state.LastTransactionDate, string(state.Status), now, actor,
	)
	if err != nil {
		return mapPgError("failed to update ledger state of client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteClient relies on ON DELETE CASCADE for transactions and line items.
func (t *pgxLedgerTx) DeleteClient(ctx context.Context, clientID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM clients WHERE client_id = $1`, clientID)
	if err != nil {
		return mapPgError("failed to delete client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
