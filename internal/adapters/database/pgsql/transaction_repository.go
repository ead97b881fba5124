package pgsql

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/client_ledger/internal/models"
	"github.com/SscSPs/client_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, client_id, jo_number, transaction_date, remarks,
	created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `line_item_id, transaction_id, particular_id, particular_name,
	particular_type, position, units, unit_price`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, transactionID)
}

func (r *PgxTransactionRepository) ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	return listTransactionsByClient(ctx, r.Pool, clientID)
}

// PeekNextJobOrderNumber reads without locking the counter.
func (r *PgxTransactionRepository) PeekNextJobOrderNumber(ctx context.Context) (int64, error) {
	query := `
		SELECT GREATEST(c.last_value, COALESCE((SELECT MAX(jo_number) FROM transactions), 0)) + 1
		FROM job_order_counter c
		WHERE c.counter_id = 1;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, notFoundOr("failed to read job order counter", err)
	}
	return next, nil
}

func findTransaction(ctx context.Context, q querier, transactionID string) (*domain.Transaction, error) {
	rows, err := q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return nil, mapPgError("failed to query transaction "+transactionID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundOr("failed to find transaction "+transactionID, err)
	}

	items, err := loadLineItems(ctx, q, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(header, items[transactionID])
	return &txn, nil
}

// listTransactionsByClient returns every transaction of a client with its
// line items, newest first.
func listTransactionsByClient(ctx context.Context, q querier, clientID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE client_id = $1
		ORDER BY transaction_date DESC, jo_number DESC;
	`
	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, mapPgError("failed to query transactions for client "+clientID, err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapPgError("failed to scan transactions", err)
	}
	if len(headers) == 0 {
		return []domain.Transaction{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}
	items, err := loadLineItems(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainTransaction(h, items[h.TransactionID])
	}
	return out, nil
}

// loadLineItems fetches the line items of several transactions keyed by transaction id.
func loadLineItems(ctx context.Context, q querier, transactionIDs []string) (map[string][]models.LineItem, error) {
	query := `
		SELECT ` + lineItemColumns + `
		FROM transaction_line_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position;
	`
	rows, err := q.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, mapPgError("failed to query line items", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LineItem])
	if err != nil {
		return nil, mapPgError("failed to scan line items", err)
	}
	out := make(map[string][]models.LineItem, len(transactionIDs))
	for _, m := range ms {
		out[m.TransactionID] = append(out[m.TransactionID], m)
	}
	return out, nil
}
